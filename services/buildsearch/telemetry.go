package buildsearch

import (
	"poebuilds/lib/telemetry"

	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("poebuilds.services.buildsearch")
var meter = telemetry.Meter("poebuilds.services.buildsearch")

var threadsDiscovered, _ = meter.Int64Counter(
	"poebuilds.threads_discovered",
	metric.WithDescription("thread references appended to the discovery output"),
)
