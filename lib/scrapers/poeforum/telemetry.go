package poeforum

import (
	"poebuilds/lib/telemetry"
)

var tracer = telemetry.Tracer("poebuilds.lib.scrapers.poeforum")
