package buildsearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"poebuilds/internal/assert"
	"poebuilds/lib/scrapers/poeforum"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// ListingSource fetches one listing page of a class's forum section.
type ListingSource interface {
	FetchListing(ctx context.Context, class poeforum.ClassTag, page int) ([]poeforum.ThreadRef, error)
}

type Options struct {
	// discovery output, appended to
	Filename      string
	PagesPerClass int
	// mean of the jittered pause between two listing pages
	DelayMean time.Duration
	// defaults to a randomly seeded generator
	Rand *rand.Rand
	// if set, a progress bar over the work list is drawn here
	Progress io.Writer
}

// Searcher discovers build-guide threads by crawling class listings.
type Searcher struct {
	source ListingSource
	opts   Options
	rand   *rand.Rand
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewSearcher(source ListingSource, opts Options) *Searcher {
	assert.NotNil(source)
	assert.NotEmptyStr(opts.Filename)

	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Searcher{
		source: source,
		opts:   opts,
		rand:   r,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pool is the shuffled work list for `classes`.
func (s *Searcher) Pool(classes []string) []WorkUnit {
	pool := WorkUnits(classes, s.opts.PagesPerClass)
	Shuffle(pool, s.rand)
	return pool
}

// canonicalClasses resolves user supplied class names to the names in the
// class table.
func canonicalClasses(classes []string) ([]string, error) {
	names := make([]string, len(classes))
	for i, class := range classes {
		tag, err := poeforum.LookupClass(class)
		if err != nil {
			return nil, err
		}
		names[i] = tag.Name
	}
	return names, nil
}

// Crawl visits every page of every class in random order, appending the
// threads found to the output file as it goes. the first failure aborts
// the crawl, lines written before it stay on disk.
func (s *Searcher) Crawl(ctx context.Context, classes []string) error {
	ctx, span := tracer.Start(ctx, "searcher:Crawl")
	defer span.End()

	names, err := canonicalClasses(classes)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	pool := s.Pool(names)
	span.SetAttributes(
		attribute.StringSlice("classes", names),
		attribute.Int("units", len(pool)),
	)
	slog.InfoContext(ctx, "crawling forum", "units", len(pool), "output", s.opts.Filename)

	var bar *pb.ProgressBar
	if s.opts.Progress != nil {
		bar = pb.New(len(pool)).SetWriter(s.opts.Progress)
		bar.Start()
		defer bar.Finish()
	}

	for i, unit := range pool {
		if i > 0 {
			err := s.sleep(ctx, JitterDelay(s.opts.DelayMean, s.rand))
			if err != nil {
				span.SetStatus(codes.Error, "crawl interrupted")
				return err
			}
		}

		err := s.WritePage(ctx, unit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to crawl page")
			return fmt.Errorf("crawl %s: %w", unit, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}

	return nil
}

// GetPage fetches the thread references on one page of a class's listing.
func (s *Searcher) GetPage(ctx context.Context, className string, page int) ([]poeforum.ThreadRef, error) {
	class, err := poeforum.LookupClass(className)
	if err != nil {
		return nil, err
	}
	return s.source.FetchListing(ctx, class, page)
}

// WritePage appends the references of one work unit to the output file.
// the file is opened and closed per unit.
func (s *Searcher) WritePage(ctx context.Context, unit WorkUnit) error {
	ctx, span := tracer.Start(ctx, "searcher:WritePage")
	defer span.End()

	span.SetAttributes(
		attribute.String("class", unit.Class),
		attribute.Int("page", unit.Page),
	)

	refs, err := s.GetPage(ctx, unit.Class, unit.Page)
	if err != nil {
		span.SetStatus(codes.Error, "failed to get page")
		return err
	}

	var out strings.Builder
	for _, ref := range refs {
		out.WriteString(ref.Line())
		out.WriteString("\n")
	}

	f, err := os.OpenFile(s.opts.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		span.SetStatus(codes.Error, "failed to open output")
		return err
	}
	_, err = f.WriteString(out.String())
	if err != nil {
		f.Close()
		span.SetStatus(codes.Error, "failed to write output")
		return err
	}
	err = f.Close()
	if err != nil {
		return err
	}

	threadsDiscovered.Add(ctx, int64(len(refs)), metric.WithAttributes(attribute.String("class", unit.Class)))
	slog.DebugContext(ctx, "wrote page", "class", unit.Class, "page", unit.Page, "threads", len(refs))
	return nil
}
