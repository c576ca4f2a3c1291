package buildfetch

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"poebuilds/internal/assert"
	"poebuilds/lib/scrapers/poeforum"
	"poebuilds/lib/telemetry"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = telemetry.Tracer("poebuilds.services.buildfetch")

// ThreadSource fetches and extracts the first post of a thread.
type ThreadSource interface {
	FetchThread(ctx context.Context, threadId string) (poeforum.Build, error)
}

type Fetcher struct {
	source ThreadSource
}

func NewFetcher(source ThreadSource) Fetcher {
	assert.NotNil(source)
	return Fetcher{source: source}
}

// Get returns the title and cleaned body of a thread.
func (f Fetcher) Get(ctx context.Context, threadId string) (poeforum.Build, error) {
	return f.source.FetchThread(ctx, threadId)
}

// Write replaces `filename` with the title and body of a thread joined by a
// newline.
func (f Fetcher) Write(ctx context.Context, threadId, filename string) error {
	ctx, span := tracer.Start(ctx, "fetcher:Write")
	defer span.End()

	span.SetAttributes(
		attribute.String("thread_id", threadId),
		attribute.String("filename", filename),
	)

	build, err := f.Get(ctx, threadId)
	if err != nil {
		span.SetStatus(codes.Error, "failed to get build")
		return err
	}
	err = os.WriteFile(filename, []byte(build.Text()), 0644)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write build")
		return err
	}

	slog.DebugContext(ctx, "wrote build", "thread_id", threadId, "filename", filename)
	return nil
}

// ReadThreadRefs reads a discovery output file, blank lines are skipped.
func ReadThreadRefs(filename string) ([]poeforum.ThreadRef, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []poeforum.ThreadRef
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ref, err := poeforum.ParseThreadRefLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// BuildFilename is where FetchAll stores a thread inside `dir`.
func BuildFilename(dir, threadId string) string {
	return filepath.Join(dir, threadId+".txt")
}

// FetchAll writes every thread listed in `refsFile` to its own file under
// `outDir`, waiting on `limiter` before each request. the first failure
// aborts, files written before it are kept. returns the number of
// threads written.
func (f Fetcher) FetchAll(ctx context.Context, refsFile, outDir string, limiter *rate.Limiter) (int, error) {
	ctx, span := tracer.Start(ctx, "fetcher:FetchAll")
	defer span.End()

	refs, err := ReadThreadRefs(refsFile)
	if err != nil {
		span.SetStatus(codes.Error, "failed to read thread refs")
		return 0, err
	}
	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		span.SetStatus(codes.Error, "failed to create output dir")
		return 0, err
	}

	slog.InfoContext(ctx, "fetching builds", "threads", len(refs), "out_dir", outDir)

	written := 0
	for _, ref := range refs {
		if limiter != nil {
			err := limiter.Wait(ctx)
			if err != nil {
				return written, err
			}
		}

		err := f.Write(ctx, ref.Id, BuildFilename(outDir, ref.Id))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch build")
			return written, fmt.Errorf("fetch thread %s (%s): %w", ref.Id, ref.Title, err)
		}
		written++
	}

	span.SetAttributes(attribute.Int("written", written))
	return written, nil
}
