package poeforum

import (
	"context"
	"fmt"
	"io"
	"poebuilds/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ThreadRef is a thread found on a listing page.
type ThreadRef struct {
	Id    string
	Title string
}

const threadRefSeparator = " - "

// Line renders the ref the way discovery output stores it.
func (r ThreadRef) Line() string {
	return r.Id + threadRefSeparator + r.Title
}

// ParseThreadRefLine reverses ThreadRef.Line, titles may contain the separator.
func ParseThreadRefLine(line string) (ThreadRef, error) {
	line = strings.TrimRight(line, "\r\n")
	id, title, found := strings.Cut(line, threadRefSeparator)
	if !found || id == "" {
		return ThreadRef{}, &ParseError{
			Page:   "thread list",
			Reason: fmt.Sprintf("malformed line %q", line),
		}
	}
	return ThreadRef{Id: id, Title: title}, nil
}

// ParseListing extracts every thread on a listing page in document order.
// with `skipFirst` the first thread is dropped.
func ParseListing(ctx context.Context, r io.Reader, skipFirst bool) ([]ThreadRef, error) {
	_, span := tracer.Start(ctx, "ParseListing")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	var refs []ThreadRef
	var parseErr error
	doc.Find("div.thread_title").EachWithBreak(func(i int, div *goquery.Selection) bool {
		anchor, ok := htmlutil.GetAnchor(div.Find("div.title").First().Find("a").First())
		if !ok {
			parseErr = &ParseError{
				Page:   "listing",
				Reason: fmt.Sprintf("thread_title block %d has no div.title link", i),
			}
			return false
		}
		refs = append(refs, ThreadRef{
			Id:    htmlutil.LastPathSegment(anchor.Href),
			Title: anchor.Name,
		})
		return true
	})
	if parseErr != nil {
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "unexpected listing markup")
		return nil, parseErr
	}

	if skipFirst && len(refs) > 0 {
		refs = refs[1:]
	}
	span.SetAttributes(attribute.Int("threads", len(refs)))

	return refs, nil
}
