package poeforum

import (
	"context"
	"io"
	"poebuilds/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Build is the first post of a build-guide thread.
type Build struct {
	Title string
	// cleaned with textutil.Clean
	Body string
}

// Text renders the build the way fetch output stores it.
func (b Build) Text() string {
	return b.Title + "\n" + b.Body
}

// ParseThread reads the page heading and the content of the first post.
func ParseThread(ctx context.Context, r io.Reader) (Build, error) {
	_, span := tracer.Start(ctx, "ParseThread")
	defer span.End()

	fail := func(reason string) (Build, error) {
		err := &ParseError{Page: "thread", Reason: reason}
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return Build{}, err
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Build{}, err
	}

	title := doc.Find("h1.layoutBoxTitle").First()
	if title.Length() == 0 {
		return fail("missing h1.layoutBoxTitle")
	}

	table := doc.Find("table.forumTable").First()
	if table.Length() == 0 {
		return fail("missing table.forumTable")
	}
	row := table.Find("tr").First()
	if row.Length() == 0 {
		return fail("forumTable has no rows")
	}
	content := row.Find("div.content").First()
	if content.Length() == 0 {
		return fail("first post has no div.content")
	}

	return Build{
		Title: title.Text(),
		Body:  textutil.Clean(content.Text()),
	}, nil
}
