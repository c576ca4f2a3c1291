package poeforum

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"poebuilds/lib/restyutil"
	"poebuilds/lib/telemetry"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://www.pathofexile.com/forum/"

// BaseHeaders mimic a desktop chrome navigating the forum.
var BaseHeaders = map[string]string{
	"accept": "text/html,application/xhtml+xml,application/xml;" +
		"q=0.9,image/webp,image/apng,*/*;" +
		"q=0.8,application/signed-exchange;v=b3",
	"accept-encoding":           "gzip, deflate, br",
	"accept-language":           "en-US,en;q=0.9",
	"cookie":                    "",
	"sec-fetch-mode":            "navigate",
	"sec-fetch-site":            "same-origin",
	"sec-fetch-user":            "?1",
	"upgrade-insecure-requests": "1",
	"user-agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/76.0.3809.100 Safari/537.36",
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// zero means requests never time out
	Timeout time.Duration
	// merged over BaseHeaders
	Headers map[string]string
	// routes requests through a TLS configuration accepted by cloudflare
	CloudflareBypass bool
	// if set, raw HTTP exchanges are dumped here while debug logging is on
	InstrumentOutput restyutil.InstrumentOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeaders(BaseHeaders)
	if len(opts.Headers) > 0 {
		client.SetHeaders(opts.Headers)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	telemetry.InstrumentResty(client, "poebuilds.lib.scrapers.poeforum/http")
	restyutil.InstrumentClient(client, opts.InstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func ListingPath(forumId string, page int) string {
	return fmt.Sprintf("view-forum/%s/page/%s", forumId, strconv.Itoa(page))
}

func ThreadPath(threadId string) string {
	return fmt.Sprintf("view-thread/%s", threadId)
}

// Page is the decoded text of a forum response.
type Page struct {
	Url             string
	Body            string
	ContentEncoding string
	Encoding        Encoding
	// set when Encoding is EncodingRawFallback
	DecodeErr error
}

// Fetch GETs `path` relative to the base url and decodes the body as utf-8.
//
// a body that fails decompression is not an error, it degrades to the raw
// bytes and the page is marked EncodingRawFallback. those bytes still have
// to be valid utf-8, otherwise a *DecodeError is returned.
func (c *Client) Fetch(ctx context.Context, path string) (Page, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("path", path))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Page{}, err
	}
	if res.IsError() {
		err := &HTTPError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Url:        res.Request.URL,
		}
		span.SetStatus(codes.Error, err.Error())
		return Page{}, err
	}

	contentEncoding := res.Header().Get("content-encoding")
	body, encoding, decodeErr := decompress(contentEncoding, res.Body())
	if decodeErr != nil {
		slog.WarnContext(
			ctx, "decompression failed, using raw body",
			"url", res.Request.URL,
			"content_encoding", contentEncoding,
			"err", decodeErr,
		)
		span.RecordError(decodeErr)
	}
	if encoding == EncodingIdentity && !utf8.Valid(body) {
		sniffed, ok := sniffBrotli(body)
		if ok {
			slog.DebugContext(ctx, "undeclared brotli body", "url", res.Request.URL)
			body = sniffed
			encoding = EncodingDecompressed
		}
	}
	span.SetAttributes(attribute.String("encoding", string(encoding)))

	if !utf8.Valid(body) {
		err := &DecodeError{Url: res.Request.URL, Encoding: encoding}
		span.SetStatus(codes.Error, err.Error())
		return Page{}, err
	}

	return Page{
		Url:             res.Request.URL,
		Body:            string(body),
		ContentEncoding: contentEncoding,
		Encoding:        encoding,
		DecodeErr:       decodeErr,
	}, nil
}

// FetchListing fetches one listing page of a class's forum section.
// page 1 of every section starts with a pinned index thread, it is dropped.
func (c *Client) FetchListing(ctx context.Context, class ClassTag, page int) ([]ThreadRef, error) {
	ctx, span := tracer.Start(ctx, "client:FetchListing")
	defer span.End()

	span.SetAttributes(
		attribute.String("class", class.Name),
		attribute.Int("page", page),
	)

	res, err := c.Fetch(ctx, ListingPath(class.ForumId, page))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}
	refs, err := ParseListing(ctx, strings.NewReader(res.Body), page == 1)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing")
		return nil, fmt.Errorf("%s: %w", res.Url, err)
	}
	return refs, nil
}

// FetchThread fetches a thread and extracts its cleaned first post.
func (c *Client) FetchThread(ctx context.Context, threadId string) (Build, error) {
	ctx, span := tracer.Start(ctx, "client:FetchThread")
	defer span.End()

	span.SetAttributes(attribute.String("thread_id", threadId))

	res, err := c.Fetch(ctx, ThreadPath(threadId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch thread")
		return Build{}, err
	}
	build, err := ParseThread(ctx, strings.NewReader(res.Body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse thread")
		return Build{}, fmt.Errorf("%s: %w", res.Url, err)
	}
	return build, nil
}
