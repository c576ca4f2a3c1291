package poeforum

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
)

// Encoding records how a response body was turned into the text of a Page.
type Encoding string

const (
	// the body was sent uncompressed
	EncodingIdentity Encoding = "identity"
	// the body was decompressed according to its Content-Encoding
	EncodingDecompressed Encoding = "decompressed"
	// decompression failed, the raw bytes were used as is
	EncodingRawFallback Encoding = "raw-fallback"
)

// decompress undoes `contentEncoding` on `body`. on failure it returns the
// raw body with EncodingRawFallback and the cause.
func decompress(contentEncoding string, body []byte) ([]byte, Encoding, error) {
	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "", "identity":
		return body, EncodingIdentity, nil
	case "gzip":
		// resty inflates gzip bodies on its own, a corrupt gzip body fails
		// the request before it gets here
		return body, EncodingDecompressed, nil
	case "br":
		reader = brotli.NewReader(bytes.NewReader(body))
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return body, EncodingRawFallback, fmt.Errorf("deflate: %w", err)
		}
		defer zr.Close()
		reader = zr
	default:
		return body, EncodingRawFallback, fmt.Errorf("unsupported content-encoding %q", contentEncoding)
	}

	out, err := io.ReadAll(reader)
	if err != nil {
		return body, EncodingRawFallback, fmt.Errorf("%s: %w", contentEncoding, err)
	}
	return out, EncodingDecompressed, nil
}

// sniffBrotli tries brotli on a body sent without a Content-Encoding that
// is not utf-8, the forum has served brotli without announcing it.
func sniffBrotli(body []byte) ([]byte, bool) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
	if err != nil || !utf8.Valid(out) {
		return nil, false
	}
	return out, true
}
