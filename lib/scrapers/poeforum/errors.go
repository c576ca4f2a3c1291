package poeforum

import "fmt"

// HTTPError is returned when the forum answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Url        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.Url, e.Status)
}

// ParseError is returned when markup the parsers depend on is absent.
type ParseError struct {
	// what was being parsed, "listing" or "thread" for example
	Page   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Page, e.Reason)
}

// DecodeError is returned when a response body is not valid utf-8, which
// usually means it was still compressed after a decompression fallback.
type DecodeError struct {
	Url      string
	Encoding Encoding
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: body is not valid utf-8 (encoding: %s)", e.Url, e.Encoding)
}

// UnknownClassError is returned for a class name not in the class table.
type UnknownClassError struct {
	Name       string
	Suggestion string
}

func (e *UnknownClassError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown class %q", e.Name)
	}
	return fmt.Sprintf("unknown class %q, did you mean %q?", e.Name, e.Suggestion)
}
