package core

import (
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	HeaderForwardedMethod = "X-Forwarded-Method"
	HeaderUserAgent       = "User-Agent"
	HeaderHost            = "Host"

	// UnknownValue stands in for any header the request did not carry.
	UnknownValue = "Unknown"

	// TimestampLayout is ISO-8601 in UTC with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	userAgentDisplayLimit = 40
	displayEllipsis       = "..."
)

// RequestSnapshot is what the server observed about one request. It is
// built per render and thrown away afterwards.
type RequestSnapshot struct {
	RequestID     uint64 `json:"requestId"`
	Timestamp     string `json:"timestamp"`
	RequestMethod string `json:"requestMethod"`
	UserAgent     string `json:"userAgent"`
	Host          string `json:"host"`
}

// NewSnapshot reads the forwarded method, user agent and host from r.
// Go moves the Host header into r.Host, so that is checked first.
func NewSnapshot(r *http.Request, id uint64, now time.Time) RequestSnapshot {
	host := r.Host
	if host == "" {
		host = r.Header.Get(HeaderHost)
	}

	return RequestSnapshot{
		RequestID:     id,
		Timestamp:     FormatTimestamp(now),
		RequestMethod: orUnknown(r.Header.Get(HeaderForwardedMethod)),
		UserAgent:     orUnknown(r.Header.Get(HeaderUserAgent)),
		Host:          orUnknown(host),
	}
}

// DisplayUserAgent is the user agent cut to 40 characters. The ellipsis is
// appended unconditionally, short values included.
func (s RequestSnapshot) DisplayUserAgent() string {
	return truncateRunes(s.UserAgent, userAgentDisplayLimit) + displayEllipsis
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func orUnknown(v string) string {
	if v == "" {
		return UnknownValue
	}
	return v
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
