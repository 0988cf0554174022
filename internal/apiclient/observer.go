package apiclient

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Level is the observability verbosity (§4.2).
type Level int

const (
	LevelOff Level = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

// RequestEvent is emitted before a request is sent.
type RequestEvent struct {
	RequestID   string // correlates with the matching ResponseEvent
	Method      string
	Path        string
	Headers     http.Header // always populated, already redacted; SlogObserver logs it only at LevelTrace
	HeaderCount int
	BodySize    int
	HasAuth     bool
	Body        []byte // always populated, already redacted; SlogObserver logs it only at LevelTrace
}

// ResponseEvent is emitted after a response is received (or a transport
// error occurs).
type ResponseEvent struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	Headers   http.Header // always populated; SlogObserver logs it only at LevelTrace
	BodySize  int
	Body      []byte // always populated, already redacted; SlogObserver logs it only at LevelTrace
	Err       error
}

// Observer receives structured request/response events at the
// configured verbosity. Authorization header values and credential-
// bearing bodies must always be redacted before reaching an Observer;
// that is a correctness requirement enforced by the client, not left to
// observer implementations (§4.2).
type Observer interface {
	Level() Level
	ObserveRequest(RequestEvent)
	ObserveResponse(ResponseEvent)
}

// SlogObserver is the default Observer, backed by log/slog the way the
// teacher's gateway and llm packages emit structured, leveled log lines.
type SlogObserver struct {
	level  Level
	logger *slog.Logger
}

// NewSlogObserver builds an Observer at the given level. A nil logger
// uses a new text-handler logger writing to stderr.
func NewSlogObserver(level Level, logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &SlogObserver{level: level, logger: logger}
}

func (o *SlogObserver) Level() Level { return o.level }

func (o *SlogObserver) ObserveRequest(ev RequestEvent) {
	if o.level < LevelInfo {
		return
	}
	attrs := []any{"method", ev.Method, "path", ev.Path}
	if o.level >= LevelDebug {
		attrs = append(attrs, "request_id", ev.RequestID, "header_count", ev.HeaderCount,
			"body_size", humanize.Bytes(uint64(ev.BodySize)), "has_auth", ev.HasAuth)
	}
	if o.level >= LevelTrace {
		attrs = append(attrs, "headers", redactHeaders(ev.Headers))
		if len(ev.Body) > 0 {
			attrs = append(attrs, "body", string(ev.Body))
		}
	}
	o.logger.Info("http request", attrs...)
}

func (o *SlogObserver) ObserveResponse(ev ResponseEvent) {
	if o.level < LevelInfo {
		return
	}
	attrs := []any{"method", ev.Method, "path", ev.Path, "status", ev.Status, "duration_ms", ev.Duration.Milliseconds()}
	if ev.Err != nil {
		attrs = append(attrs, "error", ev.Err.Error())
	}
	if o.level >= LevelDebug {
		attrs = append(attrs, "request_id", ev.RequestID, "body_size", humanize.Bytes(uint64(ev.BodySize)))
	}
	if o.level >= LevelTrace {
		attrs = append(attrs, "headers", redactHeaders(ev.Headers))
		if len(ev.Body) > 0 {
			attrs = append(attrs, "body", string(ev.Body))
		}
	}
	o.logger.Info("http response", attrs...)
}

// redacted is the fixed replacement for any credential-bearing value.
const redacted = "[REDACTED]"

// RedactAuthHeader rewrites an Authorization header value so no
// credential bytes ever reach a log record, regardless of observability
// level: "Bearer sk-123" becomes "Bearer [REDACTED]".
func RedactAuthHeader(value string) string {
	if value == "" {
		return ""
	}
	return "Bearer " + redacted
}

func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	out := make(http.Header, len(h))
	for k, v := range h {
		if http.CanonicalHeaderKey(k) == "Authorization" {
			out[k] = []string{RedactAuthHeader("x")}
			continue
		}
		out[k] = v
	}
	return out
}
