package apiclient

import "time"

// DefaultBaseURL is the loopback address the local service listens on.
const DefaultBaseURL = "http://localhost:31009"

// APIVersion is the single pinned wire-protocol version this client
// speaks (§6.1). Supporting more than one version at once is explicitly
// out of scope (§9, Open Questions).
const APIVersion = "2025-05-20"

// APIVersionHeader is sent on every request (§4.2).
const APIVersionHeader = "Anytype-Version"

// DefaultTimeout is the per-request timeout applied when Config.Timeout
// is zero.
const DefaultTimeout = 30 * time.Second

// Config configures a Client at construction time.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// AppName is sent in the challenge request body.
	AppName string
	// Observer receives structured request/response events. Defaults to
	// a no-op observer at OFF level.
	Observer Observer
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.AppName == "" {
		c.AppName = "kbclient"
	}
	if c.Observer == nil {
		c.Observer = NewSlogObserver(LevelOff, nil)
	}
	return c
}
