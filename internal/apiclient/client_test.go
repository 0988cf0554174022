package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apierr"
)

func TestGetSendsVersionHeaderAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, APIVersion, r.Header.Get(APIVersionHeader))
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.SetAPIKey("secret-key")

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Get(context.Background(), "test.get", "/v1/thing", &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestGetWithoutAPIKeyFailsClosed(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	err := c.Get(context.Background(), "test.get", "/v1/thing", nil)
	require.Error(t, err)
	var authErr *apierr.Auth
	assert.ErrorAs(t, err, &authErr)
	assert.False(t, called, "no request should reach the service without a credential")
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"bad token"}`, func(t *testing.T, err error) {
			var e *apierr.Auth
			assert.ErrorAs(t, err, &e)
		}},
		{"forbidden", http.StatusForbidden, `{"message":"nope"}`, func(t *testing.T, err error) {
			var e *apierr.Auth
			assert.ErrorAs(t, err, &e)
		}},
		{"not_found", http.StatusNotFound, `{"message":"no such object"}`, func(t *testing.T, err error) {
			var e *apierr.NotFound
			assert.ErrorAs(t, err, &e)
		}},
		{"bad_request", http.StatusBadRequest, `{"message":"invalid limit"}`, func(t *testing.T, err error) {
			var e *apierr.BadRequest
			assert.ErrorAs(t, err, &e)
			assert.Contains(t, e.Details, "invalid limit")
		}},
		{"server_error", http.StatusInternalServerError, `{"message":"boom"}`, func(t *testing.T, err error) {
			var e *apierr.Server
			assert.ErrorAs(t, err, &e)
			assert.Equal(t, http.StatusInternalServerError, e.StatusCode)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(Config{BaseURL: srv.URL})
			c.SetAPIKey("k")
			err := c.Get(context.Background(), "test.op", "/v1/thing", nil)
			tc.check(t, err)
		})
	}
}

func TestDecodeErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.SetAPIKey("k")
	var out struct{ X int }
	err := c.Get(context.Background(), "test.op", "/v1/thing", &out)
	require.Error(t, err)
	var e *apierr.Decode
	assert.ErrorAs(t, err, &e)
}

func TestNoSilentRetryOnServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.SetAPIKey("k")
	err := c.Get(context.Background(), "test.op", "/v1/thing", nil)
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "exactly one request, no silent retry")
}

func TestTimeoutYieldsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.SetAPIKey("k")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := c.Get(ctx, "test.op", "/v1/thing", nil)
	require.Error(t, err)
	var e *apierr.Network
	assert.ErrorAs(t, err, &e)
}

type recordingObserver struct {
	level     Level
	requests  []RequestEvent
	responses []ResponseEvent
}

func (o *recordingObserver) Level() Level { return o.level }
func (o *recordingObserver) ObserveRequest(ev RequestEvent) {
	o.requests = append(o.requests, ev)
}
func (o *recordingObserver) ObserveResponse(ev ResponseEvent) {
	o.responses = append(o.responses, ev)
}

func TestAuthHeaderNeverObservedInPlaintext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{level: LevelTrace}
	c := New(Config{BaseURL: srv.URL, Observer: obs})
	c.SetAPIKey("top-secret")

	err := c.Post(context.Background(), "test.op", "/v1/thing", map[string]string{"api_key": "also-secret"}, nil)
	require.NoError(t, err)

	require.Len(t, obs.requests, 1)
	req := obs.requests[0]
	assert.Contains(t, string(req.Body), "[REDACTED]")
	assert.NotContains(t, string(req.Body), "also-secret")
	assert.NotContains(t, req.Headers.Get("Authorization"), "top-secret")
}
