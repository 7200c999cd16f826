package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, tokens, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestNewValidatesBaseURL(t *testing.T) {
	client, err := New("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/", client.BaseURL())

	_, err = New("ftp://example.com", nil)
	require.Error(t, err)

	_, err = New("://bad", nil)
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	client, err := New("http://localhost:5000", nil)
	require.NoError(t, err)

	tests := []struct {
		ref  string
		want string
	}{
		{"/uploads/a.png", "http://localhost:5000/uploads/a.png"},
		{"uploads/b.png", "http://localhost:5000/uploads/b.png"},
		{"https://cdn.example/c.png", "https://cdn.example/c.png"},
	}
	for _, tt := range tests {
		got, err := client.Resolve(tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err = client.Resolve("  ")
	require.Error(t, err)
}

func TestDoJSONSendsTokenAndDecodesData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "widget", body["name"])

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42","name":"widget"}}`))
	}, StaticToken("secret"))

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := client.DoJSON(context.Background(), http.MethodPost, "/api/things", map[string]string{"name": "widget"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "42", out.ID)
	assert.Equal(t, "widget", out.Name)
}

func TestDoJSONWithoutTokenSource(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}, nil)

	require.NoError(t, client.DoJSON(context.Background(), http.MethodGet, "api/stats", nil, nil))
}

func TestDoJSONMissingToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Fail(t, "request must not be sent without a token")
	}, StaticToken(""))

	err := client.DoJSON(context.Background(), http.MethodGet, "/api/services", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDoJSONReportsFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantAPI   bool
		wantMsg   string
		wantCode  int
		malformed bool
	}{
		{name: "success false", status: http.StatusOK, body: `{"success":false,"message":"duplicate slug"}`, wantAPI: true, wantMsg: "duplicate slug", wantCode: 200},
		{name: "error status", status: http.StatusUnauthorized, body: `{"success":false,"message":"unauthorized"}`, wantAPI: true, wantMsg: "unauthorized", wantCode: 401},
		{name: "html error page", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantAPI: true, wantCode: 502},
		{name: "html success page", status: http.StatusOK, body: `<html>oops</html>`, malformed: true},
		{name: "data mismatch", status: http.StatusOK, body: `{"success":true,"data":"text"}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			var out struct{ ID string }
			err := client.DoJSON(context.Background(), http.MethodGet, "/api/x", nil, &out)
			require.Error(t, err)

			if tt.malformed {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.True(t, IsStatus(err, tt.wantCode))
		})
	}
}

func TestDoPlain(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"t"}`))
	}, nil)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, client.DoPlain(context.Background(), http.MethodPost, "/ok", map[string]string{}, &out))
	assert.Equal(t, "t", out.Token)

	err := client.DoPlain(context.Background(), http.MethodPost, "/fail", nil, &out)
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", Message(err, "fallback"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("network down"), "fallback"))
	assert.Equal(t, "fallback", Message(&APIError{StatusCode: 500}, "fallback"))
	assert.Equal(t, "too large", Message(&APIError{StatusCode: 413, Message: "too large"}, "fallback"))
	assert.Equal(t, "API error: 500 Internal Server Error", (&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "API error (413): too large", (&APIError{StatusCode: 413, Message: "too large"}).Error())
}

func TestNewHTTPClientDefaults(t *testing.T) {
	client := NewHTTPClient(HTTPConfig{})
	assert.Zero(t, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, DefaultMaxIdleConns, transport.MaxIdleConns)
	assert.Equal(t, DefaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, DefaultIdleConnTimeout, transport.IdleConnTimeout)
	assert.Equal(t, DefaultTLSHandshakeTimeout, transport.TLSHandshakeTimeout)
}

func TestRateLimitSpacesRequests(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, nil, WithHTTPClient(server.Client()), WithRateLimit(20))
	require.NoError(t, err)

	start := time.Now()
	for range 3 {
		require.NoError(t, client.DoJSON(context.Background(), http.MethodGet, "/api/stats", nil, nil))
	}
	assert.Equal(t, int32(3), hits.Load())
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimitHonoursCancelledContext(t *testing.T) {
	client, err := New("http://localhost:5000", nil, WithRateLimit(0.001))
	require.NoError(t, err)

	// first token is free, the second would wait far past the deadline
	require.NotNil(t, client.limiter)
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := client.NewRequest(ctx, http.MethodGet, "/api/stats", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
}
