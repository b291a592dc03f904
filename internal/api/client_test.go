package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type fakeTokens struct {
	token   string
	expired int
}

func (f *fakeTokens) Token(context.Context) string { return f.token }
func (f *fakeTokens) Expire(context.Context)       { f.expired++ }

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt http.RoundTripper, tokens TokenProvider) *Client {
	return NewClient("http://api.test", time.Second,
		WithHTTPClient(&http.Client{Transport: rt}),
		WithTokenProvider(tokens),
	)
}

func TestClient_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsBearerTokenAndBody", func(t *testing.T) {
		tokens := &fakeTokens{token: "tok-123"}
		client := newTestClient(MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "http://api.test/api/orders/o1/status", req.URL.String())
			assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "shipped", body["status"])
			return jsonResponse(http.StatusOK, `{"ok":true}`)
		}), tokens)

		var out struct {
			OK bool `json:"ok"`
		}
		err := client.Put(ctx, "/api/orders/o1/status", map[string]string{"status": "shipped"}, &out)
		assert.NoError(t, err)
		assert.True(t, out.OK)
	})

	t.Run("NoTokenNoHeader", func(t *testing.T) {
		client := NewClient("http://api.test", time.Second, WithHTTPClient(&http.Client{
			Transport: MockRoundTripper(func(req *http.Request) *http.Response {
				assert.Empty(t, req.Header.Get("Authorization"))
				return jsonResponse(http.StatusOK, `[]`)
			}),
		}))

		var out []any
		assert.NoError(t, client.Get(ctx, "/api/stock", &out))
	})

	t.Run("StatusErrorCarriesBackendMessage", func(t *testing.T) {
		client := newTestClient(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"message":"quantity must be positive"}`)
		}), &fakeTokens{})

		err := client.Post(ctx, "/api/offer", map[string]int{"quantity": 0}, nil)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Equal(t, "quantity must be positive", se.Message)
		assert.Equal(t, "quantity must be positive", Reason(err))
	})

	t.Run("UnauthorizedExpiresSession", func(t *testing.T) {
		tokens := &fakeTokens{token: "stale"}
		client := newTestClient(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusUnauthorized, `{"error":"jwt expired"}`)
		}), tokens)

		err := client.Get(ctx, "/api/orders/admin", nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, 1, tokens.expired)
	})

	t.Run("NetworkError", func(t *testing.T) {
		client := newTestClient(MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}), &fakeTokens{})

		err := client.Delete(ctx, "/api/feedback/f1", nil)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Contains(t, Reason(err), "network error")
	})

	t.Run("InvalidJSONResponse", func(t *testing.T) {
		client := newTestClient(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{invalid-json`)
		}), &fakeTokens{})

		var out map[string]any
		err := client.Patch(ctx, "/api/offer/1/approve", nil, &out)
		assert.Error(t, err)
	})

	t.Run("EmptyBodyIsFine", func(t *testing.T) {
		client := newTestClient(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusNoContent, "")
		}), &fakeTokens{})

		var out map[string]any
		assert.NoError(t, client.Delete(ctx, "/api/feedback/1", &out))
	})

	t.Run("RateLimitHonoursContext", func(t *testing.T) {
		client := NewClient("http://api.test", time.Second,
			WithHTTPClient(&http.Client{Transport: MockRoundTripper(func(req *http.Request) *http.Response {
				return jsonResponse(http.StatusOK, `{}`)
			})}),
			WithRateLimit(0.001, 1),
		)

		assert.NoError(t, client.Get(ctx, "/a", nil))

		cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		err := client.Get(cctx, "/b", nil)
		var te *TransportError
		assert.ErrorAs(t, err, &te)
	})
}

func TestBackendMessage(t *testing.T) {
	assert.Equal(t, "bad", backendMessage([]byte(`{"message":"bad"}`)))
	assert.Equal(t, "worse", backendMessage([]byte(`{"error":"worse"}`)))
	assert.Equal(t, "plain text", backendMessage([]byte("plain text\n")))
	assert.Equal(t, "empty response", backendMessage(nil))
}

func TestUnwrapList(t *testing.T) {
	t.Run("BareArray", func(t *testing.T) {
		raw, err := UnwrapList(json.RawMessage(` [{"a":1}]`))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"a":1}]`, string(raw))
	})

	t.Run("Keyed", func(t *testing.T) {
		raw, err := UnwrapList(json.RawMessage(`{"success":true,"orders":[{"a":1}]}`), "orders")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"a":1}]`, string(raw))
	})

	t.Run("DataFallback", func(t *testing.T) {
		raw, err := UnwrapList(json.RawMessage(`{"data":[]}`), "items")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("Null", func(t *testing.T) {
		raw, err := UnwrapList(json.RawMessage(`null`))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("NoArray", func(t *testing.T) {
		_, err := UnwrapList(json.RawMessage(`{"orders":{}}`), "orders")
		assert.Error(t, err)
	})
}

func TestUnwrapObject(t *testing.T) {
	raw, err := UnwrapObject(json.RawMessage(`{"order":{"_id":"1"}}`), "order")
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"1"}`, string(raw))

	raw, err = UnwrapObject(json.RawMessage(`{"_id":"2"}`), "order")
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"2"}`, string(raw))

	_, err = UnwrapObject(json.RawMessage(`[1]`))
	assert.Error(t, err)
}
