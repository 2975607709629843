package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/slugkit/internal/api"
	"github.com/dmitrymomot/slugkit/internal/metrics"
	"github.com/dmitrymomot/slugkit/pkg/registry"
)

func newHandler(t *testing.T, opts ...api.Option) http.Handler {
	t.Helper()

	reg, err := registry.New(registry.NewMemory(registry.WithCleanupInterval(0)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	return api.New(reg, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type slugBody struct {
	Slug string `json:"slug"`
}

type errorBody struct {
	Error string `json:"error"`
}

func TestSlugEndpoints(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	tests := []struct {
		name     string
		path     string
		body     string
		code     int
		expected string
	}{
		{name: "generate", path: "/v1/slugs/generate", body: `{"text":"Hello, World!"}`, code: 200, expected: "hello-world"},
		{name: "generate with separator", path: "/v1/slugs/generate", body: `{"text":"Hello World","options":{"separator":"_"}}`, code: 200, expected: "hello_world"},
		{name: "generate keeps case", path: "/v1/slugs/generate", body: `{"text":"Hello World","options":{"lower_case":false}}`, code: 200, expected: "Hello-World"},
		{name: "generate keeps apostrophes", path: "/v1/slugs/generate", body: `{"text":"library's","options":{"strip_apostrophes":false}}`, code: 200, expected: "library-s"},
		{name: "generate ascii filter", path: "/v1/slugs/generate", body: `{"text":"café au lait","options":{"filter":"ascii-alnum"}}`, code: 200, expected: "caf-au-lait"},
		{name: "generate ungeneratable", path: "/v1/slugs/generate", body: `{"text":"!!!"}`, code: 422},
		{name: "generate unknown filter", path: "/v1/slugs/generate", body: `{"text":"x","options":{"filter":"emoji"}}`, code: 400},
		{name: "generate overlapping separator", path: "/v1/slugs/generate", body: `{"text":"x","options":{"separator":"a"}}`, code: 400},
		{name: "parse", path: "/v1/slugs/parse", body: `{"text":"hello-world"}`, code: 200, expected: "hello-world"},
		{name: "parse rejects non slug", path: "/v1/slugs/parse", body: `{"text":"Hello World"}`, code: 422},
		{name: "truncate", path: "/v1/slugs/truncate", body: `{"slug":"hello-big-world","max_length":9}`, code: 200, expected: "hello-big"},
		{name: "truncate drops dangling separator", path: "/v1/slugs/truncate", body: `{"slug":"hello-big-world","max_length":10}`, code: 200, expected: "hello-big"},
		{name: "truncate invalid length", path: "/v1/slugs/truncate", body: `{"slug":"hello","max_length":0}`, code: 422},
		{name: "truncate non slug", path: "/v1/slugs/truncate", body: `{"slug":"Hello","max_length":3}`, code: 422},
		{name: "make", path: "/v1/slugs/make", body: `{"text":"Café & Restaurant"}`, code: 200, expected: "cafe-restaurant"},
		{name: "make with separator", path: "/v1/slugs/make", body: `{"text":"Café & Restaurant","separator":"_"}`, code: 200, expected: "cafe_restaurant"},
		{name: "make with replace", path: "/v1/slugs/make", body: `{"text":"C++ rocks","replace":{"++":" plus plus"}}`, code: 200, expected: "c-plus-plus-rocks"},
		{name: "make max length", path: "/v1/slugs/make", body: `{"text":"Long Article Title","max_length":12}`, code: 200, expected: "long-article"},
		{name: "make empty", path: "/v1/slugs/make", body: `{"text":"!!!"}`, code: 422},
		{name: "make oversized suffix", path: "/v1/slugs/make", body: `{"text":"hi","suffix":200000000}`, code: 400},
		{name: "make negative suffix", path: "/v1/slugs/make", body: `{"text":"hi","suffix":-1}`, code: 400},
		{name: "make oversized max length", path: "/v1/slugs/make", body: `{"text":"hi","max_length":1000000}`, code: 400},
		{name: "make oversized min length", path: "/v1/slugs/make", body: `{"text":"hi","min_length":1000000}`, code: 400},
		{name: "malformed json", path: "/v1/slugs/generate", body: `{"text":`, code: 400},
		{name: "unknown field", path: "/v1/slugs/generate", body: `{"txt":"hello"}`, code: 400},
		{name: "trailing data", path: "/v1/slugs/generate", body: `{"text":"a"}{"text":"b"}`, code: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.code != http.StatusOK {
				assert.NotEmpty(t, decode[errorBody](t, rec).Error)
				return
			}
			assert.Equal(t, tt.expected, decode[slugBody](t, rec).Slug)
		})
	}
}

func TestMakeLongestSuffix(t *testing.T) {
	t.Parallel()

	rec := do(t, newHandler(t), http.MethodPost, "/v1/slugs/make", `{"text":"Hi","suffix":32}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Regexp(t, `^hi-[a-z0-9]{32}$`, decode[slugBody](t, rec).Slug)
}

func TestMakeReserved(t *testing.T) {
	t.Parallel()

	rec := do(t, newHandler(t), http.MethodPost, "/v1/slugs/make", `{"text":"Admin","reserved":["admin"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^admin-[a-z0-9]{6}$`, decode[slugBody](t, rec).Slug)
}

func TestRequestGuards(t *testing.T) {
	t.Parallel()

	t.Run("content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/v1/slugs/generate", strings.NewReader(`{"text":"a"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		newHandler(t).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		h := newHandler(t, api.WithMaxBodyBytes(16))
		rec := do(t, h, http.MethodPost, "/v1/slugs/generate", `{"text":"`+strings.Repeat("a", 64)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newHandler(t), http.MethodGet, "/v1/nothing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "route not found", decode[errorBody](t, rec).Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newHandler(t), http.MethodGet, "/v1/slugs/generate", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

type claimBody struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Owner     string `json:"owner"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

func TestClaims(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/v1/claims", `{"title":"Hello World","owner":"u1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[claimBody](t, rec)
	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "u1", first.Owner)
	assert.Equal(t, "Hello World", first.Title)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.CreatedAt)
	assert.Empty(t, first.ExpiresAt)
	assert.Equal(t, "/v1/claims/hello-world", rec.Header().Get("Location"))

	rec = do(t, h, http.MethodPost, "/v1/claims", `{"title":"hello, world","owner":"u2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Regexp(t, `^hello-world-[0-9a-f]{6}$`, decode[claimBody](t, rec).Slug)

	rec = do(t, h, http.MethodGet, "/v1/claims/hello-world", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.ID, decode[claimBody](t, rec).ID)

	rec = do(t, h, http.MethodDelete, "/v1/claims/hello-world?owner=u2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/claims/hello-world?owner=u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/claims/hello-world", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/claims/hello-world", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClaim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		code     int
		expected string
	}{
		{name: "html title", body: `{"title":"<h1>Fish &amp; <em>Chips</em></h1>","format":"html"}`, code: 201, expected: "fish-chips"},
		{name: "markdown title", body: `{"title":"## A **bold** move","format":"md"}`, code: 201, expected: "a-bold-move"},
		{name: "unknown format", body: `{"title":"x","format":"rst"}`, code: 400},
		{name: "bad ttl", body: `{"title":"x","ttl":"soon"}`, code: 400},
		{name: "negative ttl", body: `{"title":"x","ttl":"-1m"}`, code: 400},
		{name: "ungeneratable title", body: `{"title":"???"}`, code: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := do(t, newHandler(t), http.MethodPost, "/v1/claims", tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.expected != "" {
				assert.Equal(t, tt.expected, decode[claimBody](t, rec).Slug)
			}
		})
	}

	t.Run("temporary hold", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newHandler(t), http.MethodPost, "/v1/claims", `{"title":"Draft","owner":"u1","ttl":"1h"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, decode[claimBody](t, rec).ExpiresAt)
	})
}

func TestGetClaim_NotASlug(t *testing.T) {
	t.Parallel()

	rec := do(t, newHandler(t), http.MethodGet, "/v1/claims/Not-A-Slug", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// stubRegistry fails every claim with err, or panics when err is nil.
type stubRegistry struct {
	api.Registry
	err error
}

func (s stubRegistry) Claim(context.Context, registry.Request) (registry.Claim, error) {
	if s.err == nil {
		panic("boom")
	}
	return registry.Claim{}, s.err
}

func TestClaimErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "exhausted", err: registry.ErrExhausted, code: 409, message: registry.ErrExhausted.Error()},
		{name: "taken", err: registry.ErrTaken, code: 409, message: registry.ErrTaken.Error()},
		{name: "store failure", err: errors.New("connection reset"), code: 500, message: "Internal Server Error"},
		{name: "panic", code: 500, message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := api.New(stubRegistry{err: tt.err})
			rec := do(t, h, http.MethodPost, "/v1/claims", `{"title":"Hello"}`)
			require.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, decode[errorBody](t, rec).Error)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	h := newHandler(t, api.WithMetrics(m))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/slugs/generate", `{"text":"a b"}`).Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/v1/slugs/parse", `{"text":"A"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/v1/claims", `{"title":"x"}`).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `slugkit_slug_operations_total{operation="generate",result="ok"} 1`)
	assert.Contains(t, out, `slugkit_slug_operations_total{operation="parse",result="not_slug"} 1`)
	assert.Contains(t, out, `slugkit_claims_total{result="ok"} 1`)
	assert.Contains(t, out, `route="/v1/slugs/generate"`)

	assert.Equal(t, http.StatusNotFound, do(t, newHandler(t), http.MethodGet, "/metrics", "").Code)
}
