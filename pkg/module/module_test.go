package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chillyai/enhancer/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			assert.Panics(t, func() { module.New(prefix, http.NewServeMux()) })
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"nested", "/api/prompts/abc", "/prompts/abc"},
		{"root", "/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Path
			}))

			req := httptest.NewRequest("GET", tt.path, nil)
			m.Serve(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantPath, got)
			assert.Equal(t, tt.path, req.URL.Path, "caller request must not be mutated")
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/x", nil))

	assert.Equal(t, "api", rec.Header().Get("X-Module"))
}

func TestRouter(t *testing.T) {
	router := module.NewRouter()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /prompts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.Mount(module.New("/api", mux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name string
		path string
		want int
	}{
		{"module route", "/api/prompts", http.StatusAccepted},
		{"module trailing slash", "/api/prompts/", http.StatusAccepted},
		{"native route", "/healthz", http.StatusOK},
		{"unknown", "/nope", http.StatusNotFound},
		{"prefix lookalike", "/apix/prompts", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
