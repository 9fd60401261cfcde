package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/tlpmark/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for prefix %q", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	mux := http.NewServeMux()

	var innerPath string
	mux.HandleFunc("GET /documents", func(w http.ResponseWriter, r *http.Request) {
		innerPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		innerPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	})

	api := module.New("/api", mux)

	var tagged bool
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tagged = true
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(api)
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantInner  string
		wantTagged bool
	}{
		{"module route", "/api/documents", http.StatusOK, "/documents", true},
		{"trailing slash", "/api/documents/", http.StatusOK, "/documents", true},
		{"module root", "/api", http.StatusAccepted, "/", true},
		{"native route", "/healthz", http.StatusNoContent, "", false},
		{"unmatched", "/nowhere", http.StatusNotFound, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			innerPath, tagged = "", false

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if innerPath != tt.wantInner {
				t.Errorf("inner path: got %q, want %q", innerPath, tt.wantInner)
			}
			if tagged != tt.wantTagged {
				t.Errorf("module middleware ran: got %v, want %v", tagged, tt.wantTagged)
			}
		})
	}
}
