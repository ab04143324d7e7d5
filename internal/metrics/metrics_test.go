package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserverCounts(t *testing.T) {
	m := New()
	m.TimerFired()
	m.TimerFired()
	m.TimerCancelled()

	if got := testutil.ToFloat64(m.TimersFired); got != 2 {
		t.Fatalf("fired = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TimersCancelled); got != 1 {
		t.Fatalf("cancelled = %v, want 1", got)
	}
}

func TestInstancesDoNotCollide(t *testing.T) {
	a, b := New(), New()
	a.SessionsActive.Inc()
	if got := testutil.ToFloat64(b.SessionsActive); got != 0 {
		t.Fatalf("second registry saw %v sessions", got)
	}
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/sessions/{id}", "418"))
	if got != 3 {
		t.Fatalf("requests = %v, want 3", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.PageMounts.WithLabelValues("/brain").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `lifeos_page_mounts_total{route="/brain"} 1`) {
		t.Fatalf("mount counter missing from exposition:\n%s", body)
	}
}
