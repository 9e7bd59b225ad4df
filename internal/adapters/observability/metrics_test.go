package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staybook/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObservePayment("mismatch")
	observability.ObserveSeed("hotel", errors.New("boom"))

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"staybook_http_requests_total",
		`staybook_payment_verifications_total{outcome="mismatch"}`,
		`staybook_seeded_documents_total{kind="hotel",result="error"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if got := observability.NewLogger("prod", "debug").GetLevel().String(); got != "debug" {
		t.Fatalf("level = %s, want debug", got)
	}
	if got := observability.NewLogger("dev", "nonsense").GetLevel().String(); got != "info" {
		t.Fatalf("level = %s, want info", got)
	}
}
