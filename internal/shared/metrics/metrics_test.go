package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndExposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := New()
	reg.IncRegistration(ResultOK)
	reg.IncLogin(ResultRejected)
	reg.IncResumeOp("create", ResultOK)
	reg.IncResumeOp("create", ResultOK)
	reg.ObserveRequest(http.MethodGet, "/api/resumes", 200, 12*time.Millisecond)

	if got := testutil.ToFloat64(reg.resumeOperation.WithLabelValues("create", ResultOK)); got != 2 {
		t.Fatalf("expected 2 create ops, got %v", got)
	}

	router := gin.New()
	router.GET("/metrics", reg.Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`auth_registrations_total{result="ok"} 1`,
		`auth_logins_total{result="rejected"} 1`,
		`http_requests_total{method="GET",route="/api/resumes",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in exposition", want)
		}
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var reg *Registry
	reg.IncLogin(ResultOK)
	reg.IncRegistration(ResultError)
	reg.IncResumeOp("get", ResultOK)
	reg.ObserveRequest(http.MethodGet, "", 200, time.Millisecond)
}
