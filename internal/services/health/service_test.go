package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusWithoutChecksIsHealthy(t *testing.T) {
	status, ok := NewService().Status(context.Background())
	if !ok {
		t.Fatalf("expected healthy")
	}
	if len(status) != 0 {
		t.Fatalf("expected empty status, got %v", status)
	}
}

func TestStatusReportsFailingCheck(t *testing.T) {
	svc := NewService().
		Add("database", func(context.Context) error { return nil }).
		Add("redis", func(context.Context) error { return errors.New("dial tcp: refused") }).
		Add("ignored", nil)

	status, ok := svc.Status(context.Background())
	if ok {
		t.Fatalf("expected unhealthy")
	}
	if status["database"] != "ok" {
		t.Fatalf("database: %q", status["database"])
	}
	if status["redis"] != "dial tcp: refused" {
		t.Fatalf("redis: %q", status["redis"])
	}
	if _, exists := status["ignored"]; exists {
		t.Fatalf("nil check should not be registered")
	}
}
