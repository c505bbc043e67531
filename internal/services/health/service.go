package health

import (
	"context"
	"sort"
	"time"
)

const checkTimeout = 2 * time.Second

// Check pings one dependency.
type Check func(ctx context.Context) error

// Service runs the registered dependency checks for /healthz.
type Service struct {
	names  []string
	checks map[string]Check
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: map[string]Check{}}
}

// Add registers a named check. A nil check is ignored.
func (s *Service) Add(name string, check Check) *Service {
	if check == nil {
		return s
	}
	if _, exists := s.checks[name]; !exists {
		s.names = append(s.names, name)
		sort.Strings(s.names)
	}
	s.checks[name] = check
	return s
}

// Status runs every check and reports "ok" or the error text per dependency.
func (s *Service) Status(ctx context.Context) (map[string]string, bool) {
	out := make(map[string]string, len(s.names))
	healthy := true
	for _, name := range s.names {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.checks[name](cctx)
		cancel()
		if err != nil {
			out[name] = err.Error()
			healthy = false
			continue
		}
		out[name] = "ok"
	}
	return out, healthy
}
