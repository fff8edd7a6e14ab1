package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

// Stack is the telemetry a process runs alongside its work: Uptrace traces and
// logs, Pyroscope profiles and the pprof debug listener. Each part is optional.
type Stack struct {
	logger   *logging.Logger
	tracing  func(context.Context) error
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start brings up whatever cfg enables. On error, parts already started are shut down.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	var err error
	if s.tracing, err = startTracing(cfg, s.logger); err != nil {
		return nil, fmt.Errorf("start uptrace: %w", err)
	}
	if s.profiler, err = startProfiler(cfg, s.logger); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	if s.pprof, err = startPprof(cfg, s.logger); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, fmt.Errorf("start pprof: %w", err)
	}
	return s, nil
}

// Shutdown stops the parts in reverse start order and flushes pending spans and logs.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.pprof != nil {
		if err := s.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof: %w", err))
		}
		s.pprof = nil
	}
	if s.profiler != nil {
		if err := s.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		s.profiler = nil
	}
	if s.tracing != nil {
		if err := s.tracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
		s.tracing = nil
	}
	return errors.Join(errs...)
}
