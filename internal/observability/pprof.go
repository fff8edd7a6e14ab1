package observability

import (
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

// startPprof binds the debug listener before returning so a busy port fails startup.
func startPprof(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if !cfg.PprofEnabled || cfg.PprofAddr == "" {
		logger.Debug("pprof off")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof listener failed", "error", err)
		}
	}()

	logger.Info("pprof on", "addr", ln.Addr().String())
	return srv, nil
}
