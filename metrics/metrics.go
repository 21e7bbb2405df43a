// Package metrics exposes TecnicoFS operation counters via the Prometheus
// client, the same library rclone uses for its own transfer/stats
// instrumentation. It is entirely optional: a *Recorder with a nil exporter
// simply counts in memory, and nothing in the fs or server packages depends
// on it being wired up.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts completed operations by op and result.
type Recorder struct {
	ops *prometheus.CounterVec
	srv *http.Server
}

// New builds a Recorder and registers its collector against reg. Pass
// prometheus.NewRegistry() for an isolated registry in tests, or
// prometheus.DefaultRegisterer to publish on the global one.
func New(reg prometheus.Registerer) *Recorder {
	ops := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "tecnicofs",
		Name:      "operations_total",
		Help:      "Completed TecnicoFS operations by op and result.",
	}, []string{"op", "result"})
	return &Recorder{ops: ops}
}

// Observe records one completed operation. result is the wire sentinel
// (fs.Success, fs.Fail, fs.Abort) rendered as its human name.
func (r *Recorder) Observe(op byte, resultName string) {
	if r == nil {
		return
	}
	r.ops.WithLabelValues(string(op), resultName).Inc()
}

// Serve starts a /metrics HTTP listener on addr, entirely separate from the
// UNIX datagram transport the filesystem itself speaks. It is off by
// default; callers opt in explicitly (spec.md's transport Non-goals apply
// only to the filesystem wire protocol, not to this side-channel).
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	r.srv = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- r.srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return r.srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
