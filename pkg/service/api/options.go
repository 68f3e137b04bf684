package api

import (
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a ViewServer during NewViewServer.
type Option func(*ViewServer)

// WithPrometheusMiddleware shares one request metrics middleware between servers.
// Tests use it to avoid registering the gin collectors more than once.
func WithPrometheusMiddleware(p *ginprometheus.Prometheus) Option {
	return func(s *ViewServer) {
		s.sharedPrometheus = p
	}
}

// WithTracer replaces the default "ecsview" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *ViewServer) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}
