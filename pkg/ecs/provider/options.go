package provider

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a ClusterProvider.
type Option func(*ClusterProvider)

// WithConcurrency sets how many describe batches may be in flight at once.
// Values below one are treated as one.
func WithConcurrency(n int) Option {
	return func(p *ClusterProvider) {
		p.concurrency = max(n, 1)
	}
}

// WithTracer sets the tracer for provider spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *ClusterProvider) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

func defaultTracer() trace.Tracer {
	return otel.Tracer("ecsview")
}
