package client

import (
	"time"
)

// Option configures an AWSFactory.
type Option func(*AWSFactory)

// WithEndpoint overrides the ECS endpoint, e.g. for localstack.
func WithEndpoint(endpoint string) Option {
	return func(f *AWSFactory) {
		f.endpoint = endpoint
	}
}

// WithRetryMaxAttempts sets the maximum number of attempts per API call.
// Zero keeps the SDK default.
func WithRetryMaxAttempts(attempts int) Option {
	return func(f *AWSFactory) {
		if attempts >= 0 {
			f.retryMaxAttempts = attempts
		}
	}
}

// WithClientTTL sets how long built clients are reused.
func WithClientTTL(ttl time.Duration) Option {
	return func(f *AWSFactory) {
		if ttl > 0 {
			f.clientTTL = ttl
		}
	}
}

// WithSessionName sets the session name used when assuming roles.
func WithSessionName(name string) Option {
	return func(f *AWSFactory) {
		if name != "" {
			f.sessionName = name
		}
	}
}
