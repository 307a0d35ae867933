package mapping

import (
	"time"

	"github.com/avast/retry-go/v4"
)

// WithRetry wraps a consumer so transient Process failures are
// retried with a fixed delay before the error surfaces to the
// dispatcher's log.
func WithRetry(c Consumer, attempts uint, delay time.Duration) Consumer {
	return &retryConsumer{inner: c, attempts: attempts, delay: delay}
}

type retryConsumer struct {
	inner    Consumer
	attempts uint
	delay    time.Duration
}

func (r *retryConsumer) Name() string { return r.inner.Name() }

func (r *retryConsumer) Process(block string) error {
	return retry.Do(
		func() error { return r.inner.Process(block) },
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
	)
}

var _ Consumer = (*retryConsumer)(nil)
