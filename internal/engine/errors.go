package engine

import "fmt"

// consumerPanicError reports a consumer that panicked during Process.
type consumerPanicError struct {
	consumer string
	value    any
}

func (e *consumerPanicError) Error() string {
	return fmt.Sprintf("consumer %s panicked: %v", e.consumer, e.value)
}
