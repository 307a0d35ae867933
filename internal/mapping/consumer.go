// Package mapping is the consumer boundary of the reconciliation
// engine: finalized table blocks are handed to registered consumers,
// each of which decides whether the block is of interest and maps it
// onto a typed record.
package mapping

// Consumer processes finalized table blocks. A consumer signals
// non-interest by returning nil without acting; a returned error is
// logged by the dispatcher and never aborts sibling consumers or
// subsequent blocks.
type Consumer interface {
	// Name identifies the consumer in logs.
	Name() string

	// Process inspects one finalized block. Implementations must be
	// safe for concurrent use.
	Process(block string) error
}

// Func adapts a plain function to the Consumer interface.
type Func struct {
	ConsumerName string
	Fn           func(block string) error
}

func (f Func) Name() string { return f.ConsumerName }

func (f Func) Process(block string) error { return f.Fn(block) }

var _ Consumer = Func{}
