package mapping

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Setter assigns one parsed cell value to a field of the record.
type Setter[T any] func(rec *T, value string) error

// Schema is a static, compile-time description of how blocks of one
// table type map onto records of type T: match rules plus a table of
// column-key to field setters. No runtime type inspection is involved.
type Schema[T any] struct {
	// Name identifies the derived consumer in logs.
	Name string

	// Prefix and Suffix gate which blocks this schema handles. A block
	// must satisfy both to be mapped.
	Prefix string
	Suffix string

	// Fields maps a table column key to the setter for that field.
	Fields map[string]Setter[T]
}

// Matches reports whether a block satisfies the schema's match rules.
func (s Schema[T]) Matches(block string) bool {
	return strings.HasPrefix(block, s.Prefix) && strings.HasSuffix(block, s.Suffix)
}

// String builds a setter for a plain string field.
func String[T any](assign func(*T, string)) Setter[T] {
	return func(rec *T, value string) error {
		assign(rec, value)
		return nil
	}
}

// Int builds a setter that parses a decimal integer.
func Int[T any](assign func(*T, int)) Setter[T] {
	return func(rec *T, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse int %q: %w", value, err)
		}
		assign(rec, n)
		return nil
	}
}

// Int64 builds a setter that parses a decimal int64.
func Int64[T any](assign func(*T, int64)) Setter[T] {
	return func(rec *T, value string) error {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse int64 %q: %w", value, err)
		}
		assign(rec, n)
		return nil
	}
}

// Year builds a setter that parses a four-digit year.
func Year[T any](assign func(*T, time.Time)) Setter[T] {
	return func(rec *T, value string) error {
		t, err := time.Parse("2006", value)
		if err != nil {
			return fmt.Errorf("parse year %q: %w", value, err)
		}
		assign(rec, t)
		return nil
	}
}

// NewConsumer derives a Consumer from a schema. Blocks failing the
// match rules are ignored; matching blocks are parsed into key/value
// pairs, mapped through the setter table, and delivered to sink. A
// key with no mapping or a value that fails to parse skips that field
// only.
func NewConsumer[T any](schema Schema[T], sink func(T) error, logger *slog.Logger) Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &schemaConsumer[T]{
		schema: schema,
		sink:   sink,
		logger: logger.With("consumer", schema.Name),
	}
}

type schemaConsumer[T any] struct {
	schema Schema[T]
	sink   func(T) error
	logger *slog.Logger
}

func (c *schemaConsumer[T]) Name() string { return c.schema.Name }

func (c *schemaConsumer[T]) Process(block string) error {
	if !c.schema.Matches(block) {
		return nil
	}

	var rec T
	for _, pair := range Pairs(block) {
		set, ok := c.schema.Fields[pair.Key]
		if !ok {
			c.logger.Debug("no field mapping for key", "key", pair.Key)
			continue
		}
		if err := set(&rec, pair.Value); err != nil {
			c.logger.Warn("field mapping failed", "key", pair.Key, "error", err)
			continue
		}
	}
	return c.sink(rec)
}
