package husk

import (
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/tevino/abool/v2"
)

const (
	DefaultEntry    = "main"
	DefaultUnit     = "'unit"
	DefaultSeed     = "true"
	DefaultMaxDepth = 1 << 16
)

type Config struct {
	// MaxSteps bounds the number of rewrite steps of one evaluator. Zero means
	// no bound.
	MaxSteps int
	// MaxDepth bounds the number of nested calls. Zero means no bound.
	MaxDepth int
	// Linear rejects clauses that use the same pattern variable twice.
	Linear bool

	Entry string
	Unit  string
	Seed  term.Term

	Tracer    Tracer
	Interrupt *abool.AtomicBool
}

func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		Entry:    DefaultEntry,
		Unit:     DefaultUnit,
		Seed:     term.Ident(DefaultSeed),
		Tracer:   Discard(),
	}
}

func (c Config) withDefaults() Config {
	if c.Entry == "" {
		c.Entry = DefaultEntry
	}
	if c.Unit == "" {
		c.Unit = DefaultUnit
	}
	if c.Seed == nil {
		c.Seed = term.Ident(DefaultSeed)
	}
	if c.Tracer == nil {
		c.Tracer = Discard()
	}
	return c
}
