package environ

import (
	"errors"
	"fmt"
)

var (
	ErrDefined    = errors.New("already defined")
	ErrNotDefined = errors.New("not defined")
	ErrFrozen     = errors.New("read only")
)

// Environment is a name-keyed partition. Names are reported in the order they
// were first defined.
type Environment[T any] interface {
	Define(string, T) error
	Assign(string, T) error
	Resolve(string) (T, error)
	Names() []string
}

type Env[T any] struct {
	names  []string
	values map[string]T
}

func Empty[T any]() Environment[T] {
	return &Env[T]{
		values: make(map[string]T),
	}
}

func (e *Env[T]) Define(ident string, value T) error {
	if _, ok := e.values[ident]; ok {
		return fmt.Errorf("%s: %w", ident, ErrDefined)
	}
	e.names = append(e.names, ident)
	e.values[ident] = value
	return nil
}

func (e *Env[T]) Assign(ident string, value T) error {
	if _, ok := e.values[ident]; !ok {
		return fmt.Errorf("%s: %w", ident, ErrNotDefined)
	}
	e.values[ident] = value
	return nil
}

func (e *Env[T]) Resolve(ident string) (T, error) {
	v, ok := e.values[ident]
	if !ok {
		return v, fmt.Errorf("%s: %w", ident, ErrNotDefined)
	}
	return v, nil
}

func (e *Env[T]) Names() []string {
	list := make([]string, len(e.names))
	copy(list, e.names)
	return list
}

type frozenEnv[T any] struct {
	Environment[T]
}

// Freeze returns a view of env that rejects every write.
func Freeze[T any](env Environment[T]) Environment[T] {
	if _, ok := env.(*frozenEnv[T]); ok {
		return env
	}
	return &frozenEnv[T]{
		Environment: env,
	}
}

func (e *frozenEnv[T]) Define(ident string, _ T) error {
	return fmt.Errorf("%s: %w", ident, ErrFrozen)
}

func (e *frozenEnv[T]) Assign(ident string, _ T) error {
	return fmt.Errorf("%s: %w", ident, ErrFrozen)
}
