// Package xpool is a typed wrapper around sync.Pool.
package xpool

import (
	"sync"
)

type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a pool that calls fn when it has nothing to hand out.
func New[T any](fn func() T) Pool[T] {
	return Pool[T]{
		pool: sync.Pool{New: func() any { return fn() }},
	}
}

// NewWithReset is New with reset applied to every value handed back by Put,
// so the next Get never sees state left by the previous user.
func NewWithReset[T any](fn func() T, reset func(T)) Pool[T] {
	p := New(fn)
	p.reset = reset
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}
