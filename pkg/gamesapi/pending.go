package gamesapi

import (
	"context"
	"fmt"
	"sync"
)

// Pending is the outcome of a request started in the background. It is
// settled exactly once, either resolved (nil error) or rejected.
type Pending struct {
	done chan struct{}
	once sync.Once
	err  error
}

// Go runs fn in the background, its returned error settles the Pending. A
// panic in fn rejects the Pending instead of crashing the process.
func Go(fn func() error) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.settle(fmt.Errorf("panic: %v", r))
			}
		}()

		p.settle(fn())
	}()

	return p
}

func (p *Pending) settle(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the request is settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the rejection reason, only meaningful after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the request is settled or ctx is done. Giving up on the
// wait does not cancel the request, cancel the context given to the request
// for that.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
