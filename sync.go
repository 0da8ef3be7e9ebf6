// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// SyncEvaluator is an Evaluator safe for concurrent use.
//
// The registry is only locked while reading gates and cached signals or
// storing a result, so that independent parts of a circuit are evaluated in
// parallel. Concurrent evaluations of the same wire are collapsed into a single
// one.
//
// Calls to ResetAll and Force start a new generation of cached signals. A
// Resolve started after them never returns a signal computed from the
// previous generation, and results computed from a discarded generation are
// not stored.
//
type SyncEvaluator struct {
	mu    sync.Mutex
	r     *Registry
	gen   uint64 // bumped by ResetAll and Force
	evals int
	logf  func(mess string, args ...interface{})
	sf    singleflight.Group
}

// errStale is returned by compute when the generation it was started for has
// been discarded.
var errStale = errors.New("stale generation")

// NewSyncEvaluator returns a new SyncEvaluator for the wires in r. r must not
// be used directly while the SyncEvaluator is in use.
//
func NewSyncEvaluator(r *Registry, opts ...EvalOption) *SyncEvaluator {
	e := NewEvaluator(r, opts...)
	return &SyncEvaluator{r: r, logf: e.logf}
}

// Resolve is like Evaluator.Resolve.
//
func (s *SyncEvaluator) Resolve(name string) (Signal, error) {
	for {
		s.mu.Lock()
		if v, ok := s.r.Cached(name); ok {
			s.mu.Unlock()
			return v, nil
		}
		gen := s.gen
		order, err := plan(s.r, name)
		s.mu.Unlock()
		if err != nil {
			return 0, err
		}

		var v Signal
		for i := range order {
			if v, err = s.compute(&order[i], gen); err != nil {
				break
			}
		}
		if err != errStale {
			return v, err
		}
	}
}

// compute evaluates a single gate whose inputs are already resolved. Only one
// goroutine evaluates a given wire for a given generation.
//
func (s *SyncEvaluator) compute(f *frame, gen uint64) (Signal, error) {
	key := f.name + "@" + strconv.FormatUint(gen, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return nil, errStale
		}
		if v, ok := s.r.Cached(f.name); ok {
			s.mu.Unlock()
			return v, nil
		}
		in, ok := s.r.inputs(&f.gate)
		s.mu.Unlock()
		if !ok {
			// an input was evaluated for another generation
			return nil, errStale
		}

		v := f.gate.Apply(in[0], in[1])
		if s.logf != nil {
			s.logf("%s = %d", f.gate.String(), v)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return nil, errStale
		}
		s.r.SetCached(f.name, v)
		s.evals++
		return v, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(Signal), nil
}

// ResetAll is like Registry.ResetAll.
//
func (s *SyncEvaluator) ResetAll() {
	s.mu.Lock()
	s.r.ResetAll()
	s.gen++
	s.mu.Unlock()
}

// Force is like Registry.Force.
//
func (s *SyncEvaluator) Force(name string, sig Signal) {
	s.mu.Lock()
	s.r.Force(name, sig)
	s.gen++
	s.mu.Unlock()
}

// Evals returns the number of gates evaluated so far.
//
func (s *SyncEvaluator) Evals() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evals
}

// ResolveAll resolves the named wires using the given number of worker
// goroutines. If workers is less or equal to 0, the value of GOMAXPROCS will
// be used.
//
// ResolveAll stops at the first error or when ctx is cancelled.
//
func (s *SyncEvaluator) ResolveAll(ctx context.Context, workers int, names ...string) (map[string]Signal, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	res := make(map[string]Signal, len(names))
	for _, name := range names {
		if gctx.Err() != nil {
			break
		}
		name := name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := s.Resolve(name)
			if err != nil {
				return err
			}
			mu.Lock()
			res[name] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// cancelled before any worker could notice
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
