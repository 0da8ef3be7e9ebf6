// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrCycle is returned when a wire depends on itself.
//
var ErrCycle = errors.New("cyclic wire reference")

// An EvalOption configures an Evaluator.
//
type EvalOption interface{ apply(e *Evaluator) }

type withLogf func(mess string, args ...interface{})

func (logf withLogf) apply(e *Evaluator) { e.logf = logf }

// WithLogf sets a logging function. Each gate evaluation is logged through it.
//
//	e := NewEvaluator(r, WithLogf(log.Printf))
//
func WithLogf(logf func(mess string, args ...interface{})) EvalOption {
	return withLogf(logf)
}

// Evaluator computes wire signals on demand. Computed signals are cached in
// the Registry, so that each gate is evaluated at most once until the next
// call to Registry.ResetAll.
//
type Evaluator struct {
	r     *Registry
	logf  func(mess string, args ...interface{})
	evals int
}

// NewEvaluator returns a new Evaluator for the wires in r.
//
func NewEvaluator(r *Registry, opts ...EvalOption) *Evaluator {
	e := &Evaluator{r: r}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
	return e
}

// Registry returns the Registry e works on.
//
func (e *Evaluator) Registry() *Registry { return e.r }

// Evals returns the number of gates evaluated so far.
//
func (e *Evaluator) Evals() int { return e.evals }

type frame struct {
	name string
	gate Gate
}

// Resolve returns the signal of the named wire, evaluating its dependencies
// as needed.
//
// The dependency graph is walked depth first with an explicit stack, so that
// long dependency chains do not grow the goroutine stack. Resolve fails with
// ErrUndefinedWire if a wire in the graph has no gate, ErrMalformed if a gate
// is invalid and ErrCycle if the graph reachable from name is cyclic. Nothing
// is evaluated in these cases.
//
func (e *Evaluator) Resolve(name string) (Signal, error) {
	if s, ok := e.r.Cached(name); ok {
		return s, nil
	}
	order, err := plan(e.r, name)
	if err != nil {
		return 0, err
	}
	var s Signal
	for i := range order {
		f := &order[i]
		in, ok := e.r.inputs(&f.gate)
		if !ok {
			panic("wire " + f.name + " evaluated before its inputs")
		}
		s = f.gate.Apply(in[0], in[1])
		e.r.SetCached(f.name, s)
		e.evals++
		if e.logf != nil {
			e.logf("%s = %d", f.gate.String(), s)
		}
	}
	return s, nil
}

// DFS visit states.
const (
	white = iota
	gray
	black
)

// plan returns the wires that must be evaluated in order to resolve name, in
// dependency order. Wires with a cached signal are not walked. The result is
// empty if name has a cached signal.
//
func plan(r *Registry, name string) ([]frame, error) {
	if _, ok := r.Cached(name); ok {
		return nil, nil
	}
	var stack, order []frame
	state := make(map[string]int)
	push := func(name string) error {
		g, err := r.Lookup(name)
		if err == nil {
			err = g.check()
		}
		if err != nil {
			if len(stack) > 0 {
				err = errors.Wrap(err, path(stack))
			}
			return err
		}
		stack = append(stack, frame{name, g})
		state[name] = gray
		return nil
	}
	if err := push(name); err != nil {
		return nil, err
	}

F:
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		for _, o := range top.gate.Inputs() {
			ref, ok := o.(Ref)
			if !ok {
				continue
			}
			n := string(ref)
			if _, ok := r.Cached(n); ok || state[n] == black {
				continue
			}
			if state[n] == gray {
				return nil, errors.Wrap(ErrCycle, path(append(stack, frame{name: n})))
			}
			if err := push(n); err != nil {
				return nil, err
			}
			continue F
		}
		state[top.name] = black
		order = append(order, *top)
		stack = stack[:len(stack)-1]
	}
	return order, nil
}

// path renders a dependency path like "a <- b <- c", the last wire being the
// one depending on all others.
//
func path(stack []frame) string {
	var b strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteString(" <- ")
		}
		b.WriteString(stack[i].name)
	}
	return b.String()
}
