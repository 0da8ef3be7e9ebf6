// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUndefinedWire is returned when a wire has no gate and no forced signal.
//
var ErrUndefinedWire = errors.New("undefined wire")

// a wire slot. A wire may have a cached signal without a gate if it has been
// forced.
type wire struct {
	gate    Gate
	defined bool
	signal  Signal
	done    bool
}

// Registry maps wire names to their gate and cached signal.
//
// A Registry is not safe for concurrent use. See SyncEvaluator.
//
type Registry struct {
	wires map[string]*wire
}

// NewRegistry returns an empty registry.
//
func NewRegistry() *Registry {
	return &Registry{wires: make(map[string]*wire)}
}

func (r *Registry) slot(name string) *wire {
	w := r.wires[name]
	if w == nil {
		w = new(wire)
		r.wires[name] = w
	}
	return w
}

// Register binds g to the wire g.Out. Any previous gate for that wire is
// replaced. The wire's cached signal is left untouched.
//
func (r *Registry) Register(g Gate) {
	w := r.slot(g.Out)
	w.gate = g
	w.defined = true
}

// Lookup returns the gate driving the named wire.
//
func (r *Registry) Lookup(name string) (Gate, error) {
	w := r.wires[name]
	if w == nil || !w.defined {
		return Gate{}, errors.Wrap(ErrUndefinedWire, name)
	}
	return w.gate, nil
}

// Cached returns the cached signal for the named wire. ok is false if the
// signal has not been computed yet.
//
func (r *Registry) Cached(name string) (s Signal, ok bool) {
	if w := r.wires[name]; w != nil && w.done {
		return w.signal, true
	}
	return 0, false
}

// SetCached sets the cached signal of the named wire and marks it computed.
//
func (r *Registry) SetCached(name string, s Signal) {
	w := r.slot(name)
	w.signal = s
	w.done = true
}

// inputs returns the input signals of g. ok is false if a referenced wire
// has no cached signal.
//
func (r *Registry) inputs(g *Gate) (in [2]Signal, ok bool) {
	for i, o := range g.Inputs() {
		switch o := o.(type) {
		case Literal:
			in[i] = Signal(o)
		case Ref:
			if in[i], ok = r.Cached(string(o)); !ok {
				return in, false
			}
		default:
			panic("invalid operand in gate " + g.Out)
		}
	}
	return in, true
}

// ClearCaches marks every wire as not computed. Gates are kept.
//
func (r *Registry) ClearCaches() {
	for _, w := range r.wires {
		w.signal = 0
		w.done = false
	}
}

// Len returns the number of wires with a gate.
//
func (r *Registry) Len() int {
	n := 0
	for _, w := range r.wires {
		if w.defined {
			n++
		}
	}
	return n
}

// Wires returns the sorted names of all wires with a gate.
//
func (r *Registry) Wires() []string {
	names := make([]string, 0, len(r.wires))
	for n, w := range r.wires {
		if w.defined {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
