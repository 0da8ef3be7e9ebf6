// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import "github.com/pkg/errors"

// ResetAll discards every cached signal, including forced ones. Gates are
// left intact.
//
func (r *Registry) ResetAll() {
	r.ClearCaches()
}

// Force sets the signal of the named wire to s, bypassing its gate. The wire
// does not need to have a gate. Wires depending on it will use s once their
// own cached signal has been discarded by ResetAll.
//
func (r *Registry) Force(name string, s Signal) {
	r.SetCached(name, s)
}

// Solve runs the two-phase protocol on r: it resolves target, resets all
// cached signals, forces override to the signal found for target and resolves
// target again.
//
func Solve(r *Registry, target, override string, opts ...EvalOption) (first, second Signal, err error) {
	e := NewEvaluator(r, opts...)
	if first, err = e.Resolve(target); err != nil {
		return 0, 0, errors.Wrap(err, "first pass")
	}
	r.ResetAll()
	r.Force(override, first)
	if second, err = e.Resolve(target); err != nil {
		return first, 0, errors.Wrap(err, "second pass")
	}
	return first, second, nil
}
