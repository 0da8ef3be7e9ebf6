/*
Package bitwire provides a simulator for circuits of 16 bits wires connected
by bitwise logic gates.

A circuit is described by a program, one instruction per line:

	123 -> x
	456 -> y
	x AND y -> d
	x OR y -> e
	x LSHIFT 2 -> f
	y RSHIFT 2 -> g
	NOT x -> h

Each instruction defines the signal of the wire on the right hand side of the
arrow. Operands are either signal values or wire names.

Parse builds a Registry from a program. An Evaluator then computes the signal
of any wire on demand, evaluating only the gates it depends on and caching
results in the Registry. Cached signals can be discarded with
Registry.ResetAll, and a wire's signal can be overridden with Registry.Force
before resolving wires again:

	r, err := bitwire.ParseString(program)
	if err != nil {
		// handle error
	}
	e := bitwire.NewEvaluator(r)
	a, err := e.Resolve("a")
	// ...
	r.ResetAll()
	r.Force("b", a)
	a, err = e.Resolve("a")

*/
package bitwire
