// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Signal is the value carried by a wire.
//
type Signal uint16

// An Operand is a gate input. It is either a Literal or a Ref.
//
type Operand interface {
	operand()
	String() string
}

// Literal is a signal value known at parse time.
//
type Literal Signal

// Ref is a reference to another wire's signal.
//
type Ref string

func (Literal) operand() {}
func (Ref) operand()     {}

func (l Literal) String() string { return strconv.Itoa(int(l)) }
func (r Ref) String() string     { return string(r) }

// Op is a gate operation.
//
type Op int

// Gate operations.
//
const (
	Assign Op = iota
	And
	Or
	Not
	LShift
	RShift
)

var opNames = [...]string{
	Assign: "",
	And:    "AND",
	Or:     "OR",
	Not:    "NOT",
	LShift: "LSHIFT",
	RShift: "RSHIFT",
}

// String returns the keyword for op as it appears in a program. Assign is the
// empty string.
//
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opNames[op]
}

// MaxShift is the largest shift amount accepted by shift gates.
//
const MaxShift = 15

// A Gate defines the signal of the wire Out.
//
// A is the input of every operation. B is only used by And and Or, Shift only
// by LShift and RShift.
//
type Gate struct {
	Out   string
	Op    Op
	A     Operand
	B     Operand
	Shift uint
}

// Inputs returns the operands consumed by g's operation.
//
func (g *Gate) Inputs() []Operand {
	switch g.Op {
	case And, Or:
		return []Operand{g.A, g.B}
	}
	return []Operand{g.A}
}

// check returns an error wrapping ErrMalformed if g's operands do not match
// its operation.
//
func (g *Gate) check() error {
	if g.Op < Assign || g.Op > RShift {
		return errors.Wrapf(ErrMalformed, "%s: invalid operation %s", g.Out, g.Op)
	}
	for _, o := range g.Inputs() {
		if o == nil {
			return errors.Wrapf(ErrMalformed, "%s: missing operand", g.Out)
		}
	}
	if (g.Op == LShift || g.Op == RShift) && g.Shift > MaxShift {
		return errors.Wrapf(ErrMalformed, "%s: shift amount out of range: %d", g.Out, g.Shift)
	}
	return nil
}

// Apply computes the gate output for input signals a and b. b is ignored by
// single input operations.
//
func (g *Gate) Apply(a, b Signal) Signal {
	switch g.Op {
	case Assign:
		return a
	case And:
		return a & b
	case Or:
		return a | b
	case Not:
		return ^a
	case LShift:
		return a << g.Shift
	case RShift:
		return a >> g.Shift
	}
	panic("invalid gate operation " + g.Op.String())
}

// String returns g in program syntax.
//
func (g *Gate) String() string {
	var b strings.Builder
	switch g.Op {
	case Assign:
		b.WriteString(g.A.String())
	case Not:
		b.WriteString("NOT ")
		b.WriteString(g.A.String())
	case And, Or:
		b.WriteString(g.A.String())
		b.WriteByte(' ')
		b.WriteString(g.Op.String())
		b.WriteByte(' ')
		b.WriteString(g.B.String())
	case LShift, RShift:
		b.WriteString(g.A.String())
		b.WriteByte(' ')
		b.WriteString(g.Op.String())
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(g.Shift), 10))
	}
	b.WriteString(" -> ")
	b.WriteString(g.Out)
	return b.String()
}
