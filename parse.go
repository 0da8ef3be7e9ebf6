// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitwire

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/bitwire/internal/hdl"
	"github.com/pkg/errors"
)

// Parse errors. Use errors.Is to check for these.
//
var (
	ErrMalformed       = hdl.ErrMalformed
	ErrUnknownOperator = hdl.ErrUnknownOperator
)

var ops = map[string]Op{
	hdl.OpAnd:    And,
	hdl.OpOr:     Or,
	hdl.OpNot:    Not,
	hdl.OpLShift: LShift,
	hdl.OpRShift: RShift,
}

// ParseGate parses a single instruction like:
//
//	123 -> x
//	NOT x -> h
//	x AND y -> d
//	y RSHIFT 2 -> g
//
// Referenced wires are not checked for existence.
//
func ParseGate(line string) (Gate, error) {
	ins, err := hdl.Parse(line)
	if err != nil {
		return Gate{}, err
	}
	g := Gate{Out: ins.Out.Name}
	if g.A, err = operand(line, ins.Args[0]); err != nil {
		return Gate{}, err
	}
	if ins.Op == "" {
		g.Op = Assign
		return g, nil
	}
	g.Op = ops[ins.Op]
	switch g.Op {
	case And, Or:
		g.B, err = operand(line, ins.Args[1])
	case LShift, RShift:
		g.Shift, err = shift(line, ins.Args[1])
	}
	if err != nil {
		return Gate{}, err
	}
	return g, nil
}

func operand(line string, a interface{}) (Operand, error) {
	switch a := a.(type) {
	case hdl.Name:
		return Ref(a.Name), nil
	case hdl.Number:
		v, err := strconv.ParseUint(a.Text, 10, 16)
		if err != nil {
			return nil, hdl.Error(ErrMalformed, line, a.Pos, "signal value out of range: "+a.Text)
		}
		return Literal(v), nil
	}
	panic("unexpected operand type")
}

func shift(line string, a interface{}) (uint, error) {
	n, ok := a.(hdl.Number)
	if !ok {
		return 0, hdl.Error(ErrMalformed, line, a.(hdl.Name).Pos, "shift amount must be an integer")
	}
	v, err := strconv.ParseUint(n.Text, 10, 8)
	if err != nil || v > MaxShift {
		return 0, hdl.Error(ErrMalformed, line, n.Pos, "shift amount out of range: "+n.Text)
	}
	return uint(v), nil
}

// Parse reads a whole program from r, one instruction per line, and returns a
// new Registry holding its gates. Blank lines are ignored.
//
// Parsing stops at the first error; no registry is returned in that case.
//
func Parse(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		g, err := ParseGate(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		reg.Register(g)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read program")
	}
	return reg, nil
}

// ParseString is like Parse for a program held in a string.
//
func ParseString(program string) (*Registry, error) {
	return Parse(strings.NewReader(program))
}
