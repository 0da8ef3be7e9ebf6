package bitwire_test

import (
	"testing"
	"testing/quick"

	bw "github.com/db47h/bitwire"
)

func TestGate_Apply(t *testing.T) {
	td := []struct {
		op    bw.Op
		shift uint
		f     func(a, b uint16) uint16
	}{
		{bw.Assign, 0, func(a, b uint16) uint16 { return a }},
		{bw.And, 0, func(a, b uint16) uint16 { return a & b }},
		{bw.Or, 0, func(a, b uint16) uint16 { return a | b }},
		{bw.Not, 0, func(a, b uint16) uint16 { return uint16(65535 - int(a)) }},
		{bw.LShift, 0, func(a, b uint16) uint16 { return a }},
		{bw.LShift, 3, func(a, b uint16) uint16 { return uint16(int(a) * 8 % 65536) }},
		{bw.LShift, 15, func(a, b uint16) uint16 { return uint16(int(a) << 15 % 65536) }},
		{bw.RShift, 2, func(a, b uint16) uint16 { return uint16(int(a) / 4) }},
		{bw.RShift, 15, func(a, b uint16) uint16 { return uint16(int(a) / 32768) }},
	}
	for _, d := range td {
		g := bw.Gate{Out: "w", Op: d.op, Shift: d.shift}
		t.Run(g.Op.String(), func(t *testing.T) {
			f := func(a, b uint16) bool {
				return uint16(g.Apply(bw.Signal(a), bw.Signal(b))) == d.f(a, b)
			}
			if err := quick.Check(f, nil); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestGate_String(t *testing.T) {
	td := []struct {
		g   bw.Gate
		out string
	}{
		{bw.Gate{Out: "x", Op: bw.Assign, A: bw.Literal(123)}, "123 -> x"},
		{bw.Gate{Out: "a", Op: bw.Assign, A: bw.Ref("lx")}, "lx -> a"},
		{bw.Gate{Out: "h", Op: bw.Not, A: bw.Ref("x")}, "NOT x -> h"},
		{bw.Gate{Out: "d", Op: bw.And, A: bw.Ref("x"), B: bw.Ref("y")}, "x AND y -> d"},
		{bw.Gate{Out: "e", Op: bw.Or, A: bw.Literal(1), B: bw.Ref("y")}, "1 OR y -> e"},
		{bw.Gate{Out: "f", Op: bw.LShift, A: bw.Ref("x"), Shift: 2}, "x LSHIFT 2 -> f"},
		{bw.Gate{Out: "g", Op: bw.RShift, A: bw.Ref("y"), Shift: 15}, "y RSHIFT 15 -> g"},
	}
	for _, d := range td {
		if s := d.g.String(); s != d.out {
			t.Errorf("expected %q, got %q", d.out, s)
		}
		// round trip
		g, err := bw.ParseGate(d.out)
		if err != nil {
			t.Errorf("%s: %v", d.out, err)
			continue
		}
		if g != d.g {
			t.Errorf("%s: expected %#v, got %#v", d.out, d.g, g)
		}
	}
}

func TestGate_Inputs(t *testing.T) {
	g := bw.Gate{Out: "d", Op: bw.And, A: bw.Ref("x"), B: bw.Literal(3)}
	if in := g.Inputs(); len(in) != 2 || in[0] != bw.Ref("x") || in[1] != bw.Literal(3) {
		t.Errorf("unexpected inputs %v", in)
	}
	g = bw.Gate{Out: "f", Op: bw.LShift, A: bw.Ref("x"), Shift: 2}
	if in := g.Inputs(); len(in) != 1 || in[0] != bw.Ref("x") {
		t.Errorf("unexpected inputs %v", in)
	}
}

func TestOp_String(t *testing.T) {
	if s := bw.Op(42).String(); s != "Op(42)" {
		t.Errorf("got %q", s)
	}
}
