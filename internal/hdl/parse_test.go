package hdl_test

import (
	"testing"

	"github.com/db47h/bitwire/internal/hdl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	td := []struct {
		in  string
		out *hdl.Instruction
	}{
		{"123 -> x", &hdl.Instruction{
			Args: []interface{}{hdl.Number{"123", 0}},
			Out:  hdl.Name{"x", 7}}},
		{"lx -> a", &hdl.Instruction{
			Args: []interface{}{hdl.Name{"lx", 0}},
			Out:  hdl.Name{"a", 6}}},
		{"NOT x -> h", &hdl.Instruction{
			Op: hdl.OpNot, OpPos: 0,
			Args: []interface{}{hdl.Name{"x", 4}},
			Out:  hdl.Name{"h", 9}}},
		{"x AND y -> d", &hdl.Instruction{
			Op: hdl.OpAnd, OpPos: 2,
			Args: []interface{}{hdl.Name{"x", 0}, hdl.Name{"y", 6}},
			Out:  hdl.Name{"d", 11}}},
		{"1 OR y->e", &hdl.Instruction{
			Op: hdl.OpOr, OpPos: 2,
			Args: []interface{}{hdl.Number{"1", 0}, hdl.Name{"y", 5}},
			Out:  hdl.Name{"e", 8}}},
		{"  y   RSHIFT 2 -> g  ", &hdl.Instruction{
			Op: hdl.OpRShift, OpPos: 6,
			Args: []interface{}{hdl.Name{"y", 2}, hdl.Number{"2", 13}},
			Out:  hdl.Name{"g", 18}}},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			ins, err := hdl.Parse(d.in)
			require.NoError(t, err)
			assert.Equal(t, d.out, ins)
		})
	}
}

func TestIsKeyword(t *testing.T) {
	for _, k := range []string{"NOT", "AND", "OR", "LSHIFT", "RSHIFT"} {
		assert.True(t, hdl.IsKeyword(k), k)
	}
	for _, k := range []string{"not", "and", "x", "NAND", ""} {
		assert.False(t, hdl.IsKeyword(k), k)
	}
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		in  string
		err error
		msg string
	}{
		{"", hdl.ErrMalformed, `in "" at pos 1: missing "->": malformed instruction`},
		{"x AND y", hdl.ErrMalformed, `in "x AND y" at pos 8: missing "->": malformed instruction`},
		{"-> x", hdl.ErrMalformed, `in "-> x" at pos 1: missing operand: malformed instruction`},
		{"x ->", hdl.ErrMalformed, `in "x ->" at pos 5: expected wire name after "->": malformed instruction`},
		{"x -> 2", hdl.ErrMalformed, `in "x -> 2" at pos 6: expected wire name after "->": malformed instruction`},
		{"x -> y z", hdl.ErrMalformed, `in "x -> y z" at pos 8: unexpected "z": malformed instruction`},
		{"x y -> z", hdl.ErrMalformed, `in "x y -> z" at pos 1: expected NOT: malformed instruction`},
		{"x 1 y -> z", hdl.ErrMalformed, `in "x 1 y -> z" at pos 3: expected operator: malformed instruction`},
		{"a AND b AND c -> d", hdl.ErrMalformed, `in "a AND b AND c -> d" at pos 9: too many operands: malformed instruction`},
		{"a + b -> c", hdl.ErrMalformed, `in "a + b -> c" at pos 3: unexpected "+": malformed instruction`},
		{"a - b -> c", hdl.ErrMalformed, `in "a - b -> c" at pos 3: unexpected "-": malformed instruction`},
		{"x XOR y -> z", hdl.ErrUnknownOperator, `in "x XOR y -> z" at pos 3: XOR: unknown operator`},
		{"NOT -> x", hdl.ErrMalformed, `in "NOT -> x" at pos 1: keyword NOT used as wire name: malformed instruction`},
		{"NOT AND -> x", hdl.ErrMalformed, `in "NOT AND -> x" at pos 5: keyword AND used as wire name: malformed instruction`},
		{"AND AND b -> c", hdl.ErrMalformed, `in "AND AND b -> c" at pos 1: keyword AND used as wire name: malformed instruction`},
		{"a OR LSHIFT -> c", hdl.ErrMalformed, `in "a OR LSHIFT -> c" at pos 6: keyword LSHIFT used as wire name: malformed instruction`},
		{"a -> RSHIFT", hdl.ErrMalformed, `in "a -> RSHIFT" at pos 6: keyword RSHIFT used as wire name: malformed instruction`},
		{"a AND b -> OR", hdl.ErrMalformed, `in "a AND b -> OR" at pos 12: keyword OR used as wire name: malformed instruction`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			_, err := hdl.Parse(d.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, d.err), "expected %v, got %v", d.err, err)
			assert.EqualError(t, err, d.msg)
		})
	}
}
