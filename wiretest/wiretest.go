// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wiretest provides utility functions for testing circuits.
//
package wiretest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/bitwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CheckSignals parses program and checks that each wire in want resolves to
// the expected signal.
//
func CheckSignals(t *testing.T, program string, want map[string]bitwire.Signal) {
	t.Helper()
	r, err := bitwire.ParseString(program)
	require.NoError(t, err)
	e := bitwire.NewEvaluator(r)
	for name, s := range want {
		got, err := e.Resolve(name)
		if assert.NoError(t, err, "wire %s", name) {
			assert.Equal(t, s, got, "wire %s", name)
		}
	}
}

// WireName returns the name of the i-th wire in the sequence a, b, ..., z,
// aa, ab, ..., zz, aaa, ...
//
func WireName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append(b, byte('a'+(i-1)%26))
	}
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
	return string(b)
}

// RandomProgram generates a random acyclic program of n wires, in random
// order, together with the expected signal of every wire. Expected values are
// computed directly while generating the program.
//
func RandomProgram(rng *rand.Rand, n int) (string, map[string]bitwire.Signal) {
	want := make(map[string]bitwire.Signal, n)
	lines := make([]string, n)
	vals := make([]uint16, n)

	// operand returns either a literal or one of the wires defined before i.
	operand := func(i int) (string, uint16) {
		if i == 0 || rng.Intn(4) == 0 {
			v := uint16(rng.Intn(1 << 16))
			return strconv.Itoa(int(v)), v
		}
		j := rng.Intn(i)
		return WireName(j), vals[j]
	}

	for i := 0; i < n; i++ {
		name := WireName(i)
		a, va := operand(i)
		var lhs string
		var v uint16
		switch rng.Intn(6) {
		case 0:
			lhs, v = a, va
		case 1:
			b, vb := operand(i)
			lhs, v = a+" AND "+b, va&vb
		case 2:
			b, vb := operand(i)
			lhs, v = a+" OR "+b, va|vb
		case 3:
			lhs, v = "NOT "+a, 0xffff-va
		case 4:
			sh := uint(rng.Intn(16))
			lhs, v = a+" LSHIFT "+strconv.Itoa(int(sh)), uint16(uint32(va)<<sh&0xffff)
		case 5:
			sh := uint(rng.Intn(16))
			lhs, v = a+" RSHIFT "+strconv.Itoa(int(sh)), va>>sh
		}
		vals[i] = v
		want[name] = bitwire.Signal(v)
		lines[i] = lhs + " -> " + name
	}
	rng.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
	return strings.Join(lines, "\n") + "\n", want
}
