// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and syntax parser for wire instructions.
//
package hdl

import (
	"strings"
	"unicode"

	"github.com/db47h/bitwire/internal/lex"
	"github.com/pkg/errors"
)

// Tokens
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	Int
	Arrow
)

// Parse errors.
var (
	ErrMalformed       = errors.New("malformed instruction")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Operator keywords.
const (
	OpNot    = "NOT"
	OpAnd    = "AND"
	OpOr     = "OR"
	OpLShift = "LSHIFT"
	OpRShift = "RSHIFT"
)

// Lexer returns a new lexer for wire instructions.
//
func Lexer(input string) lex.Interface {
	return lex.New(strings.NewReader(input), lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEnd
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case isDigit(r):
		// range checks are left to the caller
		l.AcceptWhile(isDigit)
		l.Emit(Int, l.Text())
	case isNameStart(r):
		l.AcceptWhile(isNamePart)
		l.Emit(Ident, l.Text())
	case r == '-':
		if l.Next() == '>' {
			l.Emit(Arrow, l.Text())
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Raw, l.Text())
		return lexEnd
	}
	return nil
}

func isDigit(r rune) bool     { return '0' <= r && r <= '9' }
func isNameStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isNamePart(r rune) bool  { return isNameStart(r) || unicode.IsDigit(r) }

// lexEnd emits EOF forever.
func lexEnd(l *lex.Lexer) lex.StateFn {
	l.Emit(EOF, nil)
	return lexEnd
}

// Name is a wire name.
//
type Name struct {
	Name string
	Pos  lex.Pos
}

// Number is an unsigned integer literal, kept as text.
//
type Number struct {
	Text string
	Pos  lex.Pos
}

// Instruction is the syntax tree of a single instruction:
//
//	Args[0] -> Out
//	Op Args[0] -> Out
//	Args[0] Op Args[1] -> Out
//
// Each argument is either a Name or a Number. Op is empty for plain
// assignments.
//
type Instruction struct {
	Op    string
	OpPos lex.Pos
	Args  []interface{}
	Out   Name
}

// Parse parses a single instruction.
//
func Parse(input string) (*Instruction, error) {
	l := Lexer(input)
	var lhs []lex.Item
	i := l.Lex()
	for i.Type != Arrow {
		switch i.Type {
		case Ident, Int:
			lhs = append(lhs, i)
		case EOF:
			return nil, parseError(ErrMalformed, input, i.Pos, "missing \"->\"")
		default:
			return nil, parseError(ErrMalformed, input, i.Pos, "unexpected "+i.String())
		}
		if len(lhs) > 3 {
			return nil, parseError(ErrMalformed, input, i.Pos, "too many operands")
		}
		i = l.Lex()
	}
	arrow := i

	// after "->", expect a wire name then EOF
	i = l.Lex()
	if i.Type != Ident {
		return nil, parseError(ErrMalformed, input, i.Pos, "expected wire name after \"->\"")
	}
	out := Name{i.Value.(string), i.Pos}
	if IsKeyword(out.Name) {
		return nil, parseError(ErrMalformed, input, out.Pos, "keyword "+out.Name+" used as wire name")
	}
	if i = l.Lex(); i.Type != EOF {
		return nil, parseError(ErrMalformed, input, i.Pos, "unexpected "+i.String())
	}

	ins := &Instruction{Out: out}
	var args []lex.Item
	switch len(lhs) {
	case 0:
		return nil, parseError(ErrMalformed, input, arrow.Pos, "missing operand")
	case 1:
		args = lhs
	case 2:
		if lhs[0].Type != Ident || lhs[0].Value.(string) != OpNot {
			return nil, parseError(ErrMalformed, input, lhs[0].Pos, "expected "+OpNot)
		}
		ins.Op, ins.OpPos = OpNot, lhs[0].Pos
		args = lhs[1:]
	case 3:
		op := lhs[1]
		if op.Type != Ident {
			return nil, parseError(ErrMalformed, input, op.Pos, "expected operator")
		}
		switch name := op.Value.(string); name {
		case OpAnd, OpOr, OpLShift, OpRShift:
			ins.Op, ins.OpPos = name, op.Pos
		default:
			return nil, parseError(ErrUnknownOperator, input, op.Pos, name)
		}
		args = []lex.Item{lhs[0], lhs[2]}
	}
	for _, a := range args {
		if a.Type == Int {
			ins.Args = append(ins.Args, Number{a.Value.(string), a.Pos})
			continue
		}
		name := a.Value.(string)
		if IsKeyword(name) {
			return nil, parseError(ErrMalformed, input, a.Pos, "keyword "+name+" used as wire name")
		}
		ins.Args = append(ins.Args, Name{name, a.Pos})
	}
	return ins, nil
}

// IsKeyword returns true if name is an operator keyword. Keywords cannot be
// used as wire names.
//
func IsKeyword(name string) bool {
	switch name {
	case OpNot, OpAnd, OpOr, OpLShift, OpRShift:
		return true
	}
	return false
}

func parseError(err error, in string, pos lex.Pos, msg string) error {
	return errors.Wrapf(err, "in %q at pos %d: %s", in, pos+1, msg)
}

// Error returns an error wrapping err, positioned at pos in the given input.
//
func Error(err error, in string, pos lex.Pos, msg string) error {
	return parseError(err, in, pos, msg)
}
