// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a small state function based lexer.
//
// A lexer is driven by StateFn's. The initial state function is called at the
// start of each token; it reads input with Next, emits tokens with Emit and
// returns the next state to run, or nil to start over with a new token.
//
package lex

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// EOF is both the rune returned by Next at end of input and the token Type
// emitted to signal the end of input.
//
const EOF = -1

// Type is a token type.
//
type Type int

// Pos is a rune offset in the input.
//
type Pos int

// Item is a token returned by the lexer.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	if i.Type == EOF {
		return "end of input"
	}
	return strconv.Quote(fmt.Sprint(i.Value))
}

// A StateFn is a lexer state function.
//
type StateFn func(l *Lexer) StateFn

// Interface is the interface implemented by lexers.
//
type Interface interface {
	// Lex returns the next token in the input stream.
	Lex() Item
}

// Lexer is a generic lexer. Its behavior is defined by its initial StateFn.
//
type Lexer struct {
	r     io.RuneScanner
	init  StateFn
	state StateFn
	items []Item
	pos   Pos // runes consumed
	start Pos // start of the current token
	cur   rune
	text  []rune // runes of the current token
	eof   bool   // last Next hit end of input
	err   error
}

// New returns a new lexer reading from r. init is called at the start of
// every token.
//
func New(r io.Reader, init StateFn) *Lexer {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(r)
	}
	return &Lexer{r: rs, init: init}
}

// Lex implements Interface.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.state = l.init
			l.start = l.pos
			l.text = l.text[:0]
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

// Next returns the next rune in the input, or EOF.
//
func (l *Lexer) Next() rune {
	r, _, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}
		l.eof = true
		l.cur = EOF
		return EOF
	}
	l.eof = false
	l.pos++
	l.cur = r
	l.text = append(l.text, r)
	return r
}

// Current returns the last rune returned by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// Backup unreads the last rune read by Next. It can be called only once
// after each call to Next.
//
func (l *Lexer) Backup() {
	if l.eof {
		l.eof = false
		return
	}
	if err := l.r.UnreadRune(); err != nil {
		panic(err)
	}
	l.pos--
	l.text = l.text[:len(l.text)-1]
}

// Text returns the text of the current token, i.e. the runes read since the
// last call to Emit, or since the start of the token.
//
func (l *Lexer) Text() string {
	return string(l.text)
}

// AcceptWhile reads runes as long as f returns true.
//
func (l *Lexer) AcceptWhile(f func(r rune) bool) {
	for {
		r := l.Next()
		if r == EOF || !f(r) {
			l.Backup()
			return
		}
	}
}

// Emit emits a token of type t with value v, positioned at the start of the
// current token.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: l.start, Value: v})
	l.start = l.pos
	l.text = l.text[:0]
}

// Err returns the first non-EOF error returned by the underlying reader.
//
func (l *Lexer) Err() error {
	return l.err
}
