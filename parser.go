// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrorCode classifies a recoverable parse error.
type ErrorCode byte

// Constants defining the valid ErrorCode values.
const (
	InvalidSymbol ErrorCode = 1 + iota
	InvalidNumberFormat
	PropertyNameExpected
	ValueExpected
	ColonExpected
	CommaExpected
	CloseBraceExpected
	CloseBracketExpected
	EndOfFileExpected
	InvalidCommentToken
	UnexpectedEndOfComment
	UnexpectedEndOfString
	UnexpectedEndOfNumber
	InvalidUnicode
	InvalidEscapeCharacter
	InvalidCharacter
)

var errorCodeStr = [...]string{
	InvalidSymbol:          "InvalidSymbol",
	InvalidNumberFormat:    "InvalidNumberFormat",
	PropertyNameExpected:   "PropertyNameExpected",
	ValueExpected:          "ValueExpected",
	ColonExpected:          "ColonExpected",
	CommaExpected:          "CommaExpected",
	CloseBraceExpected:     "CloseBraceExpected",
	CloseBracketExpected:   "CloseBracketExpected",
	EndOfFileExpected:      "EndOfFileExpected",
	InvalidCommentToken:    "InvalidCommentToken",
	UnexpectedEndOfComment: "UnexpectedEndOfComment",
	UnexpectedEndOfString:  "UnexpectedEndOfString",
	UnexpectedEndOfNumber:  "UnexpectedEndOfNumber",
	InvalidUnicode:         "InvalidUnicode",
	InvalidEscapeCharacter: "InvalidEscapeCharacter",
	InvalidCharacter:       "InvalidCharacter",
}

// String returns the stable human-readable name of the error code.
func (c ErrorCode) String() string {
	v := int(c)
	if v < 1 || v >= len(errorCodeStr) {
		return "<unknown ParseErrorCode>"
	}
	return errorCodeStr[v]
}

// A ParseError records a recoverable error encountered while parsing,
// together with the source span of the offending token.  The parser never
// aborts on a ParseError; it records the error and resumes at the next
// meaningful token.
type ParseError struct {
	Code ErrorCode
	Span
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Span, e.Code)
}

// ParseOptions control the dialect accepted by the parsing entry points.
// A nil *ParseOptions means comments allowed, trailing commas rejected,
// empty input rejected.
type ParseOptions struct {
	DisallowComments   bool // report comment tokens as errors
	AllowTrailingComma bool // accept a trailing comma before "}" or "]"
	AllowEmptyContent  bool // accept an input with no value
}

// A PathFunc returns the path of the value currently being visited.  It
// is only valid during the callback it was passed to; the returned slice
// is a copy the callback may retain.
type PathFunc func() Path

// A Visitor holds callbacks invoked by Visit in document order.  Any
// callback may be nil, in which case that event is skipped.  ObjectBegin
// and ArrayBegin may return false to skip the subtree; children are not
// visited, but the matching end callback still fires at the end of the
// skipped range.
type Visitor struct {
	ObjectBegin    func(sp Span, path PathFunc) bool
	ObjectProperty func(name string, sp Span, path PathFunc)
	ObjectEnd      func(sp Span)
	ArrayBegin     func(sp Span, path PathFunc) bool
	ArrayEnd       func(sp Span)

	// Literal is invoked for each string, number, boolean, or null value,
	// with the decoded value.
	Literal func(value any, sp Span, path PathFunc)

	// Separator is invoked for each ':' and ',' token.
	Separator func(ch byte, sp Span)

	Comment func(sp Span)
	Error   func(code ErrorCode, sp Span)
}

// Visit parses text and delivers events to v in document order.  Parsing
// tolerates malformed input: errors are delivered through v.Error and
// parsing resumes at the next meaningful token.
func Visit(text string, v *Visitor, opts *ParseOptions) {
	if opts == nil {
		opts = &ParseOptions{}
	}
	if v == nil {
		v = &Visitor{}
	}
	p := &parser{s: NewScanner(text), v: v, opts: opts}
	p.run()
}

// parser drives a scanner and translates its tokens into visitor events.
// It is the common machinery beneath Parse, ParseTree, and GetLocation.
type parser struct {
	s    *Scanner
	v    *Visitor
	opts *ParseOptions

	path Path

	// Count of open containers below a begin callback that asked to skip
	// its subtree. While nonzero, no events are delivered except the end
	// event that closes the skipped range.
	suppressed int
}

func (p *parser) run() {
	p.next()
	if p.s.Token() == EOF {
		if !p.opts.AllowEmptyContent {
			p.report(ValueExpected)
		}
		return
	}
	if !p.parseValue() {
		p.report(ValueExpected)
		return
	}
	if p.s.Token() != EOF {
		p.report(EndOfFileExpected)
	}
}

// next advances to the next semantic token, delivering comment events and
// translating scan errors into parse errors along the way.
func (p *parser) next() Token {
	for {
		t := p.s.Scan()
		switch p.s.TokenError() {
		case ScanInvalidUnicode:
			p.report(InvalidUnicode)
		case ScanInvalidEscape:
			p.report(InvalidEscapeCharacter)
		case ScanUnexpectedEndOfNumber:
			p.report(UnexpectedEndOfNumber)
		case ScanUnexpectedEndOfComment:
			if !p.opts.DisallowComments {
				p.report(UnexpectedEndOfComment)
			}
		case ScanUnexpectedEndOfString:
			p.report(UnexpectedEndOfString)
		case ScanInvalidCharacter:
			p.report(InvalidCharacter)
		}
		switch t {
		case LineComment, BlockComment:
			if p.opts.DisallowComments {
				p.report(InvalidCommentToken)
			} else if p.v.Comment != nil && p.suppressed == 0 {
				p.v.Comment(p.s.Span())
			}
		case Unknown:
			p.report(InvalidSymbol)
		case Space, Newline:
			// skip
		default:
			return t
		}
	}
}

// report delivers a parse error for the current token.
func (p *parser) report(code ErrorCode) { p.reportSkip(code, nil, nil) }

// reportSkip delivers a parse error for the current token, then discards
// tokens until it reaches one of the given recovery tokens: consuming it
// for skipUntilAfter, stopping on it for skipUntil.
func (p *parser) reportSkip(code ErrorCode, skipUntilAfter, skipUntil []Token) {
	if p.v.Error != nil && p.suppressed == 0 {
		p.v.Error(code, p.s.Span())
	}
	if len(skipUntilAfter)+len(skipUntil) > 0 {
		t := p.s.Token()
		for t != EOF {
			if slices.Contains(skipUntilAfter, t) {
				p.next()
				break
			} else if slices.Contains(skipUntil, t) {
				break
			}
			t = p.next()
		}
	}
}

func (p *parser) pathFunc() PathFunc {
	return func() Path { return slices.Clone(p.path) }
}

func (p *parser) beginObject() {
	if p.suppressed > 0 {
		p.suppressed++
		return
	}
	if p.v.ObjectBegin != nil && !p.v.ObjectBegin(p.s.Span(), p.pathFunc()) {
		p.suppressed = 1
	}
}

func (p *parser) endObject() {
	if p.suppressed > 0 {
		p.suppressed--
	}
	if p.suppressed == 0 && p.v.ObjectEnd != nil {
		p.v.ObjectEnd(p.s.Span())
	}
}

func (p *parser) beginArray() {
	if p.suppressed > 0 {
		p.suppressed++
		return
	}
	if p.v.ArrayBegin != nil && !p.v.ArrayBegin(p.s.Span(), p.pathFunc()) {
		p.suppressed = 1
	}
}

func (p *parser) endArray() {
	if p.suppressed > 0 {
		p.suppressed--
	}
	if p.suppressed == 0 && p.v.ArrayEnd != nil {
		p.v.ArrayEnd(p.s.Span())
	}
}

func (p *parser) literal(value any) {
	if p.suppressed == 0 && p.v.Literal != nil {
		p.v.Literal(value, p.s.Span(), p.pathFunc())
	}
}

func (p *parser) separator(ch byte) {
	if p.suppressed == 0 && p.v.Separator != nil {
		p.v.Separator(ch, p.s.Span())
	}
}

// parseString consumes a string token, either as a value or as a property
// key.  A key is pushed on the current path until its member completes.
func (p *parser) parseString(isValue bool) bool {
	value := p.s.TokenValue()
	if isValue {
		p.literal(value)
	} else {
		if p.suppressed == 0 && p.v.ObjectProperty != nil {
			p.v.ObjectProperty(value, p.s.Span(), p.pathFunc())
		}
		p.path = append(p.path, value)
	}
	p.next()
	return true
}

func (p *parser) parseLiteral() bool {
	switch p.s.Token() {
	case Number:
		v, err := strconv.ParseFloat(p.s.TokenValue(), 64)
		if err != nil {
			p.report(InvalidNumberFormat)
			v = 0
		}
		p.literal(v)
	case Null:
		p.literal(nil)
	case True:
		p.literal(true)
	case False:
		p.literal(false)
	default:
		return false
	}
	p.next()
	return true
}

func (p *parser) parseProperty() bool {
	if p.s.Token() != String {
		p.reportSkip(PropertyNameExpected, nil, []Token{RBrace, Comma})
		return false
	}
	p.parseString(false)
	if p.s.Token() == Colon {
		p.separator(':')
		p.next() // consume colon
		if !p.parseValue() {
			p.reportSkip(ValueExpected, nil, []Token{RBrace, Comma})
		}
	} else {
		p.reportSkip(ColonExpected, nil, []Token{RBrace, Comma})
	}
	p.path = p.path[:len(p.path)-1]
	return true
}

func (p *parser) parseObject() bool {
	p.beginObject()
	p.next() // consume open brace
	needsComma := false
	for p.s.Token() != RBrace && p.s.Token() != EOF {
		if p.s.Token() == Comma {
			if !needsComma {
				p.report(ValueExpected)
			}
			p.separator(',')
			p.next() // consume comma
			if p.s.Token() == RBrace {
				if !p.opts.AllowTrailingComma {
					p.report(ValueExpected)
				}
				break
			}
		} else if needsComma {
			p.report(CommaExpected)
		}
		if !p.parseProperty() {
			p.reportSkip(ValueExpected, nil, []Token{RBrace, Comma})
		}
		needsComma = true
	}
	p.endObject()
	if p.s.Token() != RBrace {
		p.reportSkip(CloseBraceExpected, []Token{RBrace}, nil)
	} else {
		p.next() // consume close brace
	}
	return true
}

func (p *parser) parseArray() bool {
	p.beginArray()
	p.next() // consume open bracket
	first := true
	needsComma := false
	for p.s.Token() != RSquare && p.s.Token() != EOF {
		if p.s.Token() == Comma {
			if !needsComma {
				p.report(ValueExpected)
			}
			p.separator(',')
			p.next() // consume comma
			if p.s.Token() == RSquare {
				if !p.opts.AllowTrailingComma {
					p.report(ValueExpected)
				}
				break
			}
		} else if needsComma {
			p.report(CommaExpected)
		}
		if first {
			p.path = append(p.path, 0)
			first = false
		} else {
			p.path[len(p.path)-1] = p.path[len(p.path)-1].(int) + 1
		}
		if !p.parseValue() {
			p.reportSkip(ValueExpected, nil, []Token{RSquare, Comma})
		}
		needsComma = true
	}
	p.endArray()
	if !first {
		p.path = p.path[:len(p.path)-1]
	}
	if p.s.Token() != RSquare {
		p.reportSkip(CloseBracketExpected, []Token{RSquare}, nil)
	} else {
		p.next() // consume close bracket
	}
	return true
}

func (p *parser) parseValue() bool {
	switch p.s.Token() {
	case LSquare:
		return p.parseArray()
	case LBrace:
		return p.parseObject()
	case String:
		return p.parseString(true)
	default:
		return p.parseLiteral()
	}
}

// StripComments replaces every non-newline character of each comment in
// text with replaceCh, preserving the offsets of all remaining content.
// A replaceCh of zero means a space.
func StripComments(text string, replaceCh byte) string {
	if replaceCh == 0 {
		replaceCh = ' '
	}
	s := NewScanner(text)
	var sb strings.Builder
	for {
		switch t := s.Scan(); t {
		case LineComment, BlockComment:
			for _, c := range []byte(text[s.TokenOffset():s.Position()]) {
				if isBreak(c) {
					sb.WriteByte(c)
				} else {
					sb.WriteByte(replaceCh)
				}
			}
		case EOF:
			return sb.String()
		default:
			sb.WriteString(text[s.TokenOffset():s.Position()])
		}
	}
}
