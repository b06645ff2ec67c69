// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

import "strings"

// FormatOptions carry the settings for formatting a document.
type FormatOptions struct {
	// TabSize is the number of spaces per indentation level.
	// A value <= 0 means 4.
	TabSize int

	// InsertSpaces selects spaces (true) or tabs (false) for indentation.
	InsertSpaces bool

	// EOL is the line ending used for inserted line breaks when the
	// document does not already contain one to copy. Empty means "\n".
	EOL string

	// InsertFinalNewline appends a line break at the end of a non-empty
	// document if there is none.
	InsertFinalNewline bool

	// KeepLines preserves the number of line breaks the author wrote
	// between tokens, adjusting only indentation and intra-line spacing.
	KeepLines bool
}

// DefaultFormatOptions are the default formatting settings.
var DefaultFormatOptions = FormatOptions{TabSize: 4, InsertSpaces: true}

func (o FormatOptions) tabSize() int {
	if o.TabSize <= 0 {
		return 4
	}
	return o.TabSize
}

// A Range describes a contiguous byte range of a source document.
type Range struct {
	Offset, Length int
}

// Format computes the edits that normalize the whitespace of the whole
// document.  The returned edits are sorted by offset and non-overlapping,
// and never touch the textual content of comments.
func Format(text string, opts FormatOptions) []Edit {
	f := &formatter{doc: text, opts: opts}
	return f.run()
}

// FormatRange is like Format but only emits edits overlapping the given
// range.  The range is expanded outward to whole line boundaries, and the
// initial indentation level is derived from the leading whitespace of the
// first of those lines.
func FormatRange(text string, rng Range, opts FormatOptions) []Edit {
	f := &formatter{
		doc: text, opts: opts,
		hasRange:   true,
		rangeStart: rng.Offset,
		rangeEnd:   rng.Offset + rng.Length,
	}
	return f.run()
}

// formatter carries the state of one formatting pass: a token walk over
// the region that decides, for each pair of adjacent tokens, what the
// whitespace between them should be.
type formatter struct {
	doc  string
	opts FormatOptions

	hasRange             bool
	rangeStart, rangeEnd int
	formatTextStart      int

	eol    string
	indent string

	initialIndentLevel int
	indentLevel        int
	lineBreaks         int
	hasError           bool

	s     *Scanner
	edits []Edit
}

func (f *formatter) run() []Edit {
	var formatText string
	if f.hasRange {
		start := f.rangeStart
		for start > 0 && !isBreak(f.doc[start-1]) {
			start--
		}
		end := f.rangeEnd
		for end < len(f.doc) && !isBreak(f.doc[end]) {
			end++
		}
		formatText = f.doc[start:end]
		f.formatTextStart = start
		f.initialIndentLevel = computeIndentLevel(formatText, f.opts.tabSize())
	} else {
		formatText = f.doc
		f.rangeStart, f.rangeEnd = 0, len(f.doc)
	}

	f.eol = detectEOL(f.doc, f.opts.EOL)
	if f.opts.InsertSpaces {
		f.indent = strings.Repeat(" ", f.opts.tabSize())
	} else {
		f.indent = "\t"
	}
	f.s = NewScanner(formatText)

	first := f.scanNext()
	if f.opts.KeepLines && f.lineBreaks > 0 {
		f.addEdit(strings.Repeat(f.eol, f.lineBreaks),
			f.formatTextStart, f.formatTextStart+f.s.TokenOffset())
	} else if first != EOF {
		f.addEdit(repeat(f.indent, f.initialIndentLevel),
			f.formatTextStart, f.formatTextStart+f.s.TokenOffset())
	}

	for first != EOF {
		firstEnd := f.formatTextStart + f.s.TokenOffset() + f.s.TokenLength()
		second := f.scanNext()
		replace := ""
		needsBreak := false

		// Comments directly following the first token stay attached to it
		// with a single space; a line comment then forces a line break.
		for f.lineBreaks == 0 && (second == LineComment || second == BlockComment) {
			f.addEdit(" ", firstEnd, f.formatTextStart+f.s.TokenOffset())
			firstEnd = f.formatTextStart + f.s.TokenOffset() + f.s.TokenLength()
			needsBreak = second == LineComment
			if needsBreak {
				replace = f.newLinesAndIndent()
			} else {
				replace = ""
			}
			second = f.scanNext()
		}

		switch {
		case second == RBrace:
			if first != LBrace {
				f.indentLevel--
			}
			if (f.opts.KeepLines && f.lineBreaks > 0) || (!f.opts.KeepLines && first != LBrace) {
				replace = f.newLinesAndIndent()
			} else if f.opts.KeepLines && first != LBrace {
				replace = " "
			}

		case second == RSquare:
			if first != LSquare {
				f.indentLevel--
			}
			if (f.opts.KeepLines && f.lineBreaks > 0) || (!f.opts.KeepLines && first != LSquare) {
				replace = f.newLinesAndIndent()
			} else if f.opts.KeepLines && first != LSquare {
				replace = " "
			}

		default:
			switch first {
			case LBrace, LSquare:
				f.indentLevel++
				if (f.opts.KeepLines && f.lineBreaks > 0) || !f.opts.KeepLines {
					replace = f.newLinesAndIndent()
				} else {
					replace = " "
				}

			case Comma:
				if (f.opts.KeepLines && f.lineBreaks > 0) || !f.opts.KeepLines {
					replace = f.newLinesAndIndent()
				} else {
					replace = " "
				}

			case LineComment:
				replace = f.newLinesAndIndent()

			case BlockComment:
				if f.lineBreaks > 0 {
					replace = f.newLinesAndIndent()
				} else if !needsBreak {
					replace = " "
				}

			case Colon:
				if f.opts.KeepLines && f.lineBreaks > 0 {
					replace = f.newLinesAndIndent()
				} else if !needsBreak {
					replace = " "
				}

			case String:
				if f.opts.KeepLines && f.lineBreaks > 0 {
					replace = f.newLinesAndIndent()
				} else if second == Colon && !needsBreak {
					replace = ""
				}

			case Null, True, False, Number, RBrace, RSquare:
				if f.opts.KeepLines && f.lineBreaks > 0 {
					replace = f.newLinesAndIndent()
				} else if (second == LineComment || second == BlockComment) && !needsBreak {
					replace = " "
				} else if second != Comma && second != EOF {
					f.hasError = true
				}

			case Unknown:
				f.hasError = true
			}

			if second == EOF {
				switch {
				case f.opts.KeepLines && f.lineBreaks > 0:
					replace = f.newLinesAndIndent()
				case f.opts.InsertFinalNewline:
					replace = f.eol
				default:
					replace = ""
				}
			}
		}

		f.addEdit(replace, firstEnd, f.formatTextStart+f.s.TokenOffset())
		first = second
	}
	return f.edits
}

// scanNext advances past trivia to the next substantial token, counting
// the line breaks skipped on the way.  Without KeepLines the count only
// records whether any break was present.  An Unknown token or a scan
// error raises the error flag, which suppresses edits around the
// malformed span.
func (f *formatter) scanNext() Token {
	t := f.s.Scan()
	f.lineBreaks = 0
	for t == Space || t == Newline {
		if t == Newline && f.opts.KeepLines {
			f.lineBreaks++
		} else if t == Newline {
			f.lineBreaks = 1
		}
		t = f.s.Scan()
	}
	f.hasError = t == Unknown || f.s.TokenError() != ScanOK
	return t
}

// newLinesAndIndent returns the replacement for an inter-token gap that
// must break the line: one line break, or the kept count of breaks, then
// the current indentation.
func (f *formatter) newLinesAndIndent() string {
	n := 1
	if f.lineBreaks > 1 {
		n = f.lineBreaks
	}
	return strings.Repeat(f.eol, n) + repeat(f.indent, f.initialIndentLevel+f.indentLevel)
}

// repeat is strings.Repeat tolerating a negative count, which arises when
// malformed input underflows the bracket depth.
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func (f *formatter) addEdit(content string, start, end int) {
	if f.hasError {
		return
	}
	if f.hasRange && !(start < f.rangeEnd && end > f.rangeStart) {
		return
	}
	if f.doc[start:end] == content {
		return
	}
	f.edits = append(f.edits, Edit{Offset: start, Length: end - start, Content: content})
}

// computeIndentLevel reports the indentation level of the leading
// whitespace of content, counting a tab as tabSize columns.
func computeIndentLevel(content string, tabSize int) int {
	n := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case ' ':
			n++
		case '\t':
			n += tabSize
		default:
			return n / tabSize
		}
	}
	return n / tabSize
}

// detectEOL returns the first line terminator appearing in text, the
// fallback if there is none, or "\n".
func detectEOL(text, fallback string) string {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		case '\n':
			return "\n"
		}
	}
	if fallback != "" {
		return fallback
	}
	return "\n"
}
