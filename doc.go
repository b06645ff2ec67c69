// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jsonc implements a tolerant scanner, parser, formatter, and
// modifier for JSON with JavaScript-style extensions: line and block
// comments and (optionally) trailing commas.  It is meant for tools that
// read, navigate, and minimally rewrite human-edited configuration files
// while preserving the comments and layout their authors wrote.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over an input string.
// Call Scan to iterate over the tokens of the input, including trivia
// (whitespace, line breaks, and comments):
//
//	s := jsonc.NewScanner(input)
//	for tok := s.Scan(); tok != jsonc.EOF; tok = s.Scan() {
//	   log.Printf("Token %v at %v", tok, s.Span())
//	}
//
// Lexical errors do not stop the scanner: the offending token is
// produced anyway, annotated with a ScanError available from TokenError.
//
// # Parsing
//
// Parse returns the plain value denoted by a document; ParseTree returns
// a concrete syntax tree that records the offset, length, and parentage
// of every syntactic element; Visit delivers events to a set of callback
// functions in document order; and GetLocation reports the structural
// context of a single text offset, which is what an editor needs to
// answer "what am I inside of?".
//
// All four are fault-tolerant: recoverable errors are reported as
// ParseError values and parsing resumes at the next meaningful token, so
// a best-effort result is always produced.
//
// # Editing
//
// Format and FormatRange compute a minimal list of Edit values that
// normalize whitespace and indentation without disturbing comments.
// Modify and Remove compute the edits that insert, replace, or delete
// the value at a path, using the formatter to fit the new fragment into
// its surroundings.  ApplyEdits applies an edit list to a document.
package jsonc
