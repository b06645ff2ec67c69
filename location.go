// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

import "fmt"

// A Path addresses a position in the logical structure of a document.
// Each segment is either a property name (string) or an array index
// (int).  In a pattern passed to Location.Matches, the string "*"
// matches exactly one segment of any kind and "**" matches zero or more.
type Path []any

func (p Path) String() string {
	var out []byte
	for _, seg := range p {
		switch s := seg.(type) {
		case string:
			out = fmt.Appendf(out, "[%q]", s)
		case int:
			out = fmt.Appendf(out, "[%d]", s)
		default:
			panic(fmt.Sprintf("invalid path segment %T; must be int or string", seg))
		}
	}
	return string(out)
}

// A Location describes the structural context of a text offset: the
// enclosing path, whether the offset sits where a property key is (being)
// written, and the most recently completed literal or key before it.
type Location struct {
	// Path is the path of the innermost structure enclosing the offset.
	Path Path

	// PreviousNode is the most recent completed literal or property key
	// before the offset, or nil.  It has no parent and no children.
	PreviousNode *Node

	// IsAtPropertyKey reports whether the offset is at a position where a
	// property key is written.
	IsAtPropertyKey bool
}

// Matches reports whether the location's path matches the given pattern.
// Pattern segments are literal segments, "*" (exactly one segment), or
// "**" (zero or more segments).
func (loc Location) Matches(pattern Path) bool {
	for _, seg := range pattern {
		switch seg.(type) {
		case string, int:
		default:
			panic(fmt.Sprintf("invalid path segment %T; must be int or string", seg))
		}
	}
	return matchesPath(pattern, loc.Path)
}

// matchesPath reports whether pattern matches a prefix of path.  A
// pattern that ends before the path is exhausted still matches, so a
// pattern addresses "inside of" rather than "exactly at".
func matchesPath(pattern, path Path) bool {
	if len(pattern) == 0 {
		return true
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(path); i++ {
			if matchesPath(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if pattern[0] == "*" || pattern[0] == path[0] {
		return matchesPath(pattern[1:], path[1:])
	}
	return false
}

// locDone is the sentinel panic used to stop the parser once the target
// offset has been reached.
type locDone struct{}

// GetLocation scans text up to the given offset and returns the location
// there.  Malformed input is tolerated the same way Parse tolerates it.
func GetLocation(text string, offset int) Location {
	segments := Path{}
	var previous *Node
	isAtPropertyKey := false

	setPrevious := func(value any, sp Span, t NodeType) {
		previous = &Node{
			Type:        t,
			Offset:      sp.Offset,
			Length:      sp.Length,
			ColonOffset: -1,
			Value:       value,
		}
	}
	done := func() { panic(locDone{}) }

	v := &Visitor{
		ObjectBegin: func(sp Span, _ PathFunc) bool {
			if offset <= sp.Offset {
				done()
			}
			previous = nil
			isAtPropertyKey = offset > sp.Offset
			segments = append(segments, "") // placeholder, replaced by the key
			return true
		},
		ObjectProperty: func(name string, sp Span, _ PathFunc) {
			if offset < sp.Offset {
				done()
			}
			setPrevious(name, sp, PropertyNode)
			segments[len(segments)-1] = name
			if offset <= sp.End() {
				done()
			}
		},
		ObjectEnd: func(sp Span) {
			if offset <= sp.Offset {
				done()
			}
			previous = nil
			segments = segments[:len(segments)-1]
		},
		ArrayBegin: func(sp Span, _ PathFunc) bool {
			if offset <= sp.Offset {
				done()
			}
			previous = nil
			segments = append(segments, 0)
			return true
		},
		ArrayEnd: func(sp Span) {
			if offset <= sp.Offset {
				done()
			}
			previous = nil
			segments = segments[:len(segments)-1]
		},
		Literal: func(value any, sp Span, _ PathFunc) {
			if offset < sp.Offset {
				done()
			}
			setPrevious(value, sp, typeOfValue(value))
			if offset <= sp.End() {
				done()
			}
		},
		Separator: func(ch byte, sp Span) {
			if offset <= sp.Offset {
				done()
			}
			switch {
			case ch == ':' && previous != nil && previous.Type == PropertyNode:
				previous.ColonOffset = sp.Offset
				isAtPropertyKey = false
				previous = nil
			case ch == ',':
				if i, ok := segments[len(segments)-1].(int); ok {
					segments[len(segments)-1] = i + 1
				} else {
					isAtPropertyKey = true
					segments[len(segments)-1] = ""
				}
				previous = nil
			}
		},
	}

	func() {
		defer func() {
			if v := recover(); v != nil {
				if _, ok := v.(locDone); !ok {
					panic(v)
				}
			}
		}()
		Visit(text, v, nil)
	}()

	return Location{
		Path:            segments,
		PreviousNode:    previous,
		IsAtPropertyKey: isAtPropertyKey,
	}
}
