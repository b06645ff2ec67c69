// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

// A buildFrame is one level of container under construction during Parse.
// Exactly one of object or array is in use; object == nil means array.
type buildFrame struct {
	object map[string]any
	array  []any
	key    string
	hasKey bool
}

func (f *buildFrame) value() any {
	if f.object != nil {
		return f.object
	}
	return f.array
}

// Parse parses text and returns the JSON value it denotes, along with any
// recoverable errors encountered.  On malformed input the returned value
// is the best-effort result of parsing past the repaired errors; callers
// that need strict input must check the error list.
//
// Values are returned as nil, bool, float64, string, []any, or
// map[string]any.
func Parse(text string, opts *ParseOptions) (any, []ParseError) {
	var errs []ParseError

	// The bottom frame is an artificial array that collects the document
	// value; the parser guarantees begin/end events are balanced, so it
	// is never popped.
	stack := []*buildFrame{{array: []any{}}}

	top := func() *buildFrame { return stack[len(stack)-1] }
	onValue := func(v any) {
		f := top()
		if f.object != nil {
			if f.hasKey {
				f.object[f.key] = v
				f.hasKey = false
			}
		} else {
			f.array = append(f.array, v)
		}
	}
	pop := func() {
		f := top()
		stack = stack[:len(stack)-1]
		onValue(f.value())
	}

	v := &Visitor{
		ObjectBegin: func(Span, PathFunc) bool {
			stack = append(stack, &buildFrame{object: make(map[string]any)})
			return true
		},
		ObjectProperty: func(name string, _ Span, _ PathFunc) {
			f := top()
			f.key, f.hasKey = name, true
		},
		ObjectEnd: func(Span) { pop() },
		ArrayBegin: func(Span, PathFunc) bool {
			stack = append(stack, &buildFrame{array: []any{}})
			return true
		},
		ArrayEnd: func(Span) { pop() },
		Literal:  func(v any, _ Span, _ PathFunc) { onValue(v) },
		Error: func(code ErrorCode, sp Span) {
			errs = append(errs, ParseError{Code: code, Span: sp})
		},
	}
	Visit(text, v, opts)

	root := stack[0]
	if len(root.array) == 0 {
		return nil, errs
	}
	return root.array[0], errs
}
