package jsonc

import "fmt"

// A Span describes the position of a contiguous range of source text.
// Offsets are byte offsets into the input; lines and columns are 0-based.
type Span struct {
	Offset int // start offset of the range
	Length int // length of the range in bytes
	Line   int // line number of the start of the range
	Column int // column offset of the start of the range in its line
}

// End returns the offset just past the end of the span.
func (s Span) End() int { return s.Offset + s.Length }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Offset, s.End())
}
