// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"errors"
	"fmt"
	"slices"
)

// An Edit describes a single text replacement in a source document.  An
// edit with Length == 0 is an insertion; an edit with empty Content is a
// deletion.  Offsets always refer to the original document.
type Edit struct {
	Offset  int    // start offset of the replaced range
	Length  int    // length of the replaced range
	Content string // replacement text
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d]=%q", e.Offset, e.Offset+e.Length, e.Content)
}

// ErrOverlappingEdits is reported by ApplyEdits when two edits in the
// list modify overlapping ranges of the input.
var ErrOverlappingEdits = errors.New("overlapping edits")

// ApplyEdits applies the given edits to text and returns the result.  The
// edits are sorted by offset before application; multiple insertions at
// the same offset are applied in list order.  If any two edits overlap,
// ApplyEdits reports ErrOverlappingEdits without applying anything.
func ApplyEdits(text string, edits []Edit) (string, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Offset != b.Offset {
			return a.Offset - b.Offset
		}
		return a.Length - b.Length
	})

	// Verify bounds and overlap before touching the text.
	last := len(text)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		if e.Offset < 0 || e.Length < 0 || e.Offset+e.Length > last {
			return "", fmt.Errorf("edit %v out of range: %w", e, ErrOverlappingEdits)
		}
		last = e.Offset
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		text = applyEdit(text, sorted[i])
	}
	return text, nil
}

// applyEdit applies a single edit to text. The caller is responsible for
// bounds checking.
func applyEdit(text string, e Edit) string {
	return text[:e.Offset] + e.Content + text[e.Offset+e.Length:]
}
