// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ModifyOptions carry the settings for computing modification edits.
type ModifyOptions struct {
	// Formatting is used to indent the inserted or rewritten fragment to
	// match its surroundings.
	Formatting FormatOptions

	// GetInsertionIndex, if set, chooses the position of a new property
	// among the existing keys of the target object. By default new
	// properties are appended.
	GetInsertionIndex func(keys []string) int

	// IsArrayInsertion selects insertion semantics for array indices: the
	// index in the path is an insertion point and existing items shift
	// right. Without it, the index replaces the existing item at that
	// position, or appends if it equals the array length.
	IsArrayInsertion bool
}

// Modify computes the edits that make the document represent value at
// the given path.  Missing objects along the path are created.  The
// updated fragment is serialized as plain JSON and indented according to
// the formatting options.
func Modify(text string, path Path, value any, opts ModifyOptions) ([]Edit, error) {
	return setValue(text, path, value, true, opts)
}

// Remove computes the edits that delete the value at the given path,
// together with the separator joining it to its siblings.  Removing a
// missing property or index of an existing object or array yields no
// edits; if the container itself is missing, Remove reports an error.
func Remove(text string, path Path, opts ModifyOptions) ([]Edit, error) {
	return setValue(text, path, nil, false, opts)
}

func setValue(text string, origPath Path, value any, hasValue bool, opts ModifyOptions) ([]Edit, error) {
	path := slices.Clone(origPath)
	root, perrs := ParseTree(text, &ParseOptions{AllowTrailingComma: true})

	// Walk up the path until an existing parent is found, wrapping the
	// value in containers for the missing levels on the way.
	var parent *Node
	var lastSegment any
	for len(path) > 0 {
		lastSegment = path[len(path)-1]
		path = path[:len(path)-1]
		parent = FindNodeAtLocation(root, path)
		if parent != nil || !hasValue {
			break
		}
		if key, ok := lastSegment.(string); ok {
			value = map[string]any{key: value}
		} else {
			value = []any{value}
		}
	}

	if parent == nil {
		if !hasValue {
			return nil, pathError(perrs, "cannot remove: path not in document")
		}
		content, err := encodeValue(value)
		if err != nil {
			return nil, err
		}
		if root == nil {
			return withFormatting(text, Edit{Offset: 0, Length: 0, Content: content}, opts)
		}
		return withFormatting(text, Edit{Offset: root.Offset, Length: root.Length, Content: content}, opts)
	}

	switch key := lastSegment.(type) {
	case string:
		if parent.Type != ObjectNode {
			return nil, pathError(perrs, fmt.Sprintf("cannot add property to %v value", parent.Type))
		}
		return setProperty(text, parent, key, value, hasValue, opts)
	case int:
		if parent.Type != ArrayNode {
			return nil, pathError(perrs, fmt.Sprintf("cannot add index to %v value", parent.Type))
		}
		return setIndex(text, parent, key, value, hasValue, opts)
	default:
		return nil, fmt.Errorf("invalid path segment %T; must be int or string", lastSegment)
	}
}

func setProperty(text string, parent *Node, key string, value any, hasValue bool, opts ModifyOptions) ([]Edit, error) {
	existing := FindNodeAtLocation(parent, Path{key})
	if existing != nil {
		if !hasValue {
			// Remove the property along with the comma joining it to its
			// neighbor: the one before unless it is the first member, in
			// which case the one after.
			prop := existing.Parent
			i := slices.Index(parent.Children, prop)
			begin, end := 0, prop.End()
			if i > 0 {
				begin = parent.Children[i-1].End()
			} else {
				begin = parent.Offset + 1
				if len(parent.Children) > 1 {
					end = parent.Children[1].Offset
				}
			}
			return withFormatting(text, Edit{Offset: begin, Length: end - begin}, opts)
		}
		content, err := encodeValue(value)
		if err != nil {
			return nil, err
		}
		return withFormatting(text, Edit{Offset: existing.Offset, Length: existing.Length, Content: content}, opts)
	}
	if !hasValue {
		return nil, nil // no such property, nothing to remove
	}

	content, err := encodeValue(value)
	if err != nil {
		return nil, err
	}
	property := Quote(key) + ": " + content

	index := len(parent.Children)
	if opts.GetInsertionIndex != nil {
		keys := make([]string, len(parent.Children))
		for i, p := range parent.Children {
			keys[i] = p.Children[0].Value.(string)
		}
		index = min(opts.GetInsertionIndex(keys), len(parent.Children))
	}
	switch {
	case index > 0:
		prev := parent.Children[index-1]
		return withFormatting(text, Edit{Offset: prev.End(), Content: "," + property}, opts)
	case len(parent.Children) == 0:
		return withFormatting(text, Edit{Offset: parent.Offset + 1, Content: property}, opts)
	default:
		return withFormatting(text, Edit{Offset: parent.Offset + 1, Content: property + ","}, opts)
	}
}

func setIndex(text string, parent *Node, index int, value any, hasValue bool, opts ModifyOptions) ([]Edit, error) {
	if index == -1 && hasValue {
		// Append at the end of the array.
		content, err := encodeValue(value)
		if err != nil {
			return nil, err
		}
		if len(parent.Children) == 0 {
			return withFormatting(text, Edit{Offset: parent.Offset + 1, Content: content}, opts)
		}
		prev := parent.Children[len(parent.Children)-1]
		return withFormatting(text, Edit{Offset: prev.End(), Content: "," + content}, opts)
	}

	if !hasValue {
		if index < 0 || index >= len(parent.Children) {
			return nil, nil // no such item, nothing to remove
		}
		var e Edit
		switch {
		case len(parent.Children) == 1:
			e = Edit{Offset: parent.Offset + 1, Length: parent.End() - 1 - (parent.Offset + 1)}
		case index == len(parent.Children)-1:
			// Removing the last item also removes the comma after the one
			// before it.
			begin := parent.Children[index-1].End()
			e = Edit{Offset: begin, Length: parent.End() - 1 - begin}
		default:
			begin := parent.Children[index].Offset
			e = Edit{Offset: begin, Length: parent.Children[index+1].Offset - begin}
		}
		return withFormatting(text, e, opts)
	}

	content, err := encodeValue(value)
	if err != nil {
		return nil, err
	}
	switch {
	case !opts.IsArrayInsertion && index < len(parent.Children):
		old := parent.Children[index]
		return withFormatting(text, Edit{Offset: old.Offset, Length: old.Length, Content: content}, opts)
	case len(parent.Children) == 0:
		return withFormatting(text, Edit{Offset: parent.Offset + 1, Content: content}, opts)
	case index == 0:
		return withFormatting(text, Edit{Offset: parent.Offset + 1, Content: content + ","}, opts)
	default:
		i := min(index, len(parent.Children))
		prev := parent.Children[i-1]
		return withFormatting(text, Edit{Offset: prev.End(), Content: "," + content}, opts)
	}
}

// withFormatting applies e to a scratch copy of the document, reformats
// the lines it touched, and folds the result back into a single edit
// against the original text.
func withFormatting(text string, e Edit, opts ModifyOptions) ([]Edit, error) {
	newText := applyEdit(text, e)

	begin := e.Offset
	end := e.Offset + len(e.Content)
	if e.Length == 0 || len(e.Content) == 0 {
		// For a pure insertion or removal, widen to whole lines.
		for begin > 0 && !isBreak(newText[begin-1]) {
			begin--
		}
		for end < len(newText) && !isBreak(newText[end]) {
			end++
		}
	}

	fo := opts.Formatting
	fo.KeepLines = false
	edits := FormatRange(newText, Range{Offset: begin, Length: end - begin}, fo)

	// Apply the formatting edits back to front, tracking the bounds of
	// the modified region.
	for i := len(edits) - 1; i >= 0; i-- {
		ed := edits[i]
		newText = applyEdit(newText, ed)
		begin = min(begin, ed.Offset)
		if ed.Offset+ed.Length > end {
			end = ed.Offset + ed.Length
		}
		end += len(ed.Content) - ed.Length
	}
	length := len(text) - (len(newText) - end) - begin
	return []Edit{{Offset: begin, Length: length, Content: newText[begin:end]}}, nil
}

func encodeValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// pathError decorates a path resolution failure with the first parse
// error of the document, which is usually why the path was not found.
func pathError(perrs []ParseError, msg string) error {
	if len(perrs) > 0 {
		return fmt.Errorf("%s: %w", msg, &perrs[0])
	}
	return errors.New(msg)
}
