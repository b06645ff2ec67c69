// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jsonc"
)

func TestApplyEdits(t *testing.T) {
	tests := []struct {
		text  string
		edits []jsonc.Edit
		want  string
	}{
		{"abc", nil, "abc"},
		{"abc", []jsonc.Edit{{Offset: 1, Length: 1, Content: "B"}}, "aBc"},
		{"abc", []jsonc.Edit{{Offset: 3, Content: "d"}}, "abcd"},
		{"abc", []jsonc.Edit{{Offset: 0, Length: 3}}, ""},

		// Edits may be given out of order.
		{"abc", []jsonc.Edit{
			{Offset: 2, Length: 1, Content: "C"},
			{Offset: 0, Length: 1, Content: "A"},
		}, "AbC"},

		// Insertions at the same offset apply in list order.
		{"ad", []jsonc.Edit{
			{Offset: 1, Content: "b"},
			{Offset: 1, Content: "c"},
		}, "abcd"},

		// An insertion at the start of a replacement is permitted.
		{"abc", []jsonc.Edit{
			{Offset: 1, Content: "x"},
			{Offset: 1, Length: 1, Content: "y"},
		}, "axyc"},
	}
	for _, test := range tests {
		got, err := jsonc.ApplyEdits(test.text, test.edits)
		if err != nil {
			t.Errorf("ApplyEdits %#q: unexpected error: %v", test.text, err)
		}
		if got != test.want {
			t.Errorf("ApplyEdits %#q: got %#q, want %#q", test.text, got, test.want)
		}
	}
}

func TestApplyEditsErrors(t *testing.T) {
	tests := []struct {
		text  string
		edits []jsonc.Edit
	}{
		// Overlapping ranges.
		{"abcdef", []jsonc.Edit{
			{Offset: 0, Length: 3, Content: "x"},
			{Offset: 2, Length: 2, Content: "y"},
		}},
		// Out of bounds.
		{"abc", []jsonc.Edit{{Offset: 2, Length: 5, Content: "x"}}},
		{"abc", []jsonc.Edit{{Offset: -1, Content: "x"}}},
	}
	for _, test := range tests {
		got, err := jsonc.ApplyEdits(test.text, test.edits)
		if err == nil {
			t.Errorf("ApplyEdits %#q: got %#q, want error", test.text, got)
		} else if !errors.Is(err, jsonc.ErrOverlappingEdits) {
			t.Errorf("ApplyEdits %#q: got error %v, want %v", test.text, err, jsonc.ErrOverlappingEdits)
		}
	}
}
