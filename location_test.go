// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jsonc"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

// markerLocation returns the location at the position of the "|" marker
// in input, which is removed before scanning.
func markerLocation(t *testing.T, input string) jsonc.Location {
	t.Helper()
	offset := strings.Index(input, "|")
	if offset < 0 {
		t.Fatalf("No marker in %#q", input)
	}
	text := input[:offset] + input[offset+1:]
	return jsonc.GetLocation(text, offset)
}

func TestGetLocation(t *testing.T) {
	tests := []struct {
		input    string
		path     jsonc.Path
		atKey    bool
		prevType jsonc.NodeType
		prevNone bool
	}{
		{`|{ "a": 1 }`, jsonc.Path{}, false, 0, true},
		{`{ |"a": 1 }`, jsonc.Path{"a"}, true, jsonc.PropertyNode, false},
		{`{ "a|": 1 }`, jsonc.Path{"a"}, true, jsonc.PropertyNode, false},
		{`{ "a": 1| }`, jsonc.Path{"a"}, false, jsonc.NumberNode, false},
		{`{ "a": 1,| "b": 2 }`, jsonc.Path{""}, true, 0, true},
		{`{ "a": 1, "b": |2 }`, jsonc.Path{"b"}, false, jsonc.NumberNode, false},
		{`[1, 2|]`, jsonc.Path{1}, false, jsonc.NumberNode, false},
		{`[1, |2]`, jsonc.Path{1}, false, jsonc.NumberNode, false},
		{`[1, [2, |3]]`, jsonc.Path{1, 1}, false, jsonc.NumberNode, false},
		{`{ |}`, jsonc.Path{""}, true, 0, true},
		{`{ "foo": {"bar": 1, "ca|r": 5 } }`, jsonc.Path{"foo", "car"}, true, jsonc.PropertyNode, false},
	}
	for _, test := range tests {
		loc := markerLocation(t, test.input)
		if diff := cmp.Diff(test.path, loc.Path); diff != "" {
			t.Errorf("Location %#q path: (-want, +got)\n%s", test.input, diff)
		}
		if loc.IsAtPropertyKey != test.atKey {
			t.Errorf("Location %#q atKey: got %v, want %v", test.input, loc.IsAtPropertyKey, test.atKey)
		}
		if test.prevNone {
			if loc.PreviousNode != nil {
				t.Errorf("Location %#q previous: got %v, want nil", test.input, loc.PreviousNode.Type)
			}
		} else if loc.PreviousNode == nil {
			t.Errorf("Location %#q previous: got nil, want %v", test.input, test.prevType)
		} else if loc.PreviousNode.Type != test.prevType {
			t.Errorf("Location %#q previous: got %v, want %v",
				test.input, loc.PreviousNode.Type, test.prevType)
		}
	}
}

func TestGetLocationEmpty(t *testing.T) {
	loc := jsonc.GetLocation("", 0)
	if len(loc.Path) != 0 || loc.IsAtPropertyKey || loc.PreviousNode != nil {
		t.Errorf("Location of empty document: got %+v", loc)
	}
}

func TestLocationMatches(t *testing.T) {
	loc := markerLocation(t, `{ "foo": {"bar": 1, "ca|r": 5 } }`)

	tests := []struct {
		pattern jsonc.Path
		want    bool
	}{
		{jsonc.Path{}, true},
		{jsonc.Path{"foo"}, true},
		{jsonc.Path{"foo", "car"}, true},
		{jsonc.Path{"foo", "bar"}, false},
		{jsonc.Path{"*", "car"}, true},
		{jsonc.Path{"*"}, true},
		{jsonc.Path{"**"}, true},
		{jsonc.Path{"**", "car"}, true},
		{jsonc.Path{"**", "bar"}, false},
		{jsonc.Path{"foo", "**"}, true},
		{jsonc.Path{"car"}, false},
		{jsonc.Path{0}, false},
		{jsonc.Path{"foo", "car", "x"}, false},
	}
	for _, test := range tests {
		if got := loc.Matches(test.pattern); got != test.want {
			t.Errorf("Matches %v: got %v, want %v", test.pattern, got, test.want)
		}
	}
}

func TestLocationMatchesIndex(t *testing.T) {
	loc := markerLocation(t, `{"a": [true, |false]}`)
	if diff := cmp.Diff(jsonc.Path{"a", 1}, loc.Path); diff != "" {
		t.Fatalf("Path: (-want, +got)\n%s", diff)
	}
	tests := []struct {
		pattern jsonc.Path
		want    bool
	}{
		{jsonc.Path{"a", 1}, true},
		{jsonc.Path{"a", "*"}, true},
		{jsonc.Path{"a", 0}, false},
	}
	for _, test := range tests {
		if got := loc.Matches(test.pattern); got != test.want {
			t.Errorf("Matches %v: got %v, want %v", test.pattern, got, test.want)
		}
	}
}

// Path segments other than strings and ints are programmer errors.
func TestInvalidSegments(t *testing.T) {
	loc := jsonc.GetLocation(`[0]`, 1)
	mtest.MustPanic(t, func() { loc.Matches(jsonc.Path{1.5}) })
	mtest.MustPanic(t, func() { _ = jsonc.Path{true}.String() })
}
