// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jsonc"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

var opts2 = jsonc.FormatOptions{TabSize: 2, InsertSpaces: true, EOL: "\n"}

// applyFormat formats text and returns the result, verifying along the
// way that the edits are sorted and non-overlapping and that formatting
// is idempotent.
func applyFormat(t *testing.T, text string, opts jsonc.FormatOptions) string {
	t.Helper()
	edits := jsonc.Format(text, opts)
	checkEditOrder(t, edits)
	got, err := jsonc.ApplyEdits(text, edits)
	if err != nil {
		t.Fatalf("ApplyEdits: unexpected error: %v", err)
	}
	again, err := jsonc.ApplyEdits(got, jsonc.Format(got, opts))
	if err != nil {
		t.Fatalf("ApplyEdits: unexpected error: %v", err)
	} else if again != got {
		t.Errorf("Format not idempotent:\n first: %#q\nsecond: %#q", got, again)
	}
	return got
}

func checkEditOrder(t *testing.T, edits []jsonc.Edit) {
	t.Helper()
	for i := 1; i < len(edits); i++ {
		if edits[i-1].Offset+edits[i-1].Length > edits[i].Offset {
			t.Errorf("Edits overlap: %v then %v", edits[i-1], edits[i])
		}
	}
}

// checkHuJSON verifies that formatted output is still a valid JWCC
// document, using the hujson parser as an independent referee.
func checkHuJSON(t *testing.T, text string) {
	t.Helper()
	if _, err := hujson.Parse([]byte(text)); err != nil {
		t.Errorf("Output is not valid HuJSON: %v\n%s", err, text)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{"x" : 1}`, "{\n  \"x\": 1\n}"},
		{"{}", "{}"},
		{"[]", "[]"},
		{" [ ] ", "[]"},
		{"null", "null"},
		{`"a string"`, `"a string"`},
		{`[1,2]`, "[\n  1,\n  2\n]"},
		{`[ {"a":true,"b":null} ]`, "[\n  {\n    \"a\": true,\n    \"b\": null\n  }\n]"},
		{"{\n\"a\":1\n}", "{\n  \"a\": 1\n}"},
		{"  {\"a\":1}", "{\n  \"a\": 1\n}"},

		// Comments keep their text and their line positions.
		{"{\"a\":1 // c\n}", "{\n  \"a\": 1 // c\n}"},
		{`{"a": /*x*/ 1}`, "{\n  \"a\": /*x*/ 1\n}"},
		{"// top\n{\"a\":1}", "// top\n{\n  \"a\": 1\n}"},
		{"{\n// alone\n\"a\":1\n}", "{\n  // alone\n  \"a\": 1\n}"},

		// Collapsing extra blank lines is the default.
		{"[1,\n\n\n2]", "[\n  1,\n  2\n]"},
	}
	for _, test := range tests {
		got := applyFormat(t, test.input, opts2)
		if got != test.want {
			t.Errorf("Format %#q:\n got %#q\nwant %#q", test.input, got, test.want)
		}
		checkHuJSON(t, got)
	}
}

func TestFormatTabs(t *testing.T) {
	got := applyFormat(t, `{"a":[1]}`, jsonc.FormatOptions{InsertSpaces: false, EOL: "\n"})
	want := "{\n\t\"a\": [\n\t\t1\n\t]\n}"
	if got != want {
		t.Errorf("Format: got %#q, want %#q", got, want)
	}
}

func TestFormatKeepLines(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"{\"settings\":\n\n\n{\"foo\":1}\n}",
			"{ \"settings\":\n\n\n  { \"foo\": 1 }\n}"},
		{`[1,2]`, "[ 1, 2 ]"},
		{"[1,\n\n2]", "[ 1,\n\n  2 ]"},
		{"{\"a\": 1,\n\"b\": 2}", "{ \"a\": 1,\n  \"b\": 2 }"},
		{"{}", "{}"},
	}
	opts := opts2
	opts.KeepLines = true
	for _, test := range tests {
		got := applyFormat(t, test.input, opts)
		if got != test.want {
			t.Errorf("Format %#q:\n got %#q\nwant %#q", test.input, got, test.want)
		}
		checkHuJSON(t, got)
	}
}

func TestFormatFinalNewline(t *testing.T) {
	opts := opts2
	opts.InsertFinalNewline = true
	tests := []struct {
		input, want string
	}{
		{"{}", "{}\n"},
		{"{}\n", "{}\n"},
		{"1", "1\n"},
	}
	for _, test := range tests {
		if got := applyFormat(t, test.input, opts); got != test.want {
			t.Errorf("Format %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestFormatEOLDetection(t *testing.T) {
	// A CRLF document keeps CRLF line endings regardless of the option.
	got := applyFormat(t, "{\r\n\"a\":1}", opts2)
	want := "{\r\n  \"a\": 1\r\n}"
	if got != want {
		t.Errorf("Format: got %#q, want %#q", got, want)
	}
}

func TestFormatRange(t *testing.T) {
	const input = "{\n\"a\":1,\n\"b\":  2\n}"
	rng := jsonc.Range{Offset: strings.Index(input, `"b"`), Length: 7}
	edits := jsonc.FormatRange(input, rng, opts2)
	checkEditOrder(t, edits)
	got, err := jsonc.ApplyEdits(input, edits)
	if err != nil {
		t.Fatalf("ApplyEdits: unexpected error: %v", err)
	}
	// Only the covered line is touched; "a" stays unindented.
	want := "{\n\"a\":1,\n\"b\": 2\n}"
	if got != want {
		t.Errorf("FormatRange: got %#q, want %#q", got, want)
	}
}

// Malformed input is passed through rather than corrupted.
func TestFormatMalformed(t *testing.T) {
	for _, input := range []string{
		"hello",
		"{\"a\": tru}",
		`"unterminated`,
	} {
		edits := jsonc.Format(input, opts2)
		got, err := jsonc.ApplyEdits(input, edits)
		if err != nil {
			t.Fatalf("ApplyEdits: unexpected error: %v", err)
		}
		if v1, _ := jsonc.Parse(input, nil); v1 != nil {
			v2, _ := jsonc.Parse(got, nil)
			if diff := cmp.Diff(v1, v2); diff != "" {
				t.Errorf("Format %#q changed the value: %s", input, diff)
			}
		}
	}
	if edits := jsonc.Format("hello", opts2); len(edits) != 0 {
		t.Errorf("Format of unknown input: got %d edits, want 0", len(edits))
	}
}
