// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the content of a JSON string literal, with the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents.  A
// \uXXXX high surrogate followed by a \uXXXX low surrogate decodes as a
// single code point.  Invalid escapes and unpaired surrogate halves are
// replaced by the Unicode replacement rune; Unquote reports an error only
// for an escape sequence truncated by the end of the input.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(r) {
				if r2, rest2, ok := decodeSurrogateTail(src); ok {
					if v := utf16.DecodeRune(r, r2); v != utf8.RuneError {
						dec = utf8.AppendRune(dec, v)
						src = rest2
						continue
					}
				}
				r = utf8.RuneError
			}
			dec = utf8.AppendRune(dec, r)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
	}
	return dec, nil
}

// decodeHex4 decodes four hexadecimal digits from the front of src.  It
// reports an error if src is too short, and yields the replacement rune
// if the digits are not valid hexadecimal.
func decodeHex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		d, ok := hexValue(src.At(i))
		if !ok {
			return utf8.RuneError, src.SliceFrom(4), nil
		}
		v = v*16 + rune(d)
	}
	return v, src.SliceFrom(4), nil
}

// decodeSurrogateTail decodes a \uXXXX escape from the front of src if
// one is present and well-formed.
func decodeSurrogateTail(src mem.RO) (rune, mem.RO, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, false
	}
	r, rest, err := decodeHex4(src.SliceFrom(2))
	if err != nil || r == utf8.RuneError {
		return 0, src, false
	}
	return r, rest, true
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
