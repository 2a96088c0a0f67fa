// Package encoding decodes the legacy text encodings found in imported model
// files.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// EUCKRToUTF8 converts EUC-KR encoded bytes to a UTF-8 string.
// Plain ASCII and input that is already valid UTF-8 with multi-byte runes is
// returned unchanged; input that fails to decode is returned as-is.
func EUCKRToUTF8(data []byte) string {
	if isASCII(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil || !utf8.Valid(result) {
		return string(data)
	}
	return string(result)
}

// FixedStringToUTF8 converts a fixed-size, null-terminated EUC-KR field to
// a UTF-8 string.
func FixedStringToUTF8(data []byte) string {
	if nullIdx := bytes.IndexByte(data, 0); nullIdx >= 0 {
		data = data[:nullIdx]
	}
	return EUCKRToUTF8(data)
}

// UTF8ToEUCKR converts a UTF-8 string to EUC-KR bytes.
// Returns the original bytes if the string has no EUC-KR representation.
func UTF8ToEUCKR(s string) []byte {
	result, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
