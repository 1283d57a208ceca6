package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Indent is the indentation used for every file the jobs write.
const Indent = "    "

// Pretty renders a JSON document with four-space indentation. Escaped string
// contents such as \u6a5f are written as literal characters; numbers keep
// their original text.
func Pretty(compact []byte) ([]byte, error) {
	literal, err := unescapeStrings(compact)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, literal, "", Indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// unescapeStrings re-encodes every string token of a valid JSON document that
// contains an escape sequence, so only the escapes JSON requires remain.
func unescapeStrings(data []byte) ([]byte, error) {
	if bytes.IndexByte(data, '\\') < 0 {
		return data, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for i := 0; i < len(data); {
		if data[i] != '"' {
			buf.WriteByte(data[i])
			i++
			continue
		}
		end, escaped := stringEnd(data, i)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated string", ErrMalformed)
		}
		token := data[i : end+1]
		i = end + 1
		if !escaped {
			buf.Write(token)
			continue
		}
		var s string
		if err := json.Unmarshal(token, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := writeString(&buf, s); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// stringEnd returns the index of the quote closing the string that opens at
// start, and whether the string contains a backslash.
func stringEnd(data []byte, start int) (int, bool) {
	escaped := false
	for j := start + 1; j < len(data); j++ {
		switch data[j] {
		case '\\':
			escaped = true
			j++
		case '"':
			return j, escaped
		}
	}
	return -1, escaped
}

// Encode returns the pretty-printed form of rec.
func Encode(rec *Record) ([]byte, error) {
	compact, err := rec.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return Pretty(compact)
}

// EncodeArray returns the pretty-printed JSON array of the given values.
func EncodeArray(values []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(v)
	}
	buf.WriteByte(']')
	return Pretty(buf.Bytes())
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
