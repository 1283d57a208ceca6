package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Field names the jobs read or write.
const (
	FieldCardID     = "card_id"
	FieldNameRuby   = "name_ruby"
	FieldSimilarIDs = "similar_ids"
)

var (
	// ErrMalformed reports data that is not valid JSON.
	ErrMalformed = errors.New("invalid JSON")
	// ErrNotObject reports a top-level JSON value that is not an object.
	ErrNotObject = errors.New("top-level value is not a JSON object")
	// ErrMissingID reports an absent, empty, or non-scalar card_id.
	ErrMissingID = errors.New("card_id missing or empty")
	// ErrMissingName reports an absent, empty, or non-string name_ruby.
	ErrMissingName = errors.New("name_ruby missing or empty")
)

type field struct {
	key   string
	value json.RawMessage
}

// Record is a JSON object that remembers its field order.
type Record struct {
	fields []field
}

// Parse decodes data as a single JSON object. Invalid JSON yields an error
// wrapping ErrMalformed; valid JSON of another shape yields ErrNotObject.
func Parse(data []byte) (*Record, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	rec := &Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// Duplicate keys keep their first position and take the last value.
		rec.Set(key, value)
	}
	return rec, nil
}

// Elements validates data and returns the values it contributes to an
// aggregate: the elements of a top-level array, or the value itself.
func Elements(data []byte) ([]json.RawMessage, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '[' {
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return values, nil
}

func validate(data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return ErrMalformed
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Keys returns field names in document order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns the raw JSON value stored under key.
func (r *Record) Get(key string) (json.RawMessage, bool) {
	for _, f := range r.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing key in place or appends a new key.
func (r *Record) Set(key string, value json.RawMessage) {
	for i := range r.fields {
		if r.fields[i].key == key {
			r.fields[i].value = value
			return
		}
	}
	r.fields = append(r.fields, field{key: key, value: value})
}

// ID returns the record identifier.
func (r *Record) ID() (ID, error) {
	raw, ok := r.Get(FieldCardID)
	if !ok {
		return ID{}, ErrMissingID
	}
	return ParseID(raw)
}

// Name returns the display name compared for similarity.
func (r *Record) Name() (string, error) {
	raw, ok := r.Get(FieldNameRuby)
	if !ok {
		return "", ErrMissingName
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return "", ErrMissingName
	}
	return name, nil
}

// SetSimilarIDs stores the neighbor list, keeping every identifier's JSON type.
func (r *Record) SetSimilarIDs(ids []ID) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(id.raw)
	}
	buf.WriteByte(']')
	r.Set(FieldSimilarIDs, json.RawMessage(buf.Bytes()))
}

// SimilarIDs returns the identifiers currently stored in similar_ids.
func (r *Record) SimilarIDs() ([]ID, error) {
	raw, ok := r.Get(FieldSimilarIDs)
	if !ok {
		return nil, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FieldSimilarIDs, err)
	}
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		id, err := ParseID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MarshalJSON renders the record compactly with fields in document order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, f.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if len(f.value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ID is a card identifier. Strings and numbers are both accepted and kept in
// their original JSON form. Two IDs are equal when their keys are: strings
// compare by decoded text and numbers by value, so 1 and 1.0 are one card
// while "1" and 1 stay distinct.
type ID struct {
	raw json.RawMessage
	key string
}

// ParseID validates a raw card_id value.
func ParseID(raw json.RawMessage) (ID, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return ID{}, ErrMissingID
	}
	text := compact.Bytes()
	if len(text) == 0 {
		return ID{}, ErrMissingID
	}
	switch text[0] {
	case '"':
		var s string
		if err := json.Unmarshal(text, &s); err != nil || s == "" {
			return ID{}, ErrMissingID
		}
		return StringID(s), nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(text), 64)
		if err != nil || f == 0 {
			return ID{}, ErrMissingID
		}
		return ID{raw: json.RawMessage(text), key: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	default:
		return ID{}, ErrMissingID
	}
}

// StringID builds a string identifier.
func StringID(s string) ID {
	var buf bytes.Buffer
	_ = writeString(&buf, s)
	return ID{raw: json.RawMessage(buf.Bytes()), key: buf.String()}
}

// Key returns the comparison key: the canonical JSON string for string IDs,
// the shortest decimal form for numeric IDs.
func (id ID) Key() string { return id.key }

// IsZero reports whether id was never set.
func (id ID) IsZero() bool { return id.key == "" }

// String returns the identifier for display, without JSON quoting.
func (id ID) String() string {
	if len(id.raw) > 0 && id.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(id.raw, &s); err == nil {
			return s
		}
	}
	if len(id.raw) > 0 {
		return string(id.raw)
	}
	return id.key
}

// MarshalJSON writes the identifier in its original JSON form.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return id.raw, nil
}
