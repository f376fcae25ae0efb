package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coordviz/parcoords/pkg/errors"
)

// Record is one dataset row: an ordered mapping from column name to value.
// Key order matches the JSON object's insertion order.
type Record struct {
	keys []string
	vals map[string]Value
}

// Keys returns the record's column names in insertion order.
// The returned slice must not be modified.
func (r Record) Keys() []string { return r.keys }

// Get returns the value for a column. Absent columns return a missing value.
func (r Record) Get(name string) Value {
	if v, ok := r.vals[name]; ok {
		return v
	}
	return Missing()
}

// Len returns the number of columns in the record.
func (r Record) Len() int { return len(r.keys) }

// Decode reads a JSON array of flat objects from r and returns the records.
// Object key order is preserved, which requires token-level decoding since
// encoding/json maps do not retain insertion order.
//
// Field values must be strings, numbers, booleans, or null; nested arrays
// and objects are rejected. Booleans are treated as text ("true"/"false").
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var records []Record
	for dec.More() {
		rec, err := decodeRecord(dec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeRecord(dec *json.Decoder) (Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return Record{}, err
	}

	rec := Record{vals: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, errors.Wrap(errors.ErrCodeParse, err, "read field name")
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, errors.New(errors.ErrCodeParse, "expected field name, got %v", tok)
		}

		val, err := decodeValue(dec, key)
		if err != nil {
			return Record{}, err
		}

		// First occurrence wins for duplicate keys
		if _, seen := rec.vals[key]; !seen {
			rec.keys = append(rec.keys, key)
			rec.vals[key] = val
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func decodeValue(dec *json.Decoder, key string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeParse, err, "read value for %q", key)
	}

	switch v := tok.(type) {
	case nil:
		return Missing(), nil
	case string:
		return Text(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeParse, err, "number %q for %q", v.String(), key)
		}
		return Number(f), nil
	case bool:
		return Text(fmt.Sprintf("%t", v)), nil
	case json.Delim:
		return Value{}, errors.New(errors.ErrCodeParse, "field %q has nested %v, only flat values are supported", key, v)
	default:
		return Value{}, errors.New(errors.ErrCodeParse, "field %q has unsupported value %v", key, tok)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "decode dataset")
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.New(errors.ErrCodeParse, "expected %q, got %v", want.String(), tok)
	}
	return nil
}
