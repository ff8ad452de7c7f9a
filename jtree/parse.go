package jtree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Parse reads one JSON document into a Value. Object member order is
// preserved and duplicate keys are kept, which map-based decoding would
// discard.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}

	// Anything after the first document is an error.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("jtree: trailing data after JSON document")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, fmt.Errorf("jtree: unexpected end of input")
		}
		return Value{}, fmt.Errorf("jtree: %w", err)
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("jtree: %w", err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
	}
	return Value{}, fmt.Errorf("jtree: unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (Value, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("jtree: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jtree: object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Field(key, val))
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("jtree: %w", err)
	}
	return Object(members...), nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("jtree: %w", err)
	}
	return Array(elems...), nil
}
