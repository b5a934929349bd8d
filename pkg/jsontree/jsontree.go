// Package jsontree decodes arbitrary JSON into a generic tree that keeps
// object members in document order, which encoding/json maps throw away.
package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const maxDepth = 512

var ErrTooDeep = errors.New("json tree exceeds maximum depth")

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

type Value struct {
	Kind    Kind
	Bool    bool
	Number  float64
	String  string
	Elems   []Value
	Members []Member
}

// Member is a single object entry. Members preserve the order in which
// keys appeared in the source document.
type Member struct {
	Key   string
	Value Value
}

// Parse decodes data into a Value. Input nested deeper than maxDepth
// levels fails with ErrTooDeep.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	v, err := parseValue(dec, tok, 0)
	if err != nil {
		return Value{}, err
	}

	return v, nil
}

func parseValue(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, ErrTooDeep
	}

	switch t := tok.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case string:
		return Value{Kind: KindString, String: t}, nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, err
		}

		return Value{Kind: KindNumber, Number: n}, nil
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec, depth)
		case '{':
			return parseObject(dec, depth)
		}
	}

	return Value{}, fmt.Errorf("unexpected token: %v", tok)
}

func parseArray(dec *json.Decoder, depth int) (Value, error) {
	v := Value{Kind: KindArray}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		elem, err := parseValue(dec, tok, depth+1)
		if err != nil {
			return Value{}, err
		}

		v.Elems = append(v.Elems, elem)
	}

	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return v, nil
}

func parseObject(dec *json.Decoder, depth int) (Value, error) {
	v := Value{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key: %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		val, err := parseValue(dec, valTok, depth+1)
		if err != nil {
			return Value{}, err
		}

		v.Members = append(v.Members, Member{Key: key, Value: val})
	}

	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return v, nil
}

// Get returns the value of the first member with the given key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}

	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// Walk traverses the tree depth-first in document order, calling visit for
// every object member. Returning false from visit stops descent into that
// member's value but continues the traversal elsewhere.
func Walk(v Value, visit func(key string, val Value) bool) {
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			if visit(m.Key, m.Value) {
				Walk(m.Value, visit)
			}
		}
	case KindArray:
		for _, elem := range v.Elems {
			Walk(elem, visit)
		}
	}
}
