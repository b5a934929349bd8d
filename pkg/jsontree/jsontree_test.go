package jsontree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesMemberOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":2,"m":{"second":true,"first":false}}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind)

	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	nested, ok := v.Get("m")
	require.True(t, ok)
	assert.Equal(t, "second", nested.Members[0].Key)
	assert.Equal(t, "first", nested.Members[1].Key)
}

func TestParseScalars(t *testing.T) {
	v, err := Parse([]byte(`{"s":"str","n":4.5,"b":true,"nil":null,"arr":[1,2]}`))
	require.NoError(t, err)

	s, _ := v.Get("s")
	assert.Equal(t, KindString, s.Kind)
	assert.Equal(t, "str", s.String)

	n, _ := v.Get("n")
	assert.Equal(t, KindNumber, n.Kind)
	assert.Equal(t, 4.5, n.Number)

	b, _ := v.Get("b")
	assert.Equal(t, KindBool, b.Kind)
	assert.True(t, b.Bool)

	null, _ := v.Get("nil")
	assert.Equal(t, KindNull, null.Kind)

	arr, _ := v.Get("arr")
	require.Equal(t, KindArray, arr.Kind)
	assert.Len(t, arr.Elems, 2)
}

func TestParseTooDeep(t *testing.T) {
	depth := maxDepth + 10
	doc := strings.Repeat(`{"a":`, depth) + "1" + strings.Repeat("}", depth)

	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrTooDeep)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	require.Error(t, err)
}

func TestWalkDocumentOrder(t *testing.T) {
	v, err := Parse([]byte(`{"a":{"target":"one"},"b":[{"target":"two"}],"target":"three"}`))
	require.NoError(t, err)

	var found []string
	Walk(v, func(key string, val Value) bool {
		if key == "target" && val.Kind == KindString {
			found = append(found, val.String)
		}
		return true
	})

	assert.Equal(t, []string{"one", "two", "three"}, found)
}

func TestWalkSkipSubtree(t *testing.T) {
	v, err := Parse([]byte(`{"skip":{"target":"hidden"},"target":"visible"}`))
	require.NoError(t, err)

	var found []string
	Walk(v, func(key string, val Value) bool {
		if key == "skip" {
			return false
		}
		if key == "target" && val.Kind == KindString {
			found = append(found, val.String)
		}
		return true
	})

	assert.Equal(t, []string{"visible"}, found)
}
