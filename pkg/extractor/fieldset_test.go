package extractor_test

import (
	"encoding/json"
	"testing"

	"github.com/qwazr/extractor-sub000/pkg/extractor"

	"github.com/stretchr/testify/require"
)

func TestFieldSetOrder(t *testing.T) {
	t.Parallel()

	set := extractor.NewFieldSet()
	set.Add("zebra", "z")
	set.Add("alpha", "a")
	set.Add("mango", "m")
	set.Add("alpha", "a2")

	require.Equal(t, []string{"zebra", "alpha", "mango"}, set.Names())
	require.Equal(t, []any{"a", "a2"}, set.Get("alpha"))
}

func TestFieldSetAddAndSet(t *testing.T) {
	t.Parallel()

	set := extractor.NewFieldSet()
	set.Add("field", "one")
	set.Add("field", "two")

	require.Len(t, set.Get("field"), 2)

	set.Set("field", "only")

	require.Equal(t, []any{"only"}, set.Get("field"))

	first, ok := set.First("field")
	require.True(t, ok)
	require.Equal(t, "only", first)

	_, ok = set.First("missing")
	require.False(t, ok)
}

func TestFieldSetMarshal(t *testing.T) {
	t.Parallel()

	set := extractor.NewFieldSet()
	set.Add("b", "1")
	set.Add("a", "2")
	set.Add("a", "3")

	data, err := json.Marshal(set)
	require.NoError(t, err)

	require.JSONEq(t, `{"b":"1","a":["2","3"]}`, string(data))

	// single values stay scalars, multiple values become arrays,
	// and insertion order is preserved
	require.Equal(t, `{"b":"1","a":["2","3"]}`, string(data))
}

func TestFieldSetUnmarshal(t *testing.T) {
	t.Parallel()

	var set extractor.FieldSet

	require.NoError(t, json.Unmarshal([]byte(`{"b":"1","a":["2","3"]}`), &set))

	require.Equal(t, []string{"b", "a"}, set.Names())
	require.Equal(t, []any{"1"}, set.Get("b"))
	require.Equal(t, []any{"2", "3"}, set.Get("a"))
}
