package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonfix/internal/jsonv"
)

func parse(t *testing.T, s string) jsonv.Value {
	t.Helper()
	v, err := jsonv.Parse(s)
	require.NoError(t, err)
	return v
}

func TestCheckSortedKeys(t *testing.T) {
	asc := parse(t, `{"a":{"x":1,"y":[{"m":0,"n":0}]},"b":2}`)
	assert.NoError(t, CheckSortedKeys(asc, jsonv.Ascending))
	assert.Error(t, CheckSortedKeys(asc, jsonv.Descending))
	assert.NoError(t, CheckSortedKeys(asc, jsonv.Unsorted))

	nested := parse(t, `{"a":[{"n":0,"m":0}]}`)
	err := CheckSortedKeys(nested, jsonv.Ascending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$.a[0]")
}

func TestCheckSameContent(t *testing.T) {
	a := parse(t, `{"a":1,"b":[true,"x"]}`)
	b := parse(t, `{"b":[true,"x"],"a":1}`)
	assert.NoError(t, CheckSameContent(a, b, true))
	assert.Error(t, CheckSameContent(a, b, false))

	c := parse(t, `{"a":1,"b":["x",true]}`)
	assert.Error(t, CheckSameContent(a, c, true))

	d := parse(t, `{"a":1.5,"b":[true,"x"]}`)
	assert.Error(t, CheckSameContent(a, d, true))
}
