package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanAndValue(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["a.png","b.png"]`)))
	assert.Equal(t, StringList{"a.png", "b.png"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Equal(t, StringList{}, list)

	v, err := StringList{"x"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, list.Scan(42))
}

func TestJSONObjectScanAndValue(t *testing.T) {
	var obj JSONObject
	require.NoError(t, obj.Scan(`{"voltaje":"220V","fases":3}`))
	assert.Equal(t, "220V", obj["voltaje"])
	assert.Equal(t, float64(3), obj["fases"])

	require.NoError(t, obj.Scan(""))
	assert.Empty(t, obj)

	v, err := JSONObject(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	assert.Error(t, obj.Scan(`not-json`))
}
