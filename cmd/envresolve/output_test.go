package main

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ab0utbla-k/envresolver/convert"
	"github.com/ab0utbla-k/envresolver/resolver"
)

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "1m0s", renderValue(time.Minute))
	assert.Equal(t, "2021-01-01T12:34:56Z", renderValue(time.Date(2021, 1, 1, 12, 34, 56, 0, time.UTC)))
	assert.Equal(t, []any{"1s", "2s"}, renderValue([]time.Duration{time.Second, 2 * time.Second}))
	assert.Equal(t, 3.5, renderValue(3.5))

	root := &convert.XMLElement{Text: "v"}
	root.XMLName.Local = "k"
	assert.Equal(t, "<k>v</k>", renderValue(root))
}

func TestRenderValue_NonFiniteFloats(t *testing.T) {
	assert.Equal(t, "NaN", renderValue(math.NaN()))
	assert.Equal(t, "+Inf", renderValue(math.Inf(1)))
	assert.Equal(t, []any{0.5, "-Inf"}, renderValue([]float64{0.5, math.Inf(-1)}))
	assert.Equal(t, map[string]any{"r": "NaN"}, renderValue(map[string]any{"r": math.NaN()}))

	var buf bytes.Buffer
	require.NoError(t, writeValues(&buf, resolver.Values{"rate": math.NaN(), "caps": []float64{math.Inf(1)}}))
	assert.JSONEq(t, `{"caps": ["+Inf"], "rate": "NaN"}`, buf.String())
}

func TestWriteValues_SortedKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValues(&buf, resolver.Values{"b": int64(2), "a": "x"}))

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte(`"a"`)), bytes.Index([]byte(out), []byte(`"b"`)))
	assert.JSONEq(t, `{"a": "x", "b": 2}`, out)
}

func TestWriteValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, "plain"))
	assert.Equal(t, "plain\n", buf.String())

	buf.Reset()
	require.NoError(t, writeValue(&buf, []int64{1, 2}))
	assert.Equal(t, "[1,2]\n", buf.String())
}
