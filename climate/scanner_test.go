package climate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeEpochConversion(t *testing.T) {
	// Hour 0 of the reanalysis axis is 1900-01-01 00:00 UTC.
	got := time.Unix(0*3600+unixSecs1900, 0).UTC()
	assert.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	// Round-trips through the hour offset for a monthly timestamp.
	want := time.Date(2000, time.October, 1, 0, 0, 0, 0, time.UTC)
	hours := int64(want.Sub(got).Hours())
	assert.Equal(t, want, time.Unix(hours*3600+unixSecs1900, 0).UTC())
}

func TestUnpackCube(t *testing.T) {
	in := [][][]int16{{{100, -32767, 200}}}
	out := unpackCube(in, 0.01, 250, -32767)

	assert.InDelta(t, 251.0, out[0][0][0], 1e-9)
	assert.True(t, math.IsNaN(out[0][0][1]), "fill values unpack to NaN")
	assert.InDelta(t, 252.0, out[0][0][2], 1e-9)
}

func TestUnpackCubeIdentity(t *testing.T) {
	in := [][][]int16{{{7, 8}}}
	out := unpackCube(in, 1, 0, math.MinInt16)
	assert.Equal(t, 7.0, out[0][0][0])
	assert.Equal(t, 8.0, out[0][0][1])
}

func TestCube32to64(t *testing.T) {
	in := [][][]float32{{{1.5, 2.5}, {3.5, 4.5}}}
	out := cube32to64(in)
	assert.Equal(t, 1.5, out[0][0][0])
	assert.Equal(t, 4.5, out[0][1][1])
}

func TestPackingDefaults(t *testing.T) {
	scale, offset, fill := packing(nil)
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, 0.0, offset)
	assert.Equal(t, int16(math.MinInt16), fill)
}

func TestAttrFloat(t *testing.T) {
	assert.Equal(t, 0.5, attrFloat(0.5, 1))
	assert.InDelta(t, 0.25, attrFloat(float32(0.25), 1), 1e-9)
	assert.Equal(t, 2.0, attrFloat([]float64{2, 3}, 1))
	assert.InDelta(t, 4.0, attrFloat([]float32{4}, 1), 1e-9)
	assert.Equal(t, 1.0, attrFloat("bad", 1), "unknown types fall back")
	assert.Equal(t, 1.0, attrFloat([]float64{}, 1))
}
