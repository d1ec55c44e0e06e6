package solid

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantsAgree(t *testing.T) {
	assert.Equal(t, 36, VerticesPerSolid)
	assert.Equal(t, 48, BytesPerVertex)
	assert.Equal(t, VerticesPerSolid*BytesPerVertex, BytesPerSolid)
	assert.Equal(t, BytesPerVertex, LayoutFull.BytesPerVertex())
	assert.Equal(t, 32, LayoutNoTint.BytesPerVertex())
	assert.Equal(t, 28, LayoutMinimal.BytesPerVertex())
}

func TestFullAttributeOffsets(t *testing.T) {
	attrs := Attributes(LayoutFull)
	require.Len(t, attrs, 4)

	assert.Equal(t, Attribute{Name: AttributePosition, Location: 0, Components: 3, Offset: PositionOffset}, attrs[0])
	assert.Equal(t, Attribute{Name: AttributeColor, Location: 1, Components: 4, Offset: ColorOffset}, attrs[1])
	assert.Equal(t, Attribute{Name: AttributeTint, Location: 2, Components: 4, Offset: TintOffset}, attrs[2])
	assert.Equal(t, Attribute{Name: AttributePhase, Location: 3, Components: 1, Offset: PhaseOffset}, attrs[3])

	last := attrs[len(attrs)-1]
	assert.Equal(t, uint64(BytesPerVertex), last.Offset+uint64(last.Components*4))
}

func TestReducedAttributeOffsets(t *testing.T) {
	noTint := Attributes(LayoutNoTint)
	require.Len(t, noTint, 3)
	assert.Equal(t, AttributePhase, noTint[2].Name)
	assert.Equal(t, uint64(28), noTint[2].Offset)
	assert.Equal(t, uint32(2), noTint[2].Location)

	minimal := Attributes(LayoutMinimal)
	require.Len(t, minimal, 2)
	assert.Equal(t, AttributeColor, minimal[1].Name)
	assert.Equal(t, uint64(12), minimal[1].Offset)
}

func TestAttributeOffsetsMatchBytes(t *testing.T) {
	s := NewSolid(WithPosition(common.Vec3{2, 0, 0}), WithPhase(9), WithTint(common.Color{0.5, 0.5, 0.5, 1}))
	buf := s.Bytes()
	read := func(off uint64) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}

	// first vertex: corner (-1,-1,-1) translated by (2,0,0)
	assert.Equal(t, float32(1), read(PositionOffset))
	assert.Equal(t, float32(1), read(ColorOffset))
	assert.Equal(t, float32(0.5), read(TintOffset))
	assert.Equal(t, float32(9), read(PhaseOffset))

	// second vertex starts one stride later
	assert.Equal(t, float32(9), read(BytesPerVertex+PhaseOffset))
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{LayoutFull, LayoutNoTint, LayoutMinimal} {
		parsed, err := ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	def, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutFull, def)

	_, err = ParseLayout("dedup")
	assert.Error(t, err)
}
