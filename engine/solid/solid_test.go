package solid

import (
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedArea returns twice the signed area of the triangle projected onto axes a and b.
func signedArea(p0, p1, p2 common.Vec3, a, b int) float32 {
	return (p1[a]-p0[a])*(p2[b]-p0[b]) - (p1[b]-p0[b])*(p2[a]-p0[a])
}

func TestNewSolidDefaults(t *testing.T) {
	s := NewSolid()

	assert.Equal(t, common.Vec3{}, s.Position())
	assert.Equal(t, common.Vec3{1, 1, 1}, s.Size())
	assert.Equal(t, common.ColorWhite, s.Tint())
	assert.Equal(t, float32(0), s.Phase())
	assert.Equal(t, LayoutFull, s.Layout())
	assert.Equal(t, common.ColorRed, s.FaceColor(FaceXY))
	assert.Equal(t, common.ColorGreen, s.FaceColor(FaceXZ))
	assert.Equal(t, common.ColorBlue, s.FaceColor(FaceYZ))
	assert.Equal(t, BytesPerSolid, s.Len())
}

func TestGenerateVertexCount(t *testing.T) {
	for _, layout := range []Layout{LayoutFull, LayoutNoTint, LayoutMinimal} {
		t.Run(layout.String(), func(t *testing.T) {
			s := NewSolid(WithPosition(common.Vec3{3, -2, 7}), WithPhase(1.25), WithLayout(layout))
			assert.Len(t, s.Bytes(), VerticesPerSolid*layout.BytesPerVertex())
			assert.Len(t, s.Vertices(), VerticesPerSolid)
		})
	}
}

func TestFirstVertexAtOrigin(t *testing.T) {
	s := NewSolid()
	v := s.Vertices()[0]

	assert.Equal(t, common.Vec3{-1, -1, -1}, v.Position)
	assert.Equal(t, common.Color{1, 0, 0, 1}, v.Color)
	assert.Equal(t, common.Color{1, 1, 1, 1}, v.Tint)
	assert.Equal(t, float32(0), v.Phase)
}

func TestFaceWindingFlipsWithDirection(t *testing.T) {
	vertices := NewSolid().Vertices()

	areas := make([][2]float32, len(Faces))
	for fi, face := range Faces {
		base := fi * 6
		for tri := range 2 {
			p := vertices[base+tri*3 : base+tri*3+3]
			areas[fi][tri] = signedArea(p[0].Position, p[1].Position, p[2].Position, face.A, face.B)
			require.NotZero(t, areas[fi][tri], "degenerate triangle on face %d", fi)
		}
		assert.Equal(t, areas[fi][0] > 0, areas[fi][1] > 0, "both triangles of face %d must share a winding", fi)
	}

	for fi := 0; fi < len(Faces); fi += 2 {
		neg, pos := areas[fi][0], areas[fi+1][0]
		assert.Equal(t, float32(-1), Faces[fi].Direction)
		assert.Equal(t, float32(1), Faces[fi+1].Direction)
		assert.True(t, neg*pos < 0, "face pair %s must wind oppositely", Faces[fi].Key)
	}
}

func TestFixedAxisHoldsDirection(t *testing.T) {
	vertices := NewSolid().Vertices()
	for fi, face := range Faces {
		for _, v := range vertices[fi*6 : fi*6+6] {
			assert.Equal(t, face.Direction, v.Position[face.Fixed])
		}
	}
}

func TestFaceColorConsistency(t *testing.T) {
	colors := map[FaceKey]common.Color{
		FaceXY: {0.1, 0.2, 0.3, 1},
		FaceXZ: {0.4, 0.5, 0.6, 1},
		FaceYZ: {0.7, 0.8, 0.9, 1},
	}
	vertices := NewSolid(WithFaceColors(colors)).Vertices()

	for fi, face := range Faces {
		for _, v := range vertices[fi*6 : fi*6+6] {
			assert.Equal(t, colors[face.Key], v.Color, "face %d (%s, %v)", fi, face.Key, face.Direction)
		}
	}
}

func TestWithFaceColorKeepsOtherDefaults(t *testing.T) {
	magenta := common.Color{1, 0, 1, 1}
	s := NewSolid(WithFaceColor(FaceXZ, magenta))

	assert.Equal(t, magenta, s.FaceColor(FaceXZ))
	assert.Equal(t, common.ColorRed, s.FaceColor(FaceXY))
	assert.Equal(t, common.ColorBlue, s.FaceColor(FaceYZ))
}

func TestWithFaceColorsCopiesInput(t *testing.T) {
	colors := map[FaceKey]common.Color{FaceXY: common.ColorWhite}
	s := NewSolid(WithFaceColors(colors))
	colors[FaceXY] = common.ColorBlue

	assert.Equal(t, common.ColorWhite, s.FaceColor(FaceXY))
	assert.Equal(t, common.ColorGreen, s.FaceColor(FaceXZ))
}

func TestTranslateThenScale(t *testing.T) {
	s := NewSolid(
		WithPosition(common.Vec3{1, 2, 3}),
		WithSize(common.Vec3{2, 3, 4}),
	)
	v := s.Vertices()[0]

	// corner (-1,-1,-1): ((-1+1)*2, (-1+2)*3, (-1+3)*4)
	assert.Equal(t, common.Vec3{0, 3, 8}, v.Position)
}

func TestTintAndPhaseOnEveryVertex(t *testing.T) {
	tint := common.Color{0.5, 0.25, 1, 0.75}
	s := NewSolid(WithTint(tint), WithPhase(2.5))
	for _, v := range s.Vertices() {
		assert.Equal(t, tint, v.Tint)
		assert.Equal(t, float32(2.5), v.Phase)
	}
}

func TestLegacyConstructors(t *testing.T) {
	at := NewSolidAt(common.Vec3{6, -6, 0})
	assert.Equal(t, common.Vec3{6, -6, 0}, at.Position())
	assert.Equal(t, float32(0), at.Phase())

	withPhase := NewSolidWithPhase(common.Vec3{6, -6, 0}, 0.5)
	assert.Equal(t, float32(0.5), withPhase.Phase())
	assert.Equal(t, NewSolid(WithPosition(common.Vec3{6, -6, 0}), WithPhase(0.5)).Bytes(), withPhase.Bytes())
}

func TestBytesReturnsCopy(t *testing.T) {
	s := NewSolid()
	b := s.Bytes()
	b[0] ^= 0xFF

	assert.NotEqual(t, b, s.Bytes())

	dst := make([]byte, s.Len())
	assert.Equal(t, s.Len(), s.CopyTo(dst))
	assert.Equal(t, s.Bytes(), dst)
}

func TestReducedLayoutsAreSubsets(t *testing.T) {
	opts := []SolidBuilderOption{
		WithPosition(common.Vec3{1, 1, 1}),
		WithPhase(0.75),
		WithTint(common.Color{0.2, 0.2, 0.2, 1}),
	}
	full := NewSolid(opts...).Vertices()
	noTint := NewSolid(append(opts, WithLayout(LayoutNoTint))...).Vertices()
	minimal := NewSolid(append(opts, WithLayout(LayoutMinimal))...).Vertices()

	for i := range full {
		assert.Equal(t, full[i].Position, noTint[i].Position)
		assert.Equal(t, full[i].Color, noTint[i].Color)
		assert.Equal(t, full[i].Phase, noTint[i].Phase)
		assert.Equal(t, common.Color{}, noTint[i].Tint)

		assert.Equal(t, full[i].Position, minimal[i].Position)
		assert.Equal(t, full[i].Color, minimal[i].Color)
		assert.Zero(t, minimal[i].Phase)
	}
}

func TestGenerateMatchesSolid(t *testing.T) {
	pos := common.Vec3{-60, 54, 0}
	s := NewSolidWithPhase(pos, 3)
	buf := Generate(pos, 3, common.Vec3{1, 1, 1}, DefaultFaceColors(), common.ColorWhite, LayoutFull)
	assert.Equal(t, s.Bytes(), buf)
}
