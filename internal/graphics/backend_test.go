package graphics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMatrixKeepsTranslationColumn(t *testing.T) {
	m := matrix(mgl32.Translate3D(1, 2, 3))
	assert.Equal(t, float32(1), m.M12)
	assert.Equal(t, float32(2), m.M13)
	assert.Equal(t, float32(3), m.M14)
	assert.Equal(t, float32(1), m.M15)
	assert.Equal(t, float32(0), m.M3)
}

func TestMatrixMatchesRaylibPerspective(t *testing.T) {
	const near, far = 0.5, 200
	got := matrix(mgl32.Perspective(mgl32.DegToRad(60), 2, near, far))
	want := rl.MatrixPerspective(60*rl.Deg2rad, 2, near, far)
	for i, pair := range [][2]float32{
		{got.M0, want.M0}, {got.M5, want.M5}, {got.M10, want.M10},
		{got.M11, want.M11}, {got.M14, want.M14},
	} {
		assert.InDelta(t, pair[1], pair[0], 1e-4, "element %d", i)
	}
}

func TestInputDeltaY(t *testing.T) {
	assert.Equal(t, float32(-100), Input{WheelMove: 1}.DeltaY(100))
	assert.Equal(t, float32(250), Input{WheelMove: -2.5}.DeltaY(100))
	assert.Equal(t, float32(0), Input{}.DeltaY(100))
}

func TestCoverRect(t *testing.T) {
	// Wide texture on a square screen: crop the sides.
	assert.Equal(t, rl.NewRectangle(50, 0, 100, 100), coverRect(200, 100, 500, 500))
	// Tall texture on a wide screen: crop top and bottom.
	assert.Equal(t, rl.NewRectangle(0, 75, 100, 50), coverRect(100, 200, 400, 200))
}
