package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func approx(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-5), "want %v, got %v", want, got)
}

func TestCameraView(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Ident4(), c.View())

	c.SetPosition(mgl32.Vec3{0, 0, 5})
	approx(t, mgl32.Vec3{0, 0, -5}, mgl32.TransformCoordinate(mgl32.Vec3{}, c.View()))
	approx(t, mgl32.Vec3{0, 0, -1}, c.Forward())
}

func TestCameraYaw(t *testing.T) {
	c := NewCamera()
	c.Yaw(mgl32.DegToRad(90))
	approx(t, mgl32.Vec3{-1, 0, 0}, c.Forward())
	approx(t, mgl32.Vec3{0, 0, -1}, c.Right())

	c.MoveForward(2)
	approx(t, mgl32.Vec3{-2, 0, 0}, c.Position())
	// a point straight ahead ends up on the view's -z axis
	approx(t, mgl32.Vec3{0, 0, -3}, mgl32.TransformCoordinate(mgl32.Vec3{-5, 0, 0}, c.View()))
}

func TestCameraPitchClamped(t *testing.T) {
	c := NewCamera()
	c.Pitch(10)
	assert.Equal(t, pitchLimit, c.EulerRotation().X())
	c.Pitch(-20)
	assert.Equal(t, -pitchLimit, c.EulerRotation().X())

	c.SetEulerRotation(mgl32.Vec3{3, 0, 0})
	assert.Equal(t, pitchLimit, c.EulerRotation().X())
}

func TestCameraMoves(t *testing.T) {
	c := NewCamera()
	c.MoveUp(1)
	c.MoveRight(2)
	c.MoveBackward(3)
	approx(t, mgl32.Vec3{2, 1, 3}, c.Position())
	c.MoveDown(1)
	c.MoveLeft(2)
	c.MoveForward(3)
	approx(t, mgl32.Vec3{}, c.Position())

	c.Reset()
	assert.Equal(t, mgl32.Vec3{}, c.EulerRotation())
}
