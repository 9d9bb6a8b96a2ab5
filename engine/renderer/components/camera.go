package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/math"
)

// pitchLimit keeps the camera 1 degree short of straight up or down.
const pitchLimit = float32(1.55334306)

// Camera is a free flying camera. Rotation holds pitch, yaw and roll in radians
// applied as yaw, then pitch, then roll. The view matrix is rebuilt lazily.
type Camera struct {
	position mgl32.Vec3
	rotation mgl32.Vec3

	view    mgl32.Mat4
	isDirty bool
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.position = mgl32.Vec3{}
	c.rotation = mgl32.Vec3{}
	c.view = mgl32.Ident4()
	c.isDirty = false
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) EulerRotation() mgl32.Vec3 {
	return c.rotation
}

func (c *Camera) SetEulerRotation(rotation mgl32.Vec3) {
	c.rotation = rotation
	c.rotation[0] = math.Clamp(c.rotation[0], -pitchLimit, pitchLimit)
	c.isDirty = true
}

func (c *Camera) orientation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(c.rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(c.rotation.Z()))
}

// View is the inverse of the camera's world transform.
func (c *Camera) View() mgl32.Mat4 {
	if c.isDirty {
		world := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).Mul4(c.orientation())
		c.view = world.Inv()
		c.isDirty = false
	}
	return c.view
}

func (c *Camera) direction(local mgl32.Vec3) mgl32.Vec3 {
	return c.orientation().Mul4x1(local.Vec4(0)).Vec3()
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.direction(mgl32.Vec3{0, 0, -1})
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.direction(mgl32.Vec3{1, 0, 0})
}

func (c *Camera) move(direction mgl32.Vec3, amount float32) {
	c.position = c.position.Add(direction.Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveForward(amount float32)  { c.move(c.Forward(), amount) }
func (c *Camera) MoveBackward(amount float32) { c.move(c.Forward(), -amount) }
func (c *Camera) MoveRight(amount float32)    { c.move(c.Right(), amount) }
func (c *Camera) MoveLeft(amount float32)     { c.move(c.Right(), -amount) }
func (c *Camera) MoveUp(amount float32)       { c.move(mgl32.Vec3{0, 1, 0}, amount) }
func (c *Camera) MoveDown(amount float32)     { c.move(mgl32.Vec3{0, 1, 0}, -amount) }

func (c *Camera) Yaw(amount float32) {
	c.rotation[1] += amount
	c.isDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.rotation[0] += amount

	// Clamp to avoid Gimbal lock.
	c.rotation[0] = math.Clamp(c.rotation[0], -pitchLimit, pitchLimit)

	c.isDirty = true
}
