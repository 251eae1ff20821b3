// Package scene owns the camera, the pool of display objects and the one object
// currently shown. Drawing is delegated to a Renderer so the manager stays free of
// GPU calls.
package scene

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/tween"
)

const (
	// DefaultSwapScale is the scale a freshly swapped-in object grows to.
	DefaultSwapScale = 1.25
	// DefaultSwapDuration is how long the grow takes.
	DefaultSwapDuration = 900 * time.Millisecond
	// DefaultSpin is the Y rotation, in radians, added to the active object every frame.
	DefaultSpin = 0.005
)

// Transform places an object in the world. Rotation is Euler angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Drawable is a GPU-side shape (mesh + material or loaded model).
type Drawable interface {
	Draw(t Transform)
}

// Object is one displayable thing: a pooled primitive or a loaded model.
type Object struct {
	Name      string
	Drawable  Drawable
	Transform Transform
	// Rest is the scale the object returns to before each swap-in animation.
	Rest mgl32.Vec3
}

// NewObject returns an object at the origin with a uniform resting scale.
func NewObject(name string, d Drawable, scale float32) *Object {
	rest := mgl32.Vec3{scale, scale, scale}
	return &Object{
		Name:      name,
		Drawable:  d,
		Rest:      rest,
		Transform: Transform{Scale: rest},
	}
}

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32
	Aspect   float32
	Near     float32
	Far      float32
}

// Projection returns the perspective projection matrix for the camera.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
}

// View returns the view matrix for the camera.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// DefaultCamera is a 75° camera 25 units back on Z, looking at the origin.
func DefaultCamera(width, height int) Camera {
	c := Camera{
		Position: mgl32.Vec3{0, 0, 25},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     75,
		Near:     0.1,
		Far:      1000,
	}
	c.Aspect = aspect(width, height)
	return c
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Renderer draws one frame of the 3D scene. active may be nil.
type Renderer interface {
	Render(cam Camera, active *Object)
}

// Options tune the swap animation and idle spin.
type Options struct {
	SwapScale    float32
	SwapDuration time.Duration
	Spin         float32
}

// DefaultOptions returns the stock swap animation and spin.
func DefaultOptions() Options {
	return Options{
		SwapScale:    DefaultSwapScale,
		SwapDuration: DefaultSwapDuration,
		Spin:         DefaultSpin,
	}
}

// Manager keeps exactly one active object and renders it each frame.
// Not safe for concurrent use; it lives on the frame loop.
type Manager struct {
	cam    Camera
	pool   []*Object
	active *Object
	tweens *tween.Engine
	grow   *tween.Tween
	r      Renderer
	opts   Options
	log    logrus.FieldLogger
	frames uint64
}

// New returns a manager with nothing attached. pool holds the pre-built objects
// SwapObject chooses from.
func New(r Renderer, cam Camera, pool []*Object, tweens *tween.Engine, opts Options, log logrus.FieldLogger) *Manager {
	return &Manager{
		cam:    cam,
		pool:   pool,
		tweens: tweens,
		r:      r,
		opts:   opts,
		log:    log,
	}
}

// Camera returns the camera.
func (m *Manager) Camera() Camera {
	return m.cam
}

// Active returns the attached object, or nil.
func (m *Manager) Active() *Object {
	return m.active
}

// Pool returns the pre-built objects.
func (m *Manager) Pool() []*Object {
	return m.pool
}

// Frames returns how many frames were rendered.
func (m *Manager) Frames() uint64 {
	return m.frames
}

// SwapObject detaches the active object and attaches pool[index mod len(pool)],
// growing it from its resting scale to the swap scale. Detached objects stay in
// the pool for reuse.
func (m *Manager) SwapObject(index int) {
	if len(m.pool) == 0 {
		return
	}
	index %= len(m.pool)
	if index < 0 {
		index += len(m.pool)
	}
	next := m.pool[index]
	if m.grow != nil {
		m.grow.Stop()
		m.grow = nil
	}
	prev := "none"
	if m.active != nil {
		prev = m.active.Name
	}
	m.active = next

	s := m.opts.SwapScale
	target := mgl32.Vec3{next.Rest.X() * s, next.Rest.Y() * s, next.Rest.Z() * s}
	m.grow = m.tweens.To(next.Rest, target, m.opts.SwapDuration, tween.Linear, func(v mgl32.Vec3) {
		next.Transform.Scale = v
	})
	m.log.WithFields(logrus.Fields{"from": prev, "to": next.Name, "index": index}).Info("swap object")
}

// AttachModel makes obj the active object as-is, without an animation.
func (m *Manager) AttachModel(obj *Object) {
	if obj == nil {
		return
	}
	if m.grow != nil {
		m.grow.Stop()
		m.grow = nil
	}
	m.active = obj
	m.log.WithFields(logrus.Fields{"model": obj.Name, "scale": obj.Rest.X()}).Info("model attached")
}

// RenderFrame advances tweens to now, spins the active object and draws.
func (m *Manager) RenderFrame(now time.Time) {
	m.tweens.Update(now)
	if m.active != nil {
		rot := m.active.Transform.Rotation
		rot[1] = math32.Mod(rot[1]+m.opts.Spin, 2*math32.Pi)
		m.active.Transform.Rotation = rot
	}
	m.frames++
	if m.r != nil {
		m.r.Render(m.cam, m.active)
	}
}

// Resize recomputes the camera aspect ratio for a new drawing buffer size.
func (m *Manager) Resize(width, height int) {
	m.cam.Aspect = aspect(width, height)
	m.log.WithFields(logrus.Fields{"width": width, "height": height, "aspect": m.cam.Aspect}).Debug("resize")
}
