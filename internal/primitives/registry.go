// Package primitives builds the GPU-side drawables: the pooled primitive shapes
// (torus, cube, sphere) with lit materials, and models loaded from disk.
// Everything here must run on the window's thread after the GL context exists.
package primitives

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/config"
	"scrollscene/internal/scene"
)

// Mesh resolution.
const (
	torusRadialSegments = 32
	torusSides          = 64
	sphereRings         = 32
	sphereSlices        = 32
)

// Fallback dimensions when an object definition leaves them unset.
const (
	defaultTorusRadius  = 10
	defaultTorusTube    = 3
	defaultCubeSize     = 10
	defaultSphereRadius = 8
)

// Registry creates drawables and owns their GPU resources until Unload.
type Registry struct {
	lit      *litShader
	litTried bool
	meshes   []*meshDrawable
	models   []*modelDrawable
	textures []rl.Texture2D
	log      logrus.FieldLogger
}

// NewRegistry returns an empty registry. The shader is compiled on first Build.
func NewRegistry(log logrus.FieldLogger) *Registry {
	return &Registry{log: log}
}

// shader compiles the lit shader once. A failed compile falls back to raylib's
// default shader (flat color).
func (r *Registry) shader() *litShader {
	if !r.litTried {
		r.litTried = true
		if lit, ok := loadLitShader(); ok {
			r.lit = lit
		} else {
			r.log.Warn("lit shader failed to compile, using flat shading")
		}
	}
	return r.lit
}

// SetView uploads camera position and direction-to-light. Call once per frame
// before drawing.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	if r.lit != nil {
		r.lit.setFrame(viewPos, lightDir)
	}
}

// Build creates the mesh and material for def. A texture that fails to load leaves
// the object untextured.
func (r *Registry) Build(def config.ObjectDef) (scene.Drawable, error) {
	mesh, err := genMesh(def)
	if err != nil {
		return nil, err
	}
	color := rl.White
	if def.Color != "" {
		c, err := config.ParseColor(def.Color)
		if err != nil {
			rl.UnloadMesh(&mesh)
			return nil, fmt.Errorf("primitives: %s: %w", def.Name, err)
		}
		color = rl.NewColor(c.R, c.G, c.B, 255)
	}

	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	textured := false
	if def.Texture != "" {
		tex := rl.LoadTexture(def.Texture)
		if rl.IsTextureValid(tex) {
			rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
			r.textures = append(r.textures, tex)
			textured = true
		} else {
			r.log.WithFields(logrus.Fields{"object": def.Name, "texture": def.Texture}).Warn("texture not loaded")
		}
	}
	if lit := r.shader(); lit != nil {
		mtl.Shader = lit.shader
	}

	d := &meshDrawable{reg: r, mesh: mesh, mtl: mtl, textured: textured}
	r.meshes = append(r.meshes, d)
	return d, nil
}

func genMesh(def config.ObjectDef) (rl.Mesh, error) {
	switch def.Shape {
	case config.ShapeTorus:
		radius := orDefault(def.Radius, defaultTorusRadius)
		tube := orDefault(def.Tube, defaultTorusTube)
		// raylib's torus takes the tube/ring ratio and an overall diameter.
		return rl.GenMeshTorus(tube/radius, radius*2, torusRadialSegments, torusSides), nil
	case config.ShapeCube:
		s := orDefault(def.Size, defaultCubeSize)
		return rl.GenMeshCube(s, s, s), nil
	case config.ShapeSphere:
		return rl.GenMeshSphere(orDefault(def.Radius, defaultSphereRadius), sphereRings, sphereSlices), nil
	}
	return rl.Mesh{}, fmt.Errorf("primitives: %s: unknown shape %q", def.Name, def.Shape)
}

func orDefault(v, def float32) float32 {
	if v <= 0 {
		return def
	}
	return v
}

// LoadModel loads a model file (glTF, OBJ, ...) into GPU memory.
func (r *Registry) LoadModel(path string) (scene.Drawable, error) {
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		return nil, fmt.Errorf("primitives: load model %s: no valid meshes", path)
	}
	d := &modelDrawable{model: m}
	r.models = append(r.models, d)
	return d, nil
}

// Unload frees every mesh, texture, model and the shader.
func (r *Registry) Unload() {
	for _, d := range r.meshes {
		rl.UnloadMesh(&d.mesh)
	}
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	for _, d := range r.models {
		rl.UnloadModel(d.model)
	}
	if r.lit != nil {
		rl.UnloadShader(r.lit.shader)
	}
	r.meshes, r.textures, r.models, r.lit = nil, nil, nil, nil
}

// meshDrawable is a generated primitive.
type meshDrawable struct {
	reg      *Registry
	mesh     rl.Mesh
	mtl      rl.Material
	textured bool
}

// Draw implements scene.Drawable. Must be called between BeginMode3D and EndMode3D.
func (d *meshDrawable) Draw(t scene.Transform) {
	if d.reg.lit != nil {
		d.reg.lit.setTextured(d.textured)
	}
	rl.DrawMesh(d.mesh, d.mtl, transformMatrix(t))
}

// modelDrawable is a model loaded from a file.
type modelDrawable struct {
	model rl.Model
}

// Draw implements scene.Drawable. Rotation goes through the model transform so all
// three axes apply; DrawModelEx then adds scale and position.
func (d *modelDrawable) Draw(t scene.Transform) {
	d.model.Transform = rl.MatrixRotateXYZ(rl.NewVector3(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z()))
	pos := rl.NewVector3(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := rl.NewVector3(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	rl.DrawModelEx(d.model, pos, rl.NewVector3(0, 1, 0), 0, scale, rl.White)
}

// transformMatrix composes scale, then rotation, then translation.
func transformMatrix(t scene.Transform) rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	rot := rl.MatrixRotateXYZ(rl.NewVector3(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z()))
	trans := rl.MatrixTranslate(t.Position.X(), t.Position.Y(), t.Position.Z())
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}
