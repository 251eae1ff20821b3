package graphics

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/backdrop"
	"scrollscene/internal/config"
	"scrollscene/internal/debug"
	"scrollscene/internal/fonts"
	"scrollscene/internal/primitives"
	"scrollscene/internal/scene"
	"scrollscene/internal/style"
)

// Light comes from the upper right, in front of the objects.
var lightDir = mgl32.Vec3{0.6, 0.8, 0.5}.Normalize()

const overlayFontSize = 64

// Backend draws the scene with raylib. It is created after Open.
type Backend struct {
	reg        *primitives.Registry
	debug      *debug.Debug
	sheet      *style.Stylesheet
	font       rl.Font
	background rl.Texture2D
	log        logrus.FieldLogger
}

// NewBackend loads the background, the stylesheet and the font. Each of them is
// optional: a missing file is logged and the backend draws without it.
func NewBackend(cfg config.Config, log logrus.FieldLogger) *Backend {
	b := &Backend{
		reg:   primitives.NewRegistry(log.WithField("prefix", "primitives")),
		debug: debug.New(),
		log:   log,
	}
	b.debug.ShowFPS = cfg.Debug.ShowFPS
	b.debug.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	b.debug.ShowState = cfg.Debug.ShowState

	if path := cfg.Scene.Background; path != "" {
		b.loadBackground(path, backdrop.Options{Blur: cfg.Scene.BackgroundBlur, Dim: cfg.Scene.BackgroundDim})
	}

	if path := cfg.Style.Stylesheet; path != "" {
		sheet, err := style.LoadCSS(path)
		if err != nil {
			log.WithError(err).Warn("stylesheet not loaded, using default section style")
		} else {
			b.sheet = sheet
		}
	}

	if name := cfg.Style.Font; name != "" {
		b.loadFont(name, append(fonts.BaseDirs(), FontCacheDir(cfg)))
	}
	return b
}

// FontCacheDir is where fetched font families are kept.
func FontCacheDir(cfg config.Config) string {
	return filepath.Join(cfg.Model.CacheDir, "fonts")
}

func (b *Backend) loadBackground(path string, opts backdrop.Options) {
	img, err := backdrop.Load(path, opts)
	if err != nil {
		b.log.WithError(err).Warn("background not loaded")
		return
	}
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if !rl.IsTextureValid(tex) {
		b.log.WithField("path", path).Warn("background not uploaded")
		return
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	b.background = tex
}

func (b *Backend) loadFont(name string, dirs []string) {
	path, err := fonts.Find(name, dirs...)
	if err != nil {
		b.log.WithField("font", name).Warn("font not found, using default font")
		return
	}
	f := rl.LoadFontEx(path, overlayFontSize, nil)
	if f.Texture.ID == 0 {
		b.log.WithField("path", path).Warn("font not loaded, using default font")
		return
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	b.font = f
	b.debug.SetFont(f)
	b.log.WithField("path", path).Debug("font loaded")
}

// BuildObject creates the drawable for a pooled object.
func (b *Backend) BuildObject(def config.ObjectDef) (scene.Drawable, error) {
	return b.reg.Build(def)
}

// LoadModel uploads a model file.
func (b *Backend) LoadModel(path string) (scene.Drawable, error) {
	return b.reg.LoadModel(path)
}

// Render implements scene.Renderer: background first, then the active object.
func (b *Backend) Render(cam scene.Camera, active *scene.Object) {
	b.drawBackground()

	rlCam := rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         vec3(cam.Up),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}
	b.reg.SetView(cam.Position, lightDir)

	rl.BeginMode3D(rlCam)
	// BeginMode3D takes the aspect from the framebuffer and its own clip planes;
	// the camera's matrices carry the configured near/far and the resized aspect.
	rl.SetMatrixProjection(matrix(cam.Projection()))
	rl.SetMatrixModelview(matrix(cam.View()))
	if active != nil && active.Drawable != nil {
		active.Drawable.Draw(active.Transform)
	}
	rl.EndMode3D()
}

// drawBackground stretches the background over the screen, cropping to keep its
// aspect ratio.
func (b *Backend) drawBackground() {
	if b.background.ID == 0 {
		return
	}
	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	tw, th := float32(b.background.Width), float32(b.background.Height)
	src := coverRect(tw, th, sw, sh)
	rl.DrawTexturePro(b.background, src, rl.NewRectangle(0, 0, sw, sh), rl.NewVector2(0, 0), 0, rl.White)
}

// coverRect is the part of a tw×th texture that fills a sw×sh screen without
// distortion.
func coverRect(tw, th, sw, sh float32) rl.Rectangle {
	if tw <= 0 || th <= 0 || sw <= 0 || sh <= 0 {
		return rl.NewRectangle(0, 0, tw, th)
	}
	if tw/th > sw/sh {
		w := th * sw / sh
		return rl.NewRectangle((tw-w)/2, 0, w, th)
	}
	h := tw * sh / sw
	return rl.NewRectangle(0, (th-h)/2, tw, h)
}

// Unload frees every GPU resource the backend created.
func (b *Backend) Unload() {
	b.reg.Unload()
	if b.background.ID != 0 {
		rl.UnloadTexture(b.background)
		b.background = rl.Texture2D{}
	}
	if b.font.Texture.ID != 0 {
		rl.UnloadFont(b.font)
		b.font = rl.Font{}
	}
}

// matrix converts a column-major mgl32 matrix; raylib's mN is column-major index N.
func matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
