// Package app is the owned context for one page session: it builds the object pool,
// the scene manager, the page and the scroll controller, and drives them from the
// frame loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/asset"
	"scrollscene/internal/config"
	"scrollscene/internal/page"
	"scrollscene/internal/scene"
	"scrollscene/internal/scroll"
	"scrollscene/internal/tween"
)

// Backend is what the app needs from the graphics layer.
type Backend interface {
	scene.Renderer
	// BuildObject creates the drawable for a pooled object.
	BuildObject(def config.ObjectDef) (scene.Drawable, error)
	// LoadModel uploads a local model file. Called on the frame loop.
	LoadModel(path string) (scene.Drawable, error)
	// DrawOverlay draws the page sections and status lines over the 3D frame.
	DrawOverlay(p *page.Page, status []string)
}

// Frame is the input gathered for one frame.
type Frame struct {
	Now time.Time
	// WheelDelta uses the browser convention: positive scrolls down.
	WheelDelta    float32
	Width, Height int
}

// App is one session. Not safe for concurrent use; every method runs on the frame loop.
type App struct {
	cfg     config.Config
	log     logrus.FieldLogger
	backend Backend
	source  asset.Source

	tweens *tween.Engine
	scene  *scene.Manager
	page   *page.Page
	input  *scroll.Input

	load       *asset.Request
	loadScale  float32
	loadPct    int
	loadStatus string

	recent    func() []string
	recentMax int

	width, height int
	closed        bool
}

// New builds the session. Every pooled object is created up front; a failure there
// is fatal because the pool is fixed.
func New(cfg config.Config, backend Backend, source asset.Source, log logrus.FieldLogger, now time.Time, width, height int) (*App, error) {
	pool := make([]*scene.Object, 0, len(cfg.Objects))
	for _, def := range cfg.Objects {
		d, err := backend.BuildObject(def)
		if err != nil {
			return nil, fmt.Errorf("app: build %s: %w", def.Name, err)
		}
		pool = append(pool, scene.NewObject(def.Name, d, 1))
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("app: no display objects configured")
	}

	cam := scene.DefaultCamera(width, height)
	cam.Fovy = cfg.Camera.Fovy
	cam.Position = mgl32.Vec3{0, 0, cfg.Camera.Z}
	cam.Near, cam.Far = cfg.Camera.Near, cfg.Camera.Far

	tweens := tween.NewEngine(now)
	mgr := scene.New(backend, cam, pool, tweens, scene.Options{
		SwapScale:    cfg.Scene.SwapScale,
		SwapDuration: cfg.Scene.SwapDuration,
		Spin:         cfg.Scene.Spin,
	}, log.WithField("prefix", "scene"))
	pg := page.New(cfg.Sections, float32(height), cfg.Scroll.Smooth, tweens, log.WithField("prefix", "page"))
	ctrl := scroll.NewController(len(pool), pg.Len(), mgr, pg, log.WithField("prefix", "scroll"))
	input := scroll.NewInput(ctrl, scroll.NewDebouncer(cfg.Scroll.Debounce), pg, cfg.Scroll.Nudge)

	log.WithFields(logrus.Fields{
		"objects":  len(pool),
		"sections": pg.Len(),
		"width":    width,
		"height":   height,
	}).Info("session ready")

	return &App{
		cfg:     cfg,
		log:     log,
		backend: backend,
		source:  source,
		tweens:  tweens,
		scene:   mgr,
		page:    pg,
		input:   input,
		width:   width,
		height:  height,
	}, nil
}

// ShowRecent appends up to max lines from fn (typically the logger's recorder) to
// the status overlay.
func (a *App) ShowRecent(fn func() []string, max int) {
	a.recent, a.recentMax = fn, max
}

// Scene returns the scene manager.
func (a *App) Scene() *scene.Manager { return a.scene }

// Page returns the page.
func (a *App) Page() *page.Page { return a.page }

// State returns the scroll controller state.
func (a *App) State() scroll.State { return a.input.Controller().State() }

// Start issues the initial model load from the config.
func (a *App) Start(ctx context.Context) {
	a.LoadInitialModel(ctx, a.cfg.Model.Source, a.cfg.Model.Scale)
}

// LoadInitialModel starts a one-shot background load of src. On success the model
// is attached, scaled uniformly by scale; on failure the error is logged and the
// primitive pool carries on. There is no retry. A load already in flight is
// canceled first.
func (a *App) LoadInitialModel(ctx context.Context, src string, scale float32) {
	if src == "" {
		a.log.Info("no model configured")
		return
	}
	if a.load != nil {
		a.load.Cancel()
	}
	a.log.WithField("source", src).Info("loading model")
	a.load = a.source.Load(ctx, src)
	a.loadScale = scale
	a.loadPct = -1
	a.loadStatus = "loading"
}

// Update applies one frame of input: resize, due debounced step, raw wheel, load events.
func (a *App) Update(f Frame) {
	if a.closed {
		return
	}
	if f.Width > 0 && f.Height > 0 && (f.Width != a.width || f.Height != a.height) {
		a.resize(f.Width, f.Height)
	}
	// A step that went quiet before this frame's event is released first.
	a.input.Tick(f.Now)
	if f.WheelDelta != 0 {
		a.input.Wheel(scroll.WheelEvent{DeltaY: f.WheelDelta}, f.Now)
	}
	a.pollLoad()
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.scene.Resize(width, height)
	a.page.Resize(float32(height))
}

func (a *App) pollLoad() {
	if a.load == nil {
		return
	}
	src := a.load.Source
	done := a.load.Poll(func(ev asset.Event) {
		switch ev.Kind {
		case asset.Progress:
			pct := int(ev.Fraction * 100)
			if pct != a.loadPct {
				a.loadPct = pct
				a.loadStatus = fmt.Sprintf("loading %d%%", pct)
				a.log.WithField("source", src).Infof("%d%% loaded", pct)
			}
		case asset.Loaded:
			a.attach(src, ev.Path)
		case asset.Failed:
			a.loadStatus = "failed"
			a.log.WithError(ev.Err).WithField("source", src).Error("model load failed")
		}
	})
	if done {
		a.load = nil
	}
}

func (a *App) attach(src, path string) {
	d, err := a.backend.LoadModel(path)
	if err != nil {
		a.loadStatus = "failed"
		a.log.WithError(err).WithField("source", src).Error("model load failed")
		return
	}
	a.loadStatus = "loaded"
	// A model arriving after swaps started still takes over until the next swap.
	a.scene.AttachModel(scene.NewObject(modelName(path), d, a.loadScale))
}

func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Draw renders the 3D frame at now, then the page and status overlay.
func (a *App) Draw(now time.Time) {
	if a.closed {
		return
	}
	a.scene.RenderFrame(now)
	var status []string
	if a.cfg.Debug.ShowState {
		status = a.Status()
	}
	a.backend.DrawOverlay(a.page, status)
}

// Status describes the session in a few short lines.
func (a *App) Status() []string {
	st := a.State()
	object := "none"
	if obj := a.scene.Active(); obj != nil {
		object = obj.Name
	}
	lines := []string{
		fmt.Sprintf("phase=%s count=%d object=%s section=%d", st.Phase, st.ScrollCount, object, a.page.Current()),
	}
	if a.loadStatus != "" {
		lines = append(lines, "model: "+a.loadStatus)
	}
	if a.recent != nil && a.recentMax > 0 {
		recent := a.recent()
		if len(recent) > a.recentMax {
			recent = recent[len(recent)-a.recentMax:]
		}
		lines = append(lines, recent...)
	}
	return lines
}

// Close cancels a pending load and drops any pending scroll step. GPU resources
// belong to the backend and are released there.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.load != nil {
		a.load.Cancel()
		a.load = nil
	}
	a.input.Close()
	a.log.WithField("frames", a.scene.Frames()).Info("session closed")
}
