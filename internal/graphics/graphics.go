// Package graphics owns the raylib window and draws the scene, the page overlay and
// the debug overlay. Nothing here is safe to call off the window's thread.
package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollscene/internal/config"
)

// Input is what the window saw since the last frame.
type Input struct {
	// WheelMove is raylib's wheel movement: positive when scrolled up, one unit per notch.
	WheelMove     float32
	Width, Height int
}

// DeltaY converts the wheel movement to a browser-style vertical delta, positive
// when scrolling down.
func (in Input) DeltaY(scale float32) float32 {
	if in.WheelMove == 0 {
		return 0
	}
	return -in.WheelMove * scale
}

// Window is the open raylib window.
type Window struct {
	cfg config.Window
}

// Open creates the window and GL context. Textures, meshes and shaders can only be
// loaded after this returns.
func Open(cfg config.Window) *Window {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	w, h := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		w, h = rl.GetMonitorWidth(0), rl.GetMonitorHeight(0)
	}
	rl.InitWindow(int32(w), int32(h), cfg.Title)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return &Window{cfg: cfg}
}

// Size returns the current render size.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Run is the main loop. Each frame it calls update with the frame's input, then
// clears the screen and calls draw. It returns when the window is asked to close.
func (w *Window) Run(update func(Input), draw func()) {
	for !rl.WindowShouldClose() {
		width, height := w.Size()
		update(Input{
			WheelMove: rl.GetMouseWheelMove(),
			Width:     width,
			Height:    height,
		})

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

// Close destroys the window. Unload GPU resources before calling it.
func (w *Window) Close() {
	rl.CloseWindow()
}
