package vg

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool

	// Update runs once per tick after input is processed. A non-nil error
	// stops the loop and is returned from Run.
	Update func() error
	// Resize is called when a resizable window changes size.
	Resize func(width, height int) error
	// Script, when set, drives synthetic input. The loop stops once the
	// script is done.
	Script *Script
}

// Game adapts a Canvas to ebiten.Game: it feeds mouse input into the
// canvas pointer state machine and uploads the rendered pixels each frame.
type Game struct {
	canvas *Canvas
	cfg    RunConfig

	img        *ebiten.Image
	uploaded   int
	outsideW   int
	outsideH   int
	lastCursor string
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a Game for c.
func NewGame(c *Canvas, cfg RunConfig) *Game {
	return &Game{canvas: c, cfg: cfg, uploaded: -1}
}

// Update processes input and runs the config hooks.
func (g *Game) Update() error {
	if g.cfg.Resizable && g.cfg.Resize != nil && g.outsideW > 0 {
		if w, h := g.canvas.Size(); w != g.outsideW || h != g.outsideH {
			if err := g.cfg.Resize(g.outsideW, g.outsideH); err != nil {
				return err
			}
		}
	}
	if sc := g.cfg.Script; sc != nil {
		if err := sc.Step(g.canvas); err != nil {
			return err
		}
		if sc.Done() {
			return ebiten.Termination
		}
	}
	if !g.canvas.ProcessInput() {
		mx, my := ebiten.CursorPosition()
		pressed, button := false, ButtonLeft
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			pressed = true
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			pressed, button = true, ButtonRight
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			pressed, button = true, ButtonMiddle
		}
		g.canvas.Pointer(float64(mx), float64(my), pressed, button)
	}
	if cur := g.canvas.HoverCursor(); cur != g.lastCursor {
		ebiten.SetCursorShape(cursorShape(cur))
		g.lastCursor = cur
	}
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

// Draw uploads the canvas pixels when they changed and draws them.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.canvas.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = ebiten.NewImage(w, h)
		g.uploaded = -1
	}
	if g.canvas.Renders() == 0 {
		if err := g.canvas.Render(); err != nil {
			return
		}
	}
	if n := g.canvas.Renders(); n != g.uploaded {
		g.img.WritePixels(rgbaPixels(g.canvas.Image()))
		g.uploaded = n
	}
	screen.DrawImage(g.img, nil)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
	}
}

// Layout reports the canvas size, or tracks the window size when resizable.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Resizable {
		g.outsideW, g.outsideH = outsideWidth, outsideHeight
	}
	return g.canvas.Size()
}

func rgbaPixels(img image.Image) []byte {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba.Pix
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba.Pix
}

// cursorShape maps CSS cursor names to ebiten cursor shapes.
func cursorShape(name string) ebiten.CursorShapeType {
	switch name {
	case "pointer":
		return ebiten.CursorShapePointer
	case "text":
		return ebiten.CursorShapeText
	case "crosshair":
		return ebiten.CursorShapeCrosshair
	case "move":
		return ebiten.CursorShapeMove
	case "not-allowed":
		return ebiten.CursorShapeNotAllowed
	case "ew-resize", "col-resize":
		return ebiten.CursorShapeEWResize
	case "ns-resize", "row-resize":
		return ebiten.CursorShapeNSResize
	}
	return ebiten.CursorShapeDefault
}

// Run opens a window showing c and blocks until it is closed or an Update
// hook fails.
func Run(c *Canvas, cfg RunConfig) error {
	w, h := c.Size()
	if cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(NewGame(c, cfg))
}
