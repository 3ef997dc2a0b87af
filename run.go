package tactile

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Draw renders the host's visuals each frame. Tactile owns no
	// rendering; it only coordinates input.
	Draw func(screen *ebiten.Image)
}

type game struct {
	doc  *Document
	cfg  RunConfig
	tick float64
}

func (g *game) Update() error {
	g.doc.Update(g.tick)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// AttachBackend connects the document to the host window's real input.
// Without a backend only injected and test-runner input is processed.
func (d *Document) AttachBackend() {
	if d.backend == nil {
		d.backend = &ebitenBackend{}
	}
}

// Run opens a window and drives the document from the host game loop,
// polling real mouse and touch input every tick. Blocks until the window
// closes. For full control, implement [ebiten.Game] yourself, call
// [Document.AttachBackend] once, and [Document.Update] every tick.
func Run(doc *Document, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(doc.Viewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(doc.Viewport.Height)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	doc.AttachBackend()
	g := &game{doc: doc, cfg: cfg, tick: 1.0 / float64(ebiten.TPS())}
	return ebiten.RunGame(g)
}
