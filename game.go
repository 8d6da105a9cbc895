package main

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/config"
	"github.com/zucenko/trails/model"
	"github.com/zucenko/trails/server"
)

var errQuit = errors.New("quit")

// Surface draws the round onto the ebiten screen of the current frame.
type Surface struct {
	screen *ebiten.Image
	banner *Banner
}

func (s *Surface) Fill(c color.Color) {
	if err := s.screen.Fill(c); err != nil {
		log.Printf("%v", err)
	}
}

func (s *Surface) FillRect(x, y, w, h int, c color.Color) {
	ebitenutil.DrawRect(s.screen, float64(x), float64(y), float64(w), float64(h), c)
}

func (s *Surface) DrawBanner(text string) {
	s.banner.Draw(s.screen, text)
}

type Game struct {
	Cfg   *config.Config
	Round *model.Round
	Hub   *server.Hub

	keys    []model.Key
	banner  *Banner
	surface *Surface
}

func NewGame(cfg *config.Config, hub *server.Hub) (*Game, error) {
	banner, err := NewBanner(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Cfg:     cfg,
		Hub:     hub,
		banner:  banner,
		surface: &Surface{banner: banner},
	}
	for _, p := range cfg.Players {
		km := keySets[p.KeySet]
		g.keys = append(g.keys, km.Up, km.Down, km.Left, km.Right)
	}
	if err := g.newRound(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) newRound() error {
	round, err := newRound(g.Cfg)
	if err != nil {
		return err
	}
	g.Round = round
	g.banner.Reset()
	log.Infof("round started with %v", round.Roster)
	return nil
}

// frameInput reports whether to keep running and which bound keys are down.
func (g *Game) frameInput() (bool, model.KeySnapshot) {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return false, nil
	}
	keys := make(model.KeySnapshot, len(g.keys))
	for _, k := range g.keys {
		if ebiten.IsKeyPressed(ebiten.Key(k)) {
			keys[k] = true
		}
	}
	return true, keys
}

func (g *Game) update(screen *ebiten.Image) error {
	running, keys := g.frameInput()
	if !running {
		log.Info("quit requested")
		return errQuit
	}

	if g.Round.State == model.ENDED && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.newRound(); err != nil {
			return err
		}
	}

	g.Round.Step(keys)
	g.banner.Update()

	if ebiten.IsDrawingSkipped() {
		g.Round.Resolve()
	} else {
		g.surface.screen = screen
		g.Round.Redraw(g.surface)
	}

	if g.Hub != nil {
		g.Hub.Publish(g.Round.Snapshot())
	}
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	var hub *server.Hub
	if cfg.SpectateAddr != "" {
		hub = startSpectate(cfg.SpectateAddr)
		defer hub.Stop()
	}

	game, err := NewGame(cfg, hub)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetMaxTPS(cfg.FPS)
	if err := ebiten.Run(game.update, cfg.Width, cfg.Height, 1, "Trails"); err != nil && err != errQuit {
		log.Fatal(err)
	}
}
