package main

import (
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/config"
	"github.com/zucenko/trails/model"
)

var keySets = map[string]model.KeyMap{
	config.ARROWS: keyMap(ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight),
	config.WASD:   keyMap(ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD),
	config.IJKL:   keyMap(ebiten.KeyI, ebiten.KeyK, ebiten.KeyJ, ebiten.KeyL),
	config.NUMPAD: keyMap(ebiten.KeyKP8, ebiten.KeyKP5, ebiten.KeyKP4, ebiten.KeyKP6),
}

func keyMap(up, down, left, right ebiten.Key) model.KeyMap {
	return model.KeyMap{Up: model.Key(up), Down: model.Key(down), Left: model.Key(left), Right: model.Key(right)}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.PlayersFile == "" {
		return cfg, cfg.Validate()
	}
	file, err := ebitenutil.OpenFile(cfg.PlayersFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := cfg.ReadPlayers(file); err != nil {
		return nil, err
	}
	log.Infof("loaded %d players from %s", len(cfg.Players), cfg.PlayersFile)
	return cfg, nil
}

func newRound(cfg *config.Config) (*model.Round, error) {
	round := model.NewRound(cfg.Bounds(), cfg.Velocity)
	for _, p := range cfg.Players {
		if _, err := round.SpawnPlayer(p.Spawn, p.Color, keySets[p.KeySet], p.Name); err != nil {
			return nil, err
		}
	}
	return round, nil
}
