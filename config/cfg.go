package config

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/model"
)

const (
	EnvPlayers  = "TRAILS_PLAYERS"
	EnvSpectate = "TRAILS_SPECTATE"
	EnvLogLevel = "LOG_LEVEL"
)

var ErrInvalid = errors.New("invalid config")

// Key sets a player can be bound to.
const (
	ARROWS = "arrows"
	WASD   = "wasd"
	IJKL   = "ijkl"
	NUMPAD = "numpad"
)

var KeySets = []string{ARROWS, WASD, IJKL, NUMPAD}

var Palette = map[string]color.RGBA{
	"red":    {255, 64, 64, 255},
	"green":  {64, 255, 64, 255},
	"blue":   {64, 64, 255, 255},
	"yellow": {255, 255, 128, 255},
}

type PlayerDef struct {
	Name   string
	Spawn  model.Cell
	Color  color.RGBA
	KeySet string
}

type Config struct {
	Width, Height int
	FPS           int
	Velocity      int
	Players       []PlayerDef
	PlayersFile   string
	SpectateAddr  string
	LogLevel      log.Level
}

func Default() *Config {
	return &Config{
		Width:    500,
		Height:   500,
		FPS:      60,
		Velocity: model.DefaultVelocity,
		Players: []PlayerDef{
			{Name: "Player 1", Spawn: model.Cell{X: 400, Y: 400}, Color: Palette["red"], KeySet: ARROWS},
			{Name: "Player 2", Spawn: model.Cell{X: 100, Y: 100}, Color: Palette["blue"], KeySet: WASD},
		},
		LogLevel: log.InfoLevel,
	}
}

// FromEnv returns the defaults overridden by the environment. The roster
// file itself is read by the caller.
func FromEnv() (*Config, error) {
	c := Default()
	c.PlayersFile = os.Getenv(EnvPlayers)
	c.SpectateAddr = os.Getenv(EnvSpectate)
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvLogLevel, lvl, err)
		}
		c.LogLevel = level
	}
	return c, nil
}

func (c *Config) Bounds() model.Bounds {
	return model.Bounds{W: c.Width, H: c.Height}
}

// ReadPlayers replaces the roster with the one read from a roster file.
// Each line is "<x> <y> <color> <keyset> <name...>".
func (c *Config) ReadPlayers(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	players := make([]PlayerDef, 0, model.MaxPlayers)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		def, err := parsePlayer(s)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalid, line, err)
		}
		players = append(players, def)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	c.Players = players
	return c.Validate()
}

func parsePlayer(s string) (PlayerDef, error) {
	fields := strings.Fields(s)
	if len(fields) < 5 {
		return PlayerDef{}, fmt.Errorf("want <x> <y> <color> <keyset> <name>, got %q", s)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return PlayerDef{}, fmt.Errorf("x: %v", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return PlayerDef{}, fmt.Errorf("y: %v", err)
	}
	col, err := ParseColor(fields[2])
	if err != nil {
		return PlayerDef{}, err
	}
	return PlayerDef{
		Spawn:  model.Cell{X: x, Y: y},
		Color:  col,
		KeySet: strings.ToLower(fields[3]),
		Name:   strings.Join(fields[4:], " "),
	}, nil
}

// ParseColor accepts a palette name or six hex digits, with or without '#'.
func ParseColor(s string) (color.RGBA, error) {
	if c, found := Palette[strings.ToLower(s)]; found {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: not a palette name or rrggbb", s)
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %v", s, err)
	}
	return color.RGBA{R: uint8(u >> 16), G: uint8(u >> 8), B: uint8(u), A: 0xff}, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.Velocity <= 0 {
		return fmt.Errorf("%w: velocity %d", ErrInvalid, c.Velocity)
	}
	if n := len(c.Players); n < 2 || n > model.MaxPlayers {
		return fmt.Errorf("%w: %d players, need 2 to %d", ErrInvalid, n, model.MaxPlayers)
	}
	bounds := c.Bounds()
	names := map[string]bool{}
	keySets := map[string]bool{}
	spawns := map[model.Cell]bool{}
	for _, p := range c.Players {
		if !bounds.Contains(p.Spawn) {
			return fmt.Errorf("%w: %s spawns outside the window at %d,%d", ErrInvalid, p.Name, p.Spawn.X, p.Spawn.Y)
		}
		if !knownKeySet(p.KeySet) {
			return fmt.Errorf("%w: %s has unknown keyset %q", ErrInvalid, p.Name, p.KeySet)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalid, p.Name)
		}
		if keySets[p.KeySet] {
			return fmt.Errorf("%w: keyset %q bound twice", ErrInvalid, p.KeySet)
		}
		if spawns[p.Spawn] {
			return fmt.Errorf("%w: two players spawn at %d,%d", ErrInvalid, p.Spawn.X, p.Spawn.Y)
		}
		names[p.Name] = true
		keySets[p.KeySet] = true
		spawns[p.Spawn] = true
	}
	return nil
}

func knownKeySet(name string) bool {
	for _, k := range KeySets {
		if k == name {
			return true
		}
	}
	return false
}
