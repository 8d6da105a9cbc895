package model

import (
	"errors"
	"fmt"
	"image/color"
)

// MaxPlayers is the roster limit of one round.
const MaxPlayers = 4

// DefaultVelocity is the marker size in pixels, also its per frame step.
const DefaultVelocity = 4

var (
	ErrRosterFull    = errors.New("roster full")
	ErrDuplicateName = errors.New("duplicate player name")
)

type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions in input priority order.
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) Name() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

type Cell struct {
	X, Y int
}

func (c Cell) Step(d Direction, v int) Cell {
	switch d {
	case Up:
		c.Y -= v
	case Down:
		c.Y += v
	case Left:
		c.X -= v
	case Right:
		c.X += v
	}
	return c
}

// Bounds is the playfield, edges included.
type Bounds struct {
	W, H int
}

func (b Bounds) Contains(c Cell) bool {
	return c.X >= 0 && c.X <= b.W && c.Y >= 0 && c.Y <= b.H
}

// Key is a key code of the front end.
type Key int

type KeyMap struct {
	Up, Down, Left, Right Key
}

func (k KeyMap) For(d Direction) Key {
	switch d {
	case Up:
		return k.Up
	case Down:
		return k.Down
	case Left:
		return k.Left
	default:
		return k.Right
	}
}

// KeySnapshot holds the keys pressed in the current frame.
type KeySnapshot map[Key]bool

// Grid is the set of every cell visited during a round. It only grows.
type Grid struct {
	cells map[Cell]struct{}
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[Cell]struct{})}
}

func (g *Grid) Occupy(c Cell) {
	g.cells[c] = struct{}{}
}

func (g *Grid) Occupied(c Cell) bool {
	_, found := g.cells[c]
	return found
}

func (g *Grid) Len() int {
	return len(g.cells)
}

// Surface is a drawing target sized to the round bounds.
type Surface interface {
	Fill(c color.Color)
	FillRect(x, y, w, h int, c color.Color)
	DrawBanner(text string)
}

type Player struct {
	Name     string
	Color    color.Color
	Keys     KeyMap
	Position Cell
	Heading  Direction
	Velocity int
	Trail    []Cell
	Alive    bool

	bounds    Bounds
	highlight color.Color
	observed  bool
}

type RoundState int

const (
	RUNNING RoundState = iota + 1
	ENDED
)

func (s RoundState) Name() string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case ENDED:
		return "ENDED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Round struct {
	Bounds   Bounds
	Velocity int
	Grid     *Grid
	Roster   []string
	Players  []*Player
	State    RoundState
	Frame    int
	Winner   string

	Background color.Color
	Highlight  color.Color
	FrameColor color.Color
}
