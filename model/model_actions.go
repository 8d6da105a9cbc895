package model

import (
	"image/color"

	log "github.com/sirupsen/logrus"
)

func NewPlayer(bounds Bounds, spawn Cell, c color.Color, keys KeyMap, name string, velocity int) *Player {
	if velocity <= 0 {
		velocity = DefaultVelocity
	}
	p := &Player{
		Name:      name,
		Color:     c,
		Keys:      keys,
		Position:  spawn,
		Velocity:  velocity,
		Trail:     []Cell{spawn},
		Alive:     true,
		bounds:    bounds,
		highlight: color.White,
	}
	// start moving away from the nearer horizontal edge
	if spawn.Y > bounds.H/2 {
		p.Heading = Up
	} else {
		p.Heading = Down
	}
	return p
}

// SetHeading looks only at the first pressed key, in Up, Down, Left, Right
// order. A reversing key is ignored along with every key after it.
// Reports whether the heading changed.
func (p *Player) SetHeading(keys KeySnapshot) bool {
	for _, d := range Directions {
		if !keys[p.Keys.For(d)] {
			continue
		}
		if d == p.Heading || d == p.Heading.Reverse() {
			return false
		}
		log.Debugf("%s heading %s -> %s", p.Name, p.Heading.Name(), d.Name())
		p.Heading = d
		return true
	}
	return false
}

// Advance moves one step, tests the new position and records it in both
// the player's trail and the shared grid.
func (p *Player) Advance(grid *Grid) {
	p.Position = p.Position.Step(p.Heading, p.Velocity)
	p.CheckCollision(grid)
	p.Trail = append(p.Trail, p.Position)
	grid.Occupy(p.Position)
}

func (p *Player) CheckCollision(grid *Grid) {
	if p.inTrail(p.Position) || grid.Occupied(p.Position) || !p.bounds.Contains(p.Position) {
		if p.Alive {
			log.Debugf("%s crashed at %d,%d", p.Name, p.Position.X, p.Position.Y)
		}
		p.Alive = false
	}
}

func (p *Player) inTrail(c Cell) bool {
	for _, t := range p.Trail {
		if t == c {
			return true
		}
	}
	return false
}

func (p *Player) Render(s Surface) {
	for _, c := range p.Trail {
		s.FillRect(c.X, c.Y, p.Velocity, p.Velocity, p.Color)
	}
	s.FillRect(p.Position.X, p.Position.Y, p.Velocity, p.Velocity, p.highlight)
}

func (p *Player) Erase(s Surface, background color.Color) {
	for _, c := range p.Trail {
		s.FillRect(c.X, c.Y, p.Velocity, p.Velocity, background)
	}
}
