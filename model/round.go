package model

import (
	"image/color"

	log "github.com/sirupsen/logrus"
)

const frameWidth = 2

var (
	DefaultBackground = color.Black
	DefaultHighlight  = color.White
	DefaultFrameColor = color.White
)

func NewRound(bounds Bounds, velocity int) *Round {
	if velocity <= 0 {
		velocity = DefaultVelocity
	}
	return &Round{
		Bounds:     bounds,
		Velocity:   velocity,
		Grid:       NewGrid(),
		Roster:     make([]string, 0, MaxPlayers),
		Players:    make([]*Player, 0, MaxPlayers),
		State:      RUNNING,
		Background: DefaultBackground,
		Highlight:  DefaultHighlight,
		FrameColor: DefaultFrameColor,
	}
}

func (r *Round) SpawnPlayer(spawn Cell, c color.Color, keys KeyMap, name string) (*Player, error) {
	if len(r.Players) >= MaxPlayers {
		log.Warnf("SpawnPlayer %s rejected, %d players already registered", name, len(r.Players))
		return nil, ErrRosterFull
	}
	for _, other := range r.Players {
		if other.Name == name {
			log.Warnf("SpawnPlayer %s rejected, name taken", name)
			return nil, ErrDuplicateName
		}
	}
	r.Grid.Occupy(spawn)
	r.Roster = append(r.Roster, name)
	p := NewPlayer(r.Bounds, spawn, c, keys, name, r.Velocity)
	p.highlight = r.Highlight
	r.Players = append(r.Players, p)
	log.Infof("SpawnPlayer %s at %d,%d heading %s", name, spawn.X, spawn.Y, p.Heading.Name())
	return p, nil
}

// Step moves every alive player once, in registration order, so earlier
// players claim contested cells first.
func (r *Round) Step(keys KeySnapshot) {
	if r.State == ENDED {
		return
	}
	for _, p := range r.Players {
		if !p.Alive {
			continue
		}
		p.SetHeading(keys)
		p.Advance(r.Grid)
	}
	r.Frame++
}

// Resolve removes newly crashed players from the roster and ends the round
// once at most one name is left.
func (r *Round) Resolve() []*Player {
	if r.State == ENDED {
		return nil
	}
	var eliminated []*Player
	for _, p := range r.Players {
		if p.Alive || p.observed {
			continue
		}
		p.observed = true
		r.deregister(p)
		eliminated = append(eliminated, p)
		log.Infof("%s eliminated in frame %d", p.Name, r.Frame)
	}
	if len(r.Roster) <= 1 {
		r.State = ENDED
		if len(r.Roster) == 1 {
			r.Winner = r.Roster[0]
		}
		log.Infof("round over after %d frames: %s", r.Frame, r.Banner())
	}
	return eliminated
}

// deregister rebuilds the roster from the players still standing, keeping
// registration order.
func (r *Round) deregister(gone *Player) {
	roster := r.Roster[:0]
	for _, p := range r.Players {
		if p != gone && !p.observed {
			roster = append(roster, p.Name)
		}
	}
	r.Roster = roster
}

func (r *Round) Redraw(s Surface) {
	r.clear(s)
	eliminated := r.Resolve()
	if r.State == ENDED {
		r.clear(s)
		s.DrawBanner(r.Banner())
		return
	}
	for _, p := range eliminated {
		p.Erase(s, r.Background)
	}
	for _, p := range r.Players {
		if p.Alive {
			p.Render(s)
		}
	}
}

func (r *Round) clear(s Surface) {
	s.Fill(r.Background)
	w, h := r.Bounds.W, r.Bounds.H
	s.FillRect(0, 0, w, frameWidth, r.FrameColor)
	s.FillRect(0, h-frameWidth, w, frameWidth, r.FrameColor)
	s.FillRect(0, 0, frameWidth, h, r.FrameColor)
	s.FillRect(w-frameWidth, 0, frameWidth, h, r.FrameColor)
}

func (r *Round) Banner() string {
	if r.State != ENDED {
		return ""
	}
	if r.Winner == "" {
		return "Draw!"
	}
	return r.Winner + " wins!"
}
