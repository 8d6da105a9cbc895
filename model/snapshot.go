package model

// Snapshot is a copy of the round state sent to spectators.
type Snapshot struct {
	Frame   int
	State   RoundState
	Banner  string
	Roster  []string
	Players []PlayerState
}

type PlayerState struct {
	Name     string
	X, Y     int
	Heading  Direction
	Alive    bool
	TrailLen int
}

func (r *Round) Snapshot() Snapshot {
	players := make([]PlayerState, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerState{
			Name:     p.Name,
			X:        p.Position.X,
			Y:        p.Position.Y,
			Heading:  p.Heading,
			Alive:    p.Alive,
			TrailLen: len(p.Trail),
		})
	}
	roster := make([]string, len(r.Roster))
	copy(roster, r.Roster)
	return Snapshot{
		Frame:   r.Frame,
		State:   r.State,
		Banner:  r.Banner(),
		Roster:  roster,
		Players: players,
	}
}
