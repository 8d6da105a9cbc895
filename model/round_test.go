package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPlayerRound(t *testing.T) (*Round, *Player, *Player) {
	r := NewRound(field, 0)
	a, err := r.SpawnPlayer(Cell{400, 400}, red, arrows, "Player 1")
	require.NoError(t, err)
	b, err := r.SpawnPlayer(Cell{100, 100}, blue, wasd, "Player 2")
	require.NoError(t, err)
	return r, a, b
}

func TestSpawnPlayer(t *testing.T) {
	r, a, b := twoPlayerRound(t)
	assert.Equal(t, []string{"Player 1", "Player 2"}, r.Roster)
	assert.Equal(t, []*Player{a, b}, r.Players)
	assert.True(t, r.Grid.Occupied(Cell{400, 400}))
	assert.True(t, r.Grid.Occupied(Cell{100, 100}))
	assert.Equal(t, RUNNING, r.State)
}

func TestSpawnFifthPlayerRejected(t *testing.T) {
	r := NewRound(field, 0)
	for i, name := range []string{"a", "b", "c", "d"} {
		p, err := r.SpawnPlayer(Cell{100 + 50*i, 100}, red, arrows, name)
		require.NoError(t, err)
		require.NotNil(t, p)
	}
	p, err := r.SpawnPlayer(Cell{400, 400}, blue, wasd, "e")
	assert.Nil(t, p)
	assert.Equal(t, ErrRosterFull, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.Roster)
	assert.Len(t, r.Players, 4)
	assert.False(t, r.Grid.Occupied(Cell{400, 400}))
}

func TestSpawnDuplicateNameRejected(t *testing.T) {
	r, a, _ := twoPlayerRound(t)
	p, err := r.SpawnPlayer(Cell{250, 250}, red, KeyMap{21, 22, 23, 24}, "Player 1")
	assert.Nil(t, p)
	assert.Equal(t, ErrDuplicateName, err)
	assert.Equal(t, []string{"Player 1", "Player 2"}, r.Roster)
	assert.Len(t, r.Players, 2)
	assert.False(t, r.Grid.Occupied(Cell{250, 250}))

	// a crashed player leaves only its own roster entry behind
	a.Alive = false
	assert.Equal(t, []*Player{a}, r.Resolve())
	assert.Equal(t, []string{"Player 2"}, r.Roster)
	assert.Equal(t, "Player 2", r.Winner)
}

func TestStepMovesAlivePlayersInOrder(t *testing.T) {
	r, a, b := twoPlayerRound(t)
	r.Step(press(arrows.Left))
	assert.Equal(t, Cell{396, 400}, a.Position)
	assert.Equal(t, Cell{100, 104}, b.Position)
	assert.Equal(t, 1, r.Frame)

	b.Alive = false
	r.Step(press())
	assert.Equal(t, Cell{392, 400}, a.Position)
	assert.Equal(t, Cell{100, 104}, b.Position)
}

func TestCrossingTrail(t *testing.T) {
	r := NewRound(field, 0)
	a, err := r.SpawnPlayer(Cell{200, 200}, red, arrows, "A")
	require.NoError(t, err)
	b, err := r.SpawnPlayer(Cell{196, 200}, blue, wasd, "B")
	require.NoError(t, err)
	c, err := r.SpawnPlayer(Cell{50, 50}, blue, KeyMap{21, 22, 23, 24}, "C")
	require.NoError(t, err)

	r.Step(press(wasd.Right))
	assert.True(t, a.Alive)
	assert.False(t, b.Alive)
	assert.True(t, c.Alive)
	assert.Equal(t, Cell{200, 200}, b.Position)

	s := &recordingSurface{}
	r.Redraw(s)
	assert.Equal(t, []string{"A", "C"}, r.Roster)
	assert.Equal(t, RUNNING, r.State)
	assert.Empty(t, s.banners)
	assert.Equal(t, red, s.lastColorAt(Cell{200, 200}))

	// later frames never erase A
	r.Step(press())
	s = &recordingSurface{}
	r.Redraw(s)
	for _, cell := range a.Trail {
		assert.NotEqual(t, r.Background, s.lastColorAt(cell))
	}
	assert.Nil(t, s.lastColorAt(Cell{196, 200}), "dead trail redrawn")
	assert.True(t, r.Grid.Occupied(Cell{196, 200}))
}

func TestRoundEndsWithWinner(t *testing.T) {
	r, a, b := twoPlayerRound(t)
	b.Alive = false
	eliminated := r.Resolve()
	assert.Equal(t, []*Player{b}, eliminated)
	assert.Equal(t, ENDED, r.State)
	assert.Equal(t, "Player 1", r.Winner)
	assert.Equal(t, "Player 1 wins!", r.Banner())

	pos := a.Position
	for i := 0; i < 10; i++ {
		r.Step(press(arrows.Left))
	}
	assert.Equal(t, pos, a.Position)
	assert.Len(t, a.Trail, 1)
	assert.Equal(t, 0, r.Frame)

	s := &recordingSurface{}
	r.Redraw(s)
	assert.Equal(t, []string{"Player 1 wins!"}, s.banners)
	for _, rc := range s.rects {
		assert.Equal(t, r.FrameColor, rc.c, "player drawn after round end")
	}
	assert.Nil(t, r.Resolve())
}

func TestSimultaneousEliminationIsDraw(t *testing.T) {
	r := NewRound(field, 0)
	a, err := r.SpawnPlayer(Cell{0, 100}, red, arrows, "A")
	require.NoError(t, err)
	b, err := r.SpawnPlayer(Cell{0, 200}, blue, wasd, "B")
	require.NoError(t, err)

	r.Step(press(arrows.Left, wasd.Left))
	require.False(t, a.Alive)
	require.False(t, b.Alive)

	s := &recordingSurface{}
	r.Redraw(s)
	assert.Empty(t, r.Roster)
	assert.Equal(t, ENDED, r.State)
	assert.Equal(t, "", r.Winner)
	assert.Equal(t, []string{"Draw!"}, s.banners)
}

func TestPlayedRoundToTheEdge(t *testing.T) {
	r, a, b := twoPlayerRound(t)
	s := &recordingSurface{}
	frames := 0
	for r.State == RUNNING {
		r.Step(press())
		r.Redraw(s)
		frames++
		require.Less(t, frames, 200)
	}
	// both reach an edge on frame 101, A first in registration order
	assert.Equal(t, 101, frames)
	assert.False(t, a.Alive)
	assert.False(t, b.Alive)
	assert.Equal(t, "Draw!", r.Banner())
}

func TestSnapshot(t *testing.T) {
	r, _, b := twoPlayerRound(t)
	r.Step(press())
	b.Alive = false
	r.Resolve()

	snap := r.Snapshot()
	assert.Equal(t, 1, snap.Frame)
	assert.Equal(t, ENDED, snap.State)
	assert.Equal(t, "Player 1 wins!", snap.Banner)
	assert.Equal(t, []string{"Player 1"}, snap.Roster)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, PlayerState{Name: "Player 1", X: 400, Y: 396, Heading: Up, Alive: true, TrailLen: 2}, snap.Players[0])
	assert.False(t, snap.Players[1].Alive)

	r.Roster[0] = "changed"
	assert.Equal(t, []string{"Player 1"}, snap.Roster)
}
