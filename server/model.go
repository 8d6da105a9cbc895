package server

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/zucenko/trails/model"
)

const URI_WATCH = "/watch"

type Hub struct {
	Upgrader *websocket.Upgrader

	snapshots  chan model.Snapshot
	joins      chan *Spectator
	leaves     chan *Spectator
	counts     chan chan int
	done       chan struct{}
	spectators map[*Spectator]struct{}
	last       *model.Snapshot
	lastId     int32
}

type SpectatorState int

const (
	SS_NEW SpectatorState = iota + 1
	SS_WATCH
	SS_OVER
	SS_ERR
)

func (s SpectatorState) Name() string {
	switch s {
	case SS_NEW:
		return "NEW"
	case SS_WATCH:
		return "WATCH"
	case SS_OVER:
		return "OVER"
	case SS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Spectator struct {
	State SpectatorState
	Id    int32
	Hub   *Hub
	Conn  *websocket.Conn

	MessagesToSend chan model.Snapshot

	// counters are touched from the hub, reader and writer goroutines
	DebugOutMessages int32
	DebugDropped     int32
	DebugPings       int32
}
