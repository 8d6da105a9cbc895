package server

import (
	"encoding/gob"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/model"
)

const (
	timeout        = 200 * time.Millisecond
	spectatorQueue = 16
)

func NewHub() *Hub {
	return &Hub{
		Upgrader:   &websocket.Upgrader{},
		snapshots:  make(chan model.Snapshot, 4),
		joins:      make(chan *Spectator),
		leaves:     make(chan *Spectator),
		counts:     make(chan chan int),
		done:       make(chan struct{}),
		spectators: make(map[*Spectator]struct{}),
	}
}

// Publish hands a snapshot to the hub. It never blocks; when the hub is
// behind the snapshot is dropped.
func (h *Hub) Publish(s model.Snapshot) {
	select {
	case h.snapshots <- s:
	default:
		log.Warnf("Hub.Publish dropping frame %d, hub busy", s.Frame)
	}
}

// Count returns the number of connected spectators, or -1 once stopped.
func (h *Hub) Count() int {
	select {
	case <-h.done:
		return -1
	default:
	}
	reply := make(chan int, 1)
	select {
	case h.counts <- reply:
		return <-reply
	case <-h.done:
		return -1
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Loop() {
	log.Info("Hub.Loop starting")
	for {
		select {
		case s := <-h.joins:
			h.spectators[s] = struct{}{}
			log.Infof("Hub.Loop spectator %d joined, %d watching", s.Id, len(h.spectators))
			if h.last != nil {
				s.enqueue(*h.last)
			}
		case s := <-h.leaves:
			if _, found := h.spectators[s]; found {
				delete(h.spectators, s)
				close(s.MessagesToSend)
				log.Infof("Hub.Loop spectator %d left, %d watching", s.Id, len(h.spectators))
			}
		case snap := <-h.snapshots:
			h.last = &snap
			for s := range h.spectators {
				s.enqueue(snap)
			}
		case reply := <-h.counts:
			reply <- len(h.spectators)
		case <-h.done:
			for s := range h.spectators {
				close(s.MessagesToSend)
			}
			h.spectators = nil
			log.Info("Hub.Loop stopped")
			return
		}
	}
}

func (h *Hub) leave(s *Spectator) {
	select {
	case h.leaves <- s:
	case <-h.done:
	}
}

func (h *Hub) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Infof("HandleHttpCall - spectator from %s", r.RemoteAddr)
		con, err := h.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		s := &Spectator{
			State:          SS_NEW,
			Id:             atomic.AddInt32(&h.lastId, 1),
			Hub:            h,
			Conn:           con,
			MessagesToSend: make(chan model.Snapshot, spectatorQueue),
		}
		con.SetPingHandler(
			func(message string) error {
				err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
				atomic.AddInt32(&s.DebugPings, 1)
				if err == websocket.ErrCloseSent {
					return nil
				} else if e, ok := err.(net.Error); ok && e.Temporary() {
					return nil
				}
				return err
			})

		select {
		case h.joins <- s:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall join TIMEOUTED")
			if err := con.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "busy"),
				time.Now().Add(time.Second)); err != nil {
				log.Debugf("HandleHttpCall cant send close %v", err)
			}
			return
		case <-h.done:
			return
		}

		go s.LoopChannelRead()
		s.LoopChannelWrite()
		sent, dropped, pings := s.Stats()
		log.Infof("spectator %d left %s: %d frames sent, %d dropped, %d pings",
			s.Id, s.State.Name(), sent, dropped, pings)
	}
}

func (s *Spectator) enqueue(snap model.Snapshot) {
	select {
	case s.MessagesToSend <- snap:
	default:
		atomic.AddInt32(&s.DebugDropped, 1)
		log.Warnf("spectator %d too slow, dropping frame %d", s.Id, snap.Frame)
	}
}

// LoopChannelRead only watches for the spectator going away; spectators
// have nothing to say.
func (s *Spectator) LoopChannelRead() {
	for {
		if _, _, err := s.Conn.NextReader(); err != nil {
			log.Debugf("spectator %d read ended: %v", s.Id, err)
			s.Hub.leave(s)
			return
		}
	}
}

// LoopChannelWrite runs until the hub closes the queue or a write fails.
func (s *Spectator) LoopChannelWrite() {
	s.State = SS_WATCH
	for snap := range s.MessagesToSend {
		w, err := s.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("spectator %d cant get writer %v", s.Id, err)
			s.fail()
			return
		}
		if err = gob.NewEncoder(w).Encode(snap); err != nil {
			log.Warnf("spectator %d cant encode %v", s.Id, err)
			s.fail()
			return
		}
		if err = w.Close(); err != nil {
			log.Warnf("spectator %d cant flush %v", s.Id, err)
			s.fail()
			return
		}
		atomic.AddInt32(&s.DebugOutMessages, 1)
	}
	s.State = SS_OVER
	if err := s.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second)); err != nil {
		log.Debugf("spectator %d cant send close %v", s.Id, err)
	}
}

// Stats returns frames sent, frames dropped and pings answered.
func (s *Spectator) Stats() (sent, dropped, pings int) {
	return int(atomic.LoadInt32(&s.DebugOutMessages)),
		int(atomic.LoadInt32(&s.DebugDropped)),
		int(atomic.LoadInt32(&s.DebugPings))
}

func (s *Spectator) fail() {
	s.State = SS_ERR
	s.Hub.leave(s)
}
