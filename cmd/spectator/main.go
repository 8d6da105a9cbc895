package main

import (
	"encoding/gob"
	"os"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/model"
	"github.com/zucenko/trails/server"
)

func main() {
	addr := os.Getenv("TRAILS_SPECTATE")
	if addr == "" {
		addr = "localhost:8080"
		log.Printf("Defaulting to %s", addr)
	}
	url := "ws://" + addr + server.URI_WATCH
	con, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer con.Close()
	log.Infof("watching %s", url)

	var last model.Snapshot
	for {
		_, r, err := con.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Info("game closed the feed")
				return
			}
			log.Fatalf("read: %v", err)
		}
		var snap model.Snapshot
		if err := gob.NewDecoder(r).Decode(&snap); err != nil {
			log.Fatalf("decode: %v", err)
		}
		report(last, snap)
		last = snap
	}
}

func report(prev, snap model.Snapshot) {
	if snap.Frame < prev.Frame || prev.State == 0 {
		log.Infof("round with %v", snap.Roster)
	}
	for _, p := range snap.Players {
		if !p.Alive && alive(prev, p.Name) {
			log.Infof("frame %d: %s crashed at %d,%d after %d cells", snap.Frame, p.Name, p.X, p.Y, p.TrailLen)
		}
	}
	if snap.State == model.ENDED && prev.State != model.ENDED {
		log.Infof("frame %d: %s", snap.Frame, snap.Banner)
	}
	log.Debugf("frame %d %s roster %v", snap.Frame, snap.State.Name(), snap.Roster)
}

func alive(s model.Snapshot, name string) bool {
	for _, p := range s.Players {
		if p.Name == name {
			return p.Alive
		}
	}
	return false
}
