package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/trails/server"
)

type Spectate struct {
	router *way.Router
	Hub    *server.Hub
}

func (s *Spectate) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", server.URI_WATCH, s.Hub.HandleHttpCall())
}

func startSpectate(addr string) *server.Hub {
	s := Spectate{Hub: server.NewHub()}
	go s.Hub.Loop()
	s.routes()
	go func() {
		log.Infof("spectators can watch on %s%s", addr, server.URI_WATCH)
		if err := http.ListenAndServe(addr, s.router); err != nil {
			log.Errorf("spectate server: %v", err)
		}
	}()
	return s.Hub
}
