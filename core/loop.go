package core

import (
	"log"
	"time"
)

// GameLoop drives a Room at a fixed tick rate.
type GameLoop struct {
	room     *Room
	tickRate int
	running  bool
	stopChan chan struct{}
}

func NewGameLoop(room *Room, tickRate int) *GameLoop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &GameLoop{
		room:     room,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running = true
	dt := time.Second / time.Duration(g.tickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	log.Printf("[loop] started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Printf("[loop] stopped")
			return
		case <-ticker.C:
			g.room.Tick(dt)
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
