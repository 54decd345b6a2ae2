package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/topdown/components"
	"github.com/automoto/topdown/config"
	"github.com/automoto/topdown/core"
	"github.com/automoto/topdown/movement"
)

func main() {
	width := flag.Int("width", 640, "Room width in pixels")
	height := flag.Int("height", 480, "Room height in pixels")
	tickRate := flag.Int("tickrate", 60, "Simulation tick rate (updates per second)")
	snapshotEvery := flag.Duration("snapshot", 2*time.Second, "Snapshot log interval (0 = off)")
	flag.Parse()

	config.ApplyEnvOverrides()

	room := core.NewRoom(*width, *height)
	if err := buildDemoRoom(room, float64(*width), float64(*height)); err != nil {
		log.Fatalf("Failed to build room: %v", err)
	}

	loop := core.NewGameLoop(room, *tickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down simulation...")
		loop.Stop()
	}()

	if *snapshotEvery > 0 {
		go func() {
			ticker := time.NewTicker(*snapshotEvery)
			defer ticker.Stop()
			for range ticker.C {
				snap := room.Snapshot()
				if data, err := json.Marshal(snap); err == nil {
					log.Printf("[sim] snapshot: %s", data)
				}
			}
		}()
	}

	log.Printf("Starting simulation %dx%d (tick rate: %d/s)", *width, *height, *tickRate)
	loop.Run()
}

// buildDemoRoom sets up a bordered arena with a patrolling guard, a wander
// target, and a vision cone on the guard that logs detections.
func buildDemoRoom(room *core.Room, w, h float64) error {
	walls := []struct {
		id         string
		x, y, w, h float64
	}{
		{"wall-top", 0, 0, w, 16},
		{"wall-bottom", 0, h - 16, w, 16},
		{"wall-left", 0, 16, 16, h - 32},
		{"wall-right", w - 16, 16, 16, h - 32},
		{"pillar", w/2 - 24, h/2 - 24, 48, 48},
	}
	for _, wl := range walls {
		if err := room.AddStaticHitbox(wl.id, wl.x, wl.y, wl.w, wl.h); err != nil {
			return err
		}
	}

	guardID, err := room.AddMovableHitbox(nil, 64, 64, 24, 24, core.MovableOptions{
		ID:      "guard",
		Sliding: &components.SlidingData{Enabled: true},
	})
	if err != nil {
		return err
	}
	room.AddMovement(guardID, movement.NewPathFollow([]movement.Point{
		{X: 80, Y: 80},
		{X: w - 80, Y: 80},
		{X: w - 80, Y: h - 80},
		{X: 80, Y: h - 80},
	}, 120, true, 500*time.Millisecond))

	targetID, err := room.AddMovableHitbox(nil, w-96, h/2, 20, 20, core.MovableOptions{ID: "wanderer"})
	if err != nil {
		return err
	}
	room.AddMovement(targetID, movement.NewOscillate(0, 1, 60, 2*time.Second, movement.OscillateSine, 0))

	if err := room.AddZone(core.ZoneSpec{
		ID:             "guard-vision",
		Shape:          components.ZoneWedge,
		Radius:         140,
		Aperture:       math.Pi / 2,
		HostID:         guardID,
		LimitedByWalls: true,
	}); err != nil {
		return err
	}

	room.OnZoneEnter("guard-vision", func(ids []string) {
		log.Printf("[sim] guard spotted: %v", ids)
	})
	room.OnZoneExit("guard-vision", func(ids []string) {
		log.Printf("[sim] guard lost sight of: %v", ids)
	})
	room.OnCollisionEnter(guardID, func(ids []string) {
		log.Printf("[sim] guard bumped into: %v", ids)
	})

	return nil
}
