package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"roller-coaster/internal/agent"
	"roller-coaster/internal/config"
	"roller-coaster/internal/physics"
	"roller-coaster/internal/render"
	"roller-coaster/internal/scene"
	"roller-coaster/internal/session"
	"roller-coaster/internal/track"
)

func main() {
	envFile := flag.String("env", ".env", "Dotenv file with COASTER_* settings")
	trackPath := flag.String("track", "", "Waypoint CSV file (overrides COASTER_TRACK)")
	autopilot := flag.Bool("autopilot", false, "Let the Q-learning agent jump; restarts after every game over")
	seed := flag.Int64("seed", 0, "Autopilot random seed (0 = time based)")
	flag.Parse()

	conf, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *trackPath != "" {
		conf.Track = *trackPath
	}
	conf.Autopilot = conf.Autopilot || *autopilot
	if err := conf.SetupTracing(); err != nil {
		log.Fatal(err)
	}

	waypoints, err := track.LoadWaypoints(conf.Track)
	if err != nil {
		log.Fatal(err)
	}
	dense, err := track.Build(waypoints, conf.Samples)
	if err != nil {
		log.Fatal(err)
	}
	ride, err := physics.NewRide(dense, conf.Params())
	if err != nil {
		log.Fatal(err)
	}

	var pilot agent.Agent
	if conf.Autopilot {
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		pilot = agent.NewAgent(*seed)
	}
	s := session.New(ride, scene.NewCoaster(conf.Rail(dense)), pilot)

	ebiten.SetWindowSize(conf.WindowWidth, conf.WindowHeight)
	ebiten.SetWindowTitle("Roller Coaster")
	ebiten.SetTPS(conf.TPS)

	if err := ebiten.RunGame(render.NewGame(s, conf.WindowWidth, conf.WindowHeight, conf.TPS)); err != nil {
		log.Fatal(err)
	}
}
