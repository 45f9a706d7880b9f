package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"roller-coaster/internal/track"
)

func main() {
	out := flag.String("out", "assets/track.csv", "Output CSV file")
	n := flag.Int("n", 12, "Number of waypoints")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	flag.Parse()

	if *n < 1 {
		log.Fatalf("need at least one waypoint, got %d", *n)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	waypoints := track.Generate(rand.New(rand.NewSource(*seed)), *n)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "# generated with seed %d\n", *seed); err != nil {
		log.Fatal(err)
	}
	if err := track.WriteWaypoints(f, waypoints); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d waypoints to %s", len(waypoints), *out)
}
