package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"roller-coaster/internal/config"
	"roller-coaster/internal/physics"
	"roller-coaster/internal/track"
)

func main() {
	envFile := flag.String("env", ".env", "Dotenv file with COASTER_* settings")
	trackPath := flag.String("track", "", "Waypoint CSV file (overrides COASTER_TRACK)")
	simulate := flag.Bool("simulate", false, "Run the ride without input and print every frame")
	quads := flag.Bool("quads", false, "Print the rail panels")
	flag.Parse()

	conf, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *trackPath != "" {
		conf.Track = *trackPath
	}
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
	rail := conf.Rail(dense)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "# %d waypoints, %d samples/segment, %d points, gap width %d\n",
		len(waypoints), dense.Samples(), dense.Len(), track.GapWidth(dense.Samples()))
	fmt.Fprintln(w, "# index solid x y railX railY")
	for i, p := range dense.Points() {
		top := rail.Top(p)
		fmt.Fprintf(w, "%d %t %.4f %.4f %.4f %.4f\n", i, p.Solid, p.Position.X, p.Position.Y, top.X, top.Y)
	}
	if *quads {
		fmt.Fprintf(w, "# %d rail panels (bl br tr tl)\n", len(rail.Quads))
		for _, q := range rail.Quads {
			fmt.Fprintf(w, "%.4f,%.4f %.4f,%.4f %.4f,%.4f %.4f,%.4f\n",
				q[0].X, q[0].Y, q[1].X, q[1].Y, q[2].X, q[2].Y, q[3].X, q[3].Y)
		}
	}
	if !*simulate {
		return
	}

	ride, err := physics.NewRide(dense, conf.Params())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(w, "# tick elapsed index mode x y theta")
	s := physics.NewState()
	for tick := 0; tick < 600*conf.TPS; tick++ { // ten minutes of play
		elapsed := float64(tick) / float64(conf.TPS)
		var f physics.Frame
		s, f = ride.Step(s, physics.Input{Elapsed: elapsed})
		fmt.Fprintf(w, "%d %.3f %d %s %.4f %.4f %.4f\n",
			tick, elapsed, f.Index, f.Mode, f.Position.X, f.Position.Y, f.Theta)
		if f.Mode == physics.GameOver || (f.Index == ride.Last() && f.Mode == physics.Grounded) {
			break
		}
	}
}
