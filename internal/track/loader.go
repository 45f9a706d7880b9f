package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"roller-coaster/internal/common"
)

// GapMarker prefixes the x field of a waypoint row that starts a gap.
const GapMarker = "x"

// finishHeight is the y of the waypoint appended after the last row.
const finishHeight = 5.0

// LoadWaypoints reads a waypoint file; see ReadWaypoints.
func LoadWaypoints(path string) ([]Waypoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	waypoints, err := ReadWaypoints(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded %d waypoints from %s", len(waypoints), path)
	return waypoints, nil
}

// ReadWaypoints parses rows of the form
//
//	x,y     solid checkpoint
//	xX,y    gap checkpoint (x field prefixed with "x")
//
// A solid start waypoint at the origin is prepended and a solid finish
// waypoint one unit after the last row, at height 5, is appended. Lines
// starting with '#' are ignored. The result is validated.
func ReadWaypoints(r io.Reader) ([]Waypoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	waypoints := []Waypoint{{Solid: true}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)
		wp, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		waypoints = append(waypoints, wp)
	}
	if len(waypoints) == 1 {
		return nil, fmt.Errorf("%w: no waypoint rows", ErrInvalidInput)
	}
	last := waypoints[len(waypoints)-1].Position
	waypoints = append(waypoints, Waypoint{
		Solid:    true,
		Position: common.Vec2{X: last.X + 1, Y: finishHeight},
	})
	if err := Validate(waypoints); err != nil {
		return nil, err
	}
	return waypoints, nil
}

func parseRow(record []string) (Waypoint, error) {
	if len(record) < 2 {
		return Waypoint{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedRow, len(record))
	}
	xs := strings.TrimSpace(record[0])
	solid := true
	if strings.HasPrefix(xs, GapMarker) {
		solid = false
		xs = strings.TrimPrefix(xs, GapMarker)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return Waypoint{}, fmt.Errorf("%w: x: %v", ErrMalformedRow, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Waypoint{}, fmt.Errorf("%w: y: %v", ErrMalformedRow, err)
	}
	return Waypoint{Solid: solid, Position: common.Vec2{X: x, Y: y}}, nil
}

// WriteWaypoints writes waypoints in the format read by ReadWaypoints. The
// implicit start and finish waypoints are not written, so callers pass only
// the authored rows.
func WriteWaypoints(w io.Writer, waypoints []Waypoint) error {
	writer := csv.NewWriter(w)
	for _, wp := range waypoints {
		xs := strconv.FormatFloat(wp.Position.X, 'g', -1, 64)
		if !wp.Solid {
			xs = GapMarker + xs
		}
		ys := strconv.FormatFloat(wp.Position.Y, 'g', -1, 64)
		if err := writer.Write([]string{xs, ys}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
