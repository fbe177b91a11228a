// Package gcode implements the G-code Program: a
// Marlin-dialect writer that turns chained layer paths into motion
// commands while tracking extruder position and cumulative build
// time in an ExtrusionState.
package gcode

import (
	"fmt"
	"io"
	"math"

	"github.com/taigrr/slicer/pkg/config"
	"github.com/taigrr/slicer/pkg/geom2d"
)

// Bucket is one (layer, nozzle) unit of chained extrusion paths at a
// single extrusion width, the RawLayerPaths entry the emitter
// consumes.
type Bucket struct {
	Paths geom2d.Paths
	Width float64
}

// ExtrusionState is the emitter's mutable cursor: last position, last
// E coordinate, last selected nozzle, and the running build-time
// estimate.
type ExtrusionState struct {
	X, Y, Z   float64
	E         float64
	Nozzle    int
	BuildTime float64 // seconds
	zLifted   bool
}

// Program writes Marlin G-code to w, driven by cfg's Machine and
// Retraction options.
type Program struct {
	w     io.Writer
	cfg   *config.Config
	State ExtrusionState
}

// NewProgram creates a Program targeting w.
func NewProgram(w io.Writer, cfg *config.Config) *Program {
	return &Program{w: w, cfg: cfg, State: ExtrusionState{Nozzle: -1}}
}

func (e *Program) line(format string, args ...any) {
	fmt.Fprintf(e.w, format+"\n", args...)
}

// Prelude writes the Marlin startup block and the ;LAYER_COUNT
// marker.
func (e *Program) Prelude(layerCount int) {
	e.line(";FLAVOR:Marlin")
	e.line("M82 ; absolute extrusion")
	e.line("G21 ; millimeters")
	e.line("G90 ; absolute coordinates")
	e.line("M107 ; fan off")

	if bed := e.cfg.Int("bed_temp"); bed > 0 {
		e.line("M140 S%d", bed)
		e.line("M190 S%d", bed)
	}
	if hot := e.cfg.Nozzles[0].HotendTemp; hot > 0 {
		e.line("M104 S%d", hot)
		e.line("M109 S%d", hot)
	}

	e.line("G28 X0 Y0")
	e.line("G28 Z0")
	e.line("G0 Z15")
	e.line("G92 E0")
	e.line(";LAYER_COUNT:%d", layerCount)

	e.State.Z = 15
	e.State.E = 0
}

func (e *Program) travelXY() float64 { return e.cfg.Float("travel_rate_xy") * 60 }
func (e *Program) travelZ() float64  { return e.cfg.Float("travel_rate_z") * 60 }
func (e *Program) printFeed() float64 {
	feed := e.cfg.Float("feed_rate")
	max := e.cfg.Float("nozzle_max_speed")
	if max < feed {
		feed = max
	}
	return feed * 60
}
func (e *Program) retractSpeed() float64 { return e.cfg.Float("retract_speed") * 60 }

// Layer emits one full layer: the ;LAYER:n marker, then every
// non-empty nozzle bucket in order 0..3.
func (e *Program) Layer(index int, z float64, buckets [4]Bucket) {
	e.line(";LAYER:%d", index)
	for nozzle, b := range buckets {
		if len(b.Paths) == 0 {
			continue
		}
		e.toolChange(nozzle)
		for _, path := range b.Paths {
			e.emitPolyline(path, z, b.Width)
		}
	}
}

// toolChange retracts, switches the active extruder, and primes back
// when the target nozzle differs from the current one.
func (e *Program) toolChange(target int) {
	if e.State.Nozzle == target {
		return
	}
	retractExt := e.cfg.Float("retract_extruder")
	speed := e.retractSpeed()
	retracted := e.State.Nozzle >= 0 && retractExt > 0
	if retracted {
		e.State.E -= retractExt
		e.line("G1 E%.3f F%.0f", e.State.E, speed)
	}
	e.line("T%d", target)
	if retracted {
		e.State.E += retractExt
		e.line("G1 E%.3f F%.0f", e.State.E, speed)
	}
	e.State.Nozzle = target
}

// emitPolyline prints one chained polyline at width w on plane z.
func (e *Program) emitPolyline(path geom2d.Path, z, w float64) {
	if len(path) < 2 {
		return
	}
	lift := e.cfg.Float("retract_lift")
	start := path[0]

	if lift > 0 || e.State.Z != z {
		targetZ := z
		if lift > 0 {
			targetZ += lift
		}
		e.moveZ(targetZ)
		e.State.zLifted = lift > 0
	}

	e.rapidXY(start.X, start.Y)

	if e.State.zLifted {
		e.moveZ(z)
		e.State.zLifted = false
	}

	retractDist := e.cfg.Float("retract_dist")
	speed := e.retractSpeed()
	if retractDist > 0 {
		e.State.E += retractDist
		e.line("G1 E%.3f F%.0f", e.State.E, speed)
	}

	cur := start
	feed := e.printFeed()
	filDiam := e.cfg.Nozzles[e.State.Nozzle%len(e.cfg.Nozzles)].FilamentDiam
	if filDiam <= 0 {
		filDiam = e.cfg.Float("filament_diam")
	}
	layerHeight := e.cfg.Float("layer_height")

	for _, v := range path[1:] {
		d := math.Hypot(v.X-cur.X, v.Y-cur.Y)
		if d > 0 {
			area := math.Pi * (w / 2) * (layerHeight / 2)
			filArea := math.Pi * (filDiam / 2) * (filDiam / 2)
			dE := d * area / filArea
			e.State.E += dE
			e.line("G1 X%.2f Y%.2f E%.3f F%.0f", v.X, v.Y, e.State.E, feed)
			e.State.BuildTime += d / e.cfg.Float("feed_rate")
		}
		cur = v
	}
	e.State.X, e.State.Y = cur.X, cur.Y

	if retractDist > 0 {
		e.State.E -= retractDist
		e.line("G1 E%.3f F%.0f", e.State.E, speed)
	}
}

func (e *Program) rapidXY(x, y float64) {
	d := math.Hypot(x-e.State.X, y-e.State.Y)
	e.line("G0 X%.2f Y%.2f F%.0f", x, y, e.travelXY())
	e.State.X, e.State.Y = x, y
	if d > 0 {
		e.State.BuildTime += d / e.cfg.Float("travel_rate_xy")
	}
}

func (e *Program) moveZ(z float64) {
	dz := math.Abs(z - e.State.Z)
	e.line("G0 Z%.2f F%.0f", z, e.travelZ())
	e.State.Z = z
	if dz > 0 {
		e.State.BuildTime += dz / e.cfg.Float("travel_rate_z")
	}
}
