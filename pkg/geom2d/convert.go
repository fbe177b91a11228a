package geom2d

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ToPathData renders paths as a seehuhn.de/go/geom/path.Data command
// stream (MoveTo/LineTo/Close per ring). The slicing pipeline does not
// call it; convert_test.go uses it with FromPathData to round-trip a
// ring.
func ToPathData(paths Paths) *path.Data {
	d := &path.Data{}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		ring := open(p)
		if len(ring) == 0 {
			continue
		}
		d = d.MoveTo(ring[0])
		for _, v := range ring[1:] {
			d = d.LineTo(v)
		}
		d = d.Close()
	}
	return d
}

// FromPathData converts a path.Data command stream back into Paths,
// flattening any quadratic/cubic segments is not supported here since
// the slicer never emits curved geometry; MoveTo/LineTo/Close is all
// it needs to round-trip.
func FromPathData(d *path.Data) Paths {
	var out Paths
	var current Path
	var start vec.Vec2
	coordIdx := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if len(current) > 0 {
				out = append(out, current)
			}
			start = d.Coords[coordIdx]
			current = Path{start}
			coordIdx++
		case path.CmdLineTo:
			current = append(current, d.Coords[coordIdx])
			coordIdx++
		case path.CmdClose:
			current = append(current, start)
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}
