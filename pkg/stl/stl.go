// Package stl implements the STL Reader: it parses ASCII or binary
// STL into a mesh.Store, applying Z-quantization and dropping
// zero-area and near-degenerate facets as it goes.
//
// The binary/ASCII dispatch, the little-endian float32 reader, and
// the bufio.Scanner line-by-line ASCII grammar follow the same shape
// as a typical flat-vertex-slice STL loader, generalized here to
// write into the interning mesh.Store instead, with malformed-facet
// recovery and degeneracy rules added so a bad facet doesn't fail
// the whole read.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taigrr/slicer/pkg/diag"
	"github.com/taigrr/slicer/pkg/math3d"
	"github.com/taigrr/slicer/pkg/mesh"
)

const binaryHeaderSize = 84 // 80-byte header + uint32 facet count
const binaryFacetSize = 50  // 3 float32 normal + 9 float32 vertices + uint16 attr

// Read parses STL data (ASCII or binary, auto-detected) into a fresh
// mesh.Store, recording any non-fatal diagnostics on diags.
func Read(data []byte, diags *diag.Collector) (*mesh.Store, error) {
	store := mesh.NewStore()
	if isBinary(data) {
		return store, readBinary(store, data, diags)
	}
	return store, readASCII(store, data, diags)
}

// ReadFile opens path and parses it as STL. I/O errors are fatal.
func ReadFile(path string, diags *diag.Collector) (*mesh.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read STL file: %w", err)
	}
	return Read(data, diags)
}

// isBinary implements the binary-vs-ASCII detection rule: the first 80
// bytes are read; if the prefix (case-insensitive) is "solid " and
// the file appears human-readable, parse as ASCII; otherwise binary.
func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize {
		return len(data) >= 5 && !hasSolidPrefix(data)
	}

	if !hasSolidPrefix(data) {
		return true
	}

	// "solid " prefix present: could still be a binary file whose
	// 80-byte header happens to start with "solid ". Binary iff the
	// declared triangle count exactly accounts for the file size, or
	// the body isn't valid text.
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expected := uint64(binaryHeaderSize) + uint64(triCount)*binaryFacetSize
	if uint64(len(data)) == expected {
		return true
	}
	return !looksHumanReadable(data[:min(len(data), 4096)])
}

func hasSolidPrefix(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) >= 5 && strings.EqualFold(string(trimmed[:5]), "solid")
}

func looksHumanReadable(sample []byte) bool {
	if !utf8.Valid(sample) {
		return false
	}
	for _, b := range sample {
		if b == 0 {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func readFloat32LE(data []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
}

func readBinary(store *mesh.Store, data []byte, diags *diag.Collector) error {
	if len(data) < binaryHeaderSize {
		return fmt.Errorf("binary STL too short: %d bytes", len(data))
	}
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expected := uint64(binaryHeaderSize) + uint64(triCount)*binaryFacetSize
	if uint64(len(data)) < expected {
		return fmt.Errorf("binary STL truncated: expected %d bytes, got %d", expected, len(data))
	}

	offset := binaryHeaderSize
	for range triCount {
		normal := math3d.V3(
			readFloat32LE(data[offset:]),
			readFloat32LE(data[offset+4:]),
			readFloat32LE(data[offset+8:]),
		)
		offset += 12

		var verts [3]math3d.Vec3
		for v := range 3 {
			verts[v] = math3d.V3(
				readFloat32LE(data[offset:]),
				readFloat32LE(data[offset+4:]),
				readFloat32LE(data[offset+8:]),
			)
			offset += 12
		}
		offset += 2 // attribute byte count

		addFacet(store, verts, normal, -1, diags)
	}
	return nil
}

func readASCII(store *mesh.Store, data []byte, diags *diag.Collector) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	var verts []math3d.Vec3
	var normal math3d.Vec3
	inFacet, inLoop, malformed := false, false, false

	recover := func(reason string) {
		diags.AddLayer(diag.StlMalformedLine, -1, "line %d: %s", lineNum, reason)
		inFacet, inLoop, malformed = false, false, true
		verts = verts[:0]
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			// name ignored; mesh.Store has no name field.

		case "facet":
			malformed = false
			verts = verts[:0]
			inFacet = true
			if len(fields) >= 5 && strings.EqualFold(fields[1], "normal") {
				n, err := parseVec3(fields[2], fields[3], fields[4])
				if err != nil {
					recover("invalid facet normal")
					continue
				}
				normal = n
			} else {
				normal = math3d.Vec3{}
			}

		case "outer":
			if !inFacet {
				continue
			}
			if len(fields) >= 2 && strings.EqualFold(fields[1], "loop") {
				inLoop = true
			}

		case "vertex":
			if !inFacet || !inLoop || malformed {
				continue
			}
			if len(fields) < 4 {
				recover("vertex needs x y z")
				continue
			}
			p, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				recover("invalid vertex coordinate")
				continue
			}
			verts = append(verts, p)

		case "endloop":
			inLoop = false

		case "endfacet":
			if !malformed && len(verts) == 3 {
				addFacet(store, [3]math3d.Vec3{verts[0], verts[1], verts[2]}, normal, lineNum, diags)
			}
			inFacet, malformed = false, false
			verts = verts[:0]

		case "endsolid":
			// StlEndOfFile: clean termination, not an error.
			return nil

		default:
			// Ignore unknown tokens.
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ASCII STL: %w", err)
	}
	return nil
}

func parseVec3(xs, ys, zs string) (math3d.Vec3, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := strconv.ParseFloat(zs, 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

// addFacet applies the post-parse rules: skip the facet if
// any two vertices coincide after quantization, or if the two edges
// emanating from v2 are collinear within 1e-8 rad; otherwise intern
// it into store.
func addFacet(store *mesh.Store, verts [3]math3d.Vec3, normal math3d.Vec3, line int, diags *diag.Collector) {
	ids := [3]mesh.PointID{
		store.AddPoint(verts[0]),
		store.AddPoint(verts[1]),
		store.AddPoint(verts[2]),
	}
	p := [3]math3d.Vec3{store.Point(ids[0]), store.Point(ids[1]), store.Point(ids[2])}

	if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] {
		diags.AddLayer(diag.ZeroAreaFacet, -1, "line %d: coincident vertices after quantization", line)
		return
	}

	e1 := p[0].Sub(p[1])
	e2 := p[2].Sub(p[1])
	if collinear(e1, e2) {
		diags.AddLayer(diag.ZeroAreaFacet, -1, "line %d: collinear edges at v2", line)
		return
	}

	store.AddFacet(ids[0], ids[1], ids[2], normal)
}

// collinear reports whether a and b are parallel within 1e-8 rad.
func collinear(a, b math3d.Vec3) bool {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return true
	}
	cross := a.Cross(b)
	sinAngle := cross.Len() / (la * lb)
	if sinAngle > 1 {
		sinAngle = 1
	}
	angle := math.Asin(sinAngle)
	return angle < 1e-8
}

// Write emits store as ASCII STL, used for round-trip testing.
func Write(w io.Writer, store *mesh.Store) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "solid slicer")
	for _, f := range store.Facets {
		n := f.Normal
		fmt.Fprintf(bw, "facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintln(bw, "outer loop")
		for _, vid := range f.V {
			v := store.Point(vid)
			fmt.Fprintf(bw, "vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "endloop")
		fmt.Fprintln(bw, "endfacet")
	}
	fmt.Fprintln(bw, "endsolid slicer")
	return bw.Flush()
}
