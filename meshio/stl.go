package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
)

const stlTriangleSize = 50

// vertexEpsilon is the tolerance below which two vertices of a decoded
// triangle count as identical, making the triangle degenerate.
const vertexEpsilon = 1e-12

// ReadSTL loads an STL file, binary or ASCII, dropping degenerate
// triangles and welding shared vertices.
func ReadSTL(path string) (*karat.Mesh, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read stl")
	}
	return DecodeSTL(bytes.NewReader(b))
}

// DecodeSTL decodes an STL stream. ASCII models are detected by their
// "solid" prefix; because some binary exporters also begin the 80 byte
// binary header with "solid", a fruitless ASCII parse falls back to
// binary before giving up.
func DecodeSTL(r io.ReadSeeker) (*karat.Mesh, error) {
	var magic [5]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "stl: read header")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "stl: rewind")
	}
	var (
		triangles []karat.Triangle
		err       error
	)
	if string(magic[:]) == "solid" {
		triangles, err = readASCIISTL(r)
		if err != nil || len(triangles) == 0 {
			if _, serr := r.Seek(0, io.SeekStart); serr != nil {
				return nil, errors.Wrap(serr, "stl: rewind")
			}
			if binTris, binErr := readBinarySTL(r); binErr == nil {
				triangles, err = binTris, nil
			}
		}
	} else {
		triangles, err = readBinarySTL(r)
	}
	if err != nil {
		return nil, err
	}
	if len(triangles) == 0 {
		return nil, errors.New("stl: no triangles")
	}
	return karat.FromTriangles(triangles, 0)
}

func readBinarySTL(r io.Reader) (output []karat.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.Wrap(err, "STL header read failed")
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
		i   int
	)
	defer func() {
		if readErr != nil {
			readErr = errors.Wrapf(readErr, "%d/%d STL triangles read", i+1, header.Count)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, err
		}
		if d.degenerate(vertexEpsilon) {
			continue // zero-area slivers carry no measurable surface
		}
		output = append(output, d.triangle())
	}
	return output, nil
}

func readASCIISTL(r io.Reader) ([]karat.Triangle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var (
		output []karat.Triangle
		verts  []r3.Vec
		line   int
	)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				return nil, errors.Errorf("stl: line %d: vertex needs 3 coordinates", line)
			}
			var v r3.Vec
			for i, coord := range []*float64{&v.X, &v.Y, &v.Z} {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(err, "stl: line %d", line)
				}
				*coord = f
			}
			verts = append(verts, v)
		case "endfacet":
			if len(verts) != 3 {
				return nil, errors.Errorf("stl: line %d: facet has %d vertices", line, len(verts))
			}
			t := karat.Triangle{verts[0], verts[1], verts[2]}
			verts = verts[:0]
			if t.Degenerate(vertexEpsilon) {
				continue
			}
			output = append(output, t)
		}
	}
	return output, errors.Wrap(scanner.Err(), "stl: scan")
}

// WriteSTL writes the mesh to path as binary STL.
func WriteSTL(path string, m *karat.Mesh) error {
	if m.IsEmpty() {
		return errors.New("stl: refusing to write empty mesh")
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write stl")
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := EncodeSTL(w, m); err != nil {
		return err
	}
	return errors.Wrap(w.Flush(), "write stl")
}

// EncodeSTL writes the mesh to w in binary STL format. Facet normals are
// computed from the vertices; stored normals of decoded models are not
// kept.
func EncodeSTL(w io.Writer, m *karat.Mesh) error {
	if m.IsEmpty() {
		return errors.New("stl: empty mesh")
	}
	header := stlHeader{
		Count: uint32(m.TriangleCount()),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "stl: write header")
	}
	var (
		b [stlTriangleSize]byte
		d stlTriangle
	)
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		d.Normal = f32From(t.Normal())
		d.Vertex1 = f32From(t[0])
		d.Vertex2 = f32From(t[1])
		d.Vertex3 = f32From(t[2])
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return errors.Wrapf(err, "stl: write triangle %d", i)
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

// degenerate returns true if two of the triangle's vertices are identical
// within tol.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (t stlTriangle) triangle() karat.Triangle {
	return karat.Triangle{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func f32From(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
