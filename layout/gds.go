package layout

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

// GDSII record types used by the writer.
const (
	recHeader   = 0x0002
	recBgnLib   = 0x0102
	recLibName  = 0x0206
	recUnits    = 0x0305
	recEndLib   = 0x0400
	recBgnStr   = 0x0502
	recStrName  = 0x0606
	recEndStr   = 0x0700
	recBoundary = 0x0800
	recPath     = 0x0900
	recText     = 0x0C00
	recLayer    = 0x0D02
	recDatatype = 0x0E02
	recWidth    = 0x0F03
	recXY       = 0x1003
	recEndEl    = 0x1100
	recTextType = 0x1602
	recString   = 0x1906
)

// Database grid: 1 db unit = 1 nm, 1 user unit = 1 µm.
const dbPerMicron = 1000

// circleSegments controls how finely ring annuli are discretized.
const circleSegments = 64

// WriteGDS writes the chip as a GDSII stream: one library, one structure,
// rings as annulus boundaries, waveguides as paths, labels as text elements
// on the label layer.
func (c *Chip) WriteGDS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	g := &gdsWriter{w: bw}

	now := time.Now()
	g.record(recHeader, u16(600))
	g.record(recBgnLib, timestamp(now))
	g.record(recLibName, str(c.Name))
	g.record(recUnits, append(real8(1.0/dbPerMicron), real8(1e-9)...))
	g.record(recBgnStr, timestamp(now))
	g.record(recStrName, str(c.Name))

	for _, r := range c.Rectangles {
		g.boundary(LayerWaveguide, []Point{
			{r.X1, r.Y1}, {r.X2, r.Y1}, {r.X2, r.Y2}, {r.X1, r.Y2}, {r.X1, r.Y1},
		})
	}
	for _, r := range c.Rings {
		g.boundary(LayerWaveguide, annulus(r))
	}
	for _, p := range c.Paths {
		g.path(LayerWaveguide, p)
	}
	for _, l := range c.Labels {
		g.text(LayerLabel, l)
	}

	g.record(recEndStr, nil)
	g.record(recEndLib, nil)

	if g.err != nil {
		return g.err
	}
	return bw.Flush()
}

// WriteGDSFile writes the chip to a file, creating or truncating it.
func (c *Chip) WriteGDSFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()
	if err := c.WriteGDS(f); err != nil {
		return fmt.Errorf("writing stream: %w", err)
	}
	return f.Close()
}

// annulus traces a ring as a single boundary: the outer circle, then the
// inner circle in reverse, closed back to the start.
func annulus(r Ring) []Point {
	outer := r.Radius + WaveguideWidth/2
	inner := r.Radius - WaveguideWidth/2

	pts := make([]Point, 0, 2*circleSegments+3)
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, Point{r.X + outer*math.Cos(a), r.Y + outer*math.Sin(a)})
	}
	for i := circleSegments; i >= 0; i-- {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, Point{r.X + inner*math.Cos(a), r.Y + inner*math.Sin(a)})
	}
	return append(pts, pts[0])
}

type gdsWriter struct {
	w   io.Writer
	err error
}

// record writes one length-prefixed GDSII record. The length field counts
// the 4 header bytes.
func (g *gdsWriter) record(rectype uint16, data []byte) {
	if g.err != nil {
		return
	}
	header := make([]byte, 4)
	binary.BigEndian.PutUint16(header[0:2], uint16(4+len(data)))
	binary.BigEndian.PutUint16(header[2:4], rectype)
	if _, err := g.w.Write(header); err != nil {
		g.err = err
		return
	}
	if len(data) > 0 {
		if _, err := g.w.Write(data); err != nil {
			g.err = err
		}
	}
}

func (g *gdsWriter) boundary(layer int, pts []Point) {
	g.record(recBoundary, nil)
	g.record(recLayer, u16(uint16(layer)))
	g.record(recDatatype, u16(0))
	g.record(recXY, xy(pts))
	g.record(recEndEl, nil)
}

func (g *gdsWriter) path(layer int, p Path) {
	g.record(recPath, nil)
	g.record(recLayer, u16(uint16(layer)))
	g.record(recDatatype, u16(0))
	g.record(recWidth, i32(int32(math.Round(p.Width*dbPerMicron))))
	g.record(recXY, xy(p.Points))
	g.record(recEndEl, nil)
}

func (g *gdsWriter) text(layer int, l Label) {
	g.record(recText, nil)
	g.record(recLayer, u16(uint16(layer)))
	g.record(recTextType, u16(0))
	g.record(recXY, xy([]Point{l.At}))
	g.record(recString, str(l.Text))
	g.record(recEndEl, nil)
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func i32(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return b
}

// xy encodes points as int32 database-unit pairs.
func xy(pts []Point) []byte {
	b := make([]byte, 0, 8*len(pts))
	for _, p := range pts {
		b = append(b, i32(int32(math.Round(p.X*dbPerMicron)))...)
		b = append(b, i32(int32(math.Round(p.Y*dbPerMicron)))...)
	}
	return b
}

// str encodes an ASCII string, null-padded to even length per the format.
func str(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// timestamp encodes the modification and access times BGNLIB/BGNSTR expect:
// twelve 16-bit fields of year, month, day, hour, minute, second.
func timestamp(t time.Time) []byte {
	b := make([]byte, 0, 24)
	fields := []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	for i := 0; i < 2; i++ {
		for _, f := range fields {
			b = append(b, u16(uint16(f))...)
		}
	}
	return b
}

// real8 encodes a float in the GDSII excess-64 base-16 format: a sign bit,
// a 7-bit exponent, and a 56-bit mantissa in [1/16, 1).
func real8(f float64) []byte {
	b := make([]byte, 8)
	if f == 0 {
		return b
	}

	var sign byte
	if f < 0 {
		sign = 0x80
		f = -f
	}

	exp := 64
	for f >= 1 {
		f /= 16
		exp++
	}
	for f < 1.0/16 {
		f *= 16
		exp--
	}

	mant := uint64(f * (1 << 56))
	if mant >= 1<<56 {
		mant = 1<<56 - 1
	}

	b[0] = sign | byte(exp)
	for i := 7; i >= 1; i-- {
		b[i] = byte(mant)
		mant >>= 8
	}
	return b
}
