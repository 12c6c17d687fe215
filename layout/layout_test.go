package layout

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/lumen-phi/go-resonance/phi"
)

func TestPhiChipGeometry(t *testing.T) {
	c := PhiChip()

	if len(c.Rings) != RingCount {
		t.Fatalf("got %d rings, want %d", len(c.Rings), RingCount)
	}
	x := 100.0
	for i, r := range c.Rings {
		wantR := BaseRadius * phi.Pow(i%4)
		if math.Abs(r.Radius-wantR) > 1e-9 {
			t.Errorf("ring %d radius %f, want %f", i, r.Radius, wantR)
		}
		if math.Abs(r.X-x) > 1e-9 {
			t.Errorf("ring %d at x=%f, want %f", i, r.X, x)
		}
		wantY := -10 + WaveguideWidth + CouplingGap + r.Radius
		if math.Abs(r.Y-wantY) > 1e-9 {
			t.Errorf("ring %d at y=%f, want %f", i, r.Y, wantY)
		}
		x += r.Radius * 2.5 * phi.Phi
	}

	if len(c.Rectangles) != 1 {
		t.Fatalf("got %d rectangles, want the spine only", len(c.Rectangles))
	}
	if spine := c.Rectangles[0]; spine.X2-spine.X1 != SpineLength {
		t.Errorf("spine length %f", spine.X2-spine.X1)
	}

	if len(c.Paths) != 2 {
		t.Fatalf("got %d splitter arms, want 2", len(c.Paths))
	}
	// 7 ring labels + 2 splitter ratio labels
	if len(c.Labels) != RingCount+2 {
		t.Errorf("got %d labels, want %d", len(c.Labels), RingCount+2)
	}
	last := c.Labels[len(c.Labels)-1]
	if last.Text != "61.8%" {
		t.Errorf("last label %q, want the lower splitter arm", last.Text)
	}
}

func TestBoundsCoverSpineAndRings(t *testing.T) {
	c := PhiChip()
	minX, minY, maxX, maxY := c.Bounds()

	if minX > 0 || maxX < SpineLength {
		t.Errorf("x bounds [%f, %f] should cover the spine", minX, maxX)
	}
	tallest := c.Rings[3] // φ³ scaling is the largest in the i mod 4 cycle
	if maxY < tallest.Y+tallest.Radius {
		t.Errorf("y bound %f should cover the tallest ring", maxY)
	}
	if minY > -10 {
		t.Errorf("y bound %f should cover the spine at y=-10", minY)
	}
}

func TestSummaryMentionsEveryRing(t *testing.T) {
	s := PhiChip().Summary()
	for _, want := range []string{"ring 0", "ring 6", "38.2% / 61.8%", "chip dimensions"} {
		if !bytes.Contains([]byte(s), []byte(want)) {
			t.Errorf("summary missing %q", want)
		}
	}
}

// walkRecords parses the stream record by record, returning a count per
// record type. Fails the test on any malformed record.
func walkRecords(t *testing.T, data []byte) map[uint16]int {
	t.Helper()
	counts := make(map[uint16]int)
	pos := 0
	for pos < len(data) {
		if pos+4 > len(data) {
			t.Fatalf("truncated record header at %d", pos)
		}
		length := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		rectype := binary.BigEndian.Uint16(data[pos+2 : pos+4])
		if length < 4 || pos+length > len(data) {
			t.Fatalf("bad record length %d at %d", length, pos)
		}
		counts[rectype]++
		pos += length
	}
	return counts
}

func TestWriteGDSStream(t *testing.T) {
	var buf bytes.Buffer
	if err := PhiChip().WriteGDS(&buf); err != nil {
		t.Fatalf("WriteGDS: %v", err)
	}
	data := buf.Bytes()

	if binary.BigEndian.Uint16(data[2:4]) != recHeader {
		t.Fatal("stream does not start with HEADER")
	}
	if got := binary.BigEndian.Uint16(data[len(data)-2:]); got != recEndLib {
		t.Fatalf("stream ends with %04x, want ENDLIB", got)
	}

	counts := walkRecords(t, data)
	if counts[recBoundary] != 1+RingCount {
		t.Errorf("boundaries = %d, want %d (spine + rings)", counts[recBoundary], 1+RingCount)
	}
	if counts[recPath] != 2 {
		t.Errorf("paths = %d, want 2", counts[recPath])
	}
	if counts[recText] != RingCount+2 {
		t.Errorf("texts = %d, want %d", counts[recText], RingCount+2)
	}
	// every element closes, plus structure and library
	if counts[recEndEl] != counts[recBoundary]+counts[recPath]+counts[recText] {
		t.Errorf("ENDEL count %d does not match element count", counts[recEndEl])
	}
	if counts[recBgnStr] != 1 || counts[recEndStr] != 1 || counts[recEndLib] != 1 {
		t.Error("stream should contain exactly one structure and one library")
	}
}

func decodeReal8(b []byte) float64 {
	if b[0] == 0 && b[1] == 0 {
		return 0
	}
	sign := 1.0
	if b[0]&0x80 != 0 {
		sign = -1
	}
	exp := int(b[0]&0x7f) - 64
	mant := 0.0
	for i := 1; i < 8; i++ {
		mant = mant*256 + float64(b[i])
	}
	return sign * mant / math.Pow(2, 56) * math.Pow(16, float64(exp))
}

func TestReal8RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.001, 1e-9, 1.0, -2.5, 1550e-9} {
		got := decodeReal8(real8(v))
		if v == 0 {
			if got != 0 {
				t.Errorf("real8(0) decoded to %g", got)
			}
			continue
		}
		if math.Abs(got-v)/math.Abs(v) > 1e-14 {
			t.Errorf("real8(%g) decoded to %g", v, got)
		}
	}
}
