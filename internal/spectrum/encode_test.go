package spectrum

import (
	"bytes"
	"math"
	"testing"
)

func TestGlobalRangeWidensCollapsed(t *testing.T) {
	// An all-black image has a zero spectrum, so every log-magnitude is
	// identical; the range must widen synthetically to 1.0.
	spec, err := Forward(makeSolid(4, 4, 0, 0, 0))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	rng := GlobalRange(LogMagnitude(spec))
	if got := rng.Width(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("collapsed range width = %g, want 1.0", got)
	}
}

func TestGlobalRangeSharedAcrossChannels(t *testing.T) {
	// Red is much brighter than blue, so red dominates the max while the
	// blue channel's zero bins set the min. One range covers both.
	spec, err := Forward(makeSolid(4, 4, 250, 10, 0))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	logMag := LogMagnitude(spec)
	rng := GlobalRange(logMag)

	redDC := logMag[ChannelR][2*4+2]
	if math.Abs(rng.Max-redDC) > 1e-12 {
		t.Errorf("range max = %g, want red DC log-magnitude %g", rng.Max, redDC)
	}
	blueZero := logMag[ChannelB][0]
	if math.Abs(rng.Min-blueZero) > 1e-12 {
		t.Errorf("range min = %g, want zero-bin log-magnitude %g", rng.Min, blueZero)
	}
}

func TestNormalizeDegenerateRange(t *testing.T) {
	values := []float64{1, 2, 3}
	out := Normalize(values, Range{Min: 5, Max: 5})
	for i, v := range out {
		if v != 0 {
			t.Errorf("degenerate range: out[%d] = %d, want 0", i, v)
		}
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	out := Normalize([]float64{0, 5, 10, -3, 42}, Range{Min: 0, Max: 10})
	want := []uint8{0, 127, 255, 0, 255}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestEncodeMagnitudeSolidGray(t *testing.T) {
	// Solid gray concentrates all energy in the DC bin: the visualization
	// is black everywhere except a full-scale DC pixel in each channel.
	spec, err := Forward(makeSolid(4, 4, 128, 128, 128))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	rng := GlobalRange(LogMagnitude(spec))
	vis := EncodeMagnitude(spec, rng)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			off := y*vis.Stride + x*4
			for c := 0; c < 3; c++ {
				v := vis.Pix[off+c]
				if x == 2 && y == 2 {
					if v != 255 {
						t.Errorf("DC pixel channel %d = %d, want 255", c, v)
					}
				} else if v != 0 {
					t.Errorf("pixel (%d,%d) channel %d = %d, want 0", x, y, c, v)
				}
			}
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	spec, err := Forward(makeGradient(8, 6))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	rng := GlobalRange(LogMagnitude(spec))

	magA := EncodeMagnitude(spec, rng)
	magB := EncodeMagnitude(spec, rng)
	if !bytes.Equal(magA.Pix, magB.Pix) {
		t.Errorf("EncodeMagnitude is not byte-identical on unchanged input")
	}

	for _, ch := range []Channel{ChannelR, ChannelG, ChannelB} {
		phaseA := EncodePhase(spec, ch, rng)
		phaseB := EncodePhase(spec, ch, rng)
		if !bytes.Equal(phaseA.Pix, phaseB.Pix) {
			t.Errorf("EncodePhase(%v) is not byte-identical on unchanged input", ch)
		}
	}
}

func TestEncodePhaseValueFloor(t *testing.T) {
	// Zero-magnitude bins must still carry a visible hue: value is
	// floored at 1, never 0.
	spec, err := Forward(makeSolid(4, 4, 128, 128, 128))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	rng := GlobalRange(LogMagnitude(spec))
	vis := EncodePhase(spec, ChannelG, rng)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			off := y*vis.Stride + x*4
			maxC := vis.Pix[off]
			for c := 1; c < 3; c++ {
				if vis.Pix[off+c] > maxC {
					maxC = vis.Pix[off+c]
				}
			}
			if maxC < 1 {
				t.Errorf("pixel (%d,%d) has HSV value %d, want >= 1", x, y, maxC)
			}
		}
	}
}

func TestHuePhaseRoundTrip(t *testing.T) {
	for hue := 0; hue <= 179; hue++ {
		phase := HueToPhase(uint8(hue))
		if phase < -math.Pi-1e-9 || phase > math.Pi+1e-9 {
			t.Fatalf("hue %d: phase %g out of range", hue, phase)
		}
		// Truncation in the 8-bit encode direction may lose one step.
		back := int(PhaseToHue(phase))
		if back < hue-1 || back > hue+1 {
			t.Errorf("hue %d round-trips to %d", hue, back)
		}
	}
}
