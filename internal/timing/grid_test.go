package timing

import (
	"math"
	"testing"
)

func TestBarDuration(t *testing.T) {
	tests := []struct {
		tempo float64
		sig   TimeSignature
		want  float64
	}{
		{120, Sig4_4, 2.0},   // 0.5s beat × 4
		{100, Sig4_4, 2.4},   // 0.6s beat × 4
		{120, Sig3_4, 1.5},   // 0.5s beat × 3
		{120, Sig6_8, 1.5},   // eighth beat 0.25s × 6
		{120, Sig12_8, 3.0},  // eighth beat 0.25s × 12
		{120, Sig7_8, 1.75},  // eighth beat 0.25s × 7
		{60, Sig4_4, 4.0},
	}

	for _, tt := range tests {
		got := BarDuration(tt.tempo, tt.sig)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("BarDuration(%.0f, %s) = %v; want %v", tt.tempo, tt.sig, got, tt.want)
		}
	}
}

func TestBarDurationFormula(t *testing.T) {
	sigs := []TimeSignature{Sig4_4, Sig3_4, Sig6_8, Sig12_8, Sig7_8}
	for tempo := 40; tempo <= 200; tempo += 8 {
		for _, sig := range sigs {
			want := float64(BeatsPerBar(sig)) * BeatDuration(float64(tempo), sig)
			got := BarDuration(float64(tempo), sig)
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("BarDuration(%d, %s) = %v; want beatsPerBar×beatDuration = %v", tempo, sig, got, want)
			}
		}
	}
}

func TestCeilToBar(t *testing.T) {
	// 100 BPM 4/4: bar = 2.4s. A 27.4s target rounds up to 12 bars = 28.8s.
	got := CeilToBar(27.4, 100, Sig4_4)
	if math.Abs(got-28.8) > 1e-9 {
		t.Errorf("CeilToBar(27.4, 100, 4/4) = %v; want 28.8", got)
	}

	grid := NewBarGrid(27.4, 100, Sig4_4)
	if grid.TotalBars != 12 {
		t.Errorf("NewBarGrid(27.4, 100, 4/4).TotalBars = %d; want 12", grid.TotalBars)
	}
	if math.Abs(grid.TotalSeconds-float64(grid.TotalBars)*grid.BarSeconds) > 1e-9 {
		t.Errorf("grid.TotalSeconds = %v; want TotalBars×BarSeconds = %v",
			grid.TotalSeconds, float64(grid.TotalBars)*grid.BarSeconds)
	}
}

func TestCeilToBarIsSmallestMultiple(t *testing.T) {
	for tempo := 40; tempo <= 200; tempo += 7 {
		bar := BarDuration(float64(tempo), Sig4_4)
		for _, x := range []float64{0.1, 5.3, 14.99, 30.0, 59.7} {
			got := CeilToBar(x, float64(tempo), Sig4_4)
			if got < x-1e-9 {
				t.Fatalf("CeilToBar(%v, %d) = %v < input", x, tempo, got)
			}
			if got-bar >= x-1e-9 {
				t.Fatalf("CeilToBar(%v, %d) = %v is not the smallest multiple ≥ input", x, tempo, got)
			}
		}
	}
}

func TestSnapIdempotence(t *testing.T) {
	tests := []struct {
		tempo float64
		sig   TimeSignature
	}{
		{100, Sig4_4}, {90, Sig3_4}, {132, Sig6_8}, {77, Sig12_8}, {140, Sig7_8},
	}

	for _, tt := range tests {
		bar := BarDuration(tt.tempo, tt.sig)
		for bars := 1; bars <= 16; bars++ {
			aligned := float64(bars) * bar
			if got := CeilToBar(aligned, tt.tempo, tt.sig); math.Abs(got-aligned) > 1e-9 {
				t.Errorf("CeilToBar not idempotent at %d bars of %.0f %s: %v != %v", bars, tt.tempo, tt.sig, got, aligned)
			}
			if got := FloorToBar(aligned, tt.tempo, tt.sig); math.Abs(got-aligned) > 1e-9 {
				t.Errorf("FloorToBar not idempotent at %d bars of %.0f %s: %v != %v", bars, tt.tempo, tt.sig, got, aligned)
			}
			if got := RoundToBar(aligned, tt.tempo, tt.sig); math.Abs(got-aligned) > 1e-9 {
				t.Errorf("RoundToBar not idempotent at %d bars of %.0f %s: %v != %v", bars, tt.tempo, tt.sig, got, aligned)
			}
		}
	}
}

func TestFloorToBar(t *testing.T) {
	// 120 BPM 4/4: bar = 2.0s
	if got := FloorToBar(7.3, 120, Sig4_4); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("FloorToBar(7.3, 120, 4/4) = %v; want 6.0", got)
	}
	if got := RoundToBar(7.3, 120, Sig4_4); math.Abs(got-8.0) > 1e-9 {
		t.Errorf("RoundToBar(7.3, 120, 4/4) = %v; want 8.0", got)
	}
	if got := RoundToBar(6.7, 120, Sig4_4); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("RoundToBar(6.7, 120, 4/4) = %v; want 6.0", got)
	}
}

func TestNearestBeatAndDownbeat(t *testing.T) {
	// 120 BPM 4/4: beat = 0.5s, bar = 2.0s
	if got := NearestBeat(3.6, 120, Sig4_4); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("NearestBeat(3.6) = %v; want 3.5", got)
	}
	if got := NearestDownbeat(3.6, 120, Sig4_4); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("NearestDownbeat(3.6) = %v; want 4.0", got)
	}
	if got := NearestDownbeat(2.9, 120, Sig4_4); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("NearestDownbeat(2.9) = %v; want 2.0", got)
	}
}

func TestZeroAndNegativeInputs(t *testing.T) {
	if got := CeilToBar(10, 0, Sig4_4); got != 0 {
		t.Errorf("CeilToBar with zero tempo = %v; want 0", got)
	}
	if got := BarDuration(-5, Sig4_4); got != 0 {
		t.Errorf("BarDuration(-5) = %v; want 0", got)
	}
	if got := NearestBeat(-1, 120, Sig4_4); got != 0 {
		t.Errorf("NearestBeat(-1) = %v; want 0", got)
	}
}
