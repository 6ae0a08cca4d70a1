package format

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestProgressState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		runs    int
		updates [][2]float64 // index, value
		want    float64
	}{
		{"no runs", 0, [][2]float64{{0, 1}}, 0},
		{"negative runs", -2, nil, 0},
		{"fresh", 3, nil, 0},
		{"half and full", 2, [][2]float64{{0, 0.5}, {1, 1}}, 0.75},
		{"clamped high", 1, [][2]float64{{0, 1.7}}, 1},
		{"clamped low", 1, [][2]float64{{0, -0.4}}, 0},
		{"out of range ignored", 2, [][2]float64{{2, 1}, {-1, 1}, {1, 0.5}}, 0.25},
		{"last write wins", 1, [][2]float64{{0, 0.9}, {0, 0.3}}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ps := NewProgressState(tt.runs)
			for _, u := range tt.updates {
				ps.Update(int(u[0]), u[1])
			}
			if got := ps.CalculateAverage(); got != tt.want {
				t.Errorf("CalculateAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressState_ConcurrentUpdates(t *testing.T) {
	t.Parallel()
	const runs = 8
	ps := NewProgressState(runs)
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for step := 1; step <= 100; step++ {
				ps.Update(i, float64(step)/100)
			}
		}(i)
	}
	wg.Wait()
	if got := ps.CalculateAverage(); got != 1 {
		t.Errorf("CalculateAverage() = %v, want 1", got)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(1)
	if eta := p.GetETA(); eta != 0 {
		t.Fatalf("ETA before any progress = %v, want 0", eta)
	}

	// Half the work in one second leaves about one second.
	p.lastUpdate = time.Now().Add(-time.Second)
	avg, eta := p.UpdateWithETA(0, 0.5)
	if avg != 0.5 {
		t.Errorf("avg = %v, want 0.5", avg)
	}
	if eta < 900*time.Millisecond || eta > 1100*time.Millisecond {
		t.Errorf("eta = %v, want about 1s", eta)
	}

	// A repeated value leaves the rate untouched.
	rate := p.progressRate
	p.UpdateWithETA(0, 0.5)
	if p.progressRate != rate {
		t.Errorf("rate changed from %v to %v without progress", rate, p.progressRate)
	}

	if _, eta := p.UpdateWithETA(0, 1); eta != 0 {
		t.Errorf("eta after completion = %v, want 0", eta)
	}
}

func TestProgressWithETA_Capped(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.01)
	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("GetETA() = %v, want %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{3 * time.Hour, "3h"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{2, 3, "███"},
		{-1, 3, "░░░"},
		{0.99, 10, "█████████░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		eta      time.Duration
		want     string
	}{
		{0.42, 3 * time.Second, "[██░░░]  42.00% ETA: 3s"},
		{0, 0, "[░░░░░]   0.00% ETA: calculating..."},
		{1, 5 * time.Second, "[█████] 100.00% ETA: done"},
	}
	for _, tt := range tests {
		got := FormatProgressBarWithETA(tt.progress, tt.eta, 5)
		if got != tt.want {
			t.Errorf("FormatProgressBarWithETA(%v, %v) = %q, want %q", tt.progress, tt.eta, got, tt.want)
		}
		if strings.Count(got, "[") != 1 {
			t.Errorf("malformed bar %q", got)
		}
	}
}
