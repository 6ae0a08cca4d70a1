package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/karatsuba/internal/config"
	apperrors "github.com/agbru/karatsuba/internal/errors"
)

const (
	// DefaultProfileFileName is the profile file name in the home directory.
	DefaultProfileFileName = ".karatsuba_calibration.json"
	// CurrentProfileVersion is bumped when the profile layout or the
	// benchmark changes meaning.
	CurrentProfileVersion = 1
	// MaxProfileAge is the age after which a cached profile is ignored.
	MaxProfileAge = 30 * 24 * time.Hour
)

// Measurement is the benchmark result of one threshold.
type Measurement struct {
	Threshold int           `json:"threshold"`
	Duration  time.Duration `json:"duration_ns"`
}

// CalibrationProfile is the persisted outcome of a calibration, tied to
// the machine it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUFeatures []string `json:"cpu_features,omitempty"`

	OptimalParallelThreshold int           `json:"optimal_parallel_threshold"`
	CalibrationBits          int           `json:"calibration_bits"`
	CalibrationTime          string        `json:"calibration_time"`
	Measurements             []Measurement `json:"measurements,omitempty"`
}

// NewProfile returns an empty profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    config.CPUFeatures(),
	}
}

// IsValid reports whether the profile was measured on hardware like the
// current one with the current benchmark.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String summarizes the profile on a single line.
func (p *CalibrationProfile) String() string {
	features := "none"
	if len(p.CPUFeatures) > 0 {
		features = strings.Join(p.CPUFeatures, ",")
	}
	return fmt.Sprintf("calibration profile v%d (%s/%s, %d CPUs, %d-bit words, features %s): parallel threshold %d bits, measured %s on %d-bit operands",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, features,
		p.OptimalParallelThreshold, p.CalibratedAt.Format(time.RFC3339), p.CalibrationBits)
}

// SaveProfile writes the profile as indented JSON. The file is written to
// a temporary name first and renamed, so readers never see a partial file.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".calibration-*.json")
	if err != nil {
		return apperrors.WrapError(err, "saving calibration profile %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return apperrors.WrapError(err, "saving calibration profile %s", path)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.WrapError(err, "saving calibration profile %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.WrapError(err, "saving calibration profile %s", path)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.WrapError(err, "decoding calibration profile %s", path)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When it cannot be read a
// fresh profile is returned and loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the home directory,
// or in the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

func resolveProfilePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}
