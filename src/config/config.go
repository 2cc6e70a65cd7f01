package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// FrameInterval is the wall-clock time between simulation frames.
	FrameInterval = 50 * time.Millisecond
	// TickSeconds is the simulated time advanced per frame.
	TickSeconds = 0.1

	LoadingDuration = 1.0  // seconds the elevator dwells at a stop
	RepairDuration  = 10.0 // seconds out of service after a fault

	// Stuck detection. Checks are skipped for FaultGracePeriod after every
	// state change so transition noise never reads as a fault.
	FaultGracePeriod   = 0.5
	MovingStuckTimeout = 8.0
	IdleWarnTimeout    = 60.0
	LoadingWarnFactor  = 4.0 // multiples of LoadingDuration before a warning
	LoadingStuckFactor = 8.0 // multiples of LoadingDuration before repair
	HistoryLength      = 8   // position/state samples kept per elevator

	WarmupDuration = 30.0 // seconds excluded from scoring

	GiveUpMin = 30.0 // seconds
	GiveUpMax = 90.0

	// EdgeFloorBias is the chance an arrival is forced onto the ground or
	// top floor to exercise boundary handling.
	EdgeFloorBias = 0.2

	ScoreBase              = 1000.0
	WaitPenaltyPerSec      = 8.0
	WaitPenaltyCap         = 400.0
	TransitPenaltyPerSec   = 4.0
	TransitPenaltyCap      = 250.0
	GiveUpPenalty          = 25.0
	GiveUpPenaltyCap       = 300.0
	UtilizationTarget      = 0.7
	UtilizationPenaltyMul  = 200.0
	UtilizationPenaltyCap  = 200.0
	FloorBonusPerFloor     = 1.5
	FloorBonusCap          = 30.0
	FlowBonusPerArrival    = 0.4
	FlowBonusCap           = 30.0
	SpeedBonusNumerator    = 10.0
	SpeedBonusCap          = 25.0
	CapacityBonusNumerator = 15.0
	CapacityBonusCap       = 20.0
	LaneBonusNumerator     = 12.0
	LaneBonusCap           = 15.0

	ScoreRecomputeInterval = time.Second
	ServedCallbackBatch    = 10
)

// Settings is the configuration record handed to the core at construction or
// reset time. The UI layer is expected to validate ranges; Clamp is only a
// backstop against degenerate values.
type Settings struct {
	Floors   int     `yaml:"Floors"`
	Lanes    int     `yaml:"Lanes"`
	Speed    float64 `yaml:"Speed"`    // floors per second
	Capacity int     `yaml:"Capacity"` // passengers per elevator
	FlowRate float64 `yaml:"FlowRate"` // arrivals per minute
	Seed     int64   `yaml:"Seed"`
}

func DefaultSettings() Settings {
	return Settings{
		Floors:   8,
		Lanes:    3,
		Speed:    2.0,
		Capacity: 8,
		FlowRate: 30,
		Seed:     1,
	}
}

// LoadSettings reads a settings file in YAML format.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	file, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open settings file: %w", err)
	}
	defer file.Close()
	if err := yaml.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("decode settings file: %w", err)
	}
	s.Clamp()
	return s, nil
}

// ApplyEnv overrides settings from LIFTSIM_* environment variables, loading a
// .env file first if one is present.
func (s *Settings) ApplyEnv() {
	_ = godotenv.Load()
	if v, ok := envInt("LIFTSIM_FLOORS"); ok {
		s.Floors = v
	}
	if v, ok := envInt("LIFTSIM_LANES"); ok {
		s.Lanes = v
	}
	if v, ok := envFloat("LIFTSIM_SPEED"); ok {
		s.Speed = v
	}
	if v, ok := envInt("LIFTSIM_CAPACITY"); ok {
		s.Capacity = v
	}
	if v, ok := envFloat("LIFTSIM_FLOW"); ok {
		s.FlowRate = v
	}
	if v, ok := envInt("LIFTSIM_SEED"); ok {
		s.Seed = int64(v)
	}
	s.Clamp()
}

// Clamp forces settings into workable ranges.
func (s *Settings) Clamp() {
	if s.Floors < 2 {
		s.Floors = 2
	}
	if s.Lanes < 1 {
		s.Lanes = 1
	}
	if s.Speed <= 0 {
		s.Speed = 1
	}
	if s.Capacity < 1 {
		s.Capacity = 1
	}
	if s.FlowRate < 0 {
		s.FlowRate = 0
	}
}

func envInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
