package config

import (
	"os"
	"strconv"
)

// ApplyEnvOverrides replaces tuned heuristics with environment values when
// set. The partial-overlap ratio and the movable exit tolerance in
// particular are playtest-tuned numbers, not physical law, so deployments
// are allowed to adjust them without rebuilding.
func ApplyEnvOverrides() {
	if v := getEnvInt("TOPDOWN_TICK_RATE", 0); v > 0 {
		Physics.TickRate = v
	}
	if v := getEnvFloat("TOPDOWN_EXIT_TOLERANCE", -1); v >= 0 {
		Collision.MovableExitTolerance = v
	}
	if v := getEnvFloat("TOPDOWN_PARTIAL_RATIO", -1); v >= 0 {
		Sliding.PartialOverlapRatio = v
	}
	if v := getEnvFloat("TOPDOWN_LOS_STEP", -1); v > 0 {
		Zones.LOSStepSize = v
	}
}

func getEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return fallback
}
