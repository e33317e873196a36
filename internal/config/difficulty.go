package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // configured values, faulty pursuers never err
)

// Presets lists the accepted difficulty names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParseDifficulty parses a preset name. An empty name is normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	name := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if p == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// presetScaling describes how a preset shifts the configured values.
type presetScaling struct {
	speed     float64 // monster speed multiplier
	errorRate float64 // faulty pursuer error rate, negative keeps the configured one
	fuse      float64 // bomb fuse multiplier
}

func scalingFor(preset DifficultyPreset) presetScaling {
	switch preset {
	case DifficultyEasy:
		return presetScaling{speed: 0.67, errorRate: 0.35, fuse: 1.2}
	case DifficultyHard:
		return presetScaling{speed: 1.34, errorRate: 0.1, fuse: 0.8}
	case DifficultyFixed:
		return presetScaling{speed: 1, errorRate: 0, fuse: 1}
	default:
		return presetScaling{speed: 1, errorRate: -1, fuse: 1}
	}
}

// ApplyArenaPreset modifies the config based on a difficulty preset.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	s := scalingFor(preset)
	m := &cfg.Monsters

	m.Wanderer.Speed = scaleSpeed(m.Wanderer.Speed, s.speed)
	m.Wanderer.MinSpeed = scaleSpeed(m.Wanderer.MinSpeed, s.speed)
	m.Wanderer.MaxSpeed = scaleSpeed(m.Wanderer.MaxSpeed, s.speed)
	m.Pursuer.Speed = scaleSpeed(m.Pursuer.Speed, s.speed)
	m.Faulty.Speed = scaleSpeed(m.Faulty.Speed, s.speed)
	m.EdgeAvoider.Speed = scaleSpeed(m.EdgeAvoider.Speed, s.speed)
	if s.errorRate >= 0 {
		m.Faulty.ErrorRate = s.errorRate
	}
	cfg.Timing.FuseMS = int(math.Round(float64(cfg.Timing.FuseMS) * s.fuse))
}

// scaleSpeed multiplies a speed, keeping every monster able to move.
func scaleSpeed(speed int, factor float64) int {
	return int(clampF(math.Round(float64(speed)*factor), 1, math.MaxInt32))
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
