// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Speed      SpeedConfig      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines drop pacing.
type SpeedConfig struct {
	Initial        int `yaml:"initial"`          // Marks per automatic drop at level 1
	Minimum        int `yaml:"minimum"`          // Floor for the speed ramp
	MarksPerSecond int `yaml:"marks_per_second"` // Clock marks per wall-clock second
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty maps a flag value to a preset. Empty means no override.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
}

// Validate checks that every value is usable by the engine.
func (c TetrisConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Speed.Initial <= 0 {
		return fmt.Errorf("%w: speed.initial must be positive, got %d", ErrInvalidConfig, c.Speed.Initial)
	}
	if c.Speed.Minimum <= 0 {
		return fmt.Errorf("%w: speed.minimum must be positive, got %d", ErrInvalidConfig, c.Speed.Minimum)
	}
	if c.Speed.MarksPerSecond <= 0 {
		return fmt.Errorf("%w: speed.marks_per_second must be positive, got %d", ErrInvalidConfig, c.Speed.MarksPerSecond)
	}
	if _, err := ParseDifficulty(string(c.Difficulty.Preset)); err != nil {
		return err
	}
	return nil
}
