package instance

import (
	"time"

	"github.com/arkodev/skirmish/internal/instance/gen"
)

// Default round configuration, used when a type config leaves fields zero.
const (
	DefaultCountdown   = 30 * time.Second
	DefaultRoundLength = 10 * time.Minute
	DefaultMaxPlayers  = 24
)

// TypeConfig carries the tunable parts of an instance type.
type TypeConfig struct {
	Name        string
	Countdown   time.Duration
	RoundLength time.Duration
	MinPlayers  int
	MaxPlayers  int
	Pipeline    *gen.Pipeline
}

// Type is a shared, immutable round configuration. Many instances may
// run the same type concurrently; nothing here changes after creation.
type Type struct {
	id          string
	name        string
	countdown   time.Duration
	roundLength time.Duration
	minPlayers  int
	maxPlayers  int
	pipeline    *gen.Pipeline
}

// NewType builds a Type from config, filling in defaults.
func NewType(id string, cfg TypeConfig) *Type {
	t := &Type{
		id:          id,
		name:        cfg.Name,
		countdown:   cfg.Countdown,
		roundLength: cfg.RoundLength,
		minPlayers:  cfg.MinPlayers,
		maxPlayers:  cfg.MaxPlayers,
		pipeline:    cfg.Pipeline,
	}
	if t.name == "" {
		t.name = id
	}
	if t.countdown <= 0 {
		t.countdown = DefaultCountdown
	}
	if t.roundLength <= 0 {
		t.roundLength = DefaultRoundLength
	}
	if t.minPlayers <= 0 {
		t.minPlayers = 2
	}
	if t.maxPlayers <= 0 {
		t.maxPlayers = DefaultMaxPlayers
	}
	if t.pipeline == nil {
		t.pipeline = gen.NewPipeline()
	}
	return t
}

// ID returns the type identifier.
func (t *Type) ID() string { return t.id }

// Name returns the display name.
func (t *Type) Name() string { return t.name }

// Countdown returns the pre-start countdown length.
func (t *Type) Countdown() time.Duration { return t.countdown }

// RoundLength returns the running-phase length.
func (t *Type) RoundLength() time.Duration { return t.roundLength }

// MinPlayers returns the minimum players needed to start.
func (t *Type) MinPlayers() int { return t.minPlayers }

// MaxPlayers returns the registration cap.
func (t *Type) MaxPlayers() int { return t.maxPlayers }

// Pipeline returns the world generation pipeline for this type.
func (t *Type) Pipeline() *gen.Pipeline { return t.pipeline }
