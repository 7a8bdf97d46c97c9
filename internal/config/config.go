package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the arena server.
type Server struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Worlds
	Lobby          string        `yaml:"lobby"`
	MaxWorldExtent int32         `yaml:"max_world_extent"`
	Worlds         []WorldConfig `yaml:"worlds"`

	// Instance types
	Types []TypeConfig `yaml:"types"`

	// Round history
	RoundHistory bool           `yaml:"round_history"`
	Database     DatabaseConfig `yaml:"database"`
}

// WorldConfig defines one loadable world.
type WorldConfig struct {
	Key    string `yaml:"key"`
	Extent int32  `yaml:"extent"`
	SpawnX int32  `yaml:"spawn_x"`
	SpawnY int32  `yaml:"spawn_y"`
	SpawnZ int32  `yaml:"spawn_z"`
}

// TypeConfig defines one instance type.
type TypeConfig struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	CountdownSeconds int    `yaml:"countdown_seconds"`
	RoundSeconds     int    `yaml:"round_seconds"`
	MinPlayers       int    `yaml:"min_players"`
	MaxPlayers       int    `yaml:"max_players"`

	// Generation pipeline
	Spawns      int   `yaml:"spawns"`
	SpawnRadius int32 `yaml:"spawn_radius"`
	Chests      int   `yaml:"chests"`
	ChestSpread int32 `yaml:"chest_spread"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:       "info",
		Lobby:          "skirmish:lobby",
		MaxWorldExtent: 100000,
		Worlds: []WorldConfig{
			{Key: "skirmish:lobby", Extent: 512},
			{Key: "skirmish:arena_1", Extent: 1024},
			{Key: "skirmish:arena_2", Extent: 1024},
		},
		Types: []TypeConfig{
			{
				ID:               "classic",
				Name:             "Classic",
				CountdownSeconds: 30,
				RoundSeconds:     600,
				MinPlayers:       2,
				MaxPlayers:       24,
				Spawns:           24,
				SpawnRadius:      200,
				Chests:           64,
				ChestSpread:      250,
			},
		},
		RoundHistory: false,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skirmish",
			Password: "skirmish",
			DBName:   "skirmish",
			SSLMode:  "disable",
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
