package server

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"HexFleetCommand/internal/combat"
)

// Config is the full tuning surface of the service: transport, encounter
// rules, and the default scenario spun up for a new session. Every key has a
// default; a JSON config file and flag overrides layer on top.
type Config struct {
	ListenAddr string `mapstructure:"listenAddr"`
	LogLevel   string `mapstructure:"logLevel"`
	ReportPath string `mapstructure:"reportPath"`

	Seed                  int64   `mapstructure:"seed"`
	ArenaRadius           int     `mapstructure:"arenaRadius"`
	MaxRounds             int     `mapstructure:"maxRounds"`
	AccuracyAffectsDamage bool    `mapstructure:"accuracyAffectsDamage"`
	InitiativePerRound    bool    `mapstructure:"initiativePerRound"`
	DaysPerRound          float64 `mapstructure:"daysPerRound"`

	PlayerClass      string `mapstructure:"playerClass"`
	EnemyClass       string `mapstructure:"enemyClass"`
	EnemyCount       int    `mapstructure:"enemyCount"`
	EnemyPersonality string `mapstructure:"enemyPersonality"`
}

// LoadConfig reads configuration: code defaults first, then the optional
// JSON file. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	v.SetDefault("listenAddr", ":8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("reportPath", "")
	v.SetDefault("seed", 0)
	v.SetDefault("arenaRadius", 25)
	v.SetDefault("maxRounds", 100)
	v.SetDefault("accuracyAffectsDamage", true)
	v.SetDefault("initiativePerRound", true)
	v.SetDefault("daysPerRound", 1.0)
	v.SetDefault("playerClass", "Miranda")
	v.SetDefault("enemyClass", "Raider")
	v.SetDefault("enemyCount", 1)
	v.SetDefault("enemyPersonality", "balanced")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// CombatConfig maps the service config onto one encounter's rule set.
func (c Config) CombatConfig(log zerolog.Logger) combat.Config {
	return combat.Config{
		Seed:                  c.Seed,
		ArenaRadius:           c.ArenaRadius,
		MaxRounds:             c.MaxRounds,
		AccuracyAffectsDamage: c.AccuracyAffectsDamage,
		InitiativePerRound:    c.InitiativePerRound,
		DaysPerRound:          c.DaysPerRound,
		Logger:                log,
	}
}
