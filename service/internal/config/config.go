// Package config reads the simulation settings from the environment, with
// an optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Environment variables read by Load.
const (
	EnvLogLevel   = "MARJAPUSSI_LOG_LEVEL"
	EnvRounds     = "MARJAPUSSI_ROUNDS"
	EnvWorkers    = "MARJAPUSSI_WORKERS"
	EnvSeed       = "MARJAPUSSI_SEED"
	EnvStartValue = "MARJAPUSSI_START_VALUE"
	EnvMaxValue   = "MARJAPUSSI_MAX_VALUE"
	EnvPolicyA    = "MARJAPUSSI_POLICY_A"
	EnvPolicyB    = "MARJAPUSSI_POLICY_B"
	EnvStrict     = "MARJAPUSSI_STRICT"
)

// PolicyNames lists the policies a tournament can seat.
var PolicyNames = []string{"random", "little-smart", "convention"}

// Config holds the settings of a simulation run.
type Config struct {
	LogLevel   logrus.Level
	Rounds     int
	Workers    int
	Seed       uint64
	StartValue int
	MaxValue   int
	PolicyA    string
	PolicyB    string
	Strict     bool // verify every belief against the true hands
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	rules := engine.DefaultRules()
	return Config{
		LogLevel:   logrus.InfoLevel,
		Rounds:     100,
		Workers:    4,
		Seed:       1,
		StartValue: rules.StartValue,
		MaxValue:   rules.MaxValue,
		PolicyA:    "convention",
		PolicyB:    "little-smart",
	}
}

// Load reads the given .env files if they exist, then the environment.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Wrapf(err, "loading %s", f)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset
// variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvLogLevel)
		}
		cfg.LogLevel = lvl
	}
	for key, dst := range map[string]*int{
		EnvRounds:     &cfg.Rounds,
		EnvWorkers:    &cfg.Workers,
		EnvStartValue: &cfg.StartValue,
		EnvMaxValue:   &cfg.MaxValue,
	} {
		v, ok := get(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", key)
		}
		*dst = n
	}
	if v, ok := get(EnvSeed); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvSeed)
		}
		cfg.Seed = n
	}
	if v, ok := get(EnvPolicyA); ok {
		cfg.PolicyA = strings.ToLower(v)
	}
	if v, ok := get(EnvPolicyB); ok {
		cfg.PolicyB = strings.ToLower(v)
	}
	if v, ok := get(EnvStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvStrict)
		}
		cfg.Strict = b
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and policy names.
func (c *Config) Validate() error {
	if c.Rounds < 1 {
		return errors.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	for _, p := range []string{c.PolicyA, c.PolicyB} {
		if !knownPolicy(p) {
			return errors.Errorf("unknown policy %q, want one of %s", p, strings.Join(PolicyNames, ", "))
		}
	}
	rules := c.Rules()
	return errors.Wrap(rules.Validate(), "rules")
}

func knownPolicy(name string) bool {
	for _, p := range PolicyNames {
		if p == name {
			return true
		}
	}
	return false
}

// Rules returns the default rules with the configured value range.
func (c *Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.StartValue = c.StartValue
	r.MaxValue = c.MaxValue
	return r
}
