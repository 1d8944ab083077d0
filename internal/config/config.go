package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"scanpoker-server/internal/util"
	"scanpoker-server/pkg/game"
)

// Config provides configuration for the poker room server
type Config struct {
	loaded bool
	Listen string `yaml:"listen" envconfig:"listen"`
	JWT    struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Game struct {
		SmallBlind    int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int `yaml:"bigBlind" envconfig:"big_blind"`
		StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
		MinPlayers    int `yaml:"minPlayers" envconfig:"min_players"`
		MaxPlayers    int `yaml:"maxPlayers" envconfig:"max_players"`
	}
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("SP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	config = Config{}
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return err
	}

	if err := envconfig.Process("sp", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

// DefaultConfig returns a starter configuration suitable for writing
// out as config.yaml
func DefaultConfig() Config {
	var c Config
	c.Listen = ":5000"
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"

	options := game.DefaultOptions()
	c.Game.SmallBlind = options.SmallBlind
	c.Game.BigBlind = options.BigBlind
	c.Game.StartingChips = options.StartingChips
	c.Game.MinPlayers = options.MinPlayers
	c.Game.MaxPlayers = options.MaxPlayers

	c.Log.Level = "info"

	return c
}

// GameOptions returns room options from the config, with the standard
// values filling any unset field
func (c Config) GameOptions() game.Options {
	options := game.DefaultOptions()
	if c.Game.SmallBlind > 0 {
		options.SmallBlind = c.Game.SmallBlind
	}
	if c.Game.BigBlind > 0 {
		options.BigBlind = c.Game.BigBlind
	}
	if c.Game.StartingChips > 0 {
		options.StartingChips = c.Game.StartingChips
	}
	if c.Game.MinPlayers > 0 {
		options.MinPlayers = c.Game.MinPlayers
	}
	if c.Game.MaxPlayers > 0 {
		options.MaxPlayers = c.Game.MaxPlayers
	}

	return options
}
