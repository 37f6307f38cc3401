package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// decode applies one document on top of config. Keys it does not mention
// keep their current value; unknown keys are an error.
func decode(config *Config, data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(config)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func readFile(config *Config, path string) error {
	// Check if this is a valid file
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("does not exist")
	}

	extension := filepath.Ext(path)
	switch extension {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("not in a valid format")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if extension == ".json" {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		return decoder.Decode(config)
	}
	return decode(config, data)
}

// Process reads the provided configuration files in order on top of the
// default configuration and validates the result.
func Process(configPaths []string) (*Config, error) {
	config := Config{}
	err := decode(&config, DEFAULT)
	if err != nil {
		return nil, fmt.Errorf("invalid default config file: %w", err)
	}

	for _, path := range configPaths {
		err := readFile(&config, path)
		if err != nil {
			return nil, fmt.Errorf(
				"could not process config file %s: %w",
				path,
				err,
			)
		}
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	server := c.Server
	switch {
	case server.Ingress.Web.Port < 1 || server.Ingress.Web.Port > 65535:
		return fmt.Errorf("server.ingress.web.port %d is out of range", server.Ingress.Web.Port)
	case server.TickRate < 1 || server.TickRate > 1000:
		return fmt.Errorf("server.tickRate must be between 1 and 1000")
	case server.MaxPlayers < 2:
		return fmt.Errorf("server.maxPlayers must be at least 2")
	case server.MessageRate < 0 || server.MessageBurst < 0:
		return fmt.Errorf("server.messageRate and server.messageBurst cannot be negative")
	case server.History.Enabled && server.History.Limit < 1:
		return fmt.Errorf("server.history.limit must be at least 1")
	}

	match := c.Match
	switch {
	case match.Lives < 0:
		return fmt.Errorf("match.lives cannot be negative")
	case match.RespawnSeconds <= 0:
		return fmt.Errorf("match.respawnSeconds must be positive")
	case match.MinPlayers < 2 || match.MinPlayers > server.MaxPlayers:
		return fmt.Errorf("match.minPlayers must be between 2 and server.maxPlayers")
	}

	return nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	config, err := Process(nil)
	if err != nil {
		panic(err)
	}
	return config
}
