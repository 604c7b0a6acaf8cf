// Package config provides configuration parsing and validation for the shs
// command-line tool.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/scuttlenet/secrethandshake/internal/identity"
	"github.com/scuttlenet/secrethandshake/internal/shs"
	"gopkg.in/yaml.v3"
)

// Config is the complete tool configuration.
type Config struct {
	// NetworkKey is the hex-encoded 32-byte pre-shared network key. Both
	// peers must agree on it before handshaking.
	NetworkKey string `yaml:"network_key"`

	// DataDir is where the long-term identity lives.
	DataDir string `yaml:"data_dir"`

	Listen    ListenConfig    `yaml:"listen"`
	Peer      PeerConfig      `yaml:"peer"`
	Admission AdmissionConfig `yaml:"admission"`
	Log       LogConfig       `yaml:"log"`
}

// ListenConfig configures the responder side.
type ListenConfig struct {
	// Address is the TCP address to accept handshakes on.
	Address string `yaml:"address"`

	// MetricsAddress, when set, serves Prometheus metrics over HTTP.
	MetricsAddress string `yaml:"metrics_address"`
}

// PeerConfig configures the initiator side.
type PeerConfig struct {
	// Address is the TCP address of the responder.
	Address string `yaml:"address"`

	// PublicKey is the responder's hex-encoded long-term public key.
	PublicKey string `yaml:"public_key"`
}

// AdmissionConfig configures which peers the responder admits. An empty
// allow list admits every authenticated peer.
type AdmissionConfig struct {
	AllowedKeys []string `yaml:"allowed_keys"`
}

// LogConfig configures logging output. Format "auto" picks text on a
// terminal and json otherwise.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with usable defaults for everything but
// the network key.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Listen: ListenConfig{
			Address: "127.0.0.1:8008",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shs"
	}
	return home + "/.shs"
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates YAML configuration bytes, applying defaults for
// unset fields.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.NetworkKey == "" {
		return errors.New("config: network_key is required")
	}
	if _, err := c.NetworkKeyBytes(); err != nil {
		return err
	}
	if c.Listen.Address != "" {
		if _, _, err := net.SplitHostPort(c.Listen.Address); err != nil {
			return fmt.Errorf("config: listen.address: %w", err)
		}
	}
	if c.Peer.Address != "" {
		if _, _, err := net.SplitHostPort(c.Peer.Address); err != nil {
			return fmt.Errorf("config: peer.address: %w", err)
		}
		if c.Peer.PublicKey == "" {
			return errors.New("config: peer.public_key is required when peer.address is set")
		}
		if _, err := identity.ParsePublic(c.Peer.PublicKey); err != nil {
			return fmt.Errorf("config: peer.public_key: %w", err)
		}
	}
	for i, k := range c.Admission.AllowedKeys {
		if _, err := identity.ParsePublic(k); err != nil {
			return fmt.Errorf("config: admission.allowed_keys[%d]: %w", i, err)
		}
	}
	return nil
}

// NetworkKeyBytes decodes the network key.
func (c *Config) NetworkKeyBytes() ([shs.NetworkKeySize]byte, error) {
	var key [shs.NetworkKeySize]byte
	raw, err := hex.DecodeString(c.NetworkKey)
	if err != nil {
		return key, fmt.Errorf("config: network_key: %w", err)
	}
	if len(raw) != shs.NetworkKeySize {
		return key, fmt.Errorf("config: network_key is %d bytes, expected %d", len(raw), shs.NetworkKeySize)
	}
	copy(key[:], raw)
	return key, nil
}

// AllowedKeys decodes the admission allow list.
func (c *Config) AllowedKeys() ([][32]byte, error) {
	keys := make([][32]byte, 0, len(c.Admission.AllowedKeys))
	for _, k := range c.Admission.AllowedKeys {
		pk, err := identity.ParsePublic(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, pk)
	}
	return keys, nil
}
