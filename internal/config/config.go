// Package config loads the YAML configuration shared by the binaries.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Miner is the miner binary configuration.
type Miner struct {
	// DaemonAddress is the daemon WebSocket JSON-RPC endpoint.
	DaemonAddress string `yaml:"daemon_address"`
	// MinerAddress receives block rewards.
	MinerAddress string `yaml:"miner_address"`
	// Threads is the number of mining workers; 0 means one per CPU.
	Threads int `yaml:"threads"`
	// LogLevel is one of logrus' level names.
	LogLevel string `yaml:"log_level"`
	// LogFile receives a copy of the logs when set.
	LogFile string `yaml:"log_file"`
}

// DefaultMiner returns the miner defaults used when no file is given.
func DefaultMiner() *Miner {
	return &Miner{
		DaemonAddress: "ws://127.0.0.1:8080/json_rpc",
		Threads:       runtime.NumCPU(),
		LogLevel:      "info",
	}
}

// LoadMiner reads a miner configuration file, filling unset fields with
// defaults.
func LoadMiner(path string) (*Miner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := DefaultMiner()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (m *Miner) Validate() error {
	if m.DaemonAddress == "" {
		return fmt.Errorf("daemon_address must be set")
	}
	if m.MinerAddress == "" {
		return fmt.Errorf("miner_address must be set")
	}
	if m.Threads < 0 {
		return fmt.Errorf("threads must not be negative")
	}
	if m.Threads == 0 {
		m.Threads = runtime.NumCPU()
	}
	return nil
}
