// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wlconfig loads optional runtime tuning for a connection — ring
// sizes, FD cap, poll timeout, and a socket path override — from an
// optional YAML file, with environment variables filling in any field the
// file left unset; a value set in the file wins over the environment.
package wlconfig

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/wlconn/ioengine"
)

// Config is the on-disk/env-var shape; zero fields mean "use ioengine's
// built-in default" all the way down to conn.Dial.
type Config struct {
	Socket string      `yaml:"socket,omitempty"`
	Ring   RingConfig  `yaml:"ring"`
	Retry  RetryConfig `yaml:"retry"`
}

// RingConfig sizes the duplex byte/FD rings and caps one sendmsg's FD
// payload.
type RingConfig struct {
	BytesPerDirection   int `yaml:"bytes_per_direction,omitempty"`
	FDSlotsPerDirection int `yaml:"fd_slots_per_direction,omitempty"`
	MaxFDsPerSendmsg    int `yaml:"max_fds_per_sendmsg,omitempty"`
}

// RetryConfig bounds how long a single DriveOnce poll call may block.
// There is no backoff schedule to tune beyond this: DriveOnce already
// rechecks ctx.Done() every PollTimeout, so a shorter timeout means more
// frequent cancellation checks and a longer one means fewer wakeups.
type RetryConfig struct {
	PollTimeout time.Duration `yaml:"poll_timeout,omitempty"`
}

// Environment variable names layered over the YAML file, mirroring
// thiagojdb-adoctl's ADOCTL_* convention for this runtime.
const (
	envSocket           = "WLCONN_SOCKET"
	envRingBytes        = "WLCONN_RING_BYTES"
	envRingFDSlots      = "WLCONN_RING_FD_SLOTS"
	envMaxFDsPerSendmsg = "WLCONN_MAX_FDS_PER_SENDMSG"
	envPollTimeoutMS    = "WLCONN_POLL_TIMEOUT_MS"
	envConfigPath       = "WLCONN_CONFIG"
)

// Load reads the config file named by WLCONN_CONFIG, or
// $XDG_CONFIG_HOME/wlconn/config.yaml (falling back to
// $HOME/.config/wlconn/config.yaml) if that variable is unset, fills any
// field the file left unset from the environment, and returns the result. A
// missing file is not an error — in that case Load returns the
// environment overrides alone, and an empty Config if none are set.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFromPath(path)
}

// ConfigPath resolves the config file location without reading it.
func ConfigPath() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		return p, nil
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "wlconn", "config.yaml"), nil
}

func loadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if cfg.Socket == "" {
		cfg.Socket = os.Getenv(envSocket)
	}
	if cfg.Ring.BytesPerDirection == 0 {
		cfg.Ring.BytesPerDirection = getEnvInt(envRingBytes, 0)
	}
	if cfg.Ring.FDSlotsPerDirection == 0 {
		cfg.Ring.FDSlotsPerDirection = getEnvInt(envRingFDSlots, 0)
	}
	if cfg.Ring.MaxFDsPerSendmsg == 0 {
		cfg.Ring.MaxFDsPerSendmsg = getEnvInt(envMaxFDsPerSendmsg, 0)
	}
	if cfg.Retry.PollTimeout == 0 {
		if ms := getEnvInt(envPollTimeoutMS, 0); ms > 0 {
			cfg.Retry.PollTimeout = time.Duration(ms) * time.Millisecond
		}
	}
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Tuning converts the loaded config into the ioengine.Tuning shape
// conn.WithTuning expects.
func (c *Config) Tuning() ioengine.Tuning {
	return ioengine.Tuning{
		RingBytes:        c.Ring.BytesPerDirection,
		FDSlots:          c.Ring.FDSlotsPerDirection,
		MaxFDsPerSendmsg: c.Ring.MaxFDsPerSendmsg,
		PollTimeout:      c.Retry.PollTimeout,
	}
}
