package wlconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		old, had := os.LookupEnv(k)
		if v == "" {
			os.Unsetenv(k)
		} else {
			os.Setenv(k, v)
		}
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadFromPath_MissingFileIsNotAnError(t *testing.T) {
	withEnv(t, map[string]string{
		envSocket: "", envRingBytes: "", envRingFDSlots: "",
		envMaxFDsPerSendmsg: "", envPollTimeoutMS: "",
	})

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if cfg.Socket != "" || cfg.Ring.BytesPerDirection != 0 {
		t.Fatalf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadFromPath_ParsesYAML(t *testing.T) {
	withEnv(t, map[string]string{
		envSocket: "", envRingBytes: "", envRingFDSlots: "",
		envMaxFDsPerSendmsg: "", envPollTimeoutMS: "",
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `socket: /tmp/wayland-test-0
ring:
  bytes_per_direction: 131072
  fd_slots_per_direction: 64
  max_fds_per_sendmsg: 16
retry:
  poll_timeout: 10ms
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if cfg.Socket != "/tmp/wayland-test-0" {
		t.Errorf("Socket = %q, want /tmp/wayland-test-0", cfg.Socket)
	}
	if cfg.Ring.BytesPerDirection != 131072 {
		t.Errorf("BytesPerDirection = %d, want 131072", cfg.Ring.BytesPerDirection)
	}
	if cfg.Ring.FDSlotsPerDirection != 64 {
		t.Errorf("FDSlotsPerDirection = %d, want 64", cfg.Ring.FDSlotsPerDirection)
	}
	if cfg.Ring.MaxFDsPerSendmsg != 16 {
		t.Errorf("MaxFDsPerSendmsg = %d, want 16", cfg.Ring.MaxFDsPerSendmsg)
	}
	if cfg.Retry.PollTimeout != 10*time.Millisecond {
		t.Errorf("PollTimeout = %v, want 10ms", cfg.Retry.PollTimeout)
	}
}

func TestEnvOverridesTakePriorityOverUnsetYAMLFields(t *testing.T) {
	withEnv(t, map[string]string{
		envSocket:           "/run/user/1000/wayland-1",
		envRingBytes:        "262144",
		envRingFDSlots:      "",
		envMaxFDsPerSendmsg: "",
		envPollTimeoutMS:    "25",
	})

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if cfg.Socket != "/run/user/1000/wayland-1" {
		t.Errorf("Socket = %q, want env override", cfg.Socket)
	}
	if cfg.Ring.BytesPerDirection != 262144 {
		t.Errorf("BytesPerDirection = %d, want 262144", cfg.Ring.BytesPerDirection)
	}
	if cfg.Retry.PollTimeout != 25*time.Millisecond {
		t.Errorf("PollTimeout = %v, want 25ms", cfg.Retry.PollTimeout)
	}
}

func TestEnvOverridesDoNotClobberYAMLWhenUnset(t *testing.T) {
	withEnv(t, map[string]string{
		envSocket: "", envRingBytes: "", envRingFDSlots: "",
		envMaxFDsPerSendmsg: "", envPollTimeoutMS: "",
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("socket: /tmp/from-file\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if cfg.Socket != "/tmp/from-file" {
		t.Errorf("Socket = %q, want value from YAML file untouched", cfg.Socket)
	}
}

func TestConfigTuningMapsFields(t *testing.T) {
	cfg := &Config{
		Ring: RingConfig{
			BytesPerDirection:   4096,
			FDSlotsPerDirection: 8,
			MaxFDsPerSendmsg:    4,
		},
		Retry: RetryConfig{PollTimeout: 5 * time.Millisecond},
	}
	tuning := cfg.Tuning()
	if tuning.RingBytes != 4096 || tuning.FDSlots != 8 || tuning.MaxFDsPerSendmsg != 4 {
		t.Fatalf("Tuning() ring/FD fields mismatch: %+v", tuning)
	}
	if tuning.PollTimeout != 5*time.Millisecond {
		t.Fatalf("Tuning().PollTimeout = %v, want 5ms", tuning.PollTimeout)
	}
}

func TestConfigPathHonorsExplicitOverride(t *testing.T) {
	withEnv(t, map[string]string{envConfigPath: "/etc/wlconn/override.yaml"})
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() returned error: %v", err)
	}
	if path != "/etc/wlconn/override.yaml" {
		t.Errorf("ConfigPath() = %q, want explicit override", path)
	}
}
