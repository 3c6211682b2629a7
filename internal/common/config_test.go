package common

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing input dir", func(c *Config) { c.Paths.InputDir = "" }, true},
		{"missing accommodations", func(c *Config) { c.Paths.AccommodationsXLSX = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Paths: PathsConfig{
					InputDir:           "/bills/in",
					AccommodationsXLSX: "accommodations.xlsx",
				},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("error %v is not ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BILLS_ACCOMMODATIONS", "")
	t.Setenv("BILLS_RUN_TIMEOUT", "")
	t.Setenv("BILLS_RECORD_PAID", "")

	cfg := LoadConfig()

	if cfg.Paths.AccommodationsXLSX != "accommodations.xlsx" {
		t.Errorf("AccommodationsXLSX: got %q", cfg.Paths.AccommodationsXLSX)
	}
	if cfg.Run.Timeout != 30*time.Minute {
		t.Errorf("Timeout: got %v", cfg.Run.Timeout)
	}
	if !cfg.Run.RecordPaid {
		t.Error("RecordPaid should default to true")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("BILLS_INPUT_DIR", "/srv/bills")
	t.Setenv("BILLS_RUN_TIMEOUT", "5m")
	t.Setenv("BILLS_RECORD_PAID", "false")

	cfg := LoadConfig()

	if cfg.Paths.InputDir != "/srv/bills" {
		t.Errorf("InputDir: got %q", cfg.Paths.InputDir)
	}
	if cfg.Run.Timeout != 5*time.Minute {
		t.Errorf("Timeout: got %v", cfg.Run.Timeout)
	}
	if cfg.Run.RecordPaid {
		t.Error("RecordPaid should be false")
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("REGISTRY_ERROR", "paid-bill registry", cause)

	if got := err.Error(); got != "REGISTRY_ERROR: paid-bill registry: boom" {
		t.Errorf("Error(): got %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should reach the cause")
	}

	bare := NewAppError("CONFIG_ERROR", "BILLS_INPUT_DIR is required", nil)
	if got := bare.Error(); got != "CONFIG_ERROR: BILLS_INPUT_DIR is required" {
		t.Errorf("Error() without cause: got %q", got)
	}
}
