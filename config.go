package glint

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
var validate = validator.New()

// Config holds every timing and label the page components use. Durations are
// whole milliseconds so JSON and YAML files read the same way.
type Config struct {
	ResizeDebounceMS int    `yaml:"resize_debounce_ms" json:"resize_debounce_ms" validate:"min=0,max=60000"`
	RippleMS         int    `yaml:"ripple_ms" json:"ripple_ms" validate:"min=0,max=60000"`
	LoadingMS        int    `yaml:"loading_ms" json:"loading_ms" validate:"min=0,max=600000"`
	LoadingLabel     string `yaml:"loading_label" json:"loading_label" validate:"required"`
	SuccessDelayMS   int    `yaml:"success_delay_ms" json:"success_delay_ms" validate:"min=0,max=600000"`
	ErrorDelayMS     int    `yaml:"error_delay_ms" json:"error_delay_ms" validate:"min=0,max=600000"`
	DismissMS        int    `yaml:"dismiss_ms" json:"dismiss_ms" validate:"min=0,max=60000"`
	StatusMS         int    `yaml:"status_ms" json:"status_ms" validate:"min=0,max=60000"`
	PointsMS         int    `yaml:"points_ms" json:"points_ms" validate:"min=0,max=60000"`
	MobileBreakpoint int    `yaml:"mobile_breakpoint" json:"mobile_breakpoint" validate:"min=0"`
	Container        string `yaml:"container" json:"container" validate:"required"`
	PointsLabel      string `yaml:"points_label" json:"points_label"`
}

// DefaultConfig returns the stock page timings.
func DefaultConfig() Config {
	return Config{
		ResizeDebounceMS: 250,
		RippleMS:         600,
		LoadingMS:        2000,
		LoadingLabel:     "Loading...",
		SuccessDelayMS:   3000,
		ErrorDelayMS:     5000,
		DismissMS:        500,
		StatusMS:         400,
		PointsMS:         300,
		MobileBreakpoint: 768,
		Container:        ".container",
		PointsLabel:      "Points available: ",
	}
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig decodes data over DefaultConfig, so a file only needs the keys
// it changes, then validates the result.
func LoadConfig(data []byte, codec Codec) (Config, error) {
	cfg := DefaultConfig()
	if codec == nil {
		codec = YAMLCodec{}
	}
	if err := codec.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s config: %w", codec.ContentType(), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads path and decodes it with CodecFor(path).
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return LoadConfig(data, CodecFor(path))
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
