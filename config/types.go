package config

import "errors"

// ErrInvalidConfig is returned when the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Date and time layouts accepted by the filter settings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ConvertConfig contains output settings
type ConvertConfig struct {
	Format        string `yaml:"format" validate:"oneof=kml json js jsonfull jsfull csv csvfull csvfullest gpx gpxtracks"`
	Iterative     bool   `yaml:"iterative"`
	Chronological bool   `yaml:"chronological"`
	AssumeSorted  bool   `yaml:"assumeSorted"`
	Variable      string `yaml:"variable"`
	Separator     string `yaml:"separator" validate:"required"`
	Title         string `yaml:"title"`
	ProgressEvery int    `yaml:"progressEvery" validate:"gte=0"`
}

// FilterConfig selects the records to convert
type FilterConfig struct {
	StartDate string      `yaml:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string      `yaml:"endDate" validate:"omitempty,datetime=2006-01-02"`
	StartTime string      `yaml:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   string      `yaml:"endTime" validate:"omitempty,datetime=15:04"`
	Accuracy  *float64    `yaml:"accuracy" validate:"omitempty,gte=0"`
	Polygon   [][]float64 `yaml:"polygon" validate:"omitempty,min=2,dive,len=2"` // lat, lon pairs
	Devices   []int64     `yaml:"devices" validate:"excluded_with=AutoDevices"`
	// AutoDevices drops every device that reported an emulator platform.
	AutoDevices bool `yaml:"autoDevices"`
}

// TrackConfig contains gpxtracks segmentation thresholds
type TrackConfig struct {
	MaxGapMinutes float64 `yaml:"maxGapMinutes" validate:"gt=0"`
	MaxJumpKM     float64 `yaml:"maxJumpKm" validate:"gt=0"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig contains metrics export settings
type MetricsConfig struct {
	// Textfile, when set, receives the run's counters in the Prometheus
	// text format.
	Textfile string `yaml:"textfile"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Convert ConvertConfig `yaml:"convert"`
	Filter  FilterConfig  `yaml:"filter"`
	Track   TrackConfig   `yaml:"track"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}
