// Package config handles application configuration loading and validation.
//
// Configuration is loaded from lhconvert.yml (or config.yml) and validated
// using struct tags. Every value has a default, so the file is optional;
// command-line flags override what it sets.
package config
