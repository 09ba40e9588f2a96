// Package utils provides internal formatting helpers shared by the output
// formatters.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Time formatting for the different output formats
//   - Coordinate and number formatting
package utils
