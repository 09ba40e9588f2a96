// Package location defines the location history record model shared by the
// readers, the converter and the output formatters.
//
// Records follow the Google Takeout "Records.json" layout: coordinates are
// stored as E7 integers (decimal degrees times 10^7) and every metadata field
// is optional. Optional fields are pointers; nil means the key was absent in
// the input.
//
// Some exports contain coordinates that overflowed a signed 32-bit integer.
// NormalizeE7 and Record.Normalize reverse that overflow and must be applied
// before any coordinate is inspected.
package location
