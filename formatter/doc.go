// Package formatter writes location records in the supported output formats.
//
// This package is organized into:
// - format.go: Format selection and the Emitter contract
// - json.go: JSON and embeddable JavaScript output
// - csv.go: delimited text output
// - xml.go: KML and GPX output with proper escaping
//
// Every conversion calls WriteHeader once, WriteRecord once per record and
// WriteFooter once. All serialization is done manually for precise control
// over the output format.
package formatter
