// Package geo holds the geometric helpers used while converting location
// history: great-circle distance, track segmentation and polygon containment.
package geo
