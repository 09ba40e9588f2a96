// Package converter is the main entry point for location history conversion.
//
// A Converter reads location records from a Source, drops the records that
// fail its filters and writes the rest in one output format.
//
// # Usage
//
//	f, _ := os.Open("Records.json")
//	src, _ := source.ReadDocument(f)
//
//	conv, err := converter.New(converter.Options{
//	    Format:        formatter.FormatGPXTracks,
//	    Chronological: true,
//	}, logger, nil)
//	if err != nil {
//	    return err
//	}
//	stats, err := conv.Run(ctx, src, out)
//
// # Pipeline
//
// For every record, in order:
//   - records without a timestamp or without both coordinates are skipped
//   - coordinates are normalized (see location.NormalizeE7)
//   - accuracy, date, device, platform and region filters are applied
//   - the record is written, together with the previously written record so
//     gpxtracks can split segments
//
// The header and footer are always written, so an empty result is still a
// well-formed document.
//
// # Ordering
//
// Chronological mode and the gpxtracks format sort the records first, which
// needs the whole document in memory. Run rejects them for streaming sources
// with ErrUnsupportedCombination, as it does automatic device detection.
// Options.AssumeSorted lets gpxtracks run on a stream and lets the
// converter stop reading at the first record after the end bound.
//
// # Thread Safety
//
// A Converter runs one conversion at a time. Metrics may be shared.
package converter
