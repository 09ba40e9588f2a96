package formatter

import (
	"io"
	"strings"

	"github.com/theoremus-urban-solutions/location-history-converter/geo"
	"github.com/theoremus-urban-solutions/location-history-converter/location"
	"github.com/theoremus-urban-solutions/location-history-converter/utils"
)

const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// kmlEmitter writes one Placemark per record.
type kmlEmitter struct {
	title string
}

func (e *kmlEmitter) WriteHeader(w io.Writer) error {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	b.WriteString("  <Document>\n")
	b.WriteString("    <name>")
	b.WriteString(xmlEscape(e.title))
	b.WriteString("</name>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *kmlEmitter) WriteRecord(w io.Writer, rec *location.Record, _ bool, _ *location.Record) error {
	var b strings.Builder
	b.WriteString("    <Placemark>\n")

	// KML requires TimeStamp, ExtendedData, Point in this order
	b.WriteString("      <TimeStamp><when>")
	b.WriteString(utils.Iso8601FromMillis(*rec.TimestampMs))
	b.WriteString("</when></TimeStamp>\n")
	if rec.Accuracy != nil || rec.Speed != nil || rec.Altitude != nil {
		b.WriteString("      <ExtendedData>\n")
		writeKMLData(&b, "accuracy", rec.Accuracy)
		writeKMLData(&b, "speed", rec.Speed)
		writeKMLData(&b, "altitude", rec.Altitude)
		b.WriteString("      </ExtendedData>\n")
	}
	b.WriteString("      <Point><coordinates>")
	b.WriteString(utils.PlainDegrees(rec.Longitude()))
	b.WriteString(",")
	b.WriteString(utils.PlainDegrees(rec.Latitude()))
	b.WriteString("</coordinates></Point>\n")

	b.WriteString("    </Placemark>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeKMLData(b *strings.Builder, name string, v *float64) {
	if v == nil {
		return
	}
	b.WriteString("        <Data name=\"")
	b.WriteString(name)
	b.WriteString("\">\n")
	b.WriteString("          <value>")
	b.WriteString(utils.Truncated(*v))
	b.WriteString("</value>\n")
	b.WriteString("        </Data>\n")
}

func (e *kmlEmitter) WriteFooter(w io.Writer) error {
	_, err := io.WriteString(w, "  </Document>\n</kml>\n")
	return err
}

// gpxEmitter writes one waypoint per record.
type gpxEmitter struct {
	title string
}

func (e *gpxEmitter) WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, gpxPrologue(e.title))
	return err
}

func (e *gpxEmitter) WriteRecord(w io.Writer, rec *location.Record, _ bool, _ *location.Record) error {
	var b strings.Builder
	b.WriteString("  <wpt")
	writeLatLonAttrs(&b, rec)
	b.WriteString(">\n")
	if rec.Altitude != nil {
		b.WriteString("    <ele>")
		b.WriteString(utils.Truncated(*rec.Altitude))
		b.WriteString("</ele>\n")
	}
	b.WriteString("    <time>")
	b.WriteString(utils.Iso8601FromMillis(*rec.TimestampMs))
	b.WriteString("</time>\n")

	b.WriteString("    <desc>")
	b.WriteString(utils.DateTimeFromMillis(*rec.TimestampMs))
	if rec.Accuracy != nil || rec.Speed != nil {
		b.WriteString(" (")
		if rec.Accuracy != nil {
			b.WriteString("Accuracy: ")
			b.WriteString(utils.Truncated(*rec.Accuracy))
		}
		if rec.Accuracy != nil && rec.Speed != nil {
			b.WriteString(", ")
		}
		if rec.Speed != nil {
			b.WriteString("Speed:")
			b.WriteString(utils.Truncated(*rec.Speed))
		}
		b.WriteString(")")
	}
	b.WriteString("</desc>\n")
	b.WriteString("  </wpt>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *gpxEmitter) WriteFooter(w io.Writer) error {
	_, err := io.WriteString(w, "</gpx>\n")
	return err
}

const (
	openTrack  = "  <trk>\n    <trkseg>\n"
	closeTrack = "    </trkseg>\n  </trk>\n"
)

// gpxTrackEmitter writes records as track points. The header opens the
// first track; a new track is started whenever the segmenter detects a gap
// between consecutive records.
type gpxTrackEmitter struct {
	title     string
	segmenter geo.Segmenter
}

func (e *gpxTrackEmitter) WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, gpxPrologue(e.title)+openTrack)
	return err
}

func (e *gpxTrackEmitter) WriteRecord(w io.Writer, rec *location.Record, first bool, prev *location.Record) error {
	var b strings.Builder
	if !first && prev != nil && e.segmenter.ShouldStartNewSegment(rec, prev) {
		b.WriteString(closeTrack)
		b.WriteString(openTrack)
	}

	b.WriteString("      <trkpt")
	writeLatLonAttrs(&b, rec)
	b.WriteString(">\n")
	if rec.Altitude != nil {
		b.WriteString("        <ele>")
		b.WriteString(utils.Truncated(*rec.Altitude))
		b.WriteString("</ele>\n")
	}
	b.WriteString("        <time>")
	b.WriteString(utils.Iso8601FromMillis(*rec.TimestampMs))
	b.WriteString("</time>\n")
	if rec.Accuracy != nil || rec.Speed != nil {
		b.WriteString("        <desc>\n")
		if rec.Accuracy != nil {
			b.WriteString("          Accuracy: ")
			b.WriteString(utils.Truncated(*rec.Accuracy))
			b.WriteString("\n")
		}
		if rec.Speed != nil {
			b.WriteString("          Speed:")
			b.WriteString(utils.Truncated(*rec.Speed))
			b.WriteString("\n")
		}
		b.WriteString("        </desc>\n")
	}
	b.WriteString("      </trkpt>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *gpxTrackEmitter) WriteFooter(w io.Writer) error {
	_, err := io.WriteString(w, closeTrack+"</gpx>\n")
	return err
}

func gpxPrologue(title string) string {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString("<gpx xmlns=\"http://www.topografix.com/GPX/1/1\" version=\"1.1\"")
	b.WriteString(" creator=\"Location History Converter\"")
	b.WriteString(" xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\"")
	b.WriteString(" xsi:schemaLocation=\"http://www.topografix.com/GPX/1/1")
	b.WriteString(" http://www.topografix.com/GPX/1/1/gpx.xsd\">\n")
	b.WriteString("  <metadata>\n")
	b.WriteString("    <name>")
	b.WriteString(xmlEscape(title))
	b.WriteString("</name>\n")
	b.WriteString("  </metadata>\n")
	return b.String()
}

func writeLatLonAttrs(b *strings.Builder, rec *location.Record) {
	b.WriteString(" lat=\"")
	b.WriteString(utils.PlainDegrees(rec.Latitude()))
	b.WriteString("\" lon=\"")
	b.WriteString(utils.PlainDegrees(rec.Longitude()))
	b.WriteString("\"")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
