package formatter

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

func ptr[T any](v T) *T { return &v }

func basicRecord(ms, lat, lon int64) *location.Record {
	return &location.Record{TimestampMs: ptr(ms), LatitudeE7: ptr(lat), LongitudeE7: ptr(lon)}
}

// render runs the full emitter lifecycle over records.
func render(t *testing.T, f Format, s Settings, records ...*location.Record) string {
	t.Helper()
	e, err := New(f, s)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", f, err)
	}
	var buf bytes.Buffer
	if err := e.WriteHeader(&buf); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	var prev *location.Record
	for i, rec := range records {
		if err := e.WriteRecord(&buf, rec, i == 0, prev); err != nil {
			t.Fatalf("WriteRecord failed: %v", err)
		}
		prev = rec
	}
	if err := e.WriteFooter(&buf); err != nil {
		t.Fatalf("WriteFooter failed: %v", err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if got, err := ParseFormat(" GPX "); err != nil || got != FormatGPX {
		t.Errorf("format names should be case-insensitive, got %q, %v", got, err)
	}
	if _, err := ParseFormat("shapefile"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := New("shapefile", Settings{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New should reject unknown formats, got %v", err)
	}
}

func TestRequiresOrder(t *testing.T) {
	for _, f := range Formats() {
		if f.RequiresOrder() != (f == FormatGPXTracks) {
			t.Errorf("%s: unexpected RequiresOrder %v", f, f.RequiresOrder())
		}
	}
}

func TestJSON(t *testing.T) {
	out := render(t, FormatJSON, Settings{},
		basicRecord(1000, 400000000, -700000000),
		basicRecord(2000, 1, 2),
	)
	want := `{"locations":[{"timestampMs":"1000","latitudeE7":400000000,"longitudeE7":-700000000},` +
		`{"timestampMs":"2000","latitudeE7":1,"longitudeE7":2}]}`
	if out != want {
		t.Errorf("unexpected output:\n got: %s\nwant: %s", out, want)
	}
}

func TestJS(t *testing.T) {
	out := render(t, FormatJS, Settings{Variable: "points"}, basicRecord(1000, 1, 2))
	want := `window.points = {"locations":[{"timestampMs":"1000","latitudeE7":1,"longitudeE7":2}]};`
	if out != want {
		t.Errorf("unexpected output:\n got: %s\nwant: %s", out, want)
	}

	empty := render(t, FormatJSFull, Settings{})
	if empty != `window.locationJsonData = {"locations":[]};` {
		t.Errorf("unexpected empty jsfull output: %s", empty)
	}
}

func TestJSONFull_RoundTrip(t *testing.T) {
	input := `[{"timestampMs":"1000","latitudeE7":400000000,"longitudeE7":-700000000,"accuracy":5,"altitude":12.5,"source":"GPS"},` +
		`{"timestampMs":"2000","latitudeE7":1,"longitudeE7":2,"activity":[{"timestampMs":"1999","activity":[{"type":"WALKING","confidence":77}]}]}]`
	var records []*location.Record
	if err := json.Unmarshal([]byte(input), &records); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out := render(t, FormatJSONFull, Settings{}, records...)

	var parsed struct {
		Locations []*location.Record `json:"locations"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("jsonfull output is not valid JSON: %v\n%s", err, out)
	}
	if len(parsed.Locations) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(parsed.Locations))
	}
	for i := range records {
		a, _ := json.Marshal(records[i])
		b, _ := json.Marshal(parsed.Locations[i])
		if !bytes.Equal(a, b) {
			t.Errorf("record %d changed:\n  in:  %s\n  out: %s", i, a, b)
		}
	}
}

func TestCSV(t *testing.T) {
	out := render(t, FormatCSV, Settings{}, basicRecord(1000, 400000000, -700000000))
	want := "Time,Latitude,Longitude\n1970-01-01 00:00:01,40.00000000,-70.00000000\n"
	if out != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", out, want)
	}
}

func TestCSV_Separator(t *testing.T) {
	out := render(t, FormatCSV, Settings{Separator: ";"}, basicRecord(1000, 515074453, -1278260))
	want := "Time;Latitude;Longitude\n1970-01-01 00:00:01;51.50744530;-0.12782600\n"
	if out != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", out, want)
	}
}

func TestCSVFull(t *testing.T) {
	rec := basicRecord(1000, 400000000, -700000000)
	rec.Accuracy = ptr(20.0)
	rec.Heading = ptr(90.0)
	rec.Velocity = ptr(2.5)

	out := render(t, FormatCSVFull, Settings{}, rec)
	want := "Time,Latitude,Longitude,Accuracy,Altitude,VerticalAccuracy,Velocity,Heading\n" +
		"1970-01-01 00:00:01,40.00000000,-70.00000000,20,,,2.5,90\n"
	if out != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", out, want)
	}
}

func TestCSVFullest(t *testing.T) {
	withActivity := basicRecord(1000, 400000000, -700000000)
	withActivity.Activity = []location.ActivitySample{{
		TimestampMs: "999",
		Activity: []location.ActivityReading{
			{Type: location.ActivityStill, Confidence: ptr(70)},
			{Type: location.ActivityInVehicle, Confidence: ptr(20)},
		},
	}}
	without := basicRecord(2000, 400000000, -700000000)

	out := render(t, FormatCSVFullest, Settings{}, withActivity, without)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out)
	}

	header := strings.Split(lines[0], ",")
	if len(header) != 21 {
		t.Fatalf("expected 21 header columns, got %d", len(header))
	}
	if header[8] != "DetectedActivities" || header[9] != "UNKNOWN" || header[20] != "IN_FOUR_WHEELER_VEHICLE" {
		t.Errorf("unexpected activity columns: %v", header[8:])
	}

	row := strings.Split(lines[1], ",")
	if len(row) != 21 {
		t.Fatalf("expected 21 columns, got %d: %s", len(row), lines[1])
	}
	if row[8] != "2" || row[10] != "70" || row[15] != "20" || row[9] != "" {
		t.Errorf("unexpected activity values: %v", row[8:])
	}

	want := "1970-01-01 00:00:02,40.00000000,-70.00000000,,,,,,0" + strings.Repeat(",", 12)
	if lines[2] != want {
		t.Errorf("record without activity:\n got: %q\nwant: %q", lines[2], want)
	}
}

func TestKML(t *testing.T) {
	rec := basicRecord(1507329047193, 515074453, -1278260)
	rec.Accuracy = ptr(20.7)
	rec.Altitude = ptr(40.0)

	out := render(t, FormatKML, Settings{}, rec, basicRecord(0, 400000000, -700000000))
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n" +
		"  <Document>\n" +
		"    <name>Location History</name>\n" +
		"    <Placemark>\n" +
		"      <TimeStamp><when>2017-10-06T22:30:47Z</when></TimeStamp>\n" +
		"      <ExtendedData>\n" +
		"        <Data name=\"accuracy\">\n" +
		"          <value>20</value>\n" +
		"        </Data>\n" +
		"        <Data name=\"altitude\">\n" +
		"          <value>40</value>\n" +
		"        </Data>\n" +
		"      </ExtendedData>\n" +
		"      <Point><coordinates>-0.127826,51.5074453</coordinates></Point>\n" +
		"    </Placemark>\n" +
		"    <Placemark>\n" +
		"      <TimeStamp><when>1970-01-01T00:00:00Z</when></TimeStamp>\n" +
		"      <Point><coordinates>-70.0,40.0</coordinates></Point>\n" +
		"    </Placemark>\n" +
		"  </Document>\n</kml>\n"
	if out != want {
		t.Errorf("unexpected output:\n got: %s\nwant: %s", out, want)
	}
}

func TestGPX(t *testing.T) {
	rec := basicRecord(1000, 400000000, -700000000)
	rec.Altitude = ptr(12.9)
	rec.Accuracy = ptr(5.0)
	rec.Speed = ptr(3.0)
	accOnly := basicRecord(2000, 1, 2)
	accOnly.Accuracy = ptr(7.0)

	out := render(t, FormatGPX, Settings{}, rec, accOnly)
	wantRecords := "  <wpt lat=\"40.0\" lon=\"-70.0\">\n" +
		"    <ele>12</ele>\n" +
		"    <time>1970-01-01T00:00:01Z</time>\n" +
		"    <desc>1970-01-01 00:00:01 (Accuracy: 5, Speed:3)</desc>\n" +
		"  </wpt>\n" +
		"  <wpt lat=\"0.0000001\" lon=\"0.0000002\">\n" +
		"    <time>1970-01-01T00:00:02Z</time>\n" +
		"    <desc>1970-01-01 00:00:02 (Accuracy: 7)</desc>\n" +
		"  </wpt>\n" +
		"</gpx>\n"
	if !strings.HasSuffix(out, wantRecords) {
		t.Errorf("unexpected waypoints:\n%s", out)
	}
	if !strings.Contains(out, "<metadata>\n    <name>Location History</name>\n  </metadata>\n") {
		t.Errorf("missing metadata block:\n%s", out)
	}
}

func TestGPXTracks_Segments(t *testing.T) {
	const minute = 60_000
	out := render(t, FormatGPXTracks, Settings{},
		basicRecord(0, 480000000, 110000000),
		basicRecord(1*minute, 480010000, 110000000),
		basicRecord(21*minute, 480020000, 110000000),
	)

	if n := strings.Count(out, "<trk>"); n != 2 {
		t.Errorf("expected 2 tracks, got %d:\n%s", n, out)
	}
	if strings.Count(out, "<trkseg>") != strings.Count(out, "</trkseg>") {
		t.Errorf("unbalanced segments:\n%s", out)
	}
	if n := strings.Count(out, "<trkpt"); n != 3 {
		t.Errorf("expected 3 track points, got %d", n)
	}
	if !strings.HasSuffix(out, "      </trkpt>\n    </trkseg>\n  </trk>\n</gpx>\n") {
		t.Errorf("footer should close the open track:\n%s", out)
	}
}

func TestGPXTracks_Desc(t *testing.T) {
	rec := basicRecord(1000, 400000000, -700000000)
	rec.Accuracy = ptr(10.0)
	rec.Speed = ptr(4.6)
	out := render(t, FormatGPXTracks, Settings{}, rec)
	want := "      <trkpt lat=\"40.0\" lon=\"-70.0\">\n" +
		"        <time>1970-01-01T00:00:01Z</time>\n" +
		"        <desc>\n" +
		"          Accuracy: 10\n" +
		"          Speed:4\n" +
		"        </desc>\n" +
		"      </trkpt>\n"
	if !strings.Contains(out, want) {
		t.Errorf("unexpected track point:\n%s", out)
	}
}

func TestEmptyOutputIsWellFormed(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			out := render(t, f, Settings{})
			switch f {
			case FormatJSON, FormatJSONFull:
				var v map[string][]any
				if err := json.Unmarshal([]byte(out), &v); err != nil {
					t.Errorf("invalid JSON %q: %v", out, err)
				}
			case FormatJS, FormatJSFull:
				if out != `window.locationJsonData = {"locations":[]};` {
					t.Errorf("unexpected output %q", out)
				}
			case FormatCSV, FormatCSVFull, FormatCSVFullest:
				if strings.Count(out, "\n") != 1 || !strings.HasPrefix(out, "Time,") {
					t.Errorf("expected only the header row, got %q", out)
				}
			default:
				checkXML(t, out)
			}
		})
	}
}

func TestTitleIsEscaped(t *testing.T) {
	out := render(t, FormatKML, Settings{Title: "Tom & Jerry <trips>"})
	if !strings.Contains(out, "<name>Tom &amp; Jerry &lt;trips&gt;</name>") {
		t.Errorf("title not escaped:\n%s", out)
	}
	checkXML(t, out)
}

func checkXML(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("output is not well-formed XML: %v\n%s", err, doc)
		}
	}
}
