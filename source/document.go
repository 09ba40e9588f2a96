package source

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/mailru/easyjson"
	"github.com/tidwall/gjson"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Document is a fully decoded location history export.
type Document struct {
	records []*location.Record
	pos     int
}

// ReadDocument reads r to the end and decodes every record in it.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a Takeout export, or failing that a legacy Google
// Latitude export. Shape errors are reported before any record is returned.
func ParseDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedInput
	}

	if locs := gjson.GetBytes(data, "locations"); locs.Exists() {
		if !locs.IsArray() {
			return nil, fmt.Errorf("%w: \"locations\" is not an array", ErrDataShape)
		}
		return decodeTakeout(locs)
	}
	if items := gjson.GetBytes(data, "data.items"); items.IsArray() {
		return decodeLatitude(items), nil
	}
	return nil, ErrDataShape
}

func decodeTakeout(locs gjson.Result) (*Document, error) {
	doc := &Document{}
	var err error
	i := 0
	locs.ForEach(func(_, value gjson.Result) bool {
		rec := new(location.Record)
		if uerr := easyjson.Unmarshal([]byte(value.Raw), rec); uerr != nil {
			err = fmt.Errorf("%w: location %d: %w", ErrMalformedInput, i, uerr)
			return false
		}
		doc.records = append(doc.records, rec)
		i++
		return true
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeLatitude maps the 2012 Google Latitude export, which stores plain
// decimal degrees, onto E7 records.
func decodeLatitude(items gjson.Result) *Document {
	doc := &Document{}
	items.ForEach(func(_, item gjson.Result) bool {
		rec := new(location.Record)
		if ts := item.Get("timestampMs"); ts.Exists() {
			ms := ts.Int()
			rec.TimestampMs = &ms
		}
		if lat := item.Get("latitude"); lat.Exists() {
			v := degreesToE7(lat.Float())
			rec.LatitudeE7 = &v
		}
		if lon := item.Get("longitude"); lon.Exists() {
			v := degreesToE7(lon.Float())
			rec.LongitudeE7 = &v
		}
		if acc := item.Get("accuracy"); acc.Exists() {
			v := acc.Float()
			rec.Accuracy = &v
		}
		if alt := item.Get("altitude"); alt.Exists() {
			v := alt.Float()
			rec.Altitude = &v
		}
		doc.records = append(doc.records, rec)
		return true
	})
	return doc
}

func degreesToE7(deg float64) int64 {
	return int64(math.Round(deg * location.E7))
}

// Next returns the next record, or nil once all records were returned.
func (d *Document) Next(ctx context.Context) (*location.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.pos >= len(d.records) {
		return nil, nil
	}
	rec := d.records[d.pos]
	d.pos++
	return rec, nil
}

// Len returns the number of records in the document.
func (d *Document) Len() int { return len(d.records) }

// Streaming is false: the whole document is held in memory.
func (d *Document) Streaming() bool { return false }
