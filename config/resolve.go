package config

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/location-history-converter/converter"
	"github.com/theoremus-urban-solutions/location-history-converter/formatter"
	"github.com/theoremus-urban-solutions/location-history-converter/geo"
	"github.com/theoremus-urban-solutions/location-history-converter/utils"
)

// Bounds resolves the date filter. The start time only applies when a start
// date is set. The end bound is inclusive: up to one microsecond before the
// end time, or through the end of the end date.
func (f FilterConfig) Bounds() (start, end *time.Time, err error) {
	if f.StartDate != "" {
		s, err := parseDateTime(f.StartDate, f.StartTime)
		if err != nil {
			return nil, nil, fmt.Errorf("start: %w", err)
		}
		start = &s
	}
	if f.EndDate != "" {
		var e time.Time
		if f.EndTime != "" {
			e, err = parseDateTime(f.EndDate, f.EndTime)
			if err != nil {
				return nil, nil, fmt.Errorf("end: %w", err)
			}
			e = e.Add(-time.Microsecond)
		} else {
			e, err = parseDateTime(f.EndDate, "")
			if err != nil {
				return nil, nil, fmt.Errorf("end: %w", err)
			}
			e = utils.EndOfDay(e)
		}
		end = &e
	}
	return start, end, nil
}

func parseDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if clock == "" {
		return d, nil
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), nil
}

// Region builds the polygon filter: two points span a rectangle, three or
// more are the polygon's vertices. It returns nil when no polygon is set.
func (f FilterConfig) Region() (*geo.Polygon, error) {
	switch len(f.Polygon) {
	case 0:
		return nil, nil
	case 1:
		return nil, fmt.Errorf("%w: a polygon needs at least 2 points", ErrInvalidConfig)
	}

	vertices := make([]geo.LatLon, len(f.Polygon))
	for i, p := range f.Polygon {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: polygon point %d needs lat and lon", ErrInvalidConfig, i)
		}
		vertices[i] = geo.LatLon{Lat: p[0], Lon: p[1]}
	}
	if len(vertices) == 2 {
		return geo.NewRectangle(vertices[0], vertices[1])
	}
	return geo.NewPolygon(vertices)
}

// Segmenter returns the gpxtracks thresholds.
func (t TrackConfig) Segmenter() geo.Segmenter {
	return geo.Segmenter{
		MaxGap:    time.Duration(t.MaxGapMinutes * float64(time.Minute)),
		MaxJumpKM: t.MaxJumpKM,
	}
}

// ConverterOptions translates the configuration into converter options.
func (c AppConfig) ConverterOptions() (converter.Options, error) {
	format, err := formatter.ParseFormat(c.Convert.Format)
	if err != nil {
		return converter.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	start, end, err := c.Filter.Bounds()
	if err != nil {
		return converter.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := converter.Options{
		Format:          format,
		Variable:        c.Convert.Variable,
		Separator:       c.Convert.Separator,
		Title:           c.Convert.Title,
		Start:           start,
		End:             end,
		MaxAccuracy:     c.Filter.Accuracy,
		Chronological:   c.Convert.Chronological,
		AssumeSorted:    c.Convert.AssumeSorted,
		FilteredDevices: c.Filter.Devices,
		AutoDevices:     c.Filter.AutoDevices,
		Segmenter:       c.Track.Segmenter(),
		ProgressEvery:   c.Convert.ProgressEvery,
	}

	region, err := c.Filter.Region()
	if err != nil {
		return converter.Options{}, err
	}
	// a nil *geo.Polygon must not become a non-nil interface
	if region != nil {
		opts.Region = region
	}
	return opts, nil
}
