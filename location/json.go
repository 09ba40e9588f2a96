package location

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// UnmarshalJSON implements json.Unmarshaler so records can be decoded by
// encoding/json streams as well as by easyjson.
func (r *Record) UnmarshalJSON(data []byte) error {
	return easyjson.Unmarshal(data, r)
}

// UnmarshalEasyJSON decodes a Takeout location object. timestampMs and the
// E7 coordinates are accepted as JSON numbers or numeric strings. Keys with a
// null value are kept in Extra.
func (r *Record) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	var isoTimestamp string
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			r.Extra = setExtra(r.Extra, key, in.Raw())
			in.WantComma()
			continue
		}
		switch key {
		case "timestampMs":
			var quoted bool
			r.TimestampMs, quoted = readQuotedInt64(in)
			if quoted {
				r.timestampForm = timestampString
			} else {
				r.timestampForm = timestampNumber
			}
		case "latitudeE7":
			r.LatitudeE7 = readInt64(in)
		case "longitudeE7":
			r.LongitudeE7 = readInt64(in)
		case "accuracy":
			r.Accuracy = readFloat64(in)
		case "altitude":
			r.Altitude = readFloat64(in)
		case "speed":
			r.Speed = readFloat64(in)
		case "heading":
			r.Heading = readFloat64(in)
		case "verticalAccuracy":
			r.VerticalAccuracy = readFloat64(in)
		case "velocity":
			r.Velocity = readFloat64(in)
		case "deviceTag":
			r.DeviceTag = readInt64(in)
		case "platform":
			r.Platform = in.String()
		case "platformType":
			r.PlatformType = in.String()
		case "activity":
			r.Activity = readActivitySamples(in)
		case "timestamp":
			raw := in.Raw()
			if err := json.Unmarshal(raw, &isoTimestamp); err != nil {
				in.AddError(fmt.Errorf("timestamp: %w", err))
			}
			r.Extra = setExtra(r.Extra, key, raw)
		default:
			r.Extra = setExtra(r.Extra, key, in.Raw())
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}

	// newer exports replaced timestampMs with an RFC 3339 timestamp
	if r.TimestampMs == nil && isoTimestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, isoTimestamp)
		if err != nil {
			in.AddError(fmt.Errorf("timestamp %q: %w", isoTimestamp, err))
			return
		}
		ms := ts.UnixMilli()
		r.TimestampMs = &ms
		r.timestampForm = timestampDerived
	}
}

func setExtra(extra map[string]json.RawMessage, key string, raw []byte) map[string]json.RawMessage {
	if extra == nil {
		extra = make(map[string]json.RawMessage)
	}
	extra[strings.Clone(key)] = bytes.Clone(raw)
	return extra
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(r)
}

// objectWriter writes the members of a JSON object, separating them with
// commas.
type objectWriter struct {
	out   *jwriter.Writer
	empty bool
}

func openObject(out *jwriter.Writer) *objectWriter {
	out.RawByte('{')
	return &objectWriter{out: out, empty: true}
}

func (o *objectWriter) key(name string) {
	if !o.empty {
		o.out.RawByte(',')
	}
	o.empty = false
	o.out.String(name)
	o.out.RawByte(':')
}

// close writes the extra keys in sorted order and ends the object.
func (o *objectWriter) close(extra map[string]json.RawMessage) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		o.key(k)
		o.out.Raw(extra[k], nil)
	}
	o.out.RawByte('}')
}

// MarshalEasyJSON writes every present field of the record. timestampMs is
// written in the form it was read in, as a string by default, and is left
// out when it was derived from "timestamp". Unknown keys follow in sorted
// order.
func (r Record) MarshalEasyJSON(out *jwriter.Writer) {
	obj := openObject(out)
	if r.TimestampMs != nil && r.timestampForm != timestampDerived {
		obj.key("timestampMs")
		if r.timestampForm == timestampNumber {
			out.Int64(*r.TimestampMs)
		} else {
			out.String(strconv.FormatInt(*r.TimestampMs, 10))
		}
	}
	if r.LatitudeE7 != nil {
		obj.key("latitudeE7")
		out.Int64(*r.LatitudeE7)
	}
	if r.LongitudeE7 != nil {
		obj.key("longitudeE7")
		out.Int64(*r.LongitudeE7)
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"accuracy", r.Accuracy},
		{"altitude", r.Altitude},
		{"speed", r.Speed},
		{"heading", r.Heading},
		{"verticalAccuracy", r.VerticalAccuracy},
		{"velocity", r.Velocity},
	} {
		if f.value != nil {
			obj.key(f.name)
			out.Float64(*f.value)
		}
	}
	if r.DeviceTag != nil {
		obj.key("deviceTag")
		out.Int64(*r.DeviceTag)
	}
	if r.Platform != "" {
		obj.key("platform")
		out.String(r.Platform)
	}
	if r.PlatformType != "" {
		obj.key("platformType")
		out.String(r.PlatformType)
	}
	if r.Activity != nil {
		obj.key("activity")
		out.RawByte('[')
		for i, sample := range r.Activity {
			if i > 0 {
				out.RawByte(',')
			}
			sample.MarshalEasyJSON(out)
		}
		out.RawByte(']')
	}
	obj.close(r.Extra)
}

// UnmarshalEasyJSON decodes one activity sample.
func (s *ActivitySample) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			s.Extra = setExtra(s.Extra, key, in.Raw())
			in.WantComma()
			continue
		}
		switch key {
		case "timestampMs":
			raw := in.Raw()
			if len(raw) > 0 && raw[0] == '"' {
				if err := json.Unmarshal(raw, &s.TimestampMs); err != nil {
					in.AddError(fmt.Errorf("activity timestampMs: %w", err))
				}
			} else {
				if _, err := json.Number(raw).Float64(); err != nil {
					in.AddError(fmt.Errorf("activity timestampMs %q: %w", raw, err))
				}
				s.TimestampMs = string(raw)
				s.numericTimestamp = true
			}
		case "timestamp":
			s.Timestamp = in.String()
		case "activity":
			s.Activity = []ActivityReading{}
			in.Delim('[')
			for !in.IsDelim(']') {
				var reading ActivityReading
				reading.UnmarshalEasyJSON(in)
				s.Activity = append(s.Activity, reading)
				in.WantComma()
			}
			in.Delim(']')
		default:
			s.Extra = setExtra(s.Extra, key, in.Raw())
		}
		in.WantComma()
	}
	in.Delim('}')
}

// MarshalEasyJSON writes the sample with its timestamp keys first.
func (s ActivitySample) MarshalEasyJSON(out *jwriter.Writer) {
	obj := openObject(out)
	if s.TimestampMs != "" {
		obj.key("timestampMs")
		if s.numericTimestamp {
			out.RawString(s.TimestampMs)
		} else {
			out.String(s.TimestampMs)
		}
	}
	if s.Timestamp != "" {
		obj.key("timestamp")
		out.String(s.Timestamp)
	}
	if s.Activity != nil {
		obj.key("activity")
		out.RawByte('[')
		for i, reading := range s.Activity {
			if i > 0 {
				out.RawByte(',')
			}
			reading.MarshalEasyJSON(out)
		}
		out.RawByte(']')
	}
	obj.close(s.Extra)
}

// UnmarshalEasyJSON decodes a {"type": ..., "confidence": ...} pair.
func (a *ActivityReading) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			a.Extra = setExtra(a.Extra, key, in.Raw())
			in.WantComma()
			continue
		}
		switch key {
		case "type":
			a.Type = ActivityType(in.String())
		case "confidence":
			if v := readInt64(in); v != nil {
				c := int(*v)
				a.Confidence = &c
			}
		default:
			a.Extra = setExtra(a.Extra, key, in.Raw())
		}
		in.WantComma()
	}
	in.Delim('}')
}

// MarshalEasyJSON writes the reading.
func (a ActivityReading) MarshalEasyJSON(out *jwriter.Writer) {
	obj := openObject(out)
	if a.Type != "" {
		obj.key("type")
		out.String(string(a.Type))
	}
	if a.Confidence != nil {
		obj.key("confidence")
		out.Int(*a.Confidence)
	}
	obj.close(a.Extra)
}

func readActivitySamples(in *jlexer.Lexer) []ActivitySample {
	samples := []ActivitySample{}
	in.Delim('[')
	for !in.IsDelim(']') {
		var s ActivitySample
		s.UnmarshalEasyJSON(in)
		samples = append(samples, s)
		in.WantComma()
	}
	in.Delim(']')
	return samples
}

func readInt64(in *jlexer.Lexer) *int64 {
	v, _ := readQuotedInt64(in)
	return v
}

// readQuotedInt64 reads an integer given as a JSON number or a numeric
// string and reports whether it was a string.
func readQuotedInt64(in *jlexer.Lexer) (*int64, bool) {
	raw := in.Raw()
	if !in.Ok() || len(raw) == 0 {
		return nil, false
	}
	quoted := raw[0] == '"'
	num := json.Number(raw)
	if quoted {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			in.AddError(fmt.Errorf("invalid integer %s: %w", raw, err))
			return nil, quoted
		}
		num = json.Number(s)
	}
	v, err := num.Int64()
	if err != nil {
		// some exporters write integral values with a fraction
		f, ferr := num.Float64()
		if ferr != nil {
			in.AddError(fmt.Errorf("invalid integer %q: %w", num, err))
			return nil, quoted
		}
		v = int64(f)
	}
	return &v, quoted
}

func readFloat64(in *jlexer.Lexer) *float64 {
	num := in.JsonNumber()
	if !in.Ok() || num == "" {
		return nil
	}
	v, err := num.Float64()
	if err != nil {
		in.AddError(fmt.Errorf("invalid number %q: %w", num, err))
		return nil
	}
	return &v
}
