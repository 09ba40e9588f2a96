package formatter

import (
	"io"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
	"github.com/theoremus-urban-solutions/location-history-converter/utils"
)

type csvColumns int

const (
	csvBasic csvColumns = iota
	csvFull
	csvFullest
)

// csvEmitter writes one line per record. Values are joined with the
// separator without quoting.
type csvEmitter struct {
	separator string
	columns   csvColumns
}

func (e *csvEmitter) WriteHeader(w io.Writer) error {
	cols := []string{"Time", "Latitude", "Longitude"}
	if e.columns >= csvFull {
		cols = append(cols, "Accuracy", "Altitude", "VerticalAccuracy", "Velocity", "Heading")
	}
	if e.columns == csvFullest {
		cols = append(cols, "DetectedActivities")
		for _, a := range location.ActivityTypes {
			cols = append(cols, string(a))
		}
	}
	_, err := io.WriteString(w, strings.Join(cols, e.separator)+"\n")
	return err
}

func (e *csvEmitter) WriteRecord(w io.Writer, rec *location.Record, _ bool, _ *location.Record) error {
	fields := []string{
		utils.DateTimeFromMillis(*rec.TimestampMs),
		utils.FixedDegrees(rec.Latitude()),
		utils.FixedDegrees(rec.Longitude()),
	}
	if e.columns >= csvFull {
		fields = append(fields,
			utils.Number(rec.Accuracy),
			utils.Number(rec.Altitude),
			utils.Number(rec.VerticalAccuracy),
			utils.Number(rec.Velocity),
			utils.Number(rec.Heading),
		)
	}
	if e.columns == csvFullest {
		acts := rec.Activities()
		fields = append(fields, strconv.Itoa(len(acts)))
		for _, a := range location.ActivityTypes {
			if conf, ok := acts[a]; ok {
				fields = append(fields, strconv.Itoa(conf))
			} else {
				fields = append(fields, "")
			}
		}
	}
	_, err := io.WriteString(w, strings.Join(fields, e.separator)+"\n")
	return err
}

func (e *csvEmitter) WriteFooter(io.Writer) error {
	return nil
}
