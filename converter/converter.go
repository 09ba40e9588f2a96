package converter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/location-history-converter/formatter"
	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Converter writes location records in one output format.
type Converter struct {
	opts    Options
	emitter formatter.Emitter
	filter  Filter
	logger  *zap.Logger
	metrics *Metrics
}

// New validates opts and selects the emitter. logger and metrics may be nil.
func New(opts Options, logger *zap.Logger, metrics *Metrics) (*Converter, error) {
	format, err := formatter.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	opts.Format = format

	if opts.MaxAccuracy != nil && *opts.MaxAccuracy < 0 {
		return nil, fmt.Errorf("%w: negative accuracy %v", ErrInvalidOptions, *opts.MaxAccuracy)
	}
	if opts.Start != nil && opts.End != nil && opts.End.Before(*opts.Start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidOptions, opts.End, opts.Start)
	}
	if opts.AutoDevices && len(opts.FilteredDevices) > 0 {
		return nil, fmt.Errorf("%w: automatic device detection cannot be combined with a device list", ErrInvalidOptions)
	}
	if opts.ProgressEvery < 0 {
		return nil, fmt.Errorf("%w: negative progress interval", ErrInvalidOptions)
	}

	emitter, err := formatter.New(format, formatter.Settings{
		Variable:  opts.Variable,
		Separator: opts.Separator,
		Title:     opts.Title,
		Segmenter: opts.Segmenter,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{
		opts:    opts,
		emitter: emitter,
		filter: Filter{
			Start:       opts.Start,
			End:         opts.End,
			MaxAccuracy: opts.MaxAccuracy,
			Region:      opts.Region,
			Devices:     deviceSet(opts.FilteredDevices),
			AnyPlatform: opts.AutoDevices,
		},
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Run converts every record of src and writes the result to w. The header
// and footer are written even when no record survives. On error the output
// is incomplete and should be discarded.
func (c *Converter) Run(ctx context.Context, src Source, w io.Writer) (Stats, error) {
	var stats Stats
	if err := c.Check(src); err != nil {
		return stats, err
	}

	sorted := !src.Streaming() && (c.opts.Chronological || c.opts.Format.RequiresOrder())

	next := src.Next
	filter := c.filter
	if !src.Streaming() && (sorted || c.opts.AutoDevices) {
		records, err := drain(ctx, src)
		if err != nil {
			return stats, err
		}
		if sorted {
			location.SortChronological(records)
		}
		if c.opts.AutoDevices {
			filter.Devices = detectIgnoredDevices(records)
			c.logger.Info("detected devices with ignored platforms", zap.Int("devices", len(filter.Devices)))
		}
		next = sliceSource(records)
	}
	earlyExit := sorted || c.opts.AssumeSorted

	out := bufio.NewWriter(w)
	if err := c.emitter.WriteHeader(out); err != nil {
		return stats, fmt.Errorf("writing header: %w", err)
	}

	var prev *location.Record
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rec, err := next(ctx)
		if err != nil {
			return stats, err
		}
		if rec == nil {
			break
		}
		stats.Read++
		c.metrics.read()
		c.progress(stats, rec)

		if !rec.HasCoordinates() || !rec.HasTimestamp() {
			stats.Skipped++
			c.metrics.skipped(skipIncomplete)
			continue
		}
		rec.Normalize()
		if earlyExit && filter.PastEnd(rec) {
			c.logger.Debug("stopping at end bound", zap.Time("record_time", rec.Time()))
			break
		}
		if reason := filter.reject(rec); reason != "" {
			stats.Skipped++
			c.metrics.skipped(reason)
			continue
		}

		if err := c.emitter.WriteRecord(out, rec, prev == nil, prev); err != nil {
			return stats, fmt.Errorf("writing record: %w", err)
		}
		prev = rec
		stats.Emitted++
		c.metrics.emitted()
	}

	if err := c.emitter.WriteFooter(out); err != nil {
		return stats, fmt.Errorf("writing footer: %w", err)
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("flushing output: %w", err)
	}

	c.logger.Info("conversion finished",
		zap.String("format", string(c.opts.Format)),
		zap.Int("read", stats.Read),
		zap.Int("emitted", stats.Emitted),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}

// Check reports whether the options can be applied to src. Streaming
// sources cannot be sorted or scanned for devices up front. Run performs the
// same check; callers use it to refuse before opening any output.
func (c *Converter) Check(src Source) error {
	if !src.Streaming() {
		return nil
	}
	switch {
	case c.opts.Chronological:
		return fmt.Errorf("%w: chronological order needs the whole document", ErrUnsupportedCombination)
	case c.opts.Format.RequiresOrder() && !c.opts.AssumeSorted:
		return fmt.Errorf("%w: %s needs ordered input; sort it or assume it is sorted", ErrUnsupportedCombination, c.opts.Format)
	case c.opts.AutoDevices:
		return fmt.Errorf("%w: device detection needs the whole document", ErrUnsupportedCombination)
	}
	return nil
}

func (c *Converter) progress(stats Stats, rec *location.Record) {
	if c.opts.ProgressEvery <= 0 || stats.Read%c.opts.ProgressEvery != 0 {
		return
	}
	fields := []zap.Field{zap.Int("read", stats.Read), zap.Int("emitted", stats.Emitted)}
	if rec.HasTimestamp() {
		fields = append(fields, zap.String("at", rec.Time().Format("2006-01-02 15:04")))
	}
	c.logger.Debug("progress", fields...)
}

func drain(ctx context.Context, src Source) ([]*location.Record, error) {
	var records []*location.Record
	for {
		rec, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, rec)
	}
}

func sliceSource(records []*location.Record) func(context.Context) (*location.Record, error) {
	i := 0
	return func(context.Context) (*location.Record, error) {
		if i >= len(records) {
			return nil, nil
		}
		rec := records[i]
		i++
		return rec, nil
	}
}
