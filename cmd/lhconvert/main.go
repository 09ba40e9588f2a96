package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/location-history-converter/config"
	"github.com/theoremus-urban-solutions/location-history-converter/converter"
	"github.com/theoremus-urban-solutions/location-history-converter/formatter"
	"github.com/theoremus-urban-solutions/location-history-converter/internal"
	"github.com/theoremus-urban-solutions/location-history-converter/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lhconvert:", err)
		os.Exit(1)
	}
}

func run() error {
	formatNames := make([]string, 0, len(formatter.Formats()))
	for _, f := range formatter.Formats() {
		formatNames = append(formatNames, string(f))
	}

	configPath := flag.String("config", "", "config file (default lhconvert.yml or config.yml if present)")
	format := flag.String("format", "", "output format: "+strings.Join(formatNames, "|"))
	iterative := flag.Bool("iterative", false, "decode the input incrementally to handle large files")
	startDate := flag.String("startdate", "", "start date YYYY-MM-DD (from 00:00)")
	endDate := flag.String("enddate", "", "end date YYYY-MM-DD (through 23:59:59)")
	startTime := flag.String("starttime", "", "start time HH:MM, only used with -startdate")
	endTime := flag.String("endtime", "", "end time HH:MM, only used with -enddate")
	accuracy := flag.Float64("accuracy", 0, "maximum accuracy in meters, lower is better")
	chronological := flag.Bool("chronological", false, "sort records in chronological order")
	assumeSorted := flag.Bool("assume-sorted", false, "trust the input to be in chronological order")
	variable := flag.String("variable", "", "variable name for js output")
	separator := flag.String("separator", "", "separator for csv formats")
	devices := flag.String("filtered-devices", "", "comma separated device tags to drop, or 'auto'")
	logLevel := flag.String("log-level", "", "debug|info|warn|error")
	var polygon polygonFlag
	flag.Var(&polygon, "polygon", "polygon vertex lat,lon (repeat; 2 points make a rectangle)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input> <output>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return errors.New("expected an input and an output")
	}
	input, output := flag.Arg(0), flag.Arg(1)
	if sameFile(input, output) {
		return errors.New("input and output have to be different files")
	}

	var cfg config.AppConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadAppConfig(*configPath)
	} else {
		cfg, err = config.LoadAppConfig()
	}
	if err != nil {
		return err
	}

	// flags override the config file
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Convert.Format = strings.ToLower(*format)
		case "iterative":
			cfg.Convert.Iterative = *iterative
		case "startdate":
			cfg.Filter.StartDate = *startDate
		case "enddate":
			cfg.Filter.EndDate = *endDate
		case "starttime":
			cfg.Filter.StartTime = *startTime
		case "endtime":
			cfg.Filter.EndTime = *endTime
		case "accuracy":
			cfg.Filter.Accuracy = accuracy
		case "chronological":
			cfg.Convert.Chronological = *chronological
		case "assume-sorted":
			cfg.Convert.AssumeSorted = *assumeSorted
		case "variable":
			cfg.Convert.Variable = *variable
		case "separator":
			cfg.Convert.Separator = *separator
		case "polygon":
			cfg.Filter.Polygon = polygon
		case "filtered-devices":
			tags, auto, err := parseDevices(*devices)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Filter.Devices, cfg.Filter.AutoDevices = tags, auto
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := internal.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.ConverterOptions()
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	var metrics *converter.Metrics
	if cfg.Metrics.Textfile != "" {
		reg = prometheus.NewRegistry()
		metrics = converter.NewMetrics(reg)
	}

	conv, err := converter.New(opts, logger, metrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in, err := newFetcher().open(ctx, input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = in.Close() }()

	var src converter.Source
	if cfg.Convert.Iterative {
		src, err = source.OpenStream(in)
	} else {
		src, err = source.ReadDocument(in)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	if err := convertTo(ctx, conv, src, output, logger); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// convertTo runs the conversion into output. A failed run leaves no output
// file behind.
func convertTo(ctx context.Context, conv *converter.Converter, src converter.Source, output string, logger *zap.Logger) error {
	// refuse before the output is created or truncated
	if err := conv.Check(src); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	var f *os.File
	if output != "-" {
		var err error
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file for writing: %w", err)
		}
		w = f
	}

	stats, err := conv.Run(ctx, src, w)
	if f != nil {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(output)
		}
	}
	if err != nil {
		return err
	}

	logger.Info("locations written", zap.Int("count", stats.Emitted), zap.String("output", output))
	return nil
}

func sameFile(input, output string) bool {
	if input == output {
		return true
	}
	if isURL(input) || output == "-" {
		return false
	}
	a, err := os.Stat(input)
	if err != nil {
		return false
	}
	b, err := os.Stat(output)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}
