// Command catalog resolves candidate products for a sensor and date range.
// It is a thin shell over the catalog engine: exit code 0 on a non-empty
// result, nonzero with a diagnostic otherwise.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rkm/sar-coloc/internal/catalog"
	"github.com/rkm/sar-coloc/internal/config"
	"github.com/rkm/sar-coloc/internal/stac"
	"github.com/rkm/sar-coloc/internal/translate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		sensor   = flag.String("sensor", "", "sensor name (S1, RS2, RCM, SMOS, HY2, ERA5)")
		start    = flag.String("start", "", "window start (RFC3339, YYYY-MM-DD, or YYYYMMDDHHMMSS)")
		stop     = flag.String("stop", "", "window stop (same formats as -start)")
		rootsDir = flag.String("roots", "", "directory of JSON sensor root definitions (default: built-in registry)")
		step     = flag.Duration("step", catalog.DefaultPeriodicStep, "cadence for periodic archives")
		asJSON   = flag.Bool("json", false, "emit a STAC ItemCollection instead of plain paths")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *sensor == "" || *start == "" || *stop == "" {
		flag.Usage()
		return fmt.Errorf("-sensor, -start and -stop are required")
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	startTime, err := translate.ParseQueryTime(*start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	stopTime, err := translate.ParseQueryTime(*stop)
	if err != nil {
		return fmt.Errorf("invalid -stop: %w", err)
	}

	roots := config.DefaultRoots()
	if *rootsDir != "" {
		roots, err = config.LoadRoots(*rootsDir)
		if err != nil {
			return fmt.Errorf("failed to load sensor roots: %w", err)
		}
	}

	resolver := catalog.NewResolver(roots, catalog.GlobLister{}, logger).
		WithPeriodicStep(*step)

	queryStart := time.Now()
	candidates, err := resolver.Search(*sensor, catalog.Interval{Start: startTime, Stop: stopTime})
	if err != nil {
		return err
	}
	logger.Debug("search finished", "candidates", len(candidates), "elapsed", time.Since(queryStart))

	if len(candidates) == 0 {
		return fmt.Errorf("no candidates found for %s in [%s, %s]", *sensor, *start, *stop)
	}

	if *asJSON {
		return printItems(candidates, *sensor)
	}

	for _, c := range candidates {
		fmt.Println(c.Path)
	}
	return nil
}

func printItems(candidates []*catalog.Candidate, sensor string) error {
	items := make([]*stac.Item, 0, len(candidates))
	for _, c := range candidates {
		var interval *catalog.Interval
		if iv, err := c.Interval(); err == nil {
			interval = &iv
		}
		item, err := translate.CandidateToItem(c.Path, interval, sensor)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stac.NewItemCollection(items))
}
