// Command analyze runs the metrics engine against a local dataset file and
// writes the report to stdout or a file: text key/value pairs, CSV, or an
// Excel workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golfsight/internal/config"
	"golfsight/internal/dataprocessing"
	"golfsight/internal/exporter"
	"golfsight/internal/infrastructure"
	"golfsight/internal/services"
	"golfsight/pkg/contracts/domain"
)

func main() {
	var (
		file        = flag.String("file", "", "dataset file (.xlsx or .csv)")
		player      = flag.String("player", "", "player identifier, or \"all\" for every player")
		skillField  = flag.String("skill-field", "", "skill index column (default: first containing \"handicap\")")
		scoreStat   = flag.String("score-stat", "", "scoring column (default: first containing \"score\")")
		bucketWidth = flag.Float64("bucket-width", 0, "handicap bucket width (default 5)")
		format      = flag.String("format", "text", "output format: text, csv, or xlsx")
		out         = flag.String("out", "", "output file (default stdout; required for xlsx with -player all)")
		logLevel    = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logger := infrastructure.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "text"}, os.Stderr)
	slog.SetDefault(logger)

	if *file == "" || *player == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file <dataset> -player <id|all> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*file, *player, *skillField, *scoreStat, *bucketWidth, *format, *out, logger); err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(file, player, skillField, scoreStat string, bucketWidth float64, format, out string, logger *slog.Logger) error {
	ds, err := dataprocessing.LoadDataset(file)
	if err != nil {
		return err
	}

	service := services.NewAnalysisService(config.AnalysisConfig{
		BucketWidth:     5,
		MorningCutoffHr: 10,
	}, nil, logger)

	opts := services.Options{
		SkillField:  skillField,
		ScoreStat:   scoreStat,
		BucketWidth: bucketWidth,
	}

	ctx := context.Background()

	if player == "all" {
		results, err := service.AnalyzeAll(ctx, ds, opts)
		if err != nil {
			return err
		}
		return writeAll(results, format, out)
	}

	result, err := service.AnalyzeDataset(ctx, ds, player, opts)
	if err != nil {
		return err
	}
	return writeOne(result.Report, format, out)
}

func writeOne(report domain.MetricsReport, format, out string) error {
	w, closeFn, err := openOutput(out)
	if err != nil {
		return err
	}
	defer closeFn()
	return writeReport(w, report, format)
}

// writeAll writes every player's report sequentially, in sorted player
// order, separated by a blank line for the text format. The xlsx format
// needs one file per player, so it requires -out as a directory.
func writeAll(results map[string]*services.AnalysisResult, format, out string) error {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if format == "xlsx" {
		if out == "" {
			return fmt.Errorf("-out directory is required for xlsx output with -player all")
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		for _, id := range ids {
			path := out + "/" + sanitizeFilename(id) + ".xlsx"
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := exporter.WriteWorkbook(f, results[id].Report); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
		return nil
	}

	w, closeFn, err := openOutput(out)
	if err != nil {
		return err
	}
	defer closeFn()

	for i, id := range ids {
		if i > 0 && format == "text" {
			fmt.Fprintln(w)
		}
		if err := writeReport(w, results[id].Report, format); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(w io.Writer, report domain.MetricsReport, format string) error {
	switch format {
	case "text":
		return exporter.WriteText(w, report)
	case "csv":
		return exporter.WriteCSV(w, report)
	case "xlsx":
		return exporter.WriteWorkbook(w, report)
	default:
		return fmt.Errorf("unknown format %q (want text, csv, or xlsx)", format)
	}
}

func openOutput(out string) (io.Writer, func() error, error) {
	if out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", out, err)
	}
	return f, f.Close, nil
}

func sanitizeFilename(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, id)
}
