package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-roaster/internal/extraction"
	"github.com/jonathan/resume-roaster/internal/presentation"
	"github.com/jonathan/resume-roaster/internal/roasting"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var roastCmd = &cobra.Command{
	Use:   "roast <resume.pdf|resume.txt>...",
	Short: "Roast one or more resumes",
	Long: `Extract the text of each PDF (or read each .txt file as-is), send it to the
configured model and print the analysis dashboard and roast card.
Files are analyzed concurrently; one failure does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoast,
}

var (
	roastJSON        bool
	roastConcurrency int
)

func init() {
	roastCmd.Flags().BoolVar(&roastJSON, "json", false, "Print results as JSON instead of boxes")
	roastCmd.Flags().IntVarP(&roastConcurrency, "concurrency", "c", 4, "Maximum number of files analyzed at once")
	rootCmd.AddCommand(roastCmd)
}

// roastResult is the outcome for one input file.
type roastResult struct {
	File    string               `json:"file"`
	Metrics *types.ResumeMetrics `json:"metrics,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func runRoast(cmd *cobra.Command, args []string) error {
	if roastConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := buildLLMClient(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analyzer := roasting.NewRequester(client)
	flow := upload.NewFlow(extraction.NewPDFExtractor(), analyzer)

	results := make([]roastResult, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(roastConcurrency)
	for i, path := range args {
		g.Go(func() error {
			metrics, err := roastFile(gctx, flow, analyzer, path)
			results[i] = roastResult{File: path, Metrics: metrics}
			if err != nil {
				slog.Error("roast failed", slog.String("file", path), slog.Any("error", err))
				results[i].Error = err.Error()
			}
			// Per-file failures are reported, not propagated, so siblings keep running.
			return nil
		})
	}
	_ = g.Wait()

	if err := printResults(cmd, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes could not be roasted", failed, len(results))
	}
	return nil
}

// roastFile analyzes a single file. Plain-text files skip extraction.
func roastFile(ctx context.Context, flow *upload.Flow, analyzer roasting.Analyzer, path string) (*types.ResumeMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return analyzer.Analyze(ctx, string(data))
	}

	result, err := flow.Run(ctx, upload.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	})
	if err != nil {
		return nil, err
	}
	return result.Metrics, nil
}

func printResults(cmd *cobra.Command, results []roastResult) error {
	out := cmd.OutOrStdout()
	if roastJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}

	printer := presentation.NewPrinter(out)
	for _, r := range results {
		if r.Error != "" {
			printer.PrintError(r.File, r.Error)
			continue
		}
		printer.PrintRoast(r.File, r.Metrics)
	}
	return nil
}
