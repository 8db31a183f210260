package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lightsout-hb/batscan/internal/chapters"
	"github.com/lightsout-hb/batscan/internal/config"
	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/match"
	"github.com/lightsout-hb/batscan/internal/models"
	"github.com/lightsout-hb/batscan/internal/ocr"
	"github.com/lightsout-hb/batscan/internal/scan"
	"github.com/lightsout-hb/batscan/internal/video"
)

var (
	flagConfig     string
	flagTemplate   string
	flagOutput     string
	flagLog        string
	flagMethod     string
	flagThreshold  float64
	flagResolution int
	flagQuiet      bool
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "batscan <video>",
	Short: "Scan fastpitch game videos to extract batter chapter markers",
	Long: `Scans a recorded game video for the at-bat overlay graphic, OCRs each
batter's name and jersey number out of the overlay, and prints the resulting
timeline as YouTube chapter markers.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runScan,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagTemplate, "template", "t", "", "path to template image")
	rootCmd.PersistentFlags().StringVarP(&flagLog, "log", "l", "", "log file path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress stdout output (errors still go to stderr)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "save chapters to file")
	rootCmd.Flags().StringVarP(&flagMethod, "method", "m", "", "template match method")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "match score threshold override")
	rootCmd.Flags().IntVarP(&flagResolution, "resolution", "r", 0, "frames analyzed per second of video")

	_ = rootCmd.MarkPersistentFlagRequired("template")

	rootCmd.SetErrPrefix("Error:")
}

// loadConfig merges the config file (if any) with command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("method") {
		cfg.Scan.Method = flagMethod
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Scan.Threshold = flagThreshold
	}
	if cmd.Flags().Changed("resolution") {
		cfg.Scan.Resolution = flagResolution
	}
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLog != "" {
		cfg.Logging.File = flagLog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}

	source, err := video.Open(videoPath)
	if err != nil {
		return err
	}
	defer source.Close()

	template, err := video.LoadTemplateGray(flagTemplate)
	if err != nil {
		return err
	}
	defer template.Close()

	matcher, err := match.NewTemplateMatcher(template, cfg.Scan.Method, cfg.Scan.EffectiveThreshold())
	if err != nil {
		return err
	}
	defer matcher.Close()

	var reader ocr.Reader
	if cfg.OCR.Enabled {
		tess, err := ocr.NewTesseractReader()
		if err != nil {
			return fmt.Errorf("failed to initialize OCR engine: %w", err)
		}
		defer tess.Close()
		reader = tess
	}

	display := newProgressDisplay(cmd.OutOrStdout(), flagQuiet)
	scanner, err := scan.New(source, matcher, reader,
		scan.Options{
			Resolution:   cfg.Scan.Resolution,
			DebounceMS:   cfg.Scan.DebounceMS,
			OCRThreshold: cfg.OCR.ConfidenceThreshold,
		},
		scan.Callbacks{
			OnEvent:    display.BatterFound,
			OnProgress: display.Tick,
		},
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagQuiet {
		cmd.Printf("Scanning video: %s\n", videoPath)
	}
	if err := scanner.Run(ctx); err != nil {
		display.Done()
		return fmt.Errorf("scan failed: %w", err)
	}
	display.Done()

	events := scanner.Events()
	if len(events) == 0 {
		if !flagQuiet {
			cmd.Println("No batters found.")
		}
		return nil
	}

	results := chapters.Render(events)
	if !flagQuiet {
		display.Summary(len(events))
		cmd.Println(results)
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, []byte(results+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !flagQuiet {
			cmd.Printf("\nResults saved to: %s\n", flagOutput)
		}
	}
	return nil
}

// lastName trims an event's name for display, falling back to a placeholder
// for unknown batters.
func lastName(e models.EventFrame) string {
	if e.Name == "" {
		return "(unknown batter)"
	}
	return e.Name
}

// formatTimestamp renders a raw millisecond offset as a chapter timestamp.
func formatTimestamp(ms float64) (string, error) {
	m, err := models.NewMillis(ms)
	if err != nil {
		return "", err
	}
	return m.Format(), nil
}
