package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/thumbnail"
	"github.com/lightsout-hb/batscan/internal/video"
)

var (
	flagThumbOutput    string
	flagThumbThreshold float64
	flagThumbDuration  int
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <video>",
	Short: "Extract a thumbnail frame matching a template image",
	Long: `Scans the opening stretch of a game video and saves the first frame whose
structural similarity against the template clears the threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: runThumbnail,
}

func init() {
	rootCmd.AddCommand(thumbnailCmd)

	thumbnailCmd.Flags().StringVarP(&flagThumbOutput, "output", "o", "", "thumbnail output path")
	thumbnailCmd.Flags().Float64Var(&flagThumbThreshold, "threshold", 0, "minimum SSIM score to accept")
	thumbnailCmd.Flags().IntVar(&flagThumbDuration, "duration", 0, "seconds to scan from video start")
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}

	threshold := cfg.Thumbnail.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = flagThumbThreshold
	}
	duration := cfg.Thumbnail.ScanDuration
	if cmd.Flags().Changed("duration") {
		duration = flagThumbDuration
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

	result, found, err := thumbnail.Extract(source, template, videoPath, thumbnail.Options{
		Threshold:    threshold,
		ScanDuration: duration,
		Resolution:   cfg.Scan.Resolution,
		OutputPath:   flagThumbOutput,
	})
	if err != nil {
		return fmt.Errorf("thumbnail extraction failed: %w", err)
	}
	if !found {
		if !flagQuiet {
			cmd.Printf("No frame cleared SSIM threshold %.2f within %ds.\n", threshold, duration)
		}
		return nil
	}

	if !flagQuiet {
		ts, err := formatTimestamp(result.TimestampMS)
		if err != nil {
			return err
		}
		cmd.Printf("Thumbnail saved to %s (frame %d at %s, score %.3f)\n",
			result.OutputPath, result.FrameNumber, ts, result.Score)
	}
	return nil
}
