package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/workout-clipper/internal/config"
	"github.com/ZacxDev/workout-clipper/internal/ffmpeg"
	"github.com/ZacxDev/workout-clipper/internal/logging"
	"github.com/ZacxDev/workout-clipper/internal/publish"
	"github.com/ZacxDev/workout-clipper/internal/storage"
	"github.com/ZacxDev/workout-clipper/internal/timeline"
	"github.com/ZacxDev/workout-clipper/pkg/types"
)

var (
	rootCmd = &cobra.Command{
		Use:   "workout-clipper",
		Short: "A tool for cutting workout videos into per-exercise clips",
		Long: `workout-clipper cuts a workout video into per-exercise clips from a
user-approved timeline, generates thumbnails, and uploads the artifacts to a
storage backend (local filesystem, S3, or Cloudflare R2).

Examples:
  # Cut a video using a timeline exported from the editor
  workout-clipper process -i workout.mp4 -s timeline.json -o ./output

  # Cut and upload through the configured storage backend
  workout-clipper process -i workout.mp4 -s timeline.json -o ./output --upload

  # Inspect a video's metadata
  workout-clipper probe -i workout.mp4`,
	}

	processCmd = &cobra.Command{
		Use:   "process",
		Short: "Cut a video into per-exercise clips from a timeline",
		Long: `Cut a source video into one clip plus thumbnail per tagged segment.

The segments file is a JSON array of time ranges with exercise details:
  [{"start": 0.0, "end": 15.5, "details": {"name": "Push-ups",
    "muscleGroups": ["chest"], "equipment": ["bodyweight"], "removeAudio": false}}]

Segments without details are skipped; a segment that fails to process is
logged and dropped without aborting the rest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			segmentsPath, _ := cmd.Flags().GetString("segments")
			outputDir, _ := cmd.Flags().GetString("output")
			baseName, _ := cmd.Flags().GetString("base-name")
			folder, _ := cmd.Flags().GetString("folder")
			upload, _ := cmd.Flags().GetBool("upload")
			verbose, _ := cmd.Flags().GetBool("verbose")

			logging.Init(verbose)

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			segments, err := loadSegments(segmentsPath)
			if err != nil {
				return err
			}

			proc := ffmpeg.NewProcessor(verbose)
			orch := timeline.NewOrchestrator(proc, proc, timeline.Options{
				Codec:           cfg.VideoCodec,
				Preset:          cfg.VideoPreset,
				CRF:             cfg.VideoCRF,
				ThumbnailWidth:  cfg.ThumbnailWidth,
				ThumbnailHeight: cfg.ThumbnailHeight,
			})

			results, err := orch.Process(inputPath, segments, outputDir, baseName)
			if err != nil {
				return err
			}

			if !upload {
				return printJSON(results)
			}

			store, err := storage.New(cfg.Storage)
			if err != nil {
				return err
			}

			if folder == "" {
				folder = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			}

			pub := publish.New(store, publish.Options{
				RemoveLocal: cfg.Storage.Backend != types.StorageBackendLocal,
			})
			return printJSON(pub.Publish(folder, results))
		},
	}

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Print a video's metadata as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			verbose, _ := cmd.Flags().GetBool("verbose")

			logging.Init(verbose)

			info, err := ffmpeg.NewProcessor(verbose).Probe(inputPath)
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("workout-clipper v%s\n", version)
		},
	}
)

const version = "1.0.0"

func loadSegments(path string) ([]timeline.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read segments file: %v", err)
	}

	var segments []timeline.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("invalid segments file %s: %v", path, err)
	}
	return segments, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	processCmd.Flags().StringP("input", "i", "", "Input video file")
	processCmd.Flags().StringP("segments", "s", "", "Timeline segments JSON file")
	processCmd.Flags().StringP("output", "o", "", "Output directory for clips and thumbnails")
	processCmd.Flags().String("base-name", "", "Base name for output files (defaults to the video filename)")
	processCmd.Flags().String("folder", "", "Storage folder prefix for uploads (defaults to the video filename)")
	processCmd.Flags().Bool("upload", false, "Upload results through the configured storage backend")
	processCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("segments")
	processCmd.MarkFlagRequired("output")

	probeCmd.Flags().StringP("input", "i", "", "Input video file")
	probeCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	probeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
