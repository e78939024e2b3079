package enroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

var speakerID string
var sampleDir string

func init() {
	Cmd.Flags().StringVarP(&speakerID, "speaker", "s", "", "Speaker the samples belong to")
	Cmd.Flags().StringVarP(&sampleDir, "dir", "d", "", "Enroll every audio file in this directory")

	Cmd.MarkFlagRequired("speaker")
}

// Cmd represents the enroll command
var Cmd = &cobra.Command{
	Use:   "enroll [audio files...]",
	Short: "Enroll reference voice samples for a speaker",
	Long: `Enroll reference voice samples for a speaker.

Each file is normalized, stored as the speaker's next numbered sample and
folded into the speaker's aggregate fingerprint. Pass files directly or use
--dir to enroll a whole directory of recordings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectFiles(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no audio files given; pass files or --dir")
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		application, err := app.InitializeApplication(settings)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx := context.Background()
		progress := mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar := progress.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("enrolling ", decor.WC{C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.NewPercentage("%.1f", decor.WCSyncSpace),
			),
		)

		failures := 0
		for _, file := range files {
			resp, err := application.Container.SpeakerService.Enroll(ctx, speakerID, file)
			bar.Increment()
			if err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "skipped %s: %v\n", file, err)
				continue
			}
			if resp.SampleIndex > 0 {
				fmt.Printf("%s -> %s/%d.wav\n", filepath.Base(file), speakerID, resp.SampleIndex)
			}
		}
		progress.Wait()

		if failures == len(files) {
			return fmt.Errorf("no sample could be enrolled")
		}
		fmt.Printf("enrolled %d sample(s) for %s\n", len(files)-failures, speakerID)
		return nil
	},
}

var audioExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".webm": true, ".ogg": true, ".flac": true,
}

func collectFiles(args []string) ([]string, error) {
	files := append([]string{}, args...)
	if sampleDir != "" {
		entries, err := os.ReadDir(sampleDir)
		if err != nil {
			return nil, fmt.Errorf("read sample dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !audioExts[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			files = append(files, filepath.Join(sampleDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
