package correct

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

var keepOriginal bool

func init() {
	Cmd.Flags().BoolVar(&keepOriginal, "keep-original", false,
		"Copy the sample to the correct speaker instead of moving it")
}

// Cmd represents the correct command
var Cmd = &cobra.Command{
	Use:   "correct <old speaker> <correct speaker> <filename>",
	Short: "Reassign a mislabeled sample to the right speaker",
	Long: `Reassign a mislabeled sample to the right speaker.

The sample file moves from the old speaker's profile to the correct one,
the affected aggregates are rebuilt and the correction is recorded in the
audit log. With --keep-original the old speaker keeps its copy.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		application, err := app.InitializeApplication(settings)
		if err != nil {
			return err
		}
		defer application.Close()

		deleteOriginal := !keepOriginal
		record, err := application.Container.FeedbackService.Correct(context.Background(), dto.CorrectionRequest{
			OldSpeaker:     args[0],
			CorrectSpeaker: args[1],
			Filename:       args[2],
			DeleteOriginal: &deleteOriginal,
		})
		if err != nil {
			return err
		}

		verb := "moved"
		if keepOriginal {
			verb = "copied"
		}
		fmt.Printf("%s %s %s -> %s\n", record.Filename, verb, record.OldSpeaker, record.CorrectSpeaker)
		return nil
	},
}
