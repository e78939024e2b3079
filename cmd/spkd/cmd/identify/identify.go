package identify

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

// Cmd represents the identify command
var Cmd = &cobra.Command{
	Use:   "identify <audio file>",
	Short: "Identify the speaker of an audio file",
	Long: `Identify the speaker of an audio file.

The probe is matched against every enrolled profile; the closest one wins.
Prints "unknown" when nothing is enrolled and "error" when the audio cannot
be read.`,
	Args: cobra.ExactArgs(1),
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

		resp, err := application.Container.SpeakerService.Identify(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (score %.3f)\n", resp.Speaker, resp.Score)
		return nil
	},
}
