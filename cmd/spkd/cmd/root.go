package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/correct"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/enroll"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/identify"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/meeting"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/serve"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/speaker"
	"github.com/P0llen/speaker-detector/cmd/spkd/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spkd",
	Short: "Speaker identification and meeting transcript labeling",
	Long: `Speaker identification and meeting transcript labeling.
- Enroll reference voice samples per speaker
- Identify who is speaking in an audio probe
- Merge, transcribe and speaker-label meeting recordings
- Feed corrections back so profiles keep improving`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(enroll.Cmd)
	rootCmd.AddCommand(identify.Cmd)
	rootCmd.AddCommand(speaker.Cmd)
	rootCmd.AddCommand(meeting.Cmd)
	rootCmd.AddCommand(correct.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
