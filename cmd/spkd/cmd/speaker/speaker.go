package speaker

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

var exportFormat string
var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout for json, speakers.xlsx for xlsx)")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(recordingsCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(improveCmd)
	Cmd.AddCommand(exportCmd)
}

// Cmd represents the speaker command group
var Cmd = &cobra.Command{
	Use:   "speaker",
	Short: "Manage enrolled speaker profiles",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled speakers and their sample counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.SpeakerService.List(context.Background())
		if err != nil {
			return err
		}
		for _, info := range resp.Speakers {
			fmt.Printf("%s\t%d sample(s)\n", info.ID, info.SampleCount)
		}
		fmt.Printf("%d speaker(s)\n", resp.Total)
		return nil
	},
}

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List stored reference recordings per speaker",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.SpeakerService.Recordings(context.Background())
		if err != nil {
			return err
		}
		speakers := lo.Keys(resp.Recordings)
		sort.Strings(speakers)
		for _, speaker := range speakers {
			for _, f := range resp.Recordings[speaker] {
				fmt.Printf("%s\t%s\n", speaker, f)
			}
		}
		fmt.Printf("%d recording(s)\n", resp.Total)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old id> <new id>",
	Short: "Rename a speaker profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.Container.SpeakerService.Rename(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[0], args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a speaker profile and all its samples",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.SpeakerService.Delete(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !resp.Deleted {
			fmt.Printf("%s did not exist\n", args[0])
			return nil
		}
		fmt.Printf("%s deleted\n", args[0])
		return nil
	},
}

var improveCmd = &cobra.Command{
	Use:   "improve <id> <audio file>",
	Short: "Enroll one more sample for a speaker and rebuild the aggregate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.SpeakerService.Improve(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s: aggregate rebuilt from %d sample(s), dimension %d\n",
			resp.Speaker, resp.SampleCount, resp.Dimension)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export enrolled profiles as JSON or a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		ctx := context.Background()
		switch exportFormat {
		case "json":
			if exportOutput == "" {
				return application.Container.SpeakerService.ExportJSON(ctx, os.Stdout)
			}
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			return application.Container.SpeakerService.ExportJSON(ctx, f)
		case "xlsx":
			output := exportOutput
			if output == "" {
				output = "speakers.xlsx"
			}
			if err := application.Container.SpeakerService.ExportExcel(ctx, output); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		default:
			return fmt.Errorf("unknown format %q, want json or xlsx", exportFormat)
		}
	},
}

func initApp() (*app.Application, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.InitializeApplication(settings)
}
