package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

var asJSON bool
var historyLimit int

func init() {
	summaryCmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the full labeled transcript as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum rows")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addChunkCmd)
	Cmd.AddCommand(summaryCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(historyCmd)
}

// Cmd represents the meeting command group
var Cmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meetings and generate labeled transcripts",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known meetings",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.MeetingService.List(context.Background())
		if err != nil {
			return err
		}
		for _, id := range resp.Meetings {
			fmt.Println(id)
		}
		fmt.Printf("%d meeting(s)\n", resp.Total)
		return nil
	},
}

var addChunkCmd = &cobra.Command{
	Use:   "add-chunk <meeting id> <audio file>",
	Short: "Store an audio chunk under a meeting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		resp, err := application.Container.MeetingService.SaveChunk(
			context.Background(), args[0], filepath.Base(args[1]), data)
		if err != nil {
			return err
		}
		fmt.Printf("%s: stored %s\n", resp.Meeting, resp.Chunk)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <meeting id>",
	Short: "Merge, transcribe and speaker-label one meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		summary, err := application.Container.MeetingService.Summary(context.Background(), args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		for _, seg := range summary.Segments {
			fmt.Printf("[%7.2f - %7.2f] %-16s %s\n", seg.Start, seg.End, seg.Speaker, seg.Text)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <meeting id>",
	Short: "Delete a meeting, archiving its audio when object storage is configured",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		resp, err := application.Container.MeetingService.Delete(context.Background(), args[0])
		if err != nil {
			return err
		}
		switch {
		case !resp.Deleted:
			fmt.Printf("%s did not exist\n", args[0])
		case resp.Archived:
			fmt.Printf("%s archived and deleted\n", args[0])
		default:
			fmt.Printf("%s deleted\n", args[0])
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [meeting id]",
	Short: "Show recent summary runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initApp()
		if err != nil {
			return err
		}
		defer application.Close()

		query := dto.HistoryQuery{Limit: historyLimit}
		if len(args) == 1 {
			query.MeetingID = args[0]
		}
		runs, err := application.Container.MeetingService.History(context.Background(), query)
		if err != nil {
			return err
		}
		for _, run := range runs {
			status := "ok"
			if run.HasError != 0 {
				status = "failed: " + run.ErrorMessage
			}
			fmt.Printf("%s\t%s\t%d chunk(s)\t%d segment(s)\t%dms\t%s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.MeetingID,
				run.ChunkCount, run.SegmentCount, run.DurationMs, status)
		}
		return nil
	},
}

func initApp() (*app.Application, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.InitializeApplication(settings)
}
