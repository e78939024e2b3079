package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

// ToJSON writes the profile snapshots as an indented JSON document. This is
// the exchange format for moving an enrolled speaker set between instances.
func ToJSON(snapshots []model.ProfileSnapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshots); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return nil
}

// ToExcel writes one spreadsheet row per enrolled speaker, plus a second
// sheet with the correction history when any corrections exist. Aggregates
// are previewed, not dumped; the JSON export carries the full vectors.
func ToExcel(snapshots []model.ProfileSnapshot, corrections []model.FeedbackRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Speakers")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Speaker"
	headerRow.AddCell().Value = "Samples"
	headerRow.AddCell().Value = "Dimension"
	headerRow.AddCell().Value = "Aggregate Preview"

	for _, s := range snapshots {
		row := sheet.AddRow()
		row.AddCell().Value = s.ID
		row.AddCell().Value = fmt.Sprint(s.SampleCount)
		row.AddCell().Value = fmt.Sprint(s.Dimension)
		row.AddCell().Value = aggregatePreview(s.Aggregate)
	}

	if len(corrections) > 0 {
		correctionSheet, err := file.AddSheet("Corrections")
		if err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		headerRow := correctionSheet.AddRow()
		headerRow.AddCell().Value = "When"
		headerRow.AddCell().Value = "From"
		headerRow.AddCell().Value = "To"
		headerRow.AddCell().Value = "Sample"
		for _, c := range corrections {
			row := correctionSheet.AddRow()
			row.AddCell().Value = c.CreatedAt.Format("2006-01-02 15:04:05")
			row.AddCell().Value = c.OldSpeaker
			row.AddCell().Value = c.CorrectSpeaker
			row.AddCell().Value = c.Filename
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}

const previewLen = 6

func aggregatePreview(fp model.Fingerprint) string {
	if len(fp) == 0 {
		return "(none)"
	}
	n := len(fp)
	if n > previewLen {
		n = previewLen
	}
	parts := make([]string, 0, n)
	for _, v := range fp[:n] {
		parts = append(parts, fmt.Sprintf("%.4f", v))
	}
	preview := strings.Join(parts, ", ")
	if len(fp) > previewLen {
		preview += ", ..."
	}
	return preview
}
