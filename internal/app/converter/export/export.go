package export

import (
	"bufio"
	"fmt"
	"os"
	"time"

	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
	"github.com/tealeg/xlsx"
)

// FormatBlock renders one transcript the way it is printed and saved.
func FormatBlock(name, text string) string {
	return fmt.Sprintf("--- %s\n%s\n\n", name, text)
}

// WriteTranscripts creates or truncates path and writes one block per result, in order.
func WriteTranscripts(path string, results []model.TranscriptResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFileWriteFailed, err)
	}

	w := bufio.NewWriter(file)
	for _, r := range results {
		if _, err := w.WriteString(FormatBlock(r.Name, r.Text)); err != nil {
			file.Close()
			return fmt.Errorf("%w: %v", apperrors.ErrFileWriteFailed, err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", apperrors.ErrFileWriteFailed, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFileWriteFailed, err)
	}
	return nil
}

// ToExcel writes history rows to a single-sheet workbook.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, title := range []string{"ID", "Run ID", "Last Conversion Time", "File Name", "File Path",
		"Backend", "Model", "Language", "Audio Duration", "Transcription", "Error Message",
		"File Size", "SHA-256"} {
		headerRow.AddCell().Value = title
	}

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.RunID
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.FileName
		row.AddCell().Value = t.FilePath
		row.AddCell().Value = t.Backend
		row.AddCell().Value = t.Model
		row.AddCell().Value = t.Language
		row.AddCell().Value = fmt.Sprintf("%.2f", t.AudioDuration)
		row.AddCell().Value = t.Transcription
		row.AddCell().Value = t.ErrorMessage
		row.AddCell().Value = fmt.Sprint(t.FileSize)
		row.AddCell().Value = t.FileHash
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFileWriteFailed, err)
	}
	return nil
}
