package export

import (
	"fmt"
	"os"

	"audio-transcriber/internal/app"
	"audio-transcriber/internal/app/converter/export"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository/pg"
	"audio-transcriber/internal/config"
	"github.com/spf13/cobra"
)

var historyPath string
var outputFilePath string
var runID string

func init() {
	Cmd.Flags().StringVar(&historyPath, "history", "", "sqlite file or postgres:// database written by --history")
	Cmd.Flags().StringVarP(&outputFilePath, "out", "o", "", "xlsx file to write")
	Cmd.Flags().StringVar(&runID, "run", "", "export only the rows of this run id")

	Cmd.MarkFlagRequired("history")
	Cmd.MarkFlagRequired("out")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history to excel",
	Long: `Export the transcription history to excel

- Every recorded transcription is exported, newest first, failures included
- With --run only that run is exported, in transcription order`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !pg.IsConnectionString(historyPath) {
			if _, err := os.Stat(historyPath); err != nil {
				return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, historyPath)
			}
		}

		db, err := app.InitializeTranscriptionDAO(config.Options{HistoryPath: historyPath})
		if err != nil {
			return err
		}
		defer db.Close()

		var transcriptions []model.Transcription
		if runID != "" {
			transcriptions, err = db.GetByRunID(runID)
		} else {
			transcriptions, err = db.GetAll()
		}
		if err != nil {
			return err
		}

		if err := export.ToExcel(transcriptions, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d rows written to %s\n", len(transcriptions), outputFilePath)
		return nil
	},
}
