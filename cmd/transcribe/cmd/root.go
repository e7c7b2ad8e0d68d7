package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"audio-transcriber/cmd/transcribe/cmd/export"
	"audio-transcriber/cmd/transcribe/cmd/version"
	"audio-transcriber/internal/app"
	"audio-transcriber/internal/app/api/provider"
	outexport "audio-transcriber/internal/app/converter/export"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/util/files"
	"audio-transcriber/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the transcribe command: positional paths are transcribed,
// export and version are subcommands.
func NewRootCmd() *cobra.Command {
	opts := config.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "transcribe [paths...]",
		Short: "Transcribe audio files to text with Whisper",
		Long: `Transcribe audio files to text with a Whisper backend.

- Paths may be files or directories (scanned one level deep), default "."
- Recognized extensions: .ogg .oga .mp3 .wav .m4a .flac
- Each transcript is printed as it completes; --out also saves all of them to a .txt file
- Backends: whisper_cpp (local, default), openai, whisper_server`,
		Example: `  transcribe
  transcribe recordings/ --model small -o notes.txt
  transcribe voice.ogg memo.mp3 --lang ""
  transcribe recordings/ --backend whisper_server`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Paths = args
			}
			if opts.OutputPath != "" {
				opts.OutputPath = files.NormalizeTextOutputPath(opts.OutputPath)
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.Model, "model", opts.Model,
		"Whisper model size: "+strings.Join(provider.ModelTierNames(), ", "))
	flags.StringVarP(&opts.OutputPath, "out", "o", "",
		"also save transcripts to this file (.txt is appended if missing)")
	flags.StringVar(&opts.Language, "lang", opts.Language,
		`language code or name (pl, en, portuguese, ...); "" detects the language automatically`)
	flags.StringVar(&opts.Backend, "backend", "",
		"transcription backend: "+strings.Join(provider.ListRegisteredProviders(), ", ")+
			" (default from $"+config.EnvTranscribeBackend+", the config file, or "+config.DefaultBackend+")")
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML file with backend settings")
	flags.StringVar(&opts.HistoryPath, "history", "", "record every transcription in this sqlite file or postgres:// database")
	flags.StringVar(&opts.MetricsPath, "metrics", "", "write run metrics to this file in Prometheus text format")
	flags.BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr when it is a terminal")
	flags.BoolVarP(&opts.Verbose, "verbose", "V", false, "verbose output")

	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	return rootCmd
}

// run checks the backend, collects files and transcribes them in order.
func run(ctx context.Context, opts config.Options, stdout, stderr io.Writer) error {
	conv, cleanup, err := app.InitializeConverter(opts, app.Output{Stdout: stdout, Stderr: stderr})
	if err != nil {
		return err
	}
	defer cleanup()
	defer conv.Close()

	audioFiles, err := files.CollectAudioFiles(opts.Paths, stderr)
	if err != nil {
		return err
	}
	if len(audioFiles) == 0 {
		return apperrors.ErrNoAudioFiles
	}

	results, err := conv.Do(ctx, audioFiles)
	if err != nil {
		return err
	}

	if opts.OutputPath != "" {
		if err := outexport.WriteTranscripts(opts.OutputPath, results); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved: %s\n", opts.OutputPath)
	}
	return nil
}

// errorMessage is the single line printed to stderr for a failed run.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNoAudioFiles):
		return "No audio files to transcribe."
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	default:
		return "Error: " + err.Error()
	}
}

// ExecuteContext runs the root command with args and returns the process exit code.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
		return 1
	}
	return 0
}

// Execute is called by main.main. SIGINT and SIGTERM cancel the run in progress.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return ExecuteContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
