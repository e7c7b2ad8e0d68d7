package main

import (
	"fmt"
	"os"

	"audio-transcriber/cmd/transcribe/cmd"
	"audio-transcriber/internal/config"
)

func main() {
	// A broken .env is reported but not fatal; the environment may already be complete.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	os.Exit(cmd.Execute())
}
