package model

// TranscriptResult pairs a transcribed file with its text.
type TranscriptResult struct {
	Name string
	Path string
	Text string
}
