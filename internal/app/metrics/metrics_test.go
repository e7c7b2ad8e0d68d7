package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcribe.prom")
	r := NewRecorder(path, "whisper_cpp", "base")

	r.ObserveFile(nil, 2*time.Second)
	r.ObserveFile(nil, time.Second)
	r.ObserveFile(errors.New("boom"), time.Second)
	r.AddAudio(12.5)
	r.AddAudio(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.files.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.files.WithLabelValues("error")))
	assert.Equal(t, 12.5, testutil.ToFloat64(r.audioSeconds))

	require.NoError(t, r.Flush())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `transcribe_files_total{backend="whisper_cpp",model="base",status="ok"} 2`)
	assert.Contains(t, text, `transcribe_file_duration_seconds_count{backend="whisper_cpp",model="base"} 3`)
	assert.Contains(t, text, "transcribe_last_run_timestamp_seconds")
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.ObserveFile(nil, time.Second)
	r.AddAudio(1)
	assert.NoError(t, r.Flush())
}

func TestRecorder_FlushError(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "missing", "x.prom"), "openai", "base")
	assert.Error(t, r.Flush())
}
