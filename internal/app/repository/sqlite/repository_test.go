package sqlite

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSQLiteDAO_Interface verifies SQLiteDB implements TranscriptionDAO interface
func TestSQLiteDAO_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*SQLiteDB)(nil)
}

var columns = []string{"id", "run_id", "file_path", "file_name", "file_hash", "file_size", "backend", "model", "language",
	"audio_duration", "transcription", "last_conversion_time", "has_error", "error_message"}

func newMockDB(t *testing.T) (*SQLiteDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS transcriptions")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sdb, err := newWithDB(db)
	require.NoError(t, err)
	return sdb, mock
}

func TestNewWithDB_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("disk I/O error"))

	_, err = newWithDB(db)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDatabaseConnection))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDB_RecordToDB_Unit(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := model.Transcription{
		RunID:              "run-1",
		FilePath:           "/audio/a.ogg",
		FileName:           "a.ogg",
		FileHash:           "abc123",
		FileSize:           2048,
		Backend:            "whisper_cpp",
		Model:              "base",
		Language:           "pl",
		AudioDuration:      12.5,
		Transcription:      "dzień dobry",
		LastConversionTime: now,
	}

	tests := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful_insert",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcriptions")).
					WithArgs("run-1", "/audio/a.ogg", "a.ogg", "abc123", int64(2048), "whisper_cpp", "base", "pl", 12.5,
						"dzień dobry", now, 0, "").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "insert_failure",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcriptions")).
					WillReturnError(errors.New("database is locked"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdb, mock := newMockDB(t)
			tt.mockSetup(mock)

			err := sdb.RecordToDB(row)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInsertFailed))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteDB_GetAll_Unit(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rows", func(t *testing.T) {
		sdb, mock := newMockDB(t)
		rows := sqlmock.NewRows(columns).
			AddRow(2, "run-2", "/a/b.mp3", "b.mp3", "ffee", 10, "openai", "small", "", 3.0, "hi", now, 0, "").
			AddRow(1, "run-1", "/a/a.ogg", "a.ogg", "", 0, "whisper_cpp", "base", "pl", 0.0, "", now, 1, "boom")
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY last_conversion_time DESC")).WillReturnRows(rows)

		got, err := sdb.GetAll()
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b.mp3", got[0].FileName)
		assert.Equal(t, "openai", got[0].Backend)
		assert.Equal(t, "ffee", got[0].FileHash)
		assert.Equal(t, int64(10), got[0].FileSize)
		assert.Equal(t, 1, got[1].HasError)
		assert.Equal(t, "boom", got[1].ErrorMessage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		sdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("no such table"))

		_, err := sdb.GetAll()
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrQueryFailed))
	})

	t.Run("scan error", func(t *testing.T) {
		sdb, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		_, err := sdb.GetAll()
		assert.Error(t, err)
	})
}

func TestSQLiteDB_GetByRunID_Unit(t *testing.T) {
	sdb, mock := newMockDB(t)
	rows := sqlmock.NewRows(columns).
		AddRow(7, "run-7", "/x.wav", "x.wav", "", 0, "whisper_server", "tiny", "en", 1.0, "x", time.Now(), 0, "")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE run_id = ?")).WithArgs("run-7").WillReturnRows(rows)

	got, err := sdb.GetByRunID("run-7")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDB_Close_Unit(t *testing.T) {
	sdb, mock := newMockDB(t)
	mock.ExpectClose()

	assert.NoError(t, sdb.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSQLiteDB_RoundTrip runs against a real database file.
func TestSQLiteDB_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")
	sdb, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer sdb.Close()

	older := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	require.NoError(t, sdb.RecordToDB(model.Transcription{
		RunID: "r1", FilePath: "/a/one.ogg", FileName: "one.ogg", FileHash: "h1", FileSize: 99, Backend: "whisper_cpp",
		Model: "base", Language: "pl", Transcription: "jeden", LastConversionTime: older,
	}))
	require.NoError(t, sdb.RecordToDB(model.Transcription{
		RunID: "r2", FilePath: "/a/two.mp3", FileName: "two.mp3", Backend: "openai",
		Model: "small", Transcription: "dwa", LastConversionTime: newer, AudioDuration: 4.25,
	}))

	all, err := sdb.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "two.mp3", all[0].FileName)
	assert.InDelta(t, 4.25, all[0].AudioDuration, 0.001)
	assert.True(t, newer.Equal(all[0].LastConversionTime))

	run, err := sdb.GetByRunID("r1")
	require.NoError(t, err)
	require.Len(t, run, 1)
	assert.Equal(t, "jeden", run[0].Transcription)
	assert.Equal(t, "h1", run[0].FileHash)
	assert.Equal(t, int64(99), run[0].FileSize)

	// reopening keeps the rows
	require.NoError(t, sdb.Close())
	reopened, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	all, err = reopened.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
