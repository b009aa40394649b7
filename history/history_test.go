package history

import (
	"fmt"
	"os"
	"testing"

	"github.com/Sampa-07/cyber-training/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLog *Log

func TestMain(m *testing.M) {
	dbPath := "./test_history.db"
	db.InitDB(dbPath)
	sampleLog = NewLog(db.DB)

	code := m.Run()

	db.DB.Close()
	os.Remove(dbPath)
	os.Exit(code)
}

func TestAppendAndRecent(t *testing.T) {
	userID := 201

	require.NoError(t, sampleLog.Append(userID, "hunter2", 20))
	require.NoError(t, sampleLog.Append(userID, "Password1!", 100))

	samples, err := sampleLog.Recent(userID, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// Newest first
	assert.Equal(t, "Password1!", samples[0].Password)
	assert.Equal(t, 100, samples[0].Score)
	assert.Equal(t, "hunter2", samples[1].Password)
}

func TestRecentIsBounded(t *testing.T) {
	userID := 202

	for i := 0; i < 8; i++ {
		require.NoError(t, sampleLog.Append(userID, fmt.Sprintf("attempt-%d", i), 20))
	}

	samples, err := sampleLog.Recent(userID, 5)
	require.NoError(t, err)
	require.Len(t, samples, 5)

	// Strictly newest first, even with identical timestamps
	for i, s := range samples {
		assert.Equal(t, fmt.Sprintf("attempt-%d", 7-i), s.Password)
	}
}

func TestRecentIsPerUser(t *testing.T) {
	require.NoError(t, sampleLog.Append(203, "mine", 40))
	require.NoError(t, sampleLog.Append(204, "yours", 40))

	samples, err := sampleLog.Recent(203, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "mine", samples[0].Password)
}

func TestRecentEmptyHistory(t *testing.T) {
	samples, err := sampleLog.Recent(205, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, samples)
}
