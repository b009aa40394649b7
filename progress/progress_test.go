package progress

import (
	"os"
	"sync"
	"testing"

	"github.com/Sampa-07/cyber-training/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var store *Store

func TestMain(m *testing.M) {
	dbPath := "./test_progress.db"
	db.InitDB(dbPath)
	store = NewStore(db.DB)

	code := m.Run()

	db.DB.Close()
	os.Remove(dbPath)
	os.Exit(code)
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	userID := 101

	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureInitialized(userID, Modules))
	}

	records, err := store.GetAll(userID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, 0, rec.Score)
		assert.False(t, rec.Completed)
		assert.False(t, rec.LastAccessed.Valid)
	}
}

func TestEnsureInitializedConcurrent(t *testing.T) {
	userID := 102

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.EnsureInitialized(userID, Modules)
		}()
	}
	wg.Wait()

	records, err := store.GetAll(userID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetAllOrderedByModuleName(t *testing.T) {
	userID := 103
	require.NoError(t, store.EnsureInitialized(userID, Modules))

	records, err := store.GetAll(userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "password", records[0].ModuleName)
	assert.Equal(t, "phishing", records[1].ModuleName)
}

func TestGetOne(t *testing.T) {
	userID := 104
	require.NoError(t, store.EnsureInitialized(userID, Modules))

	record, err := store.GetOne(userID, "password")
	require.NoError(t, err)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, "password", record.ModuleName)

	_, err = store.GetOne(userID, "unknown-module")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSetScoreOverwrites(t *testing.T) {
	userID := 105
	require.NoError(t, store.EnsureInitialized(userID, Modules))

	require.NoError(t, store.SetScore(userID, "password", 75, true))

	record, err := store.GetOne(userID, "password")
	require.NoError(t, err)
	assert.Equal(t, 75, record.Score)
	assert.True(t, record.Completed)

	// Last writer wins, including un-completing
	require.NoError(t, store.SetScore(userID, "password", 40, false))

	record, err = store.GetOne(userID, "password")
	require.NoError(t, err)
	assert.Equal(t, 40, record.Score)
	assert.False(t, record.Completed)
}

func TestSetScoreUninitializedRecord(t *testing.T) {
	err := store.SetScore(9999, "password", 100, true)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTouchStampsLastAccessed(t *testing.T) {
	userID := 106
	require.NoError(t, store.EnsureInitialized(userID, Modules))

	require.NoError(t, store.Touch(userID, "phishing"))

	record, err := store.GetOne(userID, "phishing")
	require.NoError(t, err)
	assert.True(t, record.LastAccessed.Valid)

	assert.ErrorIs(t, store.Touch(userID, "unknown-module"), ErrRecordNotFound)
}

func TestOverallCompletionPercent(t *testing.T) {
	userID := 107

	// No modules initialized yet
	percent, err := store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)

	require.NoError(t, store.EnsureInitialized(userID, Modules))

	percent, err = store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)

	require.NoError(t, store.SetScore(userID, "password", 100, true))

	percent, err = store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 50, percent)

	require.NoError(t, store.SetScore(userID, "phishing", 80, true))

	percent, err = store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)
}

func TestOverallCompletionPercentRounding(t *testing.T) {
	userID := 108
	require.NoError(t, store.EnsureInitialized(userID, []string{"a", "b", "c"}))

	require.NoError(t, store.SetScore(userID, "a", 100, true))

	// 1 of 3: 33.33 rounds down
	percent, err := store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 33, percent)

	require.NoError(t, store.SetScore(userID, "b", 100, true))

	// 2 of 3: 66.67 rounds up
	percent, err = store.OverallCompletionPercent(userID)
	require.NoError(t, err)
	assert.Equal(t, 67, percent)
}
