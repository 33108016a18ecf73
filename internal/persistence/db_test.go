package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/fishbanks/internal/game"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot(t *testing.T, year int) *game.YearSnapshot {
	t.Helper()
	st, err := game.NewState(4, game.DefaultConfig())
	require.NoError(t, err)
	st.Year = year
	st.FishPopDeep = 2500 - float64(year*100)
	st.BankBal[1] = 1000 + year

	return &game.YearSnapshot{
		SessionID:    st.SessionID,
		Year:         year,
		State:        *st,
		Decisions:    *game.NewDecisionSheet(4),
		SalvageValue: 250 - year,
		ShipIndex:    2.0,
		CatchIndex:   1.8,
		FishIndex:    8.2,
	}
}

func TestSaveAndLoadYear(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t, 3)
	require.NoError(t, db.SaveYear(snap))

	got, err := db.LoadYear(3)
	require.NoError(t, err)

	assert.Equal(t, snap.SessionID, got.SessionID)
	assert.Equal(t, 3, got.Year)
	assert.Equal(t, 247, got.SalvageValue)
	assert.Equal(t, snap.ShipIndex, got.ShipIndex)
	assert.Equal(t, snap.State.FishPopDeep, got.State.FishPopDeep)
	assert.Equal(t, snap.State.BankBal, got.State.BankBal)
	assert.Equal(t, snap.Decisions.ShipOrders, got.Decisions.ShipOrders)
}

func TestSaveYearReplaces(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveYear(testSnapshot(t, 2)))

	replay := testSnapshot(t, 2)
	replay.SalvageValue = 199
	require.NoError(t, db.SaveYear(replay))

	got, err := db.LoadYear(2)
	require.NoError(t, err)
	assert.Equal(t, 199, got.SalvageValue)

	years, err := db.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, years)
}

func TestLoadYearMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadYear(5)
	assert.ErrorIs(t, err, ErrNoArchive)
}

func TestLoadLatest(t *testing.T) {
	db := openTestDB(t)

	_, err := db.LoadLatest()
	assert.ErrorIs(t, err, ErrNoArchive)

	require.NoError(t, db.SaveYear(testSnapshot(t, 1)))
	require.NoError(t, db.SaveYear(testSnapshot(t, 4)))
	require.NoError(t, db.SaveYear(testSnapshot(t, 2)))

	got, err := db.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, 4, got.Year)
}

func TestYearsSorted(t *testing.T) {
	db := openTestDB(t)
	for _, year := range []int{3, 1, 2} {
		require.NoError(t, db.SaveYear(testSnapshot(t, year)))
	}

	years, err := db.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, years)
}

func TestResetClearsArchive(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveYear(testSnapshot(t, 1)))
	require.NoError(t, db.SaveYear(testSnapshot(t, 2)))

	require.NoError(t, db.Reset("session-xyz"))

	years, err := db.Years()
	require.NoError(t, err)
	assert.Empty(t, years)

	sessionID, err := db.GetMeta("session_id")
	require.NoError(t, err)
	assert.Equal(t, "session-xyz", sessionID)
}
