package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/fishbanks/internal/game"
)

var errNoSnapshot = errors.New("no snapshot")

// memStore is an in-memory Store for engine tests.
type memStore struct {
	snaps map[int]*game.YearSnapshot
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[int]*game.YearSnapshot)}
}

func (m *memStore) Reset(sessionID string) error {
	m.snaps = make(map[int]*game.YearSnapshot)
	return nil
}

func (m *memStore) SaveYear(snap *game.YearSnapshot) error {
	m.snaps[snap.Year] = snap
	return nil
}

func (m *memStore) LoadYear(year int) (*game.YearSnapshot, error) {
	snap, ok := m.snaps[year]
	if !ok {
		return nil, errNoSnapshot
	}
	return snap, nil
}

func (m *memStore) LoadLatest() (*game.YearSnapshot, error) {
	var latest *game.YearSnapshot
	for _, snap := range m.snaps {
		if latest == nil || snap.Year > latest.Year {
			latest = snap
		}
	}
	if latest == nil {
		return nil, errNoSnapshot
	}
	return latest, nil
}

func newTestSession(t *testing.T, teams int) (*Session, *memStore) {
	t.Helper()
	store := newMemStore()
	s := NewSession(store)
	require.NoError(t, s.SetTeams(teams, game.DefaultConfig()))
	return s, store
}

func TestSessionLifecycle(t *testing.T) {
	store := newMemStore()
	s := NewSession(store)
	assert.Equal(t, StatusUninitialized, s.Status())
	assert.Zero(t, s.Teams())

	assert.ErrorIs(t, s.InitializeGame(), ErrNotConfigured)
	assert.ErrorIs(t, s.RunYears(1), ErrNotConfigured)

	require.NoError(t, s.SetTeams(4, game.DefaultConfig()))
	assert.Equal(t, StatusAwaitingSetup, s.Status())
	assert.Equal(t, 4, s.Teams())

	require.NoError(t, s.InitializeGame())
	assert.Equal(t, StatusInProgress, s.Status())
}

func TestSetTeamsRejectsBadCount(t *testing.T) {
	s := NewSession(newMemStore())
	assert.ErrorIs(t, s.SetTeams(0, game.DefaultConfig()), game.ErrTeamCount)
	assert.ErrorIs(t, s.SetTeams(9, game.DefaultConfig()), game.ErrTeamCount)
}

func TestInitializeGameBaseline(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())
	st := s.State

	assert.Equal(t, 1, st.Year)
	for team := 1; team <= 4; team++ {
		assert.Equal(t, 5, st.ShipsToDeep[team])
		assert.Equal(t, 1, st.ShipsToCoast[team])
		assert.Equal(t, 0, st.ShipsToHarbor[team])
		assert.Equal(t, 125, st.CatchDeep[team])
		assert.Equal(t, 15, st.CatchCoast[team])
		assert.Equal(t, 2800, st.FishSales[team])
		// 0.05 * (1200 - 1400), rounded to tens.
		assert.Equal(t, -10, st.Interest[team])
	}

	assert.Equal(t, 500.0, st.TotalCatchDeep)
	assert.Equal(t, 60.0, st.TotalCatchCoast)
	assert.Equal(t, 20, st.OpFleetDeep)
	assert.Equal(t, 4, st.OpFleetCoast)
	assert.Equal(t, 0, st.OpFleetHarbor)

	assert.Equal(t, 2500.0, st.FishPopDeep)
	assert.Equal(t, 1200.0, st.FishPopCoast)
	assert.Equal(t, 233, st.RegenerationDeep)
	assert.Equal(t, 165, st.RegenerationCoast)
	assert.Equal(t, 0.83, st.FishDensityDeep)
	assert.Equal(t, 0.8, st.FishDensityCoast)

	// The baseline year is archived immediately.
	snap, err := store.LoadYear(1)
	require.NoError(t, err)
	assert.Equal(t, st.SessionID, snap.SessionID)
	assert.Equal(t, 250, snap.SalvageValue)
}

func TestExecuteTurnFirstYear(t *testing.T) {
	s, _ := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())
	st := s.State

	s.ExecuteTurn()

	// Year-1 weather is 1.03: 5 deep ships at 25 fish and 1 coastal ship
	// at 15 fish per team, rounded half up.
	for team := 1; team <= 4; team++ {
		assert.Equal(t, 129, st.CatchDeep[team])
		assert.Equal(t, 15, st.CatchCoast[team])
		assert.Equal(t, 2880, st.FishSales[team])
		// minBankBal = 1200 - 1400 = -200, so the deficit rate applies.
		assert.Equal(t, -30, st.Interest[team])
		// -200 + 2880 - 30
		assert.Equal(t, 2650, st.BankBal[team])
		assert.Equal(t, 6, st.Ships[team])
	}

	// 2000 start + 4 x (1400 operating costs + 30 interest charged).
	assert.Equal(t, 7720, st.FisheryFund)

	assert.Equal(t, 516.0, st.TotalCatchDeep)
	assert.Equal(t, 60.0, st.TotalCatchCoast)
	// Populations: harvest removed, then regrowth added.
	assert.Equal(t, 2500-516+float64(st.RegenerationDeep), st.FishPopDeep)
	assert.Equal(t, 1200-60+float64(st.RegenerationCoast), st.FishPopCoast)
	assert.InDelta(t, 504, st.RegenerationDeep, 1)
	assert.InDelta(t, 213, st.RegenerationCoast, 1)
}

func TestExecuteTurnHarvestClamp(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.MaxFishDeep = 100
	cfg.InitFishDeep = 60

	store := newMemStore()
	s := NewSession(store)
	require.NoError(t, s.SetTeams(1, cfg))
	require.NoError(t, s.InitializeGame())
	st := s.State

	// 23 deep-sea ships against a stock of 60: the fleet cannot land more
	// fish than exist.
	s.ExecuteTurn()

	assert.Equal(t, 60, st.CatchDeep[1])
	assert.Equal(t, 0, st.RegenerationDeep)
	assert.Equal(t, 0.0, st.FishPopDeep)
	assert.Equal(t, 0.0, st.FishDensityDeep)
}

func TestExecuteTurnShipOrders(t *testing.T) {
	s, _ := newTestSession(t, 2)
	require.NoError(t, s.InitializeGame())
	st := s.State

	d := game.NewDecisionSheet(2)
	d.ShipOrders[1] = 3
	d.ShipsToDeep[1] = 11
	d.ShipsToCoast[1] = 1
	d.ShipsToDeep[2] = 11
	d.ShipsToCoast[2] = 1
	res, err := s.ValidateDecisions(d)
	require.NoError(t, err)
	require.True(t, res.OK)
	require.NoError(t, s.CommitDecisions(d))

	fundBefore := st.FisheryFund
	s.ExecuteTurn()

	// Ordered ships join the fleet after the year but never fished it.
	assert.Equal(t, 15, st.Ships[1])
	assert.Equal(t, 12, st.Ships[2])
	assert.Equal(t, 3, st.ShipsToHarbor[1])
	// Order money went to the fund along with operating costs.
	assert.GreaterOrEqual(t, st.FisheryFund-fundBefore, 3*st.Config.NewShipPrice)
}

func TestExecuteTurnRevocation(t *testing.T) {
	s, _ := newTestSession(t, 2)
	require.NoError(t, s.InitializeGame())
	st := s.State

	d := game.NewDecisionSheet(2)
	d.RevokeShips[1] = 2
	d.ShipsToDeep[1] = 9
	d.ShipsToCoast[1] = 1
	d.ShipsToDeep[2] = 11
	d.ShipsToCoast[2] = 1
	res, err := s.ValidateDecisions(d)
	require.NoError(t, err)
	require.True(t, res.OK)
	require.NoError(t, s.CommitDecisions(d))

	popDeepBefore := st.FishPopDeep
	s.ExecuteTurn()

	// Exactly one fleet reduction, and the scrapping disturbance hit the
	// stocks once on top of the harvest.
	assert.Equal(t, 10, st.Ships[1])
	expectedPop := popDeepBefore - st.TotalCatchDeep - st.Config.RevokeShipFishDeep + float64(st.RegenerationDeep)
	assert.Equal(t, expectedPop, st.FishPopDeep)
}

func TestCalcSalvageValue(t *testing.T) {
	s, _ := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())

	// Year 1 is always the configured base, whatever the books say.
	assert.Equal(t, 250, s.CalcSalvageValue(1))

	s.ExecuteTurn()
	s.State.AdvanceYear()
	// Average profit per ship is (5320 + 600) / 24 ≈ 246.67; smoothing
	// over two years from 250 floors to 248.
	assert.Equal(t, 248, s.CalcSalvageValue(2))
}

func TestCalcSalvageValueIdleFleet(t *testing.T) {
	s, _ := newTestSession(t, 2)
	require.NoError(t, s.InitializeGame())
	st := s.State

	// Everyone in the harbor: only the harbor fee drags the value down.
	st.OpFleetDeep = 0
	st.OpFleetCoast = 0
	st.OpFleetHarbor = 24
	st.TotalCatchDeep = 0
	st.TotalCatchCoast = 0
	st.SalvageValue = 250

	// (250 + (-1200/24 - 250)/2) = 100
	assert.Equal(t, 100, s.CalcSalvageValue(2))
}

func TestCalcSalvageValueNeverNegative(t *testing.T) {
	s, _ := newTestSession(t, 2)
	require.NoError(t, s.InitializeGame())
	st := s.State

	st.OpFleetDeep = 0
	st.OpFleetCoast = 0
	st.OpFleetHarbor = 24
	st.SalvageValue = 10
	st.Config.SalvageDelay = 1

	assert.Equal(t, 0, s.CalcSalvageValue(2))
}

func TestRunYearsAdvancesAndArchives(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())

	require.NoError(t, s.RunYears(1))

	st := s.State
	assert.Equal(t, 2, st.Year)
	assert.Equal(t, 248, st.SalvageValue)
	assert.Equal(t, 2650, st.BankBal[1])

	_, err := store.LoadYear(1)
	assert.NoError(t, err)
	snap, err := store.LoadYear(2)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Year)
	assert.Equal(t, 248, snap.SalvageValue)
}

func TestRunYearsBatch(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())

	require.NoError(t, s.RunYears(3))

	assert.Equal(t, 4, s.State.Year)
	assert.Len(t, store.snaps, 4)
}

func TestRunYearsFloorsCount(t *testing.T) {
	s, _ := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())

	require.NoError(t, s.RunYears(0))
	assert.Equal(t, 2, s.State.Year)
}

func TestResumeLatest(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())
	require.NoError(t, s.RunYears(1))
	archived := s.State.Clone()

	// A fresh session over the same archive picks the game back up.
	s2 := NewSession(store)
	st, err := s2.ResumeGameToYear(ResumeLatest)
	require.NoError(t, err)

	assert.Equal(t, StatusResumed, s2.Status())
	assert.Equal(t, 4, s2.Teams())
	assert.Equal(t, archived.Year, st.Year)
	assert.Equal(t, archived.SessionID, st.SessionID)
	assert.Equal(t, archived.FishPopDeep, st.FishPopDeep)
	assert.Equal(t, archived.SalvageValue, st.SalvageValue)
	// The restored values become the new re-init baseline.
	assert.Equal(t, archived.SalvageValue, st.Config.SalvageBase)
	assert.Equal(t, archived.FishPopDeep, st.Config.InitFishDeep)
}

func TestResumeRecomputesDerivedValues(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())
	require.NoError(t, s.RunYears(1))

	s2 := NewSession(store)
	st, err := s2.ResumeGameToYear(2)
	require.NoError(t, err)

	for team := 1; team <= 4; team++ {
		// Same fleets, same weather, same curves: the restored year's
		// catches come out as they were played.
		assert.Equal(t, 129, st.CatchDeep[team])
		assert.Equal(t, 15, st.CatchCoast[team])
		assert.Equal(t, 2880, st.FishSales[team])
		// Spent trade decisions do not carry into the next sheet.
		assert.Zero(t, st.ShipOrders[team])
		assert.Zero(t, st.AuctionShips[team])
	}
}

func TestResumeMissingYear(t *testing.T) {
	s, _ := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())

	_, err := s.ResumeGameToYear(17)
	assert.Error(t, err)
}

func TestResumeLeavesArchiveIntact(t *testing.T) {
	s, store := newTestSession(t, 4)
	require.NoError(t, s.InitializeGame())
	require.NoError(t, s.RunYears(2))
	popAtYear3 := s.State.FishPopDeep

	s2 := NewSession(store)
	_, err := s2.ResumeGameToYear(3)
	require.NoError(t, err)
	require.NoError(t, s2.RunYears(1))

	// Continuing from a resume writes new years without touching the
	// snapshot it started from.
	s3 := NewSession(store)
	st, err := s3.ResumeGameToYear(3)
	require.NoError(t, err)
	assert.Equal(t, popAtYear3, st.FishPopDeep)
}

func TestWeather(t *testing.T) {
	assert.Equal(t, 1.00, WeatherFor(0))
	assert.Equal(t, 1.03, WeatherFor(1))
	assert.Equal(t, 0.87, WeatherFor(2))
	// The cycle repeats after 20 years.
	assert.Equal(t, WeatherFor(1), WeatherFor(21))
	// Reports trail the harvest index by one year.
	assert.Equal(t, 1.00, WeatherShown(1))
	assert.Equal(t, WeatherFor(1), WeatherShown(2))
}
