package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/fishbanks/internal/curve"
	"github.com/talgya/fishbanks/internal/game"
)

// ResumeLatest is the sentinel year meaning "the most recent archived
// year".
const ResumeLatest = -1

// ResumeGameToYear restores an archived snapshot so play continues
// immediately after that year. Persisted fields are copied back; the
// derived quantities — fleet aggregates, productivity multipliers, and
// the per-team catches and sales they imply — are reconstructed from the
// restored populations. The year counter ends up one past the restored
// year's predecessor, i.e. at the snapshot year itself, pre-advance
// values intact.
func (s *Session) ResumeGameToYear(year int) (*game.State, error) {
	var (
		snap *game.YearSnapshot
		err  error
	)
	if year < 0 {
		snap, err = s.store.LoadLatest()
	} else {
		snap, err = s.store.LoadYear(year)
	}
	if err != nil {
		return nil, err
	}

	st := snap.State.Clone()
	st.SalvageValue = snap.SalvageValue
	// The restored values become the baseline a re-initialization would
	// start from.
	st.Config.SalvageBase = snap.SalvageValue
	st.Config.InitFishDeep = st.FishPopDeep
	st.Config.InitFishCoast = st.FishPopCoast

	// Rewind one year so the recomputation below uses the weather the
	// restored year was played under, then advance again at the end.
	st.RecedeYear()
	cfg := st.Config
	w := WeatherFor(st.Year)

	st.OpFleetDeep = 0
	st.OpFleetCoast = 0
	st.OpFleetHarbor = 0
	for t := 1; t <= st.Teams; t++ {
		st.OpFleetDeep += st.ShipsToDeep[t]
		st.OpFleetCoast += st.ShipsToCoast[t]
		st.OpFleetHarbor += st.Ships[t] - st.ShipsToDeep[t] - st.ShipsToCoast[t]
		st.SyncHarbor(t)
	}

	qDeep := curve.ProductivityDeep.Eval(st.FishPopDeep / cfg.MaxFishDeep)
	qCoast := curve.ProductivityCoast.Eval(st.FishPopCoast / cfg.MaxFishCoast)
	st.TotalCatchDeep = float64(st.OpFleetDeep) * qDeep * w
	st.TotalCatchCoast = float64(st.OpFleetCoast) * qCoast * w
	if st.TotalCatchDeep > st.FishPopDeep {
		qDeep *= st.FishPopDeep / st.TotalCatchDeep
	}
	if st.TotalCatchCoast > st.FishPopCoast {
		qCoast *= st.FishPopCoast / st.TotalCatchCoast
	}

	for t := 1; t <= st.Teams; t++ {
		// Trade decisions are spent; the next sheet starts clean.
		st.AuctionShips[t] = 0
		st.AuctionDols[t] = 0
		st.ShipPurch[t] = 0
		st.ShipPurchDols[t] = 0
		st.ShipSales[t] = 0
		st.ShipSalesDols[t] = 0
		st.ShipOrders[t] = 0

		st.CatchDeep[t] = int(math.Floor(float64(st.ShipsToDeep[t])*qDeep*w + 0.5))
		st.CatchCoast[t] = int(math.Floor(float64(st.ShipsToCoast[t])*qCoast*w + 0.5))
		st.FishDeepPrice[t] = cfg.FishDeepSalesPrice
		st.FishCoastPrice[t] = cfg.FishCoastSalesPrice
		st.FishSales[t] = st.CatchDeep[t]*st.FishDeepPrice[t] + st.CatchCoast[t]*st.FishCoastPrice[t]
	}

	st.RecomputeDensity()
	st.AdvanceYear()

	s.State = st
	// Keep the sheet that produced the restored year for redisplay.
	s.Decisions = snap.Decisions.Clone()
	s.resumed = true
	s.status = StatusResumed

	slog.Info("game resumed",
		"session", st.SessionID,
		"year", st.Year,
		"fish_deep", st.FishPopDeep,
		"fish_coast", st.FishPopCoast,
		"salvage_value", st.SalvageValue,
	)
	return st, nil
}
