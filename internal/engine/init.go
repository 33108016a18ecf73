package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/fishbanks/internal/curve"
)

// InitializeGame establishes the year-1 baseline. The first-year catch is
// a fixed heuristic (25 per deep-sea ship, 15 per coastal ship) rather
// than a model output: there is no prior-year harvest to base productivity
// on. Resets the archive, so call it once per new game only.
func (s *Session) InitializeGame() error {
	if s.State == nil {
		return ErrNotConfigured
	}
	st := s.State
	cfg := st.Config

	st.TotalCatchDeep = 0
	st.TotalCatchCoast = 0
	st.OpFleetDeep = 0
	st.OpFleetCoast = 0
	st.OpFleetHarbor = 0

	for t := 1; t <= st.Teams; t++ {
		st.AuctionShips[t] = 0
		st.AuctionDols[t] = 0
		st.ShipPurch[t] = 0
		st.ShipPurchDols[t] = 0
		st.ShipSales[t] = 0
		st.ShipSalesDols[t] = 0
		st.ShipOrders[t] = 0
		st.GivenDols[t] = 0
		st.ReceiveDols[t] = 0
		st.ReceiveDolsFromFishery[t] = 0
		st.RevokeShips[t] = 0

		st.ShipsToDeep[t] = st.InitShipsPerTeam - 1
		st.ShipsToCoast[t] = st.InitShipsPerTeam - st.ShipsToDeep[t]
		st.SyncHarbor(t)

		st.CatchDeep[t] = st.ShipsToDeep[t] * 25
		st.CatchCoast[t] = st.ShipsToCoast[t] * 15

		st.FishDeepPrice[t] = cfg.FishDeepSalesPrice
		st.FishCoastPrice[t] = cfg.FishCoastSalesPrice
		st.FishSales[t] = st.CatchDeep[t]*st.FishDeepPrice[t] + st.CatchCoast[t]*st.FishCoastPrice[t]

		// First interest estimate; half the year's sales are assumed to
		// arrive mid-year.
		st.Interest[t] = int(math.Floor(0.05*(float64(st.InitBankBalPerTeam)-float64(st.FishSales[t])/2)/10+0.5)) * 10

		st.TotalCatchDeep += float64(st.CatchDeep[t])
		st.TotalCatchCoast += float64(st.CatchCoast[t])
		st.OpFleetDeep += st.ShipsToDeep[t]
		st.OpFleetCoast += st.ShipsToCoast[t]
		st.OpFleetHarbor += st.Ships[t] - st.ShipsToDeep[t] - st.ShipsToCoast[t]
	}

	if !s.resumed {
		st.FishPopDeep = cfg.InitFishDeep
		st.FishPopCoast = cfg.InitFishCoast
	}

	st.RegenerationDeep = int(math.Floor(50 * curve.Regeneration.Eval(st.FishPopDeep/cfg.MaxFishDeep)))
	st.RegenerationCoast = int(math.Floor(30 * curve.Regeneration.Eval(st.FishPopCoast/cfg.MaxFishCoast)))
	st.RecomputeDensity()

	if err := s.store.Reset(st.SessionID); err != nil {
		return fmt.Errorf("reset archive: %w", err)
	}
	// Archive the baseline so year 1 is resumable like any other year.
	if err := s.SaveGame(); err != nil {
		return err
	}

	s.status = StatusInProgress
	slog.Info("game initialized",
		"session", st.SessionID,
		"teams", st.Teams,
		"init_ships", st.InitShipsPerTeam,
		"init_bank_bal", st.InitBankBalPerTeam,
		"fish_deep", st.FishPopDeep,
		"fish_coast", st.FishPopCoast,
	)
	return nil
}
