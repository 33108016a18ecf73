package engine

import (
	"math"

	"github.com/talgya/fishbanks/internal/curve"
)

// ExecuteTurn advances the ecological and financial model by one year.
// The step order is load-bearing: trade settlement and fleet totals feed
// the fleet-wide harvest clamp, the fund snapshot feeds every team's
// interest policy, and the population update reads the summed per-team
// catches. The caller is responsible for having validated and committed
// the decisions; there is no recoverable-error path here.
func (s *Session) ExecuteTurn() {
	st := s.State
	cfg := st.Config
	w := WeatherFor(st.Year)

	// Settle trades and count the operating fleets.
	st.OpFleetDeep = 0
	st.OpFleetCoast = 0
	st.OpFleetHarbor = 0
	for t := 1; t <= st.Teams; t++ {
		st.BankBal[t] = st.BankBal[t] - st.AuctionDols[t] - st.ShipPurchDols[t] + st.ShipSalesDols[t]
		// Auction proceeds go to the fishery fund.
		st.FisheryFund += st.AuctionDols[t]

		st.OpFleetDeep += st.ShipsToDeep[t]
		st.OpFleetCoast += st.ShipsToCoast[t]
		st.OpFleetHarbor += st.Ships[t] - st.ShipsToDeep[t] - st.ShipsToCoast[t]
	}

	// Ship efficiency multipliers from the stock curves.
	qDeep := curve.ProductivityDeep.Eval(st.FishPopDeep / cfg.MaxFishDeep)
	qCoast := curve.ProductivityCoast.Eval(st.FishPopCoast / cfg.MaxFishCoast)

	// Fleet-wide harvest, then the clamp: if the would-be catch exceeds
	// the population, scale the multiplier down once so every team sees
	// the same effective value.
	st.TotalCatchDeep = float64(st.OpFleetDeep) * qDeep * w
	st.TotalCatchCoast = float64(st.OpFleetCoast) * qCoast * w
	if st.TotalCatchDeep > st.FishPopDeep {
		qDeep *= st.FishPopDeep / st.TotalCatchDeep
	}
	if st.TotalCatchCoast > st.FishPopCoast {
		qCoast *= st.FishPopCoast / st.TotalCatchCoast
	}

	// One snapshot of the fund governs interest for every team this
	// year; re-evaluating it mid-loop would pay some teams and not
	// others depending on processing order.
	fundNonPositive := st.FisheryFund <= 0

	anyRevoked := false
	for t := 1; t <= st.Teams; t++ {
		st.CatchDeep[t] = int(math.Floor(float64(st.ShipsToDeep[t])*qDeep*w + 0.5))
		st.CatchCoast[t] = int(math.Floor(float64(st.ShipsToCoast[t])*qCoast*w + 0.5))

		// Prices are uniform per area today even though storage is
		// per-team.
		st.FishDeepPrice[t] = cfg.FishDeepSalesPrice
		st.FishCoastPrice[t] = cfg.FishCoastSalesPrice
		st.FishSales[t] = st.CatchDeep[t]*st.FishDeepPrice[t] + st.CatchCoast[t]*st.FishCoastPrice[t]

		expenseDeep := cfg.OpCostDeep * st.ShipsToDeep[t]
		expenseCoast := cfg.OpCostCoast * st.ShipsToCoast[t]
		expenseHarbor := cfg.OpCostHarbor * (st.Ships[t] - st.ShipsToDeep[t] - st.ShipsToCoast[t])
		orderMoney := cfg.NewShipPrice * st.ShipOrders[t]
		// Operating costs and new-ship orders are paid into the fund.
		st.FisheryFund += orderMoney + expenseDeep + expenseCoast + expenseHarbor

		minBankBal := st.BankBal[t] - expenseDeep - expenseCoast - expenseHarbor
		var earned int
		switch {
		case minBankBal < 0:
			earned = int(math.Floor((0.15*float64(minBankBal)+5)/10)) * 10
		case fundNonPositive:
			earned = 0
		default:
			earned = int(math.Floor((0.1*float64(minBankBal)+5)/10)) * 10
		}
		st.Interest[t] = earned
		st.BankBal[t] = minBankBal + st.FishSales[t] + earned - orderMoney

		if st.RevokeShips[t] > 0 {
			anyRevoked = true
			st.Ships[t] -= st.RevokeShips[t]
			fee := st.RevokeShips[t] * cfg.RevokeShipDols
			st.BankBal[t] -= fee
			st.FisheryFund += fee
		}

		// Interest is paid out of the fund.
		st.FisheryFund -= earned

		// One-year construction delay: ordered ships join the fleet now
		// but did not fish this year.
		st.Ships[t] += st.ShipOrders[t]
		st.SyncHarbor(t)
	}

	// Populations after harvest, from the rounded per-team catches.
	st.TotalCatchDeep = 0
	st.TotalCatchCoast = 0
	for t := 1; t <= st.Teams; t++ {
		st.TotalCatchDeep += float64(st.CatchDeep[t])
		st.TotalCatchCoast += float64(st.CatchCoast[t])
	}
	st.FishPopDeep = math.Max(0, st.FishPopDeep-st.TotalCatchDeep)
	st.FishPopCoast = math.Max(0, st.FishPopCoast-st.TotalCatchCoast)

	// Scrapped ships disturb the stocks by a flat amount per area.
	if anyRevoked {
		st.FishPopDeep = math.Max(0, st.FishPopDeep-cfg.RevokeShipFishDeep)
		st.FishPopCoast = math.Max(0, st.FishPopCoast-cfg.RevokeShipFishCoast)
	}

	// New fish.
	st.RegenerationDeep = int(math.Floor(50 * curve.Regeneration.Eval(st.FishPopDeep/cfg.MaxFishDeep)))
	st.RegenerationCoast = int(math.Floor(30 * curve.Regeneration.Eval(st.FishPopCoast/cfg.MaxFishCoast)))
	st.FishPopDeep += float64(st.RegenerationDeep)
	st.FishPopCoast += float64(st.RegenerationCoast)

	st.RecomputeDensity()
}
