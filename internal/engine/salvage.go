package engine

import "math"

// CalcSalvageValue returns the amortized per-ship liquidation value for
// the given year. Year 1 always returns the configured base. Later years
// smooth the previous value toward the current average profit per ship
// over the configured delay. The result is returned, not stored; the
// batch loop assigns it after each year advance.
func (s *Session) CalcSalvageValue(year int) int {
	st := s.State
	cfg := st.Config

	if year == 1 {
		return cfg.SalvageBase
	}

	harborCost := cfg.OpCostHarbor * st.OpFleetHarbor

	// Team 1's price stands in for every team while prices are uniform;
	// switch to an average if per-team pricing ever diverges.
	var deepSeaProfit, coastalProfit float64
	if st.OpFleetDeep > 0 {
		deepSeaProfit = (float64(st.FishDeepPrice[1])*(st.TotalCatchDeep/float64(st.OpFleetDeep)) - float64(cfg.OpCostDeep)) * float64(st.OpFleetDeep)
	}
	if st.OpFleetCoast > 0 {
		coastalProfit = (float64(st.FishCoastPrice[1])*(st.TotalCatchCoast/float64(st.OpFleetCoast)) - float64(cfg.OpCostCoast)) * float64(st.OpFleetCoast)
	}

	totalProfit := deepSeaProfit + coastalProfit - float64(harborCost)

	var averageProfit float64
	if totalShips := st.TotalFleet(); totalShips > 0 {
		averageProfit = totalProfit / float64(totalShips)
	}

	salvageVal := int(math.Floor(float64(st.SalvageValue) + (averageProfit-float64(st.SalvageValue))/cfg.SalvageDelay))
	if salvageVal < 0 {
		salvageVal = 0
	}
	return salvageVal
}
