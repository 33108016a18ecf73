// Package decision validates submitted decision sheets against the current
// game state and commits the ones that pass. Validation fails fast on the
// first violated check and reports which check and which team failed; a
// rejected sheet leaves the state untouched.
package decision

import (
	"fmt"

	"github.com/talgya/fishbanks/internal/game"
)

// Check identifies one of the ordered validation rules.
type Check int

const (
	CheckNone Check = iota
	CheckShipTradeBalance
	CheckShipMoneyBalance
	CheckTransferBalance
	CheckShipsAvailable
	CheckOrderLimit
	CheckAreaAssignment
)

func (c Check) String() string {
	switch c {
	case CheckNone:
		return "none"
	case CheckShipTradeBalance:
		return "total ship purchases must equal total ship sales"
	case CheckShipMoneyBalance:
		return "total ship purchase money must equal total ship sale money"
	case CheckTransferBalance:
		return "total money given must equal total money received"
	case CheckShipsAvailable:
		return "ships available may not be less than 0"
	case CheckOrderLimit:
		return "no team may order more ships than half its fleet"
	case CheckAreaAssignment:
		return "ships sent to deep sea and coast must not exceed ships available"
	default:
		return fmt.Sprintf("check(%d)", int(c))
	}
}

// Result is the outcome of validating a sheet. Team is 0 for the
// cross-team checks that have no single offender.
type Result struct {
	OK    bool  `json:"ok"`
	Check Check `json:"check"`
	Team  int   `json:"team,omitempty"`
}

func (r Result) String() string {
	if r.OK {
		return "ok"
	}
	if r.Team > 0 {
		return fmt.Sprintf("team %d: %s", r.Team, r.Check)
	}
	return r.Check.String()
}

func ok() Result                    { return Result{OK: true} }
func fail(c Check, team int) Result { return Result{Check: c, Team: team} }

// Validate runs the ordered checks for a sheet against the current state.
// Cross-team conservation first, then the per-team fleet checks.
func Validate(s *game.State, d *game.DecisionSheet) Result {
	var purch, sales, purchDols, salesDols, given, received int
	for t := 1; t <= s.Teams; t++ {
		purch += d.ShipPurch[t]
		sales += d.ShipSales[t]
		purchDols += d.ShipPurchDols[t]
		salesDols += d.ShipSalesDols[t]
		given += d.GivenDols[t]
		received += d.ReceiveDols[t]
	}
	if purch != sales {
		return fail(CheckShipTradeBalance, 0)
	}
	if purchDols != salesDols {
		return fail(CheckShipMoneyBalance, 0)
	}
	if given != received {
		return fail(CheckTransferBalance, 0)
	}

	for t := 1; t <= s.Teams; t++ {
		avail := d.ProjectedShips(s, t)
		if avail < 0 {
			return fail(CheckShipsAvailable, t)
		}
		if d.ShipOrders[t] > avail/2 {
			return fail(CheckOrderLimit, t)
		}
		if d.ShipsToDeep[t]+d.ShipsToCoast[t] > avail {
			return fail(CheckAreaAssignment, t)
		}
	}
	return ok()
}

// Commit applies an already-validated sheet to the state without further
// checking: decision values are copied in, ship trades move fleet counts,
// and the inter-team and fishery money transfers settle immediately. The
// revocation itself (fleet reduction, fee) is applied by the turn update,
// not here, so it happens exactly once per year.
func Commit(s *game.State, d *game.DecisionSheet) {
	if d.FishDeepSalesPrice > 0 {
		s.Config.FishDeepSalesPrice = d.FishDeepSalesPrice
	}
	if d.FishCoastSalesPrice > 0 {
		s.Config.FishCoastSalesPrice = d.FishCoastSalesPrice
	}
	if d.RevokeShipDols > 0 {
		s.Config.RevokeShipDols = d.RevokeShipDols
	}

	for t := 1; t <= s.Teams; t++ {
		s.AuctionShips[t] = d.AuctionShips[t]
		s.AuctionDols[t] = d.AuctionDols[t]
		s.ShipPurch[t] = d.ShipPurch[t]
		s.ShipPurchDols[t] = d.ShipPurchDols[t]
		s.ShipSales[t] = d.ShipSales[t]
		s.ShipSalesDols[t] = d.ShipSalesDols[t]
		s.ShipOrders[t] = d.ShipOrders[t]
		s.RevokeShips[t] = d.RevokeShips[t]
		s.ShipsToDeep[t] = d.ShipsToDeep[t]
		s.ShipsToCoast[t] = d.ShipsToCoast[t]

		// Auctioned and traded ships change hands now; ordered ships
		// arrive after the one-year construction delay.
		s.Ships[t] += d.AuctionShips[t] + d.ShipPurch[t] - d.ShipSales[t]
		s.SyncHarbor(t)

		s.GivenDols[t] = d.GivenDols[t]
		s.ReceiveDols[t] = d.ReceiveDols[t]
		s.ReceiveDolsFromFishery[t] = d.ReceiveDolsFromFishery[t]
		if g := d.GivenDols[t]; g != 0 {
			s.BankBal[t] -= g
		}
		if r := d.ReceiveDols[t]; r != 0 {
			s.BankBal[t] += r
		}
		if r := d.ReceiveDolsFromFishery[t]; r != 0 {
			s.BankBal[t] += r
			s.FisheryFund -= r
		}
	}
}
