package game

import "slices"

// DecisionSheet is one year's submitted decisions for every team. Like the
// state arrays, the per-team slices are 1-based with index 0 unused. A
// sheet is inert until it passes validation and is committed.
type DecisionSheet struct {
	AuctionShips  []int `json:"auction_ships"`
	AuctionDols   []int `json:"auction_dols"`
	ShipPurch     []int `json:"ship_purch"`
	ShipPurchDols []int `json:"ship_purch_dols"`
	ShipSales     []int `json:"ship_sales"`
	ShipSalesDols []int `json:"ship_sales_dols"`
	ShipOrders    []int `json:"ship_orders"`
	ShipsToDeep   []int `json:"ships_to_deep"`
	ShipsToCoast  []int `json:"ships_to_coast"`
	RevokeShips   []int `json:"revoke_ships"`

	GivenDols              []int `json:"given_dols"`
	ReceiveDols            []int `json:"receive_dols"`
	ReceiveDolsFromFishery []int `json:"receive_dols_from_fishery"`

	// Overrides for the coming year; zero means "keep the current value".
	FishDeepSalesPrice  int `json:"fish_deep_sales_price"`
	FishCoastSalesPrice int `json:"fish_coast_sales_price"`
	RevokeShipDols      int `json:"revoke_ship_dols"`

	// How many consecutive years to run on this sheet. The decisions are
	// held fixed for the whole batch. Values below 1 are treated as 1.
	ContinuousYears int `json:"continuous_years"`
}

// NewDecisionSheet allocates an all-zero sheet for the given team count.
func NewDecisionSheet(teams int) *DecisionSheet {
	n := teams + 1
	return &DecisionSheet{
		AuctionShips:           make([]int, n),
		AuctionDols:            make([]int, n),
		ShipPurch:              make([]int, n),
		ShipPurchDols:          make([]int, n),
		ShipSales:              make([]int, n),
		ShipSalesDols:          make([]int, n),
		ShipOrders:             make([]int, n),
		ShipsToDeep:            make([]int, n),
		ShipsToCoast:           make([]int, n),
		RevokeShips:            make([]int, n),
		GivenDols:              make([]int, n),
		ReceiveDols:            make([]int, n),
		ReceiveDolsFromFishery: make([]int, n),
		ContinuousYears:        1,
	}
}

// ProjectedShips returns a team's fleet after the sheet's trades and
// revocations are applied to the current state.
func (d *DecisionSheet) ProjectedShips(s *State, t int) int {
	return s.Ships[t] + d.AuctionShips[t] + d.ShipPurch[t] - d.ShipSales[t] - d.RevokeShips[t]
}

// Clone returns a deep copy of the sheet.
func (d *DecisionSheet) Clone() *DecisionSheet {
	c := *d
	c.AuctionShips = slices.Clone(d.AuctionShips)
	c.AuctionDols = slices.Clone(d.AuctionDols)
	c.ShipPurch = slices.Clone(d.ShipPurch)
	c.ShipPurchDols = slices.Clone(d.ShipPurchDols)
	c.ShipSales = slices.Clone(d.ShipSales)
	c.ShipSalesDols = slices.Clone(d.ShipSalesDols)
	c.ShipOrders = slices.Clone(d.ShipOrders)
	c.ShipsToDeep = slices.Clone(d.ShipsToDeep)
	c.ShipsToCoast = slices.Clone(d.ShipsToCoast)
	c.RevokeShips = slices.Clone(d.RevokeShips)
	c.GivenDols = slices.Clone(d.GivenDols)
	c.ReceiveDols = slices.Clone(d.ReceiveDols)
	c.ReceiveDolsFromFishery = slices.Clone(d.ReceiveDolsFromFishery)
	return &c
}
