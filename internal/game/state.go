package game

import (
	"math"
	"slices"

	"github.com/google/uuid"
)

// State is the single mutable aggregate for a game session. All per-team
// slices are 1-based with index 0 unused, mirroring the BASIC-heritage
// layout of the original program; allocate with teams+1 elements and loop
// t = 1..Teams.
type State struct {
	SessionID string `json:"session_id"`
	Year      int    `json:"year"`
	Teams     int    `json:"teams"`

	Config Config `json:"config"`

	InitShipsPerTeam   int `json:"init_ships_per_team"`
	InitBankBalPerTeam int `json:"init_bank_bal_per_team"`

	FishPopDeep       float64 `json:"fish_pop_deep"`
	FishPopCoast      float64 `json:"fish_pop_coast"`
	FishDensityDeep   float64 `json:"fish_density_deep"`
	FishDensityCoast  float64 `json:"fish_density_coast"`
	RegenerationDeep  int     `json:"regeneration_deep"`
	RegenerationCoast int     `json:"regeneration_coast"`

	FisheryFund  int `json:"fishery_fund"`
	SalvageValue int `json:"salvage_value"`

	TotalCatchDeep  float64 `json:"total_catch_deep"`
	TotalCatchCoast float64 `json:"total_catch_coast"`
	OpFleetDeep     int     `json:"op_fleet_deep"`
	OpFleetCoast    int     `json:"op_fleet_coast"`
	OpFleetHarbor   int     `json:"op_fleet_harbor"`

	// Per-team fields (1-based).
	Ships          []int `json:"ships"`
	ShipsToDeep    []int `json:"ships_to_deep"`
	ShipsToCoast   []int `json:"ships_to_coast"`
	ShipsToHarbor  []int `json:"ships_to_harbor"`
	BankBal        []int `json:"bank_bal"`
	CatchDeep      []int `json:"catch_deep"`
	CatchCoast     []int `json:"catch_coast"`
	FishDeepPrice  []int `json:"fish_deep_price"`
	FishCoastPrice []int `json:"fish_coast_price"`
	FishSales      []int `json:"fish_sales"`
	Interest       []int `json:"interest"`

	// Latest committed decision values (1-based).
	AuctionShips           []int `json:"auction_ships"`
	AuctionDols            []int `json:"auction_dols"`
	ShipPurch              []int `json:"ship_purch"`
	ShipPurchDols          []int `json:"ship_purch_dols"`
	ShipSales              []int `json:"ship_sales"`
	ShipSalesDols          []int `json:"ship_sales_dols"`
	ShipOrders             []int `json:"ship_orders"`
	RevokeShips            []int `json:"revoke_ships"`
	GivenDols              []int `json:"given_dols"`
	ReceiveDols            []int `json:"receive_dols"`
	ReceiveDolsFromFishery []int `json:"receive_dols_from_fishery"`
}

// NewState creates the aggregate for a fresh game: starting fleets and
// bank balances per the team-count table, initial fund, year 1.
func NewState(teams int, cfg Config) (*State, error) {
	initShips, err := InitShipsForTeams(teams)
	if err != nil {
		return nil, err
	}
	initBank := InitBankBalForShips(initShips)

	s := &State{
		SessionID:          uuid.NewString(),
		Year:               1,
		Teams:              teams,
		Config:             cfg,
		InitShipsPerTeam:   initShips,
		InitBankBalPerTeam: initBank,
		FisheryFund:        cfg.InitFund,
		SalvageValue:       cfg.SalvageBase,
	}
	n := teams + 1
	s.Ships = make([]int, n)
	s.ShipsToDeep = make([]int, n)
	s.ShipsToCoast = make([]int, n)
	s.ShipsToHarbor = make([]int, n)
	s.BankBal = make([]int, n)
	s.CatchDeep = make([]int, n)
	s.CatchCoast = make([]int, n)
	s.FishDeepPrice = make([]int, n)
	s.FishCoastPrice = make([]int, n)
	s.FishSales = make([]int, n)
	s.Interest = make([]int, n)
	s.AuctionShips = make([]int, n)
	s.AuctionDols = make([]int, n)
	s.ShipPurch = make([]int, n)
	s.ShipPurchDols = make([]int, n)
	s.ShipSales = make([]int, n)
	s.ShipSalesDols = make([]int, n)
	s.ShipOrders = make([]int, n)
	s.RevokeShips = make([]int, n)
	s.GivenDols = make([]int, n)
	s.ReceiveDols = make([]int, n)
	s.ReceiveDolsFromFishery = make([]int, n)

	for t := 1; t <= teams; t++ {
		s.Ships[t] = initShips
		s.BankBal[t] = initBank
	}
	return s, nil
}

// AdvanceYear moves the game ahead one year.
func (s *State) AdvanceYear() { s.Year++ }

// RecedeYear moves the game back one year.
func (s *State) RecedeYear() { s.Year-- }

// TotalFleet is the fleet count across all areas and teams.
func (s *State) TotalFleet() int {
	return s.OpFleetDeep + s.OpFleetCoast + s.OpFleetHarbor
}

// SyncHarbor recomputes the harbor count for one team so that
// ships == toDeep + toCoast + toHarbor always holds.
func (s *State) SyncHarbor(t int) {
	s.ShipsToHarbor[t] = s.Ships[t] - s.ShipsToDeep[t] - s.ShipsToCoast[t]
}

// RecomputeDensity refreshes both densities, rounded to 2 decimal places.
func (s *State) RecomputeDensity() {
	s.FishDensityDeep = math.Round(s.FishPopDeep/s.Config.MaxFishDeep*100) / 100
	s.FishDensityCoast = math.Round(s.FishPopCoast/s.Config.MaxFishCoast*100) / 100
}

// TeamAssets returns a team's total assets: bank balance plus the fleet at
// the current salvage value.
func (s *State) TeamAssets(t int) int {
	return s.BankBal[t] + s.Ships[t]*s.SalvageValue
}

// ShipIndex is the worksheet fleet index: total ships relative to the
// starting fleet, in tenths.
func (s *State) ShipIndex() float64 {
	return math.Floor(20*float64(s.TotalFleet())/float64(s.Teams*s.InitShipsPerTeam)) / 10
}

// CatchIndex is the worksheet harvest index, in tenths.
func (s *State) CatchIndex() float64 {
	return math.Floor(20*(s.TotalCatchDeep+s.TotalCatchCoast)/600) / 10
}

// FishIndex is the worksheet stock index, in tenths.
func (s *State) FishIndex() float64 {
	return math.Floor(100*(s.FishPopDeep+s.FishPopCoast)/(s.Config.MaxFishDeep+s.Config.MaxFishCoast)) / 10
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Ships = slices.Clone(s.Ships)
	c.ShipsToDeep = slices.Clone(s.ShipsToDeep)
	c.ShipsToCoast = slices.Clone(s.ShipsToCoast)
	c.ShipsToHarbor = slices.Clone(s.ShipsToHarbor)
	c.BankBal = slices.Clone(s.BankBal)
	c.CatchDeep = slices.Clone(s.CatchDeep)
	c.CatchCoast = slices.Clone(s.CatchCoast)
	c.FishDeepPrice = slices.Clone(s.FishDeepPrice)
	c.FishCoastPrice = slices.Clone(s.FishCoastPrice)
	c.FishSales = slices.Clone(s.FishSales)
	c.Interest = slices.Clone(s.Interest)
	c.AuctionShips = slices.Clone(s.AuctionShips)
	c.AuctionDols = slices.Clone(s.AuctionDols)
	c.ShipPurch = slices.Clone(s.ShipPurch)
	c.ShipPurchDols = slices.Clone(s.ShipPurchDols)
	c.ShipSales = slices.Clone(s.ShipSales)
	c.ShipSalesDols = slices.Clone(s.ShipSalesDols)
	c.ShipOrders = slices.Clone(s.ShipOrders)
	c.RevokeShips = slices.Clone(s.RevokeShips)
	c.GivenDols = slices.Clone(s.GivenDols)
	c.ReceiveDols = slices.Clone(s.ReceiveDols)
	c.ReceiveDolsFromFishery = slices.Clone(s.ReceiveDolsFromFishery)
	return &c
}
