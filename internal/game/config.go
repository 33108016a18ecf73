// Package game holds the shared state of a Fishbanks session: the scenario
// configuration, the mutable GameState aggregate, and the per-year decision
// sheet submitted by the teams.
package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrTeamCount reports a team count outside the supported 1..8 range.
// The historical behavior of substituting a 0-ship fleet is an error here.
var ErrTeamCount = errors.New("team count must be between 1 and 8")

// Config carries the scenario constants for one game. The defaults are the
// classic Fishbanks setup; operators may override them from a YAML file.
type Config struct {
	MaxFishDeep   float64 `yaml:"max_fish_deep" json:"max_fish_deep"`
	MaxFishCoast  float64 `yaml:"max_fish_coast" json:"max_fish_coast"`
	InitFishDeep  float64 `yaml:"init_fish_deep" json:"init_fish_deep"`
	InitFishCoast float64 `yaml:"init_fish_coast" json:"init_fish_coast"`

	OpCostDeep   int `yaml:"op_cost_deep" json:"op_cost_deep"`
	OpCostCoast  int `yaml:"op_cost_coast" json:"op_cost_coast"`
	OpCostHarbor int `yaml:"op_cost_harbor" json:"op_cost_harbor"`
	NewShipPrice int `yaml:"new_ship_price" json:"new_ship_price"`

	FishDeepSalesPrice  int `yaml:"fish_deep_sales_price" json:"fish_deep_sales_price"`
	FishCoastSalesPrice int `yaml:"fish_coast_sales_price" json:"fish_coast_sales_price"`

	SalvageBase  int     `yaml:"salvage_base" json:"salvage_base"`
	SalvageDelay float64 `yaml:"salvage_delay" json:"salvage_delay"`

	InitFund int `yaml:"init_fund" json:"init_fund"`

	// Scrapping ships: per-ship fee and the flat population decrement
	// applied in any year with revocations.
	RevokeShipDols      int     `yaml:"revoke_ship_dols" json:"revoke_ship_dols"`
	RevokeShipFishDeep  float64 `yaml:"revoke_ship_fish_deep" json:"revoke_ship_fish_deep"`
	RevokeShipFishCoast float64 `yaml:"revoke_ship_fish_coast" json:"revoke_ship_fish_coast"`
}

// DefaultConfig returns the standard scenario.
func DefaultConfig() Config {
	return Config{
		MaxFishDeep:         3000,
		MaxFishCoast:        1500,
		InitFishDeep:        2500,
		InitFishCoast:       1200,
		OpCostDeep:          250,
		OpCostCoast:         150,
		OpCostHarbor:        50,
		NewShipPrice:        300,
		FishDeepSalesPrice:  20,
		FishCoastSalesPrice: 20,
		SalvageBase:         250,
		SalvageDelay:        2,
		InitFund:            2000,
		RevokeShipDols:      50,
		RevokeShipFishDeep:  5,
		RevokeShipFishCoast: 10,
	}
}

// LoadConfig reads a YAML scenario file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scenario: %w", err)
	}
	return cfg, nil
}

// initShipsByTeams maps the team count to the starting fleet per team.
var initShipsByTeams = map[int]int{
	1: 24,
	2: 12,
	3: 8,
	4: 6,
	5: 5,
	6: 4,
	7: 3,
	8: 3,
}

// InitShipsForTeams returns the starting fleet size for the given team
// count, or ErrTeamCount when the count is outside 1..8.
func InitShipsForTeams(teams int) (int, error) {
	ships, ok := initShipsByTeams[teams]
	if !ok {
		return 0, fmt.Errorf("%w: got %d", ErrTeamCount, teams)
	}
	return ships, nil
}

// InitBankBalForShips returns the starting bank balance for a fleet of the
// given size: 200 per ship.
func InitBankBalForShips(ships int) int {
	return ships * 200
}
