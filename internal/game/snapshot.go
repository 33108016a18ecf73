package game

// YearSnapshot is the archived record for one game year: the full state
// after the year's update, the decision sheet that produced it, and the
// derived worksheet values the report screens redisplay. Snapshots are
// never mutated after archiving; a year is overwritten only by replaying
// that same year.
type YearSnapshot struct {
	SessionID    string        `json:"session_id"`
	Year         int           `json:"year"`
	State        State         `json:"state"`
	Decisions    DecisionSheet `json:"decisions"`
	SalvageValue int           `json:"salvage_value"`
	ShipIndex    float64       `json:"ship_index"`
	CatchIndex   float64       `json:"catch_index"`
	FishIndex    float64       `json:"fish_index"`
}
