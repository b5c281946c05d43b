package domain

// ArrivalRecord is the monitoring row produced when an entity leaves its trajectory,
// either by reaching the end (Finished) or by being abandoned mid-chain.
type ArrivalRecord struct {
	Name         string  `json:"name"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	ActivityTime float64 `json:"activity_time"`
	Finished     bool    `json:"finished"`
}

// Summary aggregates one simulation run.
type Summary struct {
	RunID            string  `json:"run_id"`
	Arrivals         int     `json:"arrivals"`
	Finished         int     `json:"finished"`
	End              float64 `json:"end"`
	MeanActivityTime float64 `json:"mean_activity_time"`
}
