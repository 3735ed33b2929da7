package model

import "time"

// DailySnapshot is a point-in-time rollup of the whole portfolio for one
// calendar date. One snapshot exists per date; analytics treats the snapshot
// list as append-only history sorted by date ascending.
type DailySnapshot struct {
	ID                 string             `json:"id"`
	Date               time.Time          `json:"date"`
	TotalInvestment    float64            `json:"totalInvestment"`
	TotalCurrentValue  float64            `json:"totalCurrentValue"`
	TotalUnrealizedPnL float64            `json:"totalUnrealizedPnL"`
	Positions          []SnapshotPosition `json:"positions"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// SnapshotPosition is the per-position breakdown stored inside a DailySnapshot.
type SnapshotPosition struct {
	PositionID    string  `json:"positionId"`
	CompanyName   string  `json:"companyName"`
	Quantity      float64 `json:"quantity"`
	CurrentPrice  float64 `json:"currentPrice"`
	CurrentValue  float64 `json:"currentValue"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
}
