package hermes

import (
	"time"

	"github.com/google/uuid"
)

// DistrictIndexEntry is one district's line in a computed index.
type DistrictIndexEntry struct {
	District       string  `json:"district"`
	AvgPriority    float64 `json:"avg_priority"`
	AvgSchemeGap   float64 `json:"avg_scheme_gap"`
	AvgDelayMonths float64 `json:"avg_delay_months"`
	Index          float64 `json:"district_priority_index"`
	RiskBand       string  `json:"risk_band"`
}

type DistrictIndexComputedEvent struct {
	EventID    string               `json:"event_id"`
	Districts  []DistrictIndexEntry `json:"districts"`
	ComputedAt time.Time            `json:"computed_at"`
}

type DistrictAlertEvent struct {
	EventID    string    `json:"event_id"`
	District   string    `json:"district"`
	Index      float64   `json:"district_priority_index"`
	RiskBand   string    `json:"risk_band"`
	ComputedAt time.Time `json:"computed_at"`
}

func NewIndexComputedEvent(entries []DistrictIndexEntry, at time.Time) DistrictIndexComputedEvent {
	if entries == nil {
		entries = []DistrictIndexEntry{}
	}
	return DistrictIndexComputedEvent{
		EventID:    uuid.NewString(),
		Districts:  entries,
		ComputedAt: at.UTC(),
	}
}

func NewAlertEvent(e DistrictIndexEntry, at time.Time) DistrictAlertEvent {
	return DistrictAlertEvent{
		EventID:    uuid.NewString(),
		District:   e.District,
		Index:      e.Index,
		RiskBand:   e.RiskBand,
		ComputedAt: at.UTC(),
	}
}
