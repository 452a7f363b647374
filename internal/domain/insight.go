package domain

import "time"

// Insight é uma linha da série temporal de métricas de uma campanha,
// obtida periodicamente da plataforma. A unicidade por
// (campaign_id, date) é garantida por upsert no repositório, então
// re-ingestões são idempotentes.
type Insight struct {
	ID          int       `json:"id"`
	CampaignID  int       `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Reach       int64     `json:"reach"`
	Spend       float64   `json:"spend"`
	CPI         float64   `json:"cpi"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
