package metadomain

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
}

// CreateResponse é o envelope de sucesso das criações de recurso:
// a plataforma devolve apenas o id numérico do recurso criado.
type CreateResponse struct {
	ID string `json:"id"`
}

type AdSet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	DailyBudget int64  `json:"daily_budget"`
	CampaignID  string `json:"campaign_id"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}
