package domain

import (
	"encoding/json"
	"time"
)

// Campaign é o espelho local de uma campanha criada na plataforma.
// A plataforma remota é a fonte da verdade; esta linha é escrita pela
// camada de handlers depois que a criação remota teve sucesso.
type Campaign struct {
	ID            int             `json:"id"`
	ProjectID     int             `json:"project_id"`
	FbCampaignID  string          `json:"fb_campaign_id"`
	Name          string          `json:"name"`
	Targeting     json.RawMessage `json:"targeting,omitempty"`
	IsDailyBudget bool            `json:"is_daily_budget"`
	BudgetAmount  float64         `json:"budget_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Targeting é a segmentação enviada na criação de ad sets. Campos
// opcionais vazios são omitidos do payload final; apenas age_min e
// age_max são sempre transmitidos.
type Targeting struct {
	Countries          []string `json:"countries,omitempty"`
	AgeMin             int      `json:"age_min"`
	AgeMax             int      `json:"age_max"`
	Genders            []int    `json:"genders,omitempty"`
	PublisherPlatforms []string `json:"publisher_platforms,omitempty"`
	DevicePlatforms    []string `json:"device_platforms,omitempty"`
	FacebookPositions  []string `json:"facebook_positions,omitempty"`
}

// DefaultTargeting é usada quando o chamador não informa segmentação.
func DefaultTargeting() *Targeting {
	return &Targeting{
		Countries: []string{"US"},
		AgeMin:    18,
		AgeMax:    65,
	}
}

// CreateCampaignRequest agrega os campos da criação de campanha. Os
// campos de ad set e vídeos são opcionais: quando AdSetName está vazio
// o fluxo cria apenas a campanha.
type CreateCampaignRequest struct {
	Name                string     `json:"name"`
	Objective           string     `json:"objective"`
	Status              string     `json:"status"`
	SpecialAdCategories []string   `json:"special_ad_categories"`
	SpendCap            *int64     `json:"spend_cap,omitempty"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	StopTime            *time.Time `json:"stop_time,omitempty"`
	BuyingType          string     `json:"buying_type"`
	IsDailyBudget       bool       `json:"is_daily_budget"`
	BudgetAmount        float64    `json:"budget_amount"`

	// Modo completo: campanha + ad set + creatives + ads
	AdSetName        string     `json:"ad_set_name,omitempty"`
	DailyBudget      int64      `json:"daily_budget,omitempty"`
	BillingEvent     string     `json:"billing_event,omitempty"`
	OptimizationGoal string     `json:"optimization_goal,omitempty"`
	BidAmount        *int64     `json:"bid_amount,omitempty"`
	Targeting        *Targeting `json:"targeting,omitempty"`
	SelectedVideoIDs []string   `json:"selected_video_ids,omitempty"`
}

// CreateAdSetRequest agrega os campos da criação de ad set.
// Valores monetários chegam em unidades inteiras da moeda e são
// convertidos para centavos pelo provisionador.
type CreateAdSetRequest struct {
	CampaignID       string     `json:"campaign_id"`
	Name             string     `json:"name"`
	DailyBudget      int64      `json:"daily_budget"`
	Status           string     `json:"status"`
	BillingEvent     string     `json:"billing_event"`
	OptimizationGoal string     `json:"optimization_goal"`
	BidAmount        *int64     `json:"bid_amount,omitempty"`
	Targeting        *Targeting `json:"targeting,omitempty"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	StopTime         *time.Time `json:"stop_time,omitempty"`
	SelectedVideoIDs []string   `json:"selected_video_ids,omitempty"`
}

// CreateAdsResult é o envelope de saída da criação de ads. A lista de
// ids sempre tem o mesmo tamanho da lista de creatives de entrada;
// AdvisoryError carrega a mensagem de uma falha absorvida sem tornar a
// resposta um erro.
type CreateAdsResult struct {
	AdIDs         []string `json:"ad_ids"`
	IsMock        bool     `json:"is_mock"`
	AdvisoryError string   `json:"advisory_error,omitempty"`
}

// AdFormatTestResult é a saída da sonda diagnóstica de formatos.
type AdFormatTestResult struct {
	Success bool            `json:"success"`
	Format  string          `json:"format"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}
