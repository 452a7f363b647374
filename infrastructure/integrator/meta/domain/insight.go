package metadomain

import "strconv"

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights diários de campanha como a
// plataforma devolve: números vêm como strings no JSON.
type InsightRow struct {
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	Impressions string   `json:"impressions"`
	Reach       string   `json:"reach"`
	Spend       string   `json:"spend"`
	Actions     []Action `json:"actions"`
}

// ImpressionsInt converte impressões para inteiro; zero em caso de erro.
func (r *InsightRow) ImpressionsInt() int64 {
	v, _ := strconv.ParseInt(r.Impressions, 10, 64)
	return v
}

// ReachInt converte o alcance para inteiro; zero em caso de erro.
func (r *InsightRow) ReachInt() int64 {
	v, _ := strconv.ParseInt(r.Reach, 10, 64)
	return v
}

// SpendFloat converte o gasto para float; zero em caso de erro.
func (r *InsightRow) SpendFloat() float64 {
	v, _ := strconv.ParseFloat(r.Spend, 64)
	return v
}

// CPI calcula o custo por instalação a partir da ação
// mobile_app_install; zero quando não houver instalações.
func (r *InsightRow) CPI() float64 {
	for _, action := range r.Actions {
		if action.ActionType != "mobile_app_install" {
			continue
		}

		installs, err := strconv.ParseFloat(action.Value, 64)
		if err != nil || installs <= 0 {
			return 0
		}

		return r.SpendFloat() / installs
	}

	return 0
}
