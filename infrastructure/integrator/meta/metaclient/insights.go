package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

type insightListResponse struct {
	Data   []metadomain.InsightRow `json:"data"`
	Paging metadomain.Paging       `json:"paging"`
}

// GetCampaignInsights busca os insights diários de uma campanha para o
// período do date_preset informado.
func (c *MetaClient) GetCampaignInsights(ctx context.Context, auth domain.FacebookAuth, campaignID, datePreset string) ([]metadomain.InsightRow, error) {
	params := url.Values{}
	params.Add("fields", "date_start,date_stop,impressions,reach,spend,actions")
	params.Add("date_preset", datePreset)
	params.Add("time_increment", "1")
	params.Add("access_token", auth.AccessToken)

	path := fmt.Sprintf("%s/insights", campaignID)

	body, err := c.get(ctx, path, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"date_preset": datePreset,
			"error":       err.Error(),
		}).Error("Erro ao buscar insights de campanha na API do Meta")
		return nil, err
	}

	var response insightListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar insights de campanha: %w", err)
	}

	return response.Data, nil
}
