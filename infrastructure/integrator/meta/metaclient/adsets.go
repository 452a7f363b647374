package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

type responseAdSetList struct {
	Data   []metadomain.AdSet `json:"data"`
	Paging metadomain.Paging  `json:"paging"`
}

// CreateAdSet cria um ad set. Esse endpoint aceita form-encoded, com a
// segmentação já serializada como JSON dentro do campo targeting.
func (c *MetaClient) CreateAdSet(ctx context.Context, auth domain.FacebookAuth, form url.Values) (string, error) {
	form.Set("access_token", auth.AccessToken)

	path := fmt.Sprintf("%s/adsets", accountPath(auth))

	body, err := c.postForm(ctx, path, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"campaign_id":   form.Get("campaign_id"),
			"error":         err.Error(),
		}).Error("Erro ao criar ad set na API do Meta")
		return "", err
	}

	return createdID(body)
}

// ListAdSets lista os ad sets da conta; campaignID vazio lista todos.
func (c *MetaClient) ListAdSets(ctx context.Context, auth domain.FacebookAuth, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,daily_budget,campaign_id,start_time,end_time")
	params.Add("access_token", auth.AccessToken)
	if campaignID != "" {
		params.Add("campaign_id", campaignID)
	}

	path := fmt.Sprintf("%s/adsets", accountPath(auth))

	body, err := c.get(ctx, path, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"campaign_id":   campaignID,
			"error":         err.Error(),
		}).Error("Erro ao listar ad sets na API do Meta")
		return nil, err
	}

	var response responseAdSetList
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de ad sets")
		return nil, err
	}

	return response.Data, nil
}
