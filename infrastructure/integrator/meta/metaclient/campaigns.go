package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

type responseCampaignList struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

// CreateCampaign cria uma campanha na conta do projeto. O payload já
// vem montado pelo provisionador; aqui apenas anexamos o token e
// enviamos como JSON, que é a codificação aceita por esse endpoint.
func (c *MetaClient) CreateCampaign(ctx context.Context, auth domain.FacebookAuth, payload map[string]any) (string, error) {
	payload["access_token"] = auth.AccessToken

	path := fmt.Sprintf("%s/campaigns", accountPath(auth))

	body, err := c.postJSON(ctx, path, payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao criar campanha na API do Meta")
		return "", err
	}

	return createdID(body)
}

// ListCampaigns lista as campanhas da conta do projeto.
// TODO adicionar loop para pegar todas as páginas
func (c *MetaClient) ListCampaigns(ctx context.Context, auth domain.FacebookAuth) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status")
	params.Add("access_token", auth.AccessToken)

	path := fmt.Sprintf("%s/campaigns", accountPath(auth))

	body, err := c.get(ctx, path, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao listar campanhas na API do Meta")
		return nil, err
	}

	var response responseCampaignList
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de campanhas")
		return nil, err
	}

	return response.Data, nil
}
