package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

// CreateAdCreative cria um ad creative de vídeo. O object_story_spec
// vai serializado como JSON dentro do formulário.
func (c *MetaClient) CreateAdCreative(ctx context.Context, auth domain.FacebookAuth, form url.Values) (string, error) {
	form.Set("access_token", auth.AccessToken)

	path := fmt.Sprintf("%s/adcreatives", accountPath(auth))

	body, err := c.postForm(ctx, path, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao criar ad creative na API do Meta")
		return "", err
	}

	return createdID(body)
}

// GetVideoThumbnail busca a URL do primeiro thumbnail gerado para um
// vídeo. Retorna vazio sem erro quando a plataforma ainda não tem
// thumbnail disponível.
func (c *MetaClient) GetVideoThumbnail(ctx context.Context, auth domain.FacebookAuth, videoID string) (string, error) {
	params := url.Values{}
	params.Add("fields", "thumbnails")
	params.Add("access_token", auth.AccessToken)

	body, err := c.get(ctx, videoID, params)
	if err != nil {
		return "", err
	}

	var info metadomain.VideoInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("erro ao decodificar thumbnails do vídeo: %w", err)
	}

	return info.FirstThumbnailURI(), nil
}
