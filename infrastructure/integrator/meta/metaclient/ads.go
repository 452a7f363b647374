package metaclient

import (
	"context"
	"errors"
	"fmt"

	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

// CreateAd cria um ad usando o formato de payload informado. Retorna
// o corpo bruto da resposta junto com o ID para que o chamador possa
// inspecionar a resposta da plataforma em caso de falha.
func (c *MetaClient) CreateAd(ctx context.Context, auth domain.FacebookAuth, req metadomain.AdRequest, format metadomain.AdPayloadFormat) (string, []byte, error) {
	contentType, payload, err := req.Encode(format, auth.AccessToken)
	if err != nil {
		return "", nil, err
	}

	path := fmt.Sprintf("%s/ads", accountPath(auth))

	body, err := c.post(ctx, path, contentType, payload)
	if err != nil {
		var reqErr *metadomain.RequestError
		if errors.As(err, &reqErr) {
			return "", reqErr.Raw, err
		}
		return "", nil, err
	}

	id, err := createdID(body)
	if err != nil {
		return "", body, err
	}

	return id, body, nil
}
