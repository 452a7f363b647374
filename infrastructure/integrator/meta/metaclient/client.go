package metaclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client é a superfície de baixo nível da Graph API usada pelo
// provisionador. Cada método corresponde a um endpoint; as credenciais
// são resolvidas por projeto e repassadas em cada chamada.
type Client interface {
	CreateCampaign(ctx context.Context, auth domain.FacebookAuth, payload map[string]any) (string, error)
	CreateAdSet(ctx context.Context, auth domain.FacebookAuth, form url.Values) (string, error)
	CreateAdCreative(ctx context.Context, auth domain.FacebookAuth, form url.Values) (string, error)
	CreateAd(ctx context.Context, auth domain.FacebookAuth, req metadomain.AdRequest, format metadomain.AdPayloadFormat) (string, []byte, error)
	ListCampaigns(ctx context.Context, auth domain.FacebookAuth) ([]metadomain.Campaign, error)
	ListAdSets(ctx context.Context, auth domain.FacebookAuth, campaignID string) ([]metadomain.AdSet, error)
	GetVideoThumbnail(ctx context.Context, auth domain.FacebookAuth, videoID string) (string, error)
	ListVideos(ctx context.Context, auth domain.FacebookAuth) ([]metadomain.Video, error)
	UploadVideo(ctx context.Context, auth domain.FacebookAuth, fileName, contentType string, content io.Reader) (string, string, error)
	GetCampaignInsights(ctx context.Context, auth domain.FacebookAuth, campaignID, datePreset string) ([]metadomain.InsightRow, error)
}

type MetaClient struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// accountPath monta o segmento de caminho da conta de anúncios,
// tolerando ids já prefixados com "act_".
func accountPath(auth domain.FacebookAuth) string {
	return "act_" + strings.TrimPrefix(auth.AdAccountID, "act_")
}

// endpoint monta a URL completa de um caminho relativo da Graph API.
func (c *MetaClient) endpoint(path string) string {
	return fmt.Sprintf("%s/%s", c.cfg.Meta.URL, path)
}

// handleResponse lê o corpo e converte status não-2xx no RequestError
// com o envelope de erro decodificado.
func handleResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &metadomain.RequestError{
			StatusCode: resp.StatusCode,
			Raw:        body,
		}
		// O envelope pode não ser JSON válido; nesse caso só o corpo
		// bruto é reportado.
		_ = json.Unmarshal(body, &reqErr.Envelope)
		return nil, reqErr
	}

	return body, nil
}

func (c *MetaClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := c.endpoint(path)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	return handleResponse(resp)
}

func (c *MetaClient) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.post(ctx, path, "application/x-www-form-urlencoded", []byte(form.Encode()))
}

func (c *MetaClient) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload: %w", err)
	}

	return c.post(ctx, path, "application/json", body)
}

func (c *MetaClient) post(ctx context.Context, path, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	return handleResponse(resp)
}

// createdID extrai o id do envelope de sucesso de uma criação.
func createdID(body []byte) (string, error) {
	var created metadomain.CreateResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de criação: %w", err)
	}

	if created.ID == "" {
		return "", fmt.Errorf("resposta de criação sem id: %s", string(body))
	}

	return created.ID, nil
}
