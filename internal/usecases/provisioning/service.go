package provisioning

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Teto documentado da plataforma para bid_amount, em unidades
	// inteiras da moeda. Valores acima são ajustados em silêncio.
	maxBidAmount = 1000

	// Duração mínima aceita quando início e fim são informados.
	minScheduleDuration = 24 * time.Hour

	// Imagem usada quando a plataforma ainda não gerou thumbnail
	// para o vídeo.
	defaultThumbnailURL = "https://www.facebook.com/images/fb_icon_325x325.png"

	defaultAdStatus = "PAUSED"
)

// Metas de otimização que exigem bid_amount explícito.
var goalsRequiringBid = map[string]struct{}{
	"LINK_CLICKS":     {},
	"APP_INSTALLS":    {},
	"LEAD_GENERATION": {},
	"CONVERSIONS":     {},
}

// Service implementa o Provisioner contra a Graph API do Meta.
// Credenciais são resolvidas por projeto a cada operação; não há
// cache de credenciais nem de formato de payload.
type Service struct {
	cfg               *config.Config
	client            metaclient.Client
	accountRepository repository.FacebookAccountRepository
	onUnrecoverable   FallbackPolicy
}

// NewService cria uma nova instância do provisionador
func NewService(
	cfg *config.Config,
	client metaclient.Client,
	accountRepo repository.FacebookAccountRepository,
) *Service {
	return &Service{
		cfg:               cfg,
		client:            client,
		accountRepository: accountRepo,
		onUnrecoverable:   PolicyPlaceholder,
	}
}

// WithFallbackPolicy troca o destino das falhas irrecuperáveis
func (s *Service) WithFallbackPolicy(policy FallbackPolicy) *Service {
	s.onUnrecoverable = policy
	return s
}

// resolveAuth busca as credenciais do Facebook do projeto. Lookup
// local, sem cache: cada operação re-resolve.
func (s *Service) resolveAuth(projectID int) (domain.FacebookAuth, error) {
	account, err := s.accountRepository.GetByProjectID(projectID)
	if err != nil {
		return domain.FacebookAuth{}, err
	}

	if account == nil {
		return domain.FacebookAuth{}, fmt.Errorf("%w: project %d", ErrAccountNotFound, projectID)
	}

	return account.Auth(), nil
}

// CreateCampaign cria a campanha remota. Falha alto: a mensagem da
// plataforma é propagada sem retry local.
func (s *Service) CreateCampaign(ctx context.Context, projectID int, req *domain.CreateCampaignRequest) (string, error) {
	if req == nil || req.Name == "" {
		return "", NewValidationError("name", "campaign name is required")
	}

	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return "", err
	}

	buyingType := req.BuyingType
	if buyingType == "" {
		buyingType = "AUCTION"
	}

	payload := map[string]any{
		"name":        req.Name,
		"objective":   req.Objective,
		"status":      req.Status,
		"buying_type": buyingType,
		// A plataforma exige a lista explícita e NONE é o único valor
		// suportado neste fluxo, mesmo que o chamador envie outra coisa.
		"special_ad_categories": []string{"NONE"},
	}

	if req.SpendCap != nil {
		// A plataforma trabalha em centavos
		payload["spend_cap"] = *req.SpendCap * 100
	}

	if req.StartTime != nil {
		payload["start_time"] = req.StartTime.Format(time.RFC3339)
	}

	if req.StopTime != nil {
		payload["stop_time"] = req.StopTime.Format(time.RFC3339)
	}

	campaignID, err := s.client.CreateCampaign(ctx, auth, payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project_id":    projectID,
			"campaign_name": req.Name,
			"error":         err.Error(),
		}).Error("Erro ao criar campanha")
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"project_id":  projectID,
		"campaign_id": campaignID,
	}).Info("Campanha criada com sucesso")

	return campaignID, nil
}

// CreateAdSet valida a requisição e cria o ad set. Toda validação
// acontece antes de qualquer chamada remota.
func (s *Service) CreateAdSet(ctx context.Context, projectID int, req *domain.CreateAdSetRequest) (string, error) {
	if req == nil || req.CampaignID == "" {
		return "", NewValidationError("campaign_id", "campaign id is required")
	}

	bidAmount := req.BidAmount
	if bidAmount != nil && *bidAmount > maxBidAmount {
		// Ajuste silencioso ao teto da plataforma, não é erro
		clamped := int64(maxBidAmount)
		bidAmount = &clamped
	}

	if req.StartTime != nil && req.StopTime != nil {
		if req.StopTime.Sub(*req.StartTime) < minScheduleDuration {
			return "", NewValidationError("stop_time", "minimum schedule duration is 24 hours")
		}
	}

	if bidAmount == nil {
		if _, required := goalsRequiringBid[req.OptimizationGoal]; required {
			return "", NewValidationError("bid_amount", "bid amount required for this optimization goal")
		}
	}

	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return "", err
	}

	targeting := req.Targeting
	if targeting == nil {
		targeting = domain.DefaultTargeting()
	}

	targetingJSON, err := json.Marshal(buildTargetingPayload(targeting))
	if err != nil {
		return "", fmt.Errorf("erro ao serializar segmentação: %w", err)
	}

	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("campaign_id", req.CampaignID)
	form.Set("daily_budget", strconv.FormatInt(req.DailyBudget*100, 10))
	form.Set("billing_event", req.BillingEvent)
	form.Set("optimization_goal", req.OptimizationGoal)
	form.Set("status", req.Status)
	form.Set("targeting", string(targetingJSON))

	if bidAmount != nil {
		form.Set("bid_amount", strconv.FormatInt(*bidAmount*100, 10))
	}

	if req.StartTime != nil {
		form.Set("start_time", req.StartTime.Format(time.RFC3339))
	}

	if req.StopTime != nil {
		form.Set("end_time", req.StopTime.Format(time.RFC3339))
	}

	adSetID, err := s.client.CreateAdSet(ctx, auth, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project_id":  projectID,
			"campaign_id": req.CampaignID,
			"error":       err.Error(),
		}).Error("Erro ao criar ad set")
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"project_id":  projectID,
		"campaign_id": req.CampaignID,
		"ad_set_id":   adSetID,
	}).Info("Ad set criado com sucesso")

	return adSetID, nil
}

// buildTargetingPayload monta o objeto de segmentação no formato da
// plataforma. Coleções vazias são omitidas inteiramente: a plataforma
// trata presença e ausência de forma diferente. Apenas age_min e
// age_max são sempre enviados.
func buildTargetingPayload(t *domain.Targeting) map[string]any {
	payload := map[string]any{
		"age_min": t.AgeMin,
		"age_max": t.AgeMax,
	}

	if len(t.Countries) > 0 {
		payload["geo_locations"] = map[string]any{
			"countries": t.Countries,
		}
	}

	if len(t.Genders) > 0 {
		payload["genders"] = t.Genders
	}

	if len(t.PublisherPlatforms) > 0 {
		payload["publisher_platforms"] = t.PublisherPlatforms
	}

	if len(t.DevicePlatforms) > 0 {
		payload["device_platforms"] = t.DevicePlatforms
	}

	if len(t.FacebookPositions) > 0 {
		payload["facebook_positions"] = t.FacebookPositions
	}

	return payload
}

// CreateAdCreatives cria um creative de vídeo por vídeo, de forma
// independente: a falha de um não aborta os demais. O lote só falha
// quando nenhum creative foi produzido.
func (s *Service) CreateAdCreatives(ctx context.Context, projectID int, adSetID string, videoIDs []string) ([]string, error) {
	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return nil, err
	}

	creativeIDs := make([]string, 0, len(videoIDs))

	for i, videoID := range videoIDs {
		thumbnailURL := s.videoThumbnail(ctx, auth, videoID)

		creativeID, err := s.createVideoCreative(ctx, auth, videoID, thumbnailURL, i)
		if err != nil {
			if s.onUnrecoverable == PolicyAbort {
				return nil, err
			}

			logrus.WithFields(logrus.Fields{
				"project_id": projectID,
				"ad_set_id":  adSetID,
				"video_id":   videoID,
				"error":      err.Error(),
			}).Warn("Creative substituído por placeholder após esgotar tentativas")

			creativeIDs = append(creativeIDs, mockCreativeID(i))
			continue
		}

		creativeIDs = append(creativeIDs, creativeID)
	}

	if len(creativeIDs) == 0 {
		return nil, ErrAllCreativesFailed
	}

	return creativeIDs, nil
}

// videoThumbnail busca o thumbnail do vídeo na plataforma. Qualquer
// falha cai na imagem padrão: é um melhor-esforço deliberado, nunca
// um erro duro.
func (s *Service) videoThumbnail(ctx context.Context, auth domain.FacebookAuth, videoID string) string {
	thumbnailURL, err := s.client.GetVideoThumbnail(ctx, auth, videoID)
	if err != nil || thumbnailURL == "" {
		fallback := s.cfg.Meta.DefaultThumbnailURL
		if fallback == "" {
			fallback = defaultThumbnailURL
		}

		if err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID,
				"error":    err.Error(),
			}).Warn("Thumbnail indisponível, usando imagem padrão")
		}

		return fallback
	}

	return thumbnailURL
}

// createVideoCreative tenta o payload completo e, se rejeitado, uma
// única vez a variante simplificada sem call_to_action.
func (s *Service) createVideoCreative(ctx context.Context, auth domain.FacebookAuth, videoID, thumbnailURL string, index int) (string, error) {
	form, err := buildCreativeForm(auth.PageID, videoID, thumbnailURL, index, false)
	if err != nil {
		return "", err
	}

	creativeID, err := s.client.CreateAdCreative(ctx, auth, form)
	if err == nil {
		return creativeID, nil
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"error":    err.Error(),
	}).Warn("Creative rejeitado, tentando variante simplificada")

	form, buildErr := buildCreativeForm(auth.PageID, videoID, thumbnailURL, index, true)
	if buildErr != nil {
		return "", buildErr
	}

	return s.client.CreateAdCreative(ctx, auth, form)
}

// buildCreativeForm monta o formulário de criação do creative com o
// object_story_spec serializado como JSON.
func buildCreativeForm(pageID, videoID, thumbnailURL string, index int, simplified bool) (url.Values, error) {
	videoData := map[string]any{
		"video_id":  videoID,
		"image_url": thumbnailURL,
		"title":     "Video Ad",
		"message":   "Check out our video",
	}

	if simplified {
		videoData["message"] = "Watch our video"
	} else {
		videoData["call_to_action"] = map[string]any{
			"type": "LEARN_MORE",
			"value": map[string]string{
				"link": "https://www.facebook.com",
			},
		}
	}

	storySpec, err := json.Marshal(map[string]any{
		"page_id":    pageID,
		"video_data": videoData,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar object_story_spec: %w", err)
	}

	form := url.Values{}
	form.Set("name", fmt.Sprintf("Video Creative %d", index+1))
	form.Set("object_story_spec", string(storySpec))

	return form, nil
}

// CreateAds cria um ad por creative, sondando as variantes de payload
// em ordem fixa. A lista retornada tem sempre o mesmo tamanho da lista
// de creatives de entrada: todo creative produz exatamente um id, real
// ou sintético. Sob PolicyPlaceholder a operação nunca propaga falha
// dura; uma pane vira resposta de sucesso com mensagem consultiva.
func (s *Service) CreateAds(ctx context.Context, projectID int, adSetID string, creativeIDs []string, status, namePrefix string) (result *domain.CreateAdsResult, err error) {
	prefix := namePrefix
	if prefix == "" {
		prefix = MockAdPrefix
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"project_id": projectID,
				"ad_set_id":  adSetID,
				"panic":      fmt.Sprintf("%v", r),
			}).Error("Pane na criação de ads")

			if s.onUnrecoverable == PolicyAbort {
				result = nil
				err = fmt.Errorf("erro fatal na criação de ads: %v", r)
				return
			}

			result = &domain.CreateAdsResult{
				AdIDs:         []string{mockAdID(prefix, 1)},
				IsMock:        true,
				AdvisoryError: fmt.Sprintf("%v", r),
			}
			err = nil
		}
	}()

	if status == "" {
		status = defaultAdStatus
	}

	// Lote com placeholder de creative já é sabidamente incapaz de
	// criar ads reais: sintetiza tudo sem nenhuma chamada remota.
	if hasPlaceholderCreative(creativeIDs) {
		adIDs := make([]string, 0, len(creativeIDs))
		for i := range creativeIDs {
			adIDs = append(adIDs, mockAdID(prefix, i+1))
		}

		logrus.WithFields(logrus.Fields{
			"project_id": projectID,
			"ad_set_id":  adSetID,
			"total":      len(adIDs),
		}).Info("Lote com creatives placeholder, todos os ads sintetizados localmente")

		return &domain.CreateAdsResult{AdIDs: adIDs, IsMock: true}, nil
	}

	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return nil, err
	}

	adIDs := make([]string, 0, len(creativeIDs))
	mockCount := 0
	circuitOpen := false

	for i, creativeID := range creativeIDs {
		if circuitOpen {
			adIDs = append(adIDs, mockAdID(prefix, i+1))
			mockCount++
			continue
		}

		adID, lastErr := s.probeAdFormats(ctx, auth, metadomain.AdRequest{
			Name:       fmt.Sprintf("%s %d", prefix, i+1),
			AdSetID:    adSetID,
			CreativeID: creativeID,
			Status:     status,
		})
		if lastErr == nil {
			adIDs = append(adIDs, adID)
			continue
		}

		if isPaymentMethodError(lastErr) {
			// Condição irrecuperável para a conta inteira: nenhuma
			// chamada remota adicional neste lote teria sucesso.
			if s.onUnrecoverable == PolicyAbort {
				return nil, lastErr
			}

			logrus.WithFields(logrus.Fields{
				"project_id":  projectID,
				"ad_set_id":   adSetID,
				"creative_id": creativeID,
			}).Warn("Conta sem método de pagamento, restante do lote será sintetizado")

			circuitOpen = true
			adIDs = append(adIDs, mockAdID(prefix, i+1))
			mockCount++
			continue
		}

		if s.onUnrecoverable == PolicyAbort {
			return nil, lastErr
		}

		logrus.WithFields(logrus.Fields{
			"project_id":  projectID,
			"ad_set_id":   adSetID,
			"creative_id": creativeID,
			"error":       lastErr.Error(),
		}).Warn("Ad substituído por placeholder após esgotar os formatos")

		adIDs = append(adIDs, mockAdID(prefix, i+1))
		mockCount++
	}

	return &domain.CreateAdsResult{
		AdIDs:  adIDs,
		IsMock: mockCount > 0,
	}, nil
}

// probeAdFormats tenta as variantes de payload em ordem fixa até uma
// ter sucesso. Nada é memorizado: toda chamada recomeça do topo.
func (s *Service) probeAdFormats(ctx context.Context, auth domain.FacebookAuth, req metadomain.AdRequest) (string, error) {
	var lastErr error

	for _, format := range metadomain.ProbeOrder {
		adID, _, err := s.client.CreateAd(ctx, auth, req, format)
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"ad_id":  adID,
				"format": format.String(),
			}).Info("Ad criado com sucesso")
			return adID, nil
		}

		logrus.WithFields(logrus.Fields{
			"creative_id": req.CreativeID,
			"format":      format.String(),
			"error":       err.Error(),
		}).Debug("Formato de payload rejeitado")

		lastErr = err
	}

	return "", lastErr
}

// isPaymentMethodError verifica o subcódigo de método de pagamento,
// que abre o circuit breaker do lote.
func isPaymentMethodError(err error) bool {
	var reqErr *metadomain.RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.Subcode() == metadomain.SubcodePaymentMethod
}

// TestAdFormat tenta uma única variante contra a plataforma e devolve
// o resultado bruto. Superfície diagnóstica, sem fallback.
func (s *Service) TestAdFormat(ctx context.Context, projectID int, adSetID, creativeID, formatName, adName string) (*domain.AdFormatTestResult, error) {
	format, err := metadomain.ParseAdPayloadFormat(formatName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, formatName)
	}

	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return nil, err
	}

	if adName == "" {
		adName = "Format Test Ad"
	}

	_, raw, callErr := s.client.CreateAd(ctx, auth, metadomain.AdRequest{
		Name:       adName,
		AdSetID:    adSetID,
		CreativeID: creativeID,
		Status:     defaultAdStatus,
	}, format)

	return &domain.AdFormatTestResult{
		Success: callErr == nil,
		Format:  format.String(),
		Raw:     raw,
	}, nil
}
