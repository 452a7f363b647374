package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
	"github.com/vfg2006/ad-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ad-dashboard-api/pkg/log"
	"github.com/vfg2006/ad-dashboard-api/pkg/utils"
)

// CampaignPipelineResponse agrega o resultado de cada etapa da criação
// da hierarquia: campanha, ad set, creatives e ads.
type CampaignPipelineResponse struct {
	CampaignID    string   `json:"campaign_id"`
	AdSetID       string   `json:"ad_set_id,omitempty"`
	CreativeIDs   []string `json:"creative_ids,omitempty"`
	AdIDs         []string `json:"ad_ids,omitempty"`
	IsMock        bool     `json:"is_mock,omitempty"`
	AdvisoryError string   `json:"advisory_error,omitempty"`
}

// writeProvisioningError traduz os erros do provisionador para a
// resposta HTTP: validação e conta ausente viram 4xx, o resto expõe a
// mensagem da plataforma.
func writeProvisioningError(w http.ResponseWriter, err error) {
	switch {
	case provisioning.IsValidationError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, provisioning.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	}
}

// CreateCampaign cria a campanha e, quando a requisição traz os campos
// de ad set, percorre o restante da hierarquia na mesma chamada. O
// espelho local é gravado aqui, depois do sucesso remoto.
func CreateCampaign(service provisioning.Provisioner, campaignRepo repository.CampaignRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		campaignID, err := service.CreateCampaign(r.Context(), projectID, &req)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"error":      err.Error(),
			}).Error("Erro ao criar campanha")

			writeProvisioningError(w, err)
			return
		}

		response := &CampaignPipelineResponse{CampaignID: campaignID}

		// Espelho local: a plataforma segue sendo a fonte da verdade,
		// e a falha aqui não desfaz a criação remota.
		mirror := &domain.Campaign{
			ProjectID:     projectID,
			FbCampaignID:  campaignID,
			Name:          req.Name,
			IsDailyBudget: req.IsDailyBudget,
			BudgetAmount:  req.BudgetAmount,
		}
		if req.Targeting != nil {
			if raw, err := json.Marshal(req.Targeting); err == nil {
				mirror.Targeting = raw
			}
		}
		if _, err := campaignRepo.Save(mirror); err != nil {
			logger.WithFields(log.Fields{
				"project_id":  projectID,
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Warn("Erro ao gravar espelho local da campanha")
		}

		// Modo completo: ad set, creatives e ads na mesma requisição
		if req.AdSetName != "" {
			adSetID, err := service.CreateAdSet(r.Context(), projectID, &domain.CreateAdSetRequest{
				CampaignID:       campaignID,
				Name:             req.AdSetName,
				DailyBudget:      req.DailyBudget,
				Status:           req.Status,
				BillingEvent:     req.BillingEvent,
				OptimizationGoal: req.OptimizationGoal,
				BidAmount:        req.BidAmount,
				Targeting:        req.Targeting,
				StartTime:        req.StartTime,
				StopTime:         req.StopTime,
			})
			if err != nil {
				logger.WithFields(log.Fields{
					"project_id":  projectID,
					"campaign_id": campaignID,
					"error":       err.Error(),
				}).Error("Erro ao criar ad set")

				writeProvisioningError(w, err)
				return
			}
			response.AdSetID = adSetID

			if len(req.SelectedVideoIDs) > 0 {
				creativeIDs, err := service.CreateAdCreatives(r.Context(), projectID, adSetID, req.SelectedVideoIDs)
				if err != nil {
					logger.WithFields(log.Fields{
						"project_id": projectID,
						"ad_set_id":  adSetID,
						"error":      err.Error(),
					}).Error("Erro ao criar creatives")

					writeProvisioningError(w, err)
					return
				}
				response.CreativeIDs = creativeIDs

				adsResult, err := service.CreateAds(r.Context(), projectID, adSetID, creativeIDs, req.Status, req.Name)
				if err != nil {
					writeProvisioningError(w, err)
					return
				}
				response.AdIDs = adsResult.AdIDs
				response.IsMock = adsResult.IsMock
				response.AdvisoryError = adsResult.AdvisoryError
			}
		}

		logger.WithFields(log.Fields{
			"project_id":  projectID,
			"campaign_id": campaignID,
			"ad_set_id":   response.AdSetID,
			"ads":         len(response.AdIDs),
		}).Info("Hierarquia da campanha provisionada")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response)
	})
}

// ListCampaigns lista o espelho local das campanhas do projeto.
func ListCampaigns(campaignRepo repository.CampaignRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		campaigns, err := campaignRepo.ListByProjectID(projectID)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"error":      err.Error(),
			}).Error("Erro ao listar campanhas")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	})
}

// CreateAdSet cria um ad set avulso dentro de uma campanha existente.
func CreateAdSet(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		var req domain.CreateAdSetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		adSetID, err := service.CreateAdSet(r.Context(), projectID, &req)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id":  projectID,
				"campaign_id": req.CampaignID,
				"error":       err.Error(),
			}).Error("Erro ao criar ad set")

			writeProvisioningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"ad_set_id": adSetID})
	})
}

type createAdCreativesRequest struct {
	VideoIDs []string `json:"video_ids"`
}

// CreateAdCreatives cria os creatives de vídeo de um ad set.
func CreateAdCreatives(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		adSetID := httprouter.ParamsFromContext(r.Context()).ByName("adset_id")

		var req createAdCreativesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		creativeIDs, err := service.CreateAdCreatives(r.Context(), projectID, adSetID, req.VideoIDs)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"ad_set_id":  adSetID,
				"error":      err.Error(),
			}).Error("Erro ao criar creatives")

			writeProvisioningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"creative_ids": creativeIDs})
	})
}

type createAdsRequest struct {
	CreativeIDs []string `json:"creative_ids"`
	Status      string   `json:"status,omitempty"`
	Name        string   `json:"name,omitempty"`
}

// CreateAds cria um ad por creative dentro do ad set.
func CreateAds(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		adSetID := httprouter.ParamsFromContext(r.Context()).ByName("adset_id")

		var req createAdsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(req.CreativeIDs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de creatives vazia", nil)
			return
		}

		result, err := service.CreateAds(r.Context(), projectID, adSetID, req.CreativeIDs, req.Status, req.Name)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"ad_set_id":  adSetID,
				"error":      err.Error(),
			}).Error("Erro ao criar anúncios")

			writeProvisioningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(result)
	})
}

type testAdFormatRequest struct {
	AdSetID    string `json:"adset_id"`
	CreativeID string `json:"creative_id"`
	Format     string `json:"format"`
	Name       string `json:"name,omitempty"`
}

// TestAdCreation é a superfície diagnóstica de formatos de payload.
func TestAdCreation(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		var req testAdFormatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		result, err := service.TestAdFormat(r.Context(), projectID, req.AdSetID, req.CreativeID, req.Format, req.Name)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"format":     req.Format,
				"error":      err.Error(),
			}).Warn("Teste de formato de anúncio falhou")

			writeProvisioningError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"project_id": projectID,
			"format":     result.Format,
			"success":    result.Success,
		}).Debugf("Resposta da plataforma: %s", utils.PrettyJson(result.Raw))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
}

// GetCampaignInsights lê a série local de métricas de uma campanha.
func GetCampaignInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		campaignID, err := strconv.Atoi(id)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de campanha inválido", nil)
			return
		}

		insights, err := service.ListByCampaign(campaignID)
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Error("Erro ao buscar insights da campanha")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insights)
	})
}
