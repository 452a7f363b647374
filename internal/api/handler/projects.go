package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/projects"
	"github.com/vfg2006/ad-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ad-dashboard-api/pkg/log"
)

// projectIDFromRequest extrai e valida o :id numérico da rota.
func projectIDFromRequest(r *http.Request) (int, error) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	return strconv.Atoi(id)
}

func CreateProject(service projects.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		project, err := service.CreateProject(&req)
		if err != nil {
			logger.WithError(err).Error("Erro ao criar projeto")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithField("project_id", project.ID).Info("Projeto criado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(project)
	})
}

func ListProjects(service projects.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		list, err := service.ListProjects()
		if err != nil {
			logger.WithError(err).Error("Erro ao listar projetos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	})
}

func GetProject(service projects.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		project, err := service.GetProject(projectID)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"error":      err.Error(),
			}).Warn("Projeto não encontrado")

			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(project)
	})
}

// UpdateFacebookAccount troca as credenciais do Facebook do projeto.
func UpdateFacebookAccount(service projects.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		var req domain.UpdateFacebookAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if err := service.UpdateFacebookAccount(projectID, &req); err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"error":      err.Error(),
			}).Error("Erro ao atualizar conta do Facebook")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithField("project_id", projectID).Info("Conta do Facebook atualizada")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Credenciais atualizadas com sucesso"})
	})
}
