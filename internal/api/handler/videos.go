package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/videos"
	"github.com/vfg2006/ad-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ad-dashboard-api/pkg/log"
)

// Limite por arquivo de vídeo aceito no upload.
const maxVideoUploadBytes = 256 << 20

// ListVideos lista os vídeos da biblioteca da conta do projeto.
func ListVideos(service videos.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		list, err := service.ListVideos(r.Context(), projectID)
		if err != nil {
			logger.WithFields(log.Fields{
				"project_id": projectID,
				"error":      err.Error(),
			}).Error("Erro ao listar vídeos")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	})
}

// UploadVideos recebe um multipart com um ou mais arquivos no campo
// "videos" e sobe cada um de forma independente: a falha de um arquivo
// não aborta os demais.
func UploadVideos(service videos.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectID, err := projectIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de projeto inválido", nil)
			return
		}

		if err := r.ParseMultipartForm(maxVideoUploadBytes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Multipart inválido ou arquivo grande demais", nil)
			return
		}

		files := r.MultipartForm.File["videos"]
		if len(files) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum arquivo de vídeo enviado", nil)
			return
		}

		results := make([]*domain.VideoUploadResult, 0, len(files))
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				results = append(results, &domain.VideoUploadResult{
					File:    fileHeader.Filename,
					Success: false,
					Error:   err.Error(),
				})
				continue
			}

			result, err := service.UploadVideo(
				r.Context(),
				projectID,
				fileHeader.Filename,
				fileHeader.Header.Get("Content-Type"),
				file,
			)
			file.Close()

			if err != nil {
				logger.WithFields(log.Fields{
					"project_id": projectID,
					"file":       fileHeader.Filename,
					"error":      err.Error(),
				}).Error("Erro no upload de vídeo")

				writeProvisioningError(w, err)
				return
			}

			results = append(results, result)
		}

		logger.WithFields(log.Fields{
			"project_id": projectID,
			"files":      len(results),
		}).Info("Lote de vídeos processado")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})
}
