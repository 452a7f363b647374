package videos

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
)

// Manager cuida da biblioteca de vídeos de cada projeto: upload para a
// plataforma e listagem combinando o remoto com o espelho local.
type Manager interface {
	ListVideos(ctx context.Context, projectID int) ([]metadomain.Video, error)
	UploadVideo(ctx context.Context, projectID int, fileName, contentType string, content io.Reader) (*domain.VideoUploadResult, error)
}

type Service struct {
	client      metaclient.Client
	accountRepo repository.FacebookAccountRepository
	videoRepo   repository.VideoRepository
}

func NewService(
	client metaclient.Client,
	accountRepo repository.FacebookAccountRepository,
	videoRepo repository.VideoRepository,
) Manager {
	return &Service{
		client:      client,
		accountRepo: accountRepo,
		videoRepo:   videoRepo,
	}
}

func (s *Service) resolveAuth(projectID int) (domain.FacebookAuth, error) {
	account, err := s.accountRepo.GetByProjectID(projectID)
	if err != nil {
		return domain.FacebookAuth{}, err
	}

	if account == nil {
		return domain.FacebookAuth{}, provisioning.ErrAccountNotFound
	}

	return account.Auth(), nil
}

// ListVideos lista os vídeos da biblioteca da conta do projeto.
func (s *Service) ListVideos(ctx context.Context, projectID int) ([]metadomain.Video, error) {
	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return nil, err
	}

	return s.client.ListVideos(ctx, auth)
}

// UploadVideo sobe o arquivo para a plataforma e registra o espelho
// local. A falha do espelho não desfaz o upload remoto: a plataforma é
// a fonte da verdade e a listagem remota ainda enxerga o vídeo.
func (s *Service) UploadVideo(ctx context.Context, projectID int, fileName, contentType string, content io.Reader) (*domain.VideoUploadResult, error) {
	auth, err := s.resolveAuth(projectID)
	if err != nil {
		return nil, err
	}

	videoID, thumbnailURL, err := s.client.UploadVideo(ctx, auth, fileName, contentType, content)
	if err != nil {
		return &domain.VideoUploadResult{
			File:    fileName,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	mirror := &domain.Video{
		ProjectID:    projectID,
		FbVideoID:    videoID,
		FileName:     fileName,
		ThumbnailURL: thumbnailURL,
	}

	if err := s.videoRepo.SaveOrUpdate(mirror); err != nil {
		logrus.WithFields(logrus.Fields{
			"project_id": projectID,
			"video_id":   videoID,
			"error":      err.Error(),
		}).Warn("Erro ao registrar espelho local do vídeo")
	}

	return &domain.VideoUploadResult{
		File:         fileName,
		Success:      true,
		VideoID:      videoID,
		ThumbnailURL: thumbnailURL,
	}, nil
}
