package projects

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/pkg/utils"
)

var (
	ErrMissingRequiredData = errors.New("nome, access token, ad account e page são obrigatórios")
	ErrProjectNotFound     = errors.New("projeto não encontrado")
)

// Manager administra os projetos e as credenciais do Facebook
// vinculadas a cada um.
type Manager interface {
	CreateProject(req *domain.CreateProjectRequest) (*domain.Project, error)
	GetProject(projectID int) (*domain.Project, error)
	ListProjects() ([]*domain.Project, error)
	UpdateFacebookAccount(projectID int, req *domain.UpdateFacebookAccountRequest) error
	GetFacebookAccount(projectID int) (*domain.FacebookAccount, error)
}

type Service struct {
	projectRepo repository.ProjectRepository
	accountRepo repository.FacebookAccountRepository
}

func NewService(
	projectRepo repository.ProjectRepository,
	accountRepo repository.FacebookAccountRepository,
) Manager {
	return &Service{
		projectRepo: projectRepo,
		accountRepo: accountRepo,
	}
}

// CreateProject cria o projeto e semeia a conta do Facebook vinculada.
// O código curto identifica o projeto em URLs e integrações.
func (s *Service) CreateProject(req *domain.CreateProjectRequest) (*domain.Project, error) {
	if req == nil || req.Name == "" || req.AccessToken == "" || req.AdAccountID == "" || req.PageID == "" {
		return nil, ErrMissingRequiredData
	}

	code, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Create(&domain.Project{
		Code: code,
		Name: req.Name,
	})
	if err != nil {
		return nil, err
	}

	account := &domain.FacebookAccount{
		ProjectID:   project.ID,
		AccessToken: req.AccessToken,
		AdAccountID: req.AdAccountID,
		PageID:      req.PageID,
	}

	if err := s.accountRepo.SaveOrUpdate(account); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project_id":   project.ID,
		"project_code": project.Code,
	}).Info("Projeto criado com sucesso")

	return project, nil
}

func (s *Service) GetProject(projectID int) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *Service) ListProjects() ([]*domain.Project, error) {
	return s.projectRepo.List()
}

// UpdateFacebookAccount troca as credenciais do projeto. Usado quando
// o token de acesso expira ou a conta de anúncios muda.
func (s *Service) UpdateFacebookAccount(projectID int, req *domain.UpdateFacebookAccountRequest) error {
	if req == nil || req.AccessToken == "" || req.AdAccountID == "" || req.PageID == "" {
		return ErrMissingRequiredData
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return err
	}

	if project == nil {
		return ErrProjectNotFound
	}

	return s.accountRepo.SaveOrUpdate(&domain.FacebookAccount{
		ProjectID:   projectID,
		AccessToken: req.AccessToken,
		AdAccountID: req.AdAccountID,
		PageID:      req.PageID,
	})
}

func (s *Service) GetFacebookAccount(projectID int) (*domain.FacebookAccount, error) {
	account, err := s.accountRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, err
	}

	if account == nil {
		return nil, ErrProjectNotFound
	}

	return account, nil
}
