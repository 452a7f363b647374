package projects

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func validRequest() *domain.CreateProjectRequest {
	return &domain.CreateProjectRequest{
		Name:        "Loja Nova",
		AccessToken: "tok",
		AdAccountID: "act_1",
		PageID:      "page-1",
	}
}

func TestService_CreateProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := NewService(mockProjectRepo, mockAccountRepo)

	t.Run("Cria o projeto e semeia a conta vinculada", func(t *testing.T) {
		mockProjectRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(p *domain.Project) (*domain.Project, error) {
				assert.Equal(t, "Loja Nova", p.Name)
				assert.Len(t, p.Code, 6)
				p.ID = 10
				return p, nil
			})

		var seeded *domain.FacebookAccount
		mockAccountRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(a *domain.FacebookAccount) error {
				seeded = a
				return nil
			})

		project, err := service.CreateProject(validRequest())

		require.NoError(t, err)
		assert.Equal(t, 10, project.ID)
		require.NotNil(t, seeded)
		assert.Equal(t, 10, seeded.ProjectID)
		assert.Equal(t, "act_1", seeded.AdAccountID)
	})

	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*domain.CreateProjectRequest)
		}{
			{name: "sem nome", mutate: func(r *domain.CreateProjectRequest) { r.Name = "" }},
			{name: "sem token", mutate: func(r *domain.CreateProjectRequest) { r.AccessToken = "" }},
			{name: "sem conta de anúncios", mutate: func(r *domain.CreateProjectRequest) { r.AdAccountID = "" }},
			{name: "sem página", mutate: func(r *domain.CreateProjectRequest) { r.PageID = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				tt.mutate(req)

				_, err := service.CreateProject(req)
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			})
		}
	})
}

func TestService_GetProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := NewService(mockProjectRepo, mockAccountRepo)

	t.Run("Projeto inexistente vira ErrProjectNotFound", func(t *testing.T) {
		mockProjectRepo.EXPECT().GetByID(99).Return(nil, nil)

		_, err := service.GetProject(99)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("Erro do repositório é propagado", func(t *testing.T) {
		mockProjectRepo.EXPECT().GetByID(1).Return(nil, fmt.Errorf("db down"))

		_, err := service.GetProject(1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestService_UpdateFacebookAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := NewService(mockProjectRepo, mockAccountRepo)

	t.Run("Atualiza as credenciais de um projeto existente", func(t *testing.T) {
		mockProjectRepo.EXPECT().GetByID(10).Return(&domain.Project{ID: 10}, nil)
		mockAccountRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(a *domain.FacebookAccount) error {
				assert.Equal(t, 10, a.ProjectID)
				assert.Equal(t, "tok-novo", a.AccessToken)
				return nil
			})

		err := service.UpdateFacebookAccount(10, &domain.UpdateFacebookAccountRequest{
			AccessToken: "tok-novo",
			AdAccountID: "act_2",
			PageID:      "page-2",
		})

		assert.NoError(t, err)
	})

	t.Run("Projeto inexistente não grava credenciais", func(t *testing.T) {
		mockProjectRepo.EXPECT().GetByID(99).Return(nil, nil)

		err := service.UpdateFacebookAccount(99, &domain.UpdateFacebookAccountRequest{
			AccessToken: "tok",
			AdAccountID: "act_1",
			PageID:      "page-1",
		})

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("Credenciais incompletas são rejeitadas", func(t *testing.T) {
		err := service.UpdateFacebookAccount(10, &domain.UpdateFacebookAccountRequest{
			AccessToken: "tok",
		})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}
