package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestService_ValidatePasswordStrength(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{
			name:     "Senha forte passa",
			password: "Abcdef1!",
		},
		{
			name:     "Senha curta é rejeitada",
			password: "Ab1!",
			wantErr:  "pelo menos 8 caracteres",
		},
		{
			name:     "Sem maiúscula é rejeitada",
			password: "abcdef1!",
			wantErr:  "letra maiúscula",
		},
		{
			name:     "Sem número é rejeitada",
			password: "Abcdefg!",
			wantErr:  "pelo menos um número",
		},
		{
			name:     "Sem caractere especial é rejeitada",
			password: "Abcdefg1",
			wantErr:  "caractere especial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{SecretKey: "test-secret"}
	service := NewService(mockUserRepo, cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := func() *domain.User {
		return &domain.User{
			ID:           1,
			Name:         "Ana",
			Email:        "ana@example.com",
			Active:       true,
			RoleID:       1,
			PasswordHash: string(hash),
		}
	}

	t.Run("Login com sucesso emite token válido", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("ana@example.com").Return(activeUser(), nil)

		token, err := service.LoginUser("  Ana@Example.com ", "Abcdef1!")

		require.NoError(t, err)
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "ana@example.com", claims.UserEmail)
	})

	t.Run("Senha incorreta é rejeitada", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("ana@example.com").Return(activeUser(), nil)

		_, err := service.LoginUser("ana@example.com", "errada")

		assert.Error(t, err)
	})

	t.Run("Conta desativada não autentica", func(t *testing.T) {
		user := activeUser()
		user.Active = false
		mockUserRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

		_, err := service.LoginUser("ana@example.com", "Abcdef1!")

		assert.Error(t, err)
	})

	t.Run("Usuário inexistente não autentica", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("ninguem@example.com").Return(nil, nil)

		_, err := service.LoginUser("ninguem@example.com", "Abcdef1!")

		assert.Error(t, err)
	})
}
