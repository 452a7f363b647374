package insighting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	clientmocks "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
	"go.uber.org/mock/gomock"
)

func testCampaign(id int, fbID string) *domain.Campaign {
	return &domain.Campaign{
		ID:           id,
		ProjectID:    7,
		FbCampaignID: fbID,
		Name:         fmt.Sprintf("Campanha %d", id),
	}
}

func testFacebookAccount() *domain.FacebookAccount {
	return &domain.FacebookAccount{
		ProjectID:   7,
		AccessToken: "tok",
		AdAccountID: "act_1",
		PageID:      "page-1",
	}
}

func TestService_SyncCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)

	cfg := &config.Config{}
	cfg.InsightSync.DatePreset = "last_7d"

	service := NewService(cfg, mockClient, mockAccountRepo, mockCampaignRepo, mockInsightRepo)

	t.Run("Cada linha diária vira um upsert no espelho local", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(7).Return(testFacebookAccount(), nil)
		mockClient.EXPECT().
			GetCampaignInsights(gomock.Any(), gomock.Any(), "fb-camp-1", "last_7d").
			Return([]metadomain.InsightRow{
				{DateStart: "2026-08-01", Impressions: "1000", Reach: "800", Spend: "12.348"},
				{DateStart: "2026-08-02", Impressions: "500", Reach: "400", Spend: "6.00"},
			}, nil)

		var saved []*domain.Insight
		mockInsightRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(insight *domain.Insight) error {
				saved = append(saved, insight)
				return nil
			}).
			Times(2)

		count, err := service.SyncCampaign(context.Background(), testCampaign(1, "fb-camp-1"))

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, saved, 2)
		assert.Equal(t, 1, saved[0].CampaignID)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), saved[0].Date)
		assert.Equal(t, int64(1000), saved[0].Impressions)
		// Arredondado para duas casas
		assert.InDelta(t, 12.35, saved[0].Spend, 0.001)
	})

	t.Run("Linha com data inválida é ignorada sem abortar o restante", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(7).Return(testFacebookAccount(), nil)
		mockClient.EXPECT().
			GetCampaignInsights(gomock.Any(), gomock.Any(), "fb-camp-1", "last_7d").
			Return([]metadomain.InsightRow{
				{DateStart: "não-é-data", Impressions: "1"},
				{DateStart: "2026-08-03", Impressions: "9", Reach: "5", Spend: "1.00"},
			}, nil)

		mockInsightRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		count, err := service.SyncCampaign(context.Background(), testCampaign(1, "fb-camp-1"))

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Projeto sem conta vinculada é erro", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(7).Return(nil, nil)

		_, err := service.SyncCampaign(context.Background(), testCampaign(1, "fb-camp-1"))

		require.Error(t, err)
		assert.ErrorIs(t, err, provisioning.ErrAccountNotFound)
	})
}

func TestService_SyncAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)

	service := NewService(&config.Config{}, mockClient, mockAccountRepo, mockCampaignRepo, mockInsightRepo)

	t.Run("Falha de uma campanha não aborta as demais", func(t *testing.T) {
		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{
			testCampaign(1, "fb-camp-1"),
			testCampaign(2, "fb-camp-2"),
		}, nil)

		mockAccountRepo.EXPECT().GetByProjectID(7).Return(testFacebookAccount(), nil).Times(2)

		gomock.InOrder(
			mockClient.EXPECT().
				GetCampaignInsights(gomock.Any(), gomock.Any(), "fb-camp-1", gomock.Any()).
				Return(nil, fmt.Errorf("rate limited")),
			mockClient.EXPECT().
				GetCampaignInsights(gomock.Any(), gomock.Any(), "fb-camp-2", gomock.Any()).
				Return([]metadomain.InsightRow{
					{DateStart: "2026-08-01", Impressions: "10", Reach: "8", Spend: "2.00"},
				}, nil),
		)

		mockInsightRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		total, err := service.SyncAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("Erro ao listar campanhas interrompe a sincronização", func(t *testing.T) {
		mockCampaignRepo.EXPECT().ListAll().Return(nil, fmt.Errorf("db down"))

		_, err := service.SyncAll(context.Background())
		assert.Error(t, err)
	})
}
