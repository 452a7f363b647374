package provisioning

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	clientmocks "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const testProjectID = 42

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func testAccount() *domain.FacebookAccount {
	return &domain.FacebookAccount{
		ProjectID:   testProjectID,
		AccessToken: "token-123",
		AdAccountID: "act_999",
		PageID:      "page-1",
	}
}

func newTestService(client *clientmocks.MockClient, accountRepo *mocks.MockFacebookAccountRepository) *Service {
	return NewService(&config.Config{}, client, accountRepo)
}

func TestService_CreateCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	t.Run("Nome ausente é rejeitado antes de qualquer chamada remota", func(t *testing.T) {
		_, err := service.CreateCampaign(context.Background(), testProjectID, &domain.CreateCampaignRequest{})

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("Categorias especiais são sempre forçadas para NONE", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		var sent map[string]any
		mockClient.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, payload map[string]any) (string, error) {
				sent = payload
				return "camp-1", nil
			})

		id, err := service.CreateCampaign(context.Background(), testProjectID, &domain.CreateCampaignRequest{
			Name:      "Lançamento",
			Objective: "OUTCOME_TRAFFIC",
			Status:    "PAUSED",
			// O chamador tenta outra categoria e ela é ignorada
			SpecialAdCategories: []string{"HOUSING"},
		})

		require.NoError(t, err)
		assert.Equal(t, "camp-1", id)
		assert.Equal(t, []string{"NONE"}, sent["special_ad_categories"])
		assert.Equal(t, "AUCTION", sent["buying_type"])
	})

	t.Run("Spend cap é convertido para centavos", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		var sent map[string]any
		mockClient.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, payload map[string]any) (string, error) {
				sent = payload
				return "camp-2", nil
			})

		_, err := service.CreateCampaign(context.Background(), testProjectID, &domain.CreateCampaignRequest{
			Name:     "Com teto",
			SpendCap: int64Ptr(250),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(25000), sent["spend_cap"])
	})

	t.Run("Projeto sem conta vinculada retorna erro de conta", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(nil, nil)

		_, err := service.CreateCampaign(context.Background(), testProjectID, &domain.CreateCampaignRequest{
			Name: "Sem conta",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Falha remota é propagada sem retry", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", fmt.Errorf("Invalid OAuth access token"))

		_, err := service.CreateCampaign(context.Background(), testProjectID, &domain.CreateCampaignRequest{
			Name: "Vai falhar",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid OAuth access token")
	})
}

func TestService_CreateAdSet_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       *domain.CreateAdSetRequest
		wantField string
	}{
		{
			name: "Agenda com menos de 24 horas é rejeitada",
			req: &domain.CreateAdSetRequest{
				CampaignID: "camp-1",
				StartTime:  timePtr(start),
				StopTime:   timePtr(start.Add(23 * time.Hour)),
			},
			wantField: "stop_time",
		},
		{
			name: "Lance acima do teto não vira erro, a agenda curta é reportada primeiro",
			req: &domain.CreateAdSetRequest{
				CampaignID:       "camp-1",
				BidAmount:        int64Ptr(5000),
				OptimizationGoal: "LINK_CLICKS",
				StartTime:        timePtr(start),
				StopTime:         timePtr(start.Add(12 * time.Hour)),
			},
			wantField: "stop_time",
		},
		{
			name: "Meta de otimização LINK_CLICKS sem lance é rejeitada",
			req: &domain.CreateAdSetRequest{
				CampaignID:       "camp-1",
				OptimizationGoal: "LINK_CLICKS",
			},
			wantField: "bid_amount",
		},
		{
			name: "Meta de otimização CONVERSIONS sem lance é rejeitada",
			req: &domain.CreateAdSetRequest{
				CampaignID:       "camp-1",
				OptimizationGoal: "CONVERSIONS",
			},
			wantField: "bid_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Nenhuma expectativa nos mocks: validação acontece antes
			// de resolver credenciais ou chamar a plataforma.
			_, err := service.CreateAdSet(context.Background(), testProjectID, tt.req)

			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestService_CreateAdSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Agenda de exatamente 24 horas é aceita", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAdSet(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("adset-1", nil)

		id, err := service.CreateAdSet(context.Background(), testProjectID, &domain.CreateAdSetRequest{
			CampaignID: "camp-1",
			Name:       "Conjunto",
			StartTime:  timePtr(start),
			StopTime:   timePtr(start.Add(24 * time.Hour)),
		})

		require.NoError(t, err)
		assert.Equal(t, "adset-1", id)
	})

	t.Run("Lance acima do teto é ajustado em silêncio e transmitido em centavos", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		var sent url.Values
		mockClient.EXPECT().
			CreateAdSet(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
				sent = form
				return "adset-2", nil
			})

		_, err := service.CreateAdSet(context.Background(), testProjectID, &domain.CreateAdSetRequest{
			CampaignID:       "camp-1",
			Name:             "Lance alto",
			DailyBudget:      50,
			BidAmount:        int64Ptr(5000),
			OptimizationGoal: "LINK_CLICKS",
		})

		require.NoError(t, err)
		// 1000 (teto) * 100 centavos
		assert.Equal(t, "100000", sent.Get("bid_amount"))
		assert.Equal(t, "5000", sent.Get("daily_budget"))
	})

	t.Run("Segmentação padrão leva idade e país quando o chamador não informa", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		var sent url.Values
		mockClient.EXPECT().
			CreateAdSet(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
				sent = form
				return "adset-3", nil
			})

		_, err := service.CreateAdSet(context.Background(), testProjectID, &domain.CreateAdSetRequest{
			CampaignID: "camp-1",
			Name:       "Sem segmentação",
		})

		require.NoError(t, err)

		var targeting map[string]any
		require.NoError(t, json.Unmarshal([]byte(sent.Get("targeting")), &targeting))
		assert.Equal(t, float64(18), targeting["age_min"])
		assert.Equal(t, float64(65), targeting["age_max"])

		geo, ok := targeting["geo_locations"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"US"}, geo["countries"])
	})

	t.Run("Coleções vazias de segmentação são omitidas do payload", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		var sent url.Values
		mockClient.EXPECT().
			CreateAdSet(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
				sent = form
				return "adset-4", nil
			})

		_, err := service.CreateAdSet(context.Background(), testProjectID, &domain.CreateAdSetRequest{
			CampaignID: "camp-1",
			Name:       "Só idade",
			Targeting: &domain.Targeting{
				AgeMin: 21,
				AgeMax: 35,
			},
		})

		require.NoError(t, err)

		var targeting map[string]any
		require.NoError(t, json.Unmarshal([]byte(sent.Get("targeting")), &targeting))
		assert.Equal(t, float64(21), targeting["age_min"])
		assert.NotContains(t, targeting, "geo_locations")
		assert.NotContains(t, targeting, "genders")
		assert.NotContains(t, targeting, "publisher_platforms")
	})
}

func TestService_CreateAdCreatives(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	t.Run("Lote vazio não produz creative algum", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		_, err := service.CreateAdCreatives(context.Background(), testProjectID, "adset-1", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAllCreativesFailed)
	})

	t.Run("Creative rejeitado tenta a variante simplificada uma única vez", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().GetVideoThumbnail(gomock.Any(), gomock.Any(), "vid-1").Return("https://cdn/thumb.jpg", nil)

		gomock.InOrder(
			mockClient.EXPECT().
				CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
					assert.Contains(t, form.Get("object_story_spec"), "call_to_action")
					return "", fmt.Errorf("Invalid parameter")
				}),
			mockClient.EXPECT().
				CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
					assert.NotContains(t, form.Get("object_story_spec"), "call_to_action")
					assert.Contains(t, form.Get("object_story_spec"), "Watch our video")
					return "creative-1", nil
				}),
		)

		ids, err := service.CreateAdCreatives(context.Background(), testProjectID, "adset-1", []string{"vid-1"})

		require.NoError(t, err)
		assert.Equal(t, []string{"creative-1"}, ids)
	})

	t.Run("Thumbnail indisponível cai na imagem padrão sem falhar", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().GetVideoThumbnail(gomock.Any(), gomock.Any(), "vid-2").Return("", nil)

		mockClient.EXPECT().
			CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, form url.Values) (string, error) {
				assert.Contains(t, form.Get("object_story_spec"), "fb_icon_325x325.png")
				return "creative-2", nil
			})

		ids, err := service.CreateAdCreatives(context.Background(), testProjectID, "adset-1", []string{"vid-2"})

		require.NoError(t, err)
		assert.Equal(t, []string{"creative-2"}, ids)
	})

	t.Run("Falha total de um vídeo vira placeholder e os demais seguem", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().GetVideoThumbnail(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/t.jpg", nil).Times(2)

		gomock.InOrder(
			// vid-1: tentativa completa e simplificada rejeitadas
			mockClient.EXPECT().CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("rejected")),
			mockClient.EXPECT().CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("rejected")),
			// vid-2: sucesso direto
			mockClient.EXPECT().CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).Return("creative-real", nil),
		)

		ids, err := service.CreateAdCreatives(context.Background(), testProjectID, "adset-1", []string{"vid-1", "vid-2"})

		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.True(t, IsPlaceholderCreative(ids[0]))
		assert.Equal(t, "creative-real", ids[1])
	})

	t.Run("PolicyAbort propaga a falha em vez de sintetizar", func(t *testing.T) {
		abortService := newTestService(mockClient, mockAccountRepo).WithFallbackPolicy(PolicyAbort)

		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().GetVideoThumbnail(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/t.jpg", nil)
		mockClient.EXPECT().CreateAdCreative(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("rejected")).Times(2)

		_, err := abortService.CreateAdCreatives(context.Background(), testProjectID, "adset-1", []string{"vid-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})
}

func TestService_CreateAds_ProbeOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	t.Run("Primeira variante aceita encerra a sondagem", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		// Apenas uma chamada: ObjectField é a primeira da ordem fixa
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatObjectField).
			Return("ad-1", []byte(`{"id":"ad-1"}`), nil)

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", []string{"creative-1"}, "", "Minha Campanha")

		require.NoError(t, err)
		assert.Equal(t, []string{"ad-1"}, result.AdIDs)
		assert.False(t, result.IsMock)
	})

	t.Run("Variantes rejeitadas avançam na ordem fixa", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		gomock.InOrder(
			mockClient.EXPECT().
				CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatObjectField).
				Return("", nil, fmt.Errorf("rejected")),
			mockClient.EXPECT().
				CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatDirectField).
				Return("", nil, fmt.Errorf("rejected")),
			mockClient.EXPECT().
				CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatCreativeField).
				Return("ad-2", nil, nil),
		)

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", []string{"creative-1"}, "", "Minha Campanha")

		require.NoError(t, err)
		assert.Equal(t, []string{"ad-2"}, result.AdIDs)
	})
}

func paymentMethodError() error {
	return &metadomain.RequestError{
		StatusCode: 400,
		Envelope: metadomain.ErrorResponse{
			Error: metadomain.ErrorDetails{
				Message:      "No payment method",
				ErrorSubcode: metadomain.SubcodePaymentMethod,
			},
		},
	}
}

func TestService_CreateAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	t.Run("Todo creative produz exatamente um ad, real ou sintético", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		// creative-1 tem sucesso; creative-2 esgota as quatro variantes
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, req metadomain.AdRequest, _ metadomain.AdPayloadFormat) (string, []byte, error) {
				if req.CreativeID == "creative-1" {
					return "ad-1", nil, nil
				}
				return "", nil, fmt.Errorf("rejected")
			}).
			Times(5)

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", []string{"creative-1", "creative-2"}, "", "Campanha")

		require.NoError(t, err)
		require.Len(t, result.AdIDs, 2)
		assert.Equal(t, "ad-1", result.AdIDs[0])
		assert.True(t, strings.HasPrefix(result.AdIDs[1], "Campanha_v2_"))
		assert.True(t, result.IsMock)
	})

	t.Run("Erro de método de pagamento abre o circuito para o resto do lote", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)

		// Somente o primeiro creative chega na plataforma: as quatro
		// variantes retornam o subcódigo de pagamento e o circuito abre.
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", nil, paymentMethodError()).
			Times(len(metadomain.ProbeOrder))

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", []string{"c1", "c2", "c3"}, "", "Campanha")

		require.NoError(t, err)
		require.Len(t, result.AdIDs, 3)
		assert.True(t, result.IsMock)
		for i, id := range result.AdIDs {
			assert.True(t, strings.HasPrefix(id, fmt.Sprintf("Campanha_v%d_", i+1)))
		}
	})

	t.Run("Lote com creative placeholder não faz nenhuma chamada remota", func(t *testing.T) {
		// Nenhuma expectativa no repositório nem no cliente: com um
		// placeholder no lote, nada sai do processo.
		creativeIDs := []string{"creative-1", "mock_creative_1700000000_0"}

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", creativeIDs, "", "Campanha")

		require.NoError(t, err)
		require.Len(t, result.AdIDs, 2)
		assert.True(t, result.IsMock)
		for _, id := range result.AdIDs {
			assert.Contains(t, id, "Campanha_v")
		}
	})

	t.Run("Pane vira resposta de sucesso com um placeholder e mensagem consultiva", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, _ metadomain.AdRequest, _ metadomain.AdPayloadFormat) (string, []byte, error) {
				panic("resposta inesperada da plataforma")
			})

		result, err := service.CreateAds(context.Background(), testProjectID, "adset-1", []string{"c1", "c2"}, "", "Campanha")

		require.NoError(t, err)
		require.Len(t, result.AdIDs, 1)
		assert.True(t, strings.HasPrefix(result.AdIDs[0], "Campanha_v1_"))
		assert.True(t, result.IsMock)
		assert.Contains(t, result.AdvisoryError, "resposta inesperada")
	})

	t.Run("PolicyAbort transforma pane em erro", func(t *testing.T) {
		abortService := newTestService(mockClient, mockAccountRepo).WithFallbackPolicy(PolicyAbort)

		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, _ metadomain.AdRequest, _ metadomain.AdPayloadFormat) (string, []byte, error) {
				panic("boom")
			})

		result, err := abortService.CreateAds(context.Background(), testProjectID, "adset-1", []string{"c1"}, "", "Campanha")

		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("PolicyAbort interrompe o lote no erro de pagamento", func(t *testing.T) {
		abortService := newTestService(mockClient, mockAccountRepo).WithFallbackPolicy(PolicyAbort)

		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", nil, paymentMethodError()).
			Times(len(metadomain.ProbeOrder))

		_, err := abortService.CreateAds(context.Background(), testProjectID, "adset-1", []string{"c1", "c2"}, "", "Campanha")

		require.Error(t, err)

		var reqErr *metadomain.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, metadomain.SubcodePaymentMethod, reqErr.Subcode())
	})
}

func TestService_TestAdFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockAccountRepo := mocks.NewMockFacebookAccountRepository(ctrl)
	service := newTestService(mockClient, mockAccountRepo)

	t.Run("Formato desconhecido é rejeitado", func(t *testing.T) {
		_, err := service.TestAdFormat(context.Background(), testProjectID, "adset-1", "creative-1", "MagicField", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("Variante rejeitada vira resultado com a resposta bruta, não erro", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatFacebookDoc).
			Return("", []byte(`{"error":{"message":"Invalid parameter"}}`), fmt.Errorf("Invalid parameter"))

		result, err := service.TestAdFormat(context.Background(), testProjectID, "adset-1", "creative-1", "FacebookDoc", "")

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "FacebookDoc", result.Format)
		assert.Contains(t, string(result.Raw), "Invalid parameter")
	})

	t.Run("Sucesso reporta a variante usada", func(t *testing.T) {
		mockAccountRepo.EXPECT().GetByProjectID(testProjectID).Return(testAccount(), nil)
		mockClient.EXPECT().
			CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), metadomain.AdFormatDirectField).
			DoAndReturn(func(_ context.Context, _ domain.FacebookAuth, req metadomain.AdRequest, _ metadomain.AdPayloadFormat) (string, []byte, error) {
				assert.Equal(t, "Format Test Ad", req.Name)
				assert.Equal(t, "PAUSED", req.Status)
				return "ad-1", []byte(`{"id":"ad-1"}`), nil
			})

		result, err := service.TestAdFormat(context.Background(), testProjectID, "adset-1", "creative-1", "direct_field", "")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "DirectField", result.Format)
	})
}
