package insighting

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
	"github.com/vfg2006/ad-dashboard-api/pkg/utils"
)

// Insighter mantém a série temporal local de métricas das campanhas.
type Insighter interface {
	// SyncCampaign busca os insights de uma campanha na plataforma e
	// grava no espelho local com upsert por (campaign_id, date)
	SyncCampaign(ctx context.Context, campaign *domain.Campaign) (int, error)

	// SyncAll percorre todas as campanhas espelhadas
	SyncAll(ctx context.Context) (int, error)

	// ListByCampaign lê a série local de uma campanha
	ListByCampaign(campaignID int) ([]*domain.Insight, error)
}

type Service struct {
	cfg          *config.Config
	client       metaclient.Client
	accountRepo  repository.FacebookAccountRepository
	campaignRepo repository.CampaignRepository
	insightRepo  repository.InsightRepository
}

func NewService(
	cfg *config.Config,
	client metaclient.Client,
	accountRepo repository.FacebookAccountRepository,
	campaignRepo repository.CampaignRepository,
	insightRepo repository.InsightRepository,
) Insighter {
	return &Service{
		cfg:          cfg,
		client:       client,
		accountRepo:  accountRepo,
		campaignRepo: campaignRepo,
		insightRepo:  insightRepo,
	}
}

// SyncCampaign busca os insights diários da campanha e grava cada
// linha com upsert: re-sincronizar o mesmo período não duplica
// histórico. Retorna o número de linhas gravadas.
func (s *Service) SyncCampaign(ctx context.Context, campaign *domain.Campaign) (int, error) {
	account, err := s.accountRepo.GetByProjectID(campaign.ProjectID)
	if err != nil {
		return 0, err
	}

	if account == nil {
		return 0, provisioning.ErrAccountNotFound
	}

	datePreset := s.cfg.InsightSync.DatePreset
	if datePreset == "" {
		datePreset = "last_7d"
	}

	rows, err := s.client.GetCampaignInsights(ctx, account.Auth(), campaign.FbCampaignID, datePreset)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, row := range rows {
		date, err := utils.ParseDate(row.DateStart)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"date_start":  row.DateStart,
			}).Warn("Insight com data inválida, linha ignorada")
			continue
		}

		insight := &domain.Insight{
			CampaignID:  campaign.ID,
			Date:        *date,
			Impressions: row.ImpressionsInt(),
			Reach:       row.ReachInt(),
			Spend:       utils.RoundWithTwoDecimalPlace(row.SpendFloat()),
			CPI:         utils.RoundWithTwoDecimalPlace(row.CPI()),
		}

		if err := s.insightRepo.SaveOrUpdate(insight); err != nil {
			return saved, err
		}

		saved++
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":    campaign.ID,
		"fb_campaign_id": campaign.FbCampaignID,
		"rows":           saved,
	}).Info("Insights da campanha sincronizados")

	return saved, nil
}

// SyncAll percorre todas as campanhas espelhadas respeitando o
// intervalo entre requisições configurado. A falha de uma campanha não
// aborta as demais.
func (s *Service) SyncAll(ctx context.Context) (int, error) {
	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		return 0, err
	}

	delay := time.Duration(s.cfg.InsightSync.RequestDelaySeconds) * time.Second

	total := 0
	for i, campaign := range campaigns {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return total, ctx.Err()
			case <-time.After(delay):
			}
		}

		saved, err := s.SyncCampaign(ctx, campaign)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("Erro ao sincronizar insights da campanha")
			continue
		}

		total += saved
	}

	return total, nil
}

func (s *Service) ListByCampaign(campaignID int) ([]*domain.Insight, error) {
	return s.insightRepo.ListByCampaignID(campaignID)
}
