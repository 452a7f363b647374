package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

const campaignsTable = "campaigns"

// CampaignRepository guarda o espelho local das campanhas criadas na
// plataforma. A plataforma é a fonte da verdade; este espelho existe
// para listagem e para ancorar os insights.
type CampaignRepository interface {
	Save(campaign *domain.Campaign) (*domain.Campaign, error)
	GetByID(id int) (*domain.Campaign, error)
	GetByFbCampaignID(fbCampaignID string) (*domain.Campaign, error)
	ListByProjectID(projectID int) ([]*domain.Campaign, error)
	ListAll() ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Save(campaign *domain.Campaign) (*domain.Campaign, error) {
	var targeting any
	if len(campaign.Targeting) > 0 {
		targeting = []byte(campaign.Targeting)
	}

	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("project_id", "fb_campaign_id", "name", "targeting", "is_daily_budget", "budget_amount").
		Values(
			campaign.ProjectID,
			campaign.FbCampaignID,
			campaign.Name,
			targeting,
			campaign.IsDailyBudget,
			campaign.BudgetAmount,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&campaign.ID, &campaign.CreatedAt); err != nil {
		return nil, fmt.Errorf("erro ao salvar campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) GetByID(id int) (*domain.Campaign, error) {
	return r.getCampaign(squirrel.Eq{"id": id})
}

func (r *campaignRepository) GetByFbCampaignID(fbCampaignID string) (*domain.Campaign, error) {
	return r.getCampaign(squirrel.Eq{"fb_campaign_id": fbCampaignID})
}

func (r *campaignRepository) getCampaign(whereClause map[string]interface{}) (*domain.Campaign, error) {
	query, args, err := r.selectCampaigns().
		Where(whereClause).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(query, args...)

	campaign, err := scanCampaignRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListByProjectID(projectID int) ([]*domain.Campaign, error) {
	query, args, err := r.selectCampaigns().
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listCampaigns(query, args)
}

func (r *campaignRepository) ListAll() ([]*domain.Campaign, error) {
	query, args, err := r.selectCampaigns().
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listCampaigns(query, args)
}

func (r *campaignRepository) selectCampaigns() squirrel.SelectBuilder {
	return squirrel.
		Select("id, project_id, fb_campaign_id, name, targeting, is_daily_budget, budget_amount, created_at").
		From(campaignsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *campaignRepository) listCampaigns(query string, args []interface{}) ([]*domain.Campaign, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaignRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaignRow(row rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var targeting sql.NullString

	err := row.Scan(
		&campaign.ID,
		&campaign.ProjectID,
		&campaign.FbCampaignID,
		&campaign.Name,
		&targeting,
		&campaign.IsDailyBudget,
		&campaign.BudgetAmount,
		&campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if targeting.Valid {
		campaign.Targeting = []byte(targeting.String)
	}

	return campaign, nil
}
