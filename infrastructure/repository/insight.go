package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

const insightsTable = "insights"

// InsightRepository guarda a série temporal de métricas por campanha.
// A unicidade por (campaign_id, date) é garantida pelo upsert, então
// re-ingestões do mesmo período são idempotentes.
type InsightRepository interface {
	SaveOrUpdate(insight *domain.Insight) error
	ListByCampaignID(campaignID int) ([]*domain.Insight, error)
	ListByCampaignIDAndRange(campaignID int, startDate, endDate time.Time) ([]*domain.Insight, error)
	DeleteOlderThan(days int) (int64, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) SaveOrUpdate(insight *domain.Insight) error {
	query := squirrel.StatementBuilder.
		Insert(insightsTable).
		Columns("campaign_id", "date", "impressions", "reach", "spend", "cpi").
		Values(
			insight.CampaignID,
			insight.Date.Format("2006-01-02"),
			insight.Impressions,
			insight.Reach,
			insight.Spend,
			insight.CPI,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				reach = EXCLUDED.reach,
				spend = EXCLUDED.spend,
				cpi = EXCLUDED.cpi,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *insightRepository) ListByCampaignID(campaignID int) ([]*domain.Insight, error) {
	query, args, err := r.selectInsights().
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listInsights(query, args)
}

func (r *insightRepository) ListByCampaignIDAndRange(campaignID int, startDate, endDate time.Time) ([]*domain.Insight, error) {
	query, args, err := r.selectInsights().
		Where(squirrel.Eq{"campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"date": endDate.Format("2006-01-02")}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listInsights(query, args)
}

func (r *insightRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete(insightsTable).
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}

func (r *insightRepository) selectInsights() squirrel.SelectBuilder {
	return squirrel.
		Select("id, campaign_id, date, impressions, reach, spend, cpi, created_at, updated_at").
		From(insightsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *insightRepository) listInsights(query string, args []interface{}) ([]*domain.Insight, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar insights: %w", err)
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight := &domain.Insight{}
		err := rows.Scan(
			&insight.ID,
			&insight.CampaignID,
			&insight.Date,
			&insight.Impressions,
			&insight.Reach,
			&insight.Spend,
			&insight.CPI,
			&insight.CreatedAt,
			&insight.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler insight: %w", err)
		}
		insights = append(insights, insight)
	}

	return insights, rows.Err()
}
