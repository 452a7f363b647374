package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

const facebookAccountsTable = "facebook_accounts"

// FacebookAccountRepository é o armazém de credenciais por projeto.
// GetByProjectID retorna (nil, nil) quando o projeto não tem conta
// vinculada; o chamador decide o que isso significa.
type FacebookAccountRepository interface {
	GetByProjectID(projectID int) (*domain.FacebookAccount, error)
	SaveOrUpdate(account *domain.FacebookAccount) error
}

type facebookAccountRepository struct {
	conn *postgres.Connection
}

func NewFacebookAccountRepository(conn *postgres.Connection) FacebookAccountRepository {
	return &facebookAccountRepository{
		conn: conn,
	}
}

func (r *facebookAccountRepository) GetByProjectID(projectID int) (*domain.FacebookAccount, error) {
	query, args, err := squirrel.
		Select("project_id, access_token, ad_account_id, page_id, updated_at").
		From(facebookAccountsTable).
		Where(squirrel.Eq{"project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	account := &domain.FacebookAccount{}

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&account.ProjectID,
		&account.AccessToken,
		&account.AdAccountID,
		&account.PageID,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar conta do Facebook: %w", err)
	}

	return account, nil
}

func (r *facebookAccountRepository) SaveOrUpdate(account *domain.FacebookAccount) error {
	query := squirrel.StatementBuilder.
		Insert(facebookAccountsTable).
		Columns("project_id", "access_token", "ad_account_id", "page_id").
		Values(
			account.ProjectID,
			account.AccessToken,
			account.AdAccountID,
			account.PageID,
		).
		Suffix(`
			ON CONFLICT (project_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				ad_account_id = EXCLUDED.ad_account_id,
				page_id = EXCLUDED.page_id,
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
