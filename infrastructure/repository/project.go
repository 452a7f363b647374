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

const projectsTable = "projects"

type ProjectRepository interface {
	Create(project *domain.Project) (*domain.Project, error)
	GetByID(id int) (*domain.Project, error)
	GetByCode(code string) (*domain.Project, error)
	List() ([]*domain.Project, error)
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) Create(project *domain.Project) (*domain.Project, error) {
	query, args, err := squirrel.
		Insert(projectsTable).
		Columns("code", "name").
		Values(project.Code, project.Name).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&project.ID, &project.CreatedAt); err != nil {
		return nil, fmt.Errorf("erro ao criar projeto: %w", err)
	}

	return project, nil
}

func (r *projectRepository) GetByID(id int) (*domain.Project, error) {
	return r.getProject(squirrel.Eq{"id": id})
}

func (r *projectRepository) GetByCode(code string) (*domain.Project, error) {
	return r.getProject(squirrel.Eq{"code": code})
}

func (r *projectRepository) getProject(whereClause map[string]interface{}) (*domain.Project, error) {
	query, args, err := squirrel.
		Select("id, code, name, created_at").
		From(projectsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	project := &domain.Project{}

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(&project.ID, &project.Code, &project.Name, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar projeto: %w", err)
	}

	return project, nil
}

func (r *projectRepository) List() ([]*domain.Project, error) {
	query, args, err := squirrel.
		Select("id, code, name, created_at").
		From(projectsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar projetos: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project := &domain.Project{}
		if err := rows.Scan(&project.ID, &project.Code, &project.Name, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler projeto: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}
