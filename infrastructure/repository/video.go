package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

const videosTable = "videos"

type VideoRepository interface {
	SaveOrUpdate(video *domain.Video) error
	ListByProjectID(projectID int) ([]*domain.Video, error)
}

type videoRepository struct {
	conn *postgres.Connection
}

func NewVideoRepository(conn *postgres.Connection) VideoRepository {
	return &videoRepository{
		conn: conn,
	}
}

func (r *videoRepository) SaveOrUpdate(video *domain.Video) error {
	query := squirrel.StatementBuilder.
		Insert(videosTable).
		Columns("project_id", "fb_video_id", "file_name", "thumbnail_url").
		Values(
			video.ProjectID,
			video.FbVideoID,
			video.FileName,
			video.ThumbnailURL,
		).
		Suffix(`
			ON CONFLICT (fb_video_id) DO UPDATE SET
				file_name = EXCLUDED.file_name,
				thumbnail_url = EXCLUDED.thumbnail_url
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar vídeo: %w", err)
	}

	return nil
}

func (r *videoRepository) ListByProjectID(projectID int) ([]*domain.Video, error) {
	query, args, err := squirrel.
		Select("id, project_id, fb_video_id, file_name, thumbnail_url, created_at").
		From(videosTable).
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vídeos: %w", err)
	}
	defer rows.Close()

	videos := make([]*domain.Video, 0)
	for rows.Next() {
		video := &domain.Video{}
		err := rows.Scan(
			&video.ID,
			&video.ProjectID,
			&video.FbVideoID,
			&video.FileName,
			&video.ThumbnailURL,
			&video.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler vídeo: %w", err)
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}
