package domain

import "time"

// Video espelha um vídeo enviado para a plataforma de anúncios.
type Video struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"project_id"`
	FbVideoID    string    `json:"fb_video_id"`
	FileName     string    `json:"file_name"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// VideoUploadResult é a resposta por arquivo do upload em lote.
type VideoUploadResult struct {
	File         string `json:"file"`
	Success      bool   `json:"success"`
	VideoID      string `json:"video_id,omitempty"`
	ThumbnailURL string `json:"thumbnail,omitempty"`
	Error        string `json:"error,omitempty"`
}
