package metaclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

type videoListResponse struct {
	Data []struct {
		ID          string                `json:"id"`
		Title       string                `json:"title"`
		CreatedTime string                `json:"created_time"`
		Thumbnails  metadomain.Thumbnails `json:"thumbnails"`
	} `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// ListVideos lista os vídeos da biblioteca da conta de anúncios.
func (c *MetaClient) ListVideos(ctx context.Context, auth domain.FacebookAuth) ([]metadomain.Video, error) {
	params := url.Values{}
	params.Add("fields", "id,title,thumbnails,created_time")
	params.Add("access_token", auth.AccessToken)

	path := fmt.Sprintf("%s/advideos", accountPath(auth))

	body, err := c.get(ctx, path, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao listar vídeos na API do Meta")
		return nil, err
	}

	var response videoListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar lista de vídeos: %w", err)
	}

	videos := make([]metadomain.Video, 0, len(response.Data))
	for _, item := range response.Data {
		video := metadomain.Video{
			ID:          item.ID,
			Title:       item.Title,
			CreatedTime: item.CreatedTime,
		}
		if len(item.Thumbnails.Data) > 0 {
			video.ThumbnailURL = item.Thumbnails.Data[0].URI
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// UploadVideo sobe um vídeo para a biblioteca da conta via multipart e
// retorna o id e a URL do thumbnail quando já houver um gerado.
func (c *MetaClient) UploadVideo(ctx context.Context, auth domain.FacebookAuth, fileName, contentType string, content io.Reader) (string, string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile("source", fileName)
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(part, content); err != nil {
		return "", "", fmt.Errorf("erro ao copiar conteúdo do vídeo: %w", err)
	}

	if err := writer.WriteField("title", fileName); err != nil {
		return "", "", err
	}

	if err := writer.WriteField("access_token", auth.AccessToken); err != nil {
		return "", "", err
	}

	if err := writer.Close(); err != nil {
		return "", "", err
	}

	path := fmt.Sprintf("%s/advideos", accountPath(auth))

	body, err := c.post(ctx, path, writer.FormDataContentType(), buffer.Bytes())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": auth.AdAccountID,
			"file_name":     fileName,
			"error":         err.Error(),
		}).Error("Erro ao subir vídeo na API do Meta")
		return "", "", err
	}

	videoID, err := createdID(body)
	if err != nil {
		return "", "", err
	}

	// O processamento do vídeo é assíncrono; logo após o upload o
	// thumbnail pode ainda não existir.
	thumbnailURL, err := c.GetVideoThumbnail(ctx, auth, videoID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"error":    err.Error(),
		}).Warn("Thumbnail indisponível logo após o upload do vídeo")
		thumbnailURL = ""
	}

	return videoID, thumbnailURL, nil
}
