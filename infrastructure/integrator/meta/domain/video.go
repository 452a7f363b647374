package metadomain

type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	CreatedTime  string `json:"created_time"`
}

// VideoInfo é a resposta de `{video-id}?fields=thumbnails`.
type VideoInfo struct {
	ID         string     `json:"id"`
	Thumbnails Thumbnails `json:"thumbnails"`
}

type Thumbnails struct {
	Data []Thumbnail `json:"data"`
}

type Thumbnail struct {
	URI string `json:"uri"`
}

// FirstThumbnailURI retorna a URI do primeiro thumbnail disponível,
// ou vazio quando a plataforma ainda não gerou nenhum.
func (v *VideoInfo) FirstThumbnailURI() string {
	if len(v.Thumbnails.Data) == 0 {
		return ""
	}
	return v.Thumbnails.Data[0].URI
}
