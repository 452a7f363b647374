package provisioning

import (
	"context"

	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

// Provisioner orquestra a criação da hierarquia de campanha na
// plataforma de anúncios: Campaign → AdSet → AdCreative → Ad.
type Provisioner interface {
	// CreateCampaign cria a campanha remota e retorna o id da plataforma
	CreateCampaign(ctx context.Context, projectID int, req *domain.CreateCampaignRequest) (string, error)

	// CreateAdSet valida e cria um ad set dentro de uma campanha existente
	CreateAdSet(ctx context.Context, projectID int, req *domain.CreateAdSetRequest) (string, error)

	// CreateAdCreatives cria um creative de vídeo por id de vídeo, de forma
	// independente: a falha de um vídeo não aborta os demais
	CreateAdCreatives(ctx context.Context, projectID int, adSetID string, videoIDs []string) ([]string, error)

	// CreateAds cria um ad por creative. A lista retornada tem sempre o
	// mesmo tamanho da lista de creatives de entrada
	CreateAds(ctx context.Context, projectID int, adSetID string, creativeIDs []string, status, namePrefix string) (*domain.CreateAdsResult, error)

	// TestAdFormat é a superfície diagnóstica: tenta uma única variante de
	// payload e devolve o resultado bruto da plataforma
	TestAdFormat(ctx context.Context, projectID int, adSetID, creativeID, formatName, adName string) (*domain.AdFormatTestResult, error)
}
