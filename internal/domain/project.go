package domain

import "time"

// Project representa um projeto de anúncios gerenciado pelo dashboard.
// Cada projeto possui exatamente uma conta do Facebook vinculada.
type Project struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FacebookAccount guarda as credenciais do Facebook de um projeto.
// O project_id é a chave primária e nunca é gerado automaticamente:
// a linha é semeada pelo operador junto com o projeto.
type FacebookAccount struct {
	ProjectID   int       `json:"project_id"`
	AccessToken string    `json:"access_token"`
	AdAccountID string    `json:"ad_account_id"`
	PageID      string    `json:"page_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FacebookAuth é o trio de credenciais resolvido por projeto e
// repassado ao cliente da Graph API em cada chamada.
type FacebookAuth struct {
	AccessToken string
	AdAccountID string
	PageID      string
}

// Auth converte a linha da conta nas credenciais usadas pelo integrador.
func (a *FacebookAccount) Auth() FacebookAuth {
	return FacebookAuth{
		AccessToken: a.AccessToken,
		AdAccountID: a.AdAccountID,
		PageID:      a.PageID,
	}
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	AdAccountID string `json:"ad_account_id"`
	PageID      string `json:"page_id"`
}

type UpdateFacebookAccountRequest struct {
	AccessToken string `json:"access_token"`
	AdAccountID string `json:"ad_account_id"`
	PageID      string `json:"page_id"`
}
