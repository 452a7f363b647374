package metadomain

import "fmt"

// Subcódigos conhecidos da API do Meta.
const (
	// SubcodePaymentMethod indica conta sem método de pagamento válido.
	// Esse erro não é recuperável dentro de um lote de criação de ads.
	SubcodePaymentMethod = 1359188
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsPaymentMethodIssue verifica se o erro é de método de pagamento,
// condição que dispara o circuit breaker do lote de ads.
func (e *ErrorResponse) IsPaymentMethodIssue() bool {
	return e.Error.ErrorSubcode == SubcodePaymentMethod
}

// RequestError é retornado quando a API do Meta responde com status
// não-2xx. Carrega o envelope decodificado e o corpo bruto para
// diagnóstico.
type RequestError struct {
	StatusCode int
	Envelope   ErrorResponse
	Raw        []byte
}

func (e *RequestError) Error() string {
	if e.Envelope.Error.Message != "" {
		return e.Envelope.Error.Message
	}
	return fmt.Sprintf("meta: requisição falhou com status %d: %s", e.StatusCode, string(e.Raw))
}

// Subcode retorna o error_subcode reportado pela plataforma, ou zero.
func (e *RequestError) Subcode() int {
	return e.Envelope.Error.ErrorSubcode
}
