package metadomain

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// AdPayloadFormat enumera as variantes de codificação aceitas (ou não)
// pelo endpoint de criação de ads. A forma correta de referenciar o
// creative não é confiável entre versões da API, então o provisionador
// sonda as variantes em ordem fixa até uma ter sucesso.
type AdPayloadFormat int

const (
	// AdFormatDirectField envia creative_id como campo plano de formulário.
	AdFormatDirectField AdPayloadFormat = iota
	// AdFormatObjectField envia JSON com objeto creative aninhado.
	AdFormatObjectField
	// AdFormatCreativeField envia JSON com creative como string simples.
	AdFormatCreativeField
	// AdFormatFacebookDoc envia formulário com creative como JSON
	// serializado, espelhando o exemplo literal da documentação oficial.
	AdFormatFacebookDoc
)

// ProbeOrder é a ordem fixa de tentativa usada na criação de ads,
// começando pela variante com maior histórico de sucesso.
var ProbeOrder = []AdPayloadFormat{
	AdFormatObjectField,
	AdFormatDirectField,
	AdFormatCreativeField,
	AdFormatFacebookDoc,
}

func (f AdPayloadFormat) String() string {
	switch f {
	case AdFormatDirectField:
		return "DirectField"
	case AdFormatObjectField:
		return "ObjectField"
	case AdFormatCreativeField:
		return "CreativeField"
	case AdFormatFacebookDoc:
		return "FacebookDoc"
	default:
		return fmt.Sprintf("AdPayloadFormat(%d)", int(f))
	}
}

// ParseAdPayloadFormat converte o nome textual da variante, usado pela
// rota diagnóstica de teste de formatos.
func ParseAdPayloadFormat(name string) (AdPayloadFormat, error) {
	switch name {
	case "DirectField", "direct_field":
		return AdFormatDirectField, nil
	case "ObjectField", "object_field":
		return AdFormatObjectField, nil
	case "CreativeField", "creative_field":
		return AdFormatCreativeField, nil
	case "FacebookDoc", "facebook_doc":
		return AdFormatFacebookDoc, nil
	default:
		return 0, fmt.Errorf("formato de payload desconhecido: %q", name)
	}
}

// AdRequest são os campos lógicos de uma criação de ad, independentes
// da variante de codificação.
type AdRequest struct {
	Name       string
	AdSetID    string
	CreativeID string
	Status     string
}

// Encode serializa a requisição na variante pedida. Retorna o
// content-type e o corpo prontos para o POST em `act_{account}/ads`.
func (r AdRequest) Encode(format AdPayloadFormat, accessToken string) (contentType string, body []byte, err error) {
	switch format {
	case AdFormatDirectField:
		form := url.Values{}
		form.Set("name", r.Name)
		form.Set("adset_id", r.AdSetID)
		form.Set("creative_id", r.CreativeID)
		form.Set("status", r.Status)
		form.Set("access_token", accessToken)
		return "application/x-www-form-urlencoded", []byte(form.Encode()), nil

	case AdFormatObjectField:
		payload := map[string]any{
			"name":         r.Name,
			"adset_id":     r.AdSetID,
			"creative":     map[string]string{"creative_id": r.CreativeID},
			"status":       r.Status,
			"access_token": accessToken,
		}
		body, err = json.Marshal(payload)
		return "application/json", body, err

	case AdFormatCreativeField:
		payload := map[string]any{
			"name":         r.Name,
			"adset_id":     r.AdSetID,
			"creative":     r.CreativeID,
			"status":       r.Status,
			"access_token": accessToken,
		}
		body, err = json.Marshal(payload)
		return "application/json", body, err

	case AdFormatFacebookDoc:
		creative, err := json.Marshal(map[string]string{"creative_id": r.CreativeID})
		if err != nil {
			return "", nil, err
		}
		form := url.Values{}
		form.Set("name", r.Name)
		form.Set("adset_id", r.AdSetID)
		form.Set("creative", string(creative))
		form.Set("status", r.Status)
		form.Set("access_token", accessToken)
		return "application/x-www-form-urlencoded", []byte(form.Encode()), nil

	default:
		return "", nil, fmt.Errorf("formato de payload desconhecido: %d", format)
	}
}
