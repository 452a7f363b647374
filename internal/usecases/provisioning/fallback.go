package provisioning

import (
	"fmt"
	"strings"
	"time"
)

// FallbackPolicy decide o destino de uma unidade de trabalho cuja
// criação remota esgotou todas as tentativas.
type FallbackPolicy int

const (
	// PolicyPlaceholder sintetiza um id local e segue o lote. É o
	// comportamento padrão: a UI sempre recebe uma resposta renderizável
	// e os ids sintéticos são reconhecíveis pelo prefixo.
	PolicyPlaceholder FallbackPolicy = iota
	// PolicyAbort propaga a falha e interrompe o lote.
	PolicyAbort
)

// Prefixos dos ids sintéticos. Ids reais da plataforma são strings
// numéricas, então qualquer id com esses prefixos é reconhecível como
// recurso não provisionado.
const (
	MockCreativePrefix = "mock_creative_"
	MockAdPrefix       = "mock_ad"
)

// mockCreativeID sintetiza um id de creative para a posição index do
// lote. O componente de relógio distingue lotes consecutivos.
func mockCreativeID(index int) string {
	return fmt.Sprintf("%s%d_%d", MockCreativePrefix, time.Now().UnixNano(), index)
}

// mockAdID sintetiza um id de ad para a posição n (base 1) do lote.
func mockAdID(prefix string, n int) string {
	if prefix == "" {
		prefix = MockAdPrefix
	}
	return fmt.Sprintf("%s_v%d_%d", prefix, n, time.Now().UnixNano())
}

// IsPlaceholderCreative verifica se o id foi sintetizado localmente.
func IsPlaceholderCreative(id string) bool {
	return strings.HasPrefix(id, MockCreativePrefix)
}

// hasPlaceholderCreative verifica se algum id do lote é sintético.
// Um lote assim já é sabidamente incapaz de criar ads reais.
func hasPlaceholderCreative(ids []string) bool {
	for _, id := range ids {
		if IsPlaceholderCreative(id) {
			return true
		}
	}
	return false
}
