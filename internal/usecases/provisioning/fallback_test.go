package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockCreativeID(t *testing.T) {
	id := mockCreativeID(3)

	assert.True(t, strings.HasPrefix(id, MockCreativePrefix))
	assert.True(t, strings.HasSuffix(id, "_3"))
	assert.True(t, IsPlaceholderCreative(id))
}

func TestMockAdID(t *testing.T) {
	t.Run("Prefixo do chamador é preservado", func(t *testing.T) {
		id := mockAdID("Minha Campanha", 2)
		assert.True(t, strings.HasPrefix(id, "Minha Campanha_v2_"))
	})

	t.Run("Prefixo vazio cai no padrão", func(t *testing.T) {
		id := mockAdID("", 1)
		assert.True(t, strings.HasPrefix(id, MockAdPrefix+"_v1_"))
	})
}

func TestHasPlaceholderCreative(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want bool
	}{
		{
			name: "Lote somente com ids reais",
			ids:  []string{"23851234567890", "23851234567891"},
			want: false,
		},
		{
			name: "Lote com um placeholder no meio",
			ids:  []string{"23851234567890", "mock_creative_1700000000_1"},
			want: true,
		},
		{
			name: "Lote vazio",
			ids:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasPlaceholderCreative(tt.ids))
		})
	}
}
