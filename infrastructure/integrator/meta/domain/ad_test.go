package metadomain

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdRequest = AdRequest{
	Name:       "Anúncio 1",
	AdSetID:    "adset-9",
	CreativeID: "creative-7",
	Status:     "PAUSED",
}

func TestAdRequest_Encode(t *testing.T) {
	t.Run("DirectField envia creative_id como campo plano", func(t *testing.T) {
		contentType, body, err := testAdRequest.Encode(AdFormatDirectField, "tok")

		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", contentType)

		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "creative-7", form.Get("creative_id"))
		assert.Equal(t, "adset-9", form.Get("adset_id"))
		assert.Equal(t, "tok", form.Get("access_token"))
	})

	t.Run("ObjectField aninha o creative em um objeto JSON", func(t *testing.T) {
		contentType, body, err := testAdRequest.Encode(AdFormatObjectField, "tok")

		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))

		creative, ok := payload["creative"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "creative-7", creative["creative_id"])
	})

	t.Run("CreativeField envia o creative como string simples", func(t *testing.T) {
		_, body, err := testAdRequest.Encode(AdFormatCreativeField, "tok")

		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "creative-7", payload["creative"])
	})

	t.Run("FacebookDoc envia formulário com creative como JSON serializado", func(t *testing.T) {
		contentType, body, err := testAdRequest.Encode(AdFormatFacebookDoc, "tok")

		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", contentType)

		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)

		var creative map[string]string
		require.NoError(t, json.Unmarshal([]byte(form.Get("creative")), &creative))
		assert.Equal(t, "creative-7", creative["creative_id"])
	})

	t.Run("Formato desconhecido é erro", func(t *testing.T) {
		_, _, err := testAdRequest.Encode(AdPayloadFormat(99), "tok")
		assert.Error(t, err)
	})
}

func TestProbeOrder(t *testing.T) {
	// A sondagem começa pela variante com maior histórico de sucesso e
	// cobre todas as demais exatamente uma vez.
	require.Len(t, ProbeOrder, 4)
	assert.Equal(t, AdFormatObjectField, ProbeOrder[0])
	assert.Equal(t, AdFormatDirectField, ProbeOrder[1])
	assert.Equal(t, AdFormatCreativeField, ProbeOrder[2])
	assert.Equal(t, AdFormatFacebookDoc, ProbeOrder[3])
}

func TestParseAdPayloadFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    AdPayloadFormat
		wantErr bool
	}{
		{in: "DirectField", want: AdFormatDirectField},
		{in: "direct_field", want: AdFormatDirectField},
		{in: "ObjectField", want: AdFormatObjectField},
		{in: "creative_field", want: AdFormatCreativeField},
		{in: "FacebookDoc", want: AdFormatFacebookDoc},
		{in: "invalid", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAdPayloadFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestError(t *testing.T) {
	t.Run("Mensagem do envelope tem precedência", func(t *testing.T) {
		err := &RequestError{
			StatusCode: 400,
			Envelope: ErrorResponse{
				Error: ErrorDetails{Message: "Invalid parameter", ErrorSubcode: 1359188},
			},
		}

		assert.Equal(t, "Invalid parameter", err.Error())
		assert.Equal(t, SubcodePaymentMethod, err.Subcode())
		assert.True(t, err.Envelope.IsPaymentMethodIssue())
	})

	t.Run("Sem envelope decodificado cai no corpo bruto", func(t *testing.T) {
		err := &RequestError{StatusCode: 500, Raw: []byte("gateway timeout")}

		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "gateway timeout")
		assert.Zero(t, err.Subcode())
	})
}
