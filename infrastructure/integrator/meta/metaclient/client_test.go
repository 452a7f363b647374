package metaclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/domain"
)

func testClient(serverURL string) Client {
	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.RequestTimeoutSeconds = 5
	return NewClient(cfg)
}

func testAuth() domain.FacebookAuth {
	return domain.FacebookAuth{
		AccessToken: "token-abc",
		AdAccountID: "999",
		PageID:      "page-1",
	}
}

func TestMetaClient_CreateCampaign(t *testing.T) {
	t.Run("Envia JSON com token anexado para o endpoint da conta", func(t *testing.T) {
		var gotPath, gotContentType string
		var gotBody []byte

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"id":"120211234567890"}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		id, err := client.CreateCampaign(context.Background(), testAuth(), map[string]any{
			"name": "Campanha",
		})

		require.NoError(t, err)
		assert.Equal(t, "120211234567890", id)
		assert.Equal(t, "/act_999/campaigns", gotPath)
		assert.Equal(t, "application/json", gotContentType)
		assert.Contains(t, string(gotBody), `"access_token":"token-abc"`)
	})

	t.Run("Prefixo act_ existente não é duplicado", func(t *testing.T) {
		var gotPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"id":"1"}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		auth := testAuth()
		auth.AdAccountID = "act_999"

		_, err := client.CreateCampaign(context.Background(), auth, map[string]any{})

		require.NoError(t, err)
		assert.Equal(t, "/act_999/campaigns", gotPath)
	})

	t.Run("Status não-2xx vira RequestError com envelope decodificado", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100,"error_subcode":1359188}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		_, err := client.CreateCampaign(context.Background(), testAuth(), map[string]any{})

		require.Error(t, err)

		var reqErr *metadomain.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "Invalid parameter", reqErr.Error())
		assert.Equal(t, metadomain.SubcodePaymentMethod, reqErr.Subcode())
	})

	t.Run("Resposta sem id é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		_, err := client.CreateCampaign(context.Background(), testAuth(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestMetaClient_CreateAdSet(t *testing.T) {
	var gotForm url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"id":"adset-1"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	form := url.Values{}
	form.Set("name", "Conjunto")
	form.Set("campaign_id", "camp-1")

	id, err := client.CreateAdSet(context.Background(), testAuth(), form)

	require.NoError(t, err)
	assert.Equal(t, "adset-1", id)
	assert.Equal(t, "Conjunto", gotForm.Get("name"))
	assert.Equal(t, "token-abc", gotForm.Get("access_token"))
}

func TestMetaClient_CreateAd(t *testing.T) {
	t.Run("Falha da plataforma devolve o corpo bruto para diagnóstico", func(t *testing.T) {
		raw := `{"error":{"message":"Invalid parameter","code":100}}`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(raw))
		}))
		defer server.Close()

		client := testClient(server.URL)

		_, body, err := client.CreateAd(context.Background(), testAuth(), metadomain.AdRequest{
			Name:       "Anúncio",
			AdSetID:    "adset-1",
			CreativeID: "creative-1",
			Status:     "PAUSED",
		}, metadomain.AdFormatObjectField)

		require.Error(t, err)
		assert.JSONEq(t, raw, string(body))
	})

	t.Run("Sucesso devolve id e corpo", func(t *testing.T) {
		var gotContentType string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{"id":"ad-7"}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		id, _, err := client.CreateAd(context.Background(), testAuth(), metadomain.AdRequest{
			Name:       "Anúncio",
			AdSetID:    "adset-1",
			CreativeID: "creative-1",
			Status:     "PAUSED",
		}, metadomain.AdFormatDirectField)

		require.NoError(t, err)
		assert.Equal(t, "ad-7", id)
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	})
}

func TestMetaClient_GetVideoThumbnail(t *testing.T) {
	t.Run("Retorna a URI do primeiro thumbnail", func(t *testing.T) {
		var gotPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			assert.Equal(t, "thumbnails", r.URL.Query().Get("fields"))
			w.Write([]byte(`{"id":"vid-1","thumbnails":{"data":[{"uri":"https://cdn/a.jpg"},{"uri":"https://cdn/b.jpg"}]}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		uri, err := client.GetVideoThumbnail(context.Background(), testAuth(), "vid-1")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn/a.jpg", uri)
		assert.Equal(t, "/vid-1", gotPath)
	})

	t.Run("Vídeo sem thumbnail retorna vazio sem erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"vid-2","thumbnails":{"data":[]}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		uri, err := client.GetVideoThumbnail(context.Background(), testAuth(), "vid-2")

		require.NoError(t, err)
		assert.Empty(t, uri)
	})
}

func TestMetaClient_GetCampaignInsights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/camp-1/insights", r.URL.Path)
		assert.Equal(t, "last_7d", r.URL.Query().Get("date_preset"))
		assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
		w.Write([]byte(`{"data":[
			{"date_start":"2026-08-01","date_stop":"2026-08-01","impressions":"1200","reach":"900","spend":"14.50"},
			{"date_start":"2026-08-02","date_stop":"2026-08-02","impressions":"800","reach":"700","spend":"9.00"}
		]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	rows, err := client.GetCampaignInsights(context.Background(), testAuth(), "camp-1", "last_7d")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1200), rows[0].ImpressionsInt())
	assert.Equal(t, int64(900), rows[0].ReachInt())
	assert.InDelta(t, 14.50, rows[0].SpendFloat(), 0.001)
}

func TestHandleResponse_EnvelopeInvalido(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.CreateAdSet(context.Background(), testAuth(), url.Values{})

	require.Error(t, err)

	var reqErr *metadomain.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Contains(t, reqErr.Error(), "upstream timeout")
}
