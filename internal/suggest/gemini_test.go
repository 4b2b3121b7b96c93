package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func suggestionBody(t *testing.T) []byte {
	t.Helper()
	payload := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{
						{"text": `{"suggestedTitle":"Lot of 12x Tablets","suggestedDescription":"Assorted tablets","estimatedMarketPrice":2400,"category":"Smartphones & Tablets","itemCount":12,"origin":"Customer Return","condition":"Open Box"}`},
					},
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestClient_SuggestListing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "gemini-3-pro-preview:generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Contains(t, req, "generationConfig")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(suggestionBody(t))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	got := client.SuggestListing(context.Background(), "box of twelve mixed tablets")
	require.NotNil(t, got)
	require.Equal(t, "Lot of 12x Tablets", got.SuggestedTitle)
	require.Equal(t, 2400.0, got.EstimatedMarketPrice)
	require.Equal(t, 12, got.ItemCount)
	require.Equal(t, "Open Box", got.Condition)
}

func TestClient_SuggestListing_Degrades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		apiKey  string
		input   string
		handler http.HandlerFunc
	}{
		{
			name:   "missing_api_key",
			apiKey: "",
			input:  "some lot",
		},
		{
			name:   "empty_input",
			apiKey: "test-key",
			input:  "",
		},
		{
			name:   "server_error",
			apiKey: "test-key",
			input:  "some lot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name:   "malformed_json_payload",
			apiKey: "test-key",
			input:  "some lot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`))
			},
		},
		{
			name:   "empty_candidates",
			apiKey: "test-key",
			input:  "some lot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			baseURL := "http://127.0.0.1:0" // unused unless a handler is set
			if tc.handler != nil {
				srv := httptest.NewServer(tc.handler)
				defer srv.Close()
				baseURL = srv.URL
			}

			client := NewClient(tc.apiKey, WithBaseURL(baseURL))
			require.Nil(t, client.SuggestListing(context.Background(), tc.input))
		})
	}
}

func TestClient_GenerateBannerImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "gemini-2.5-flash-image:generateContent")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"aGVsbG8="}}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	got := client.GenerateBannerImage(context.Background(), "reverse logistics")
	require.Equal(t, "data:image/png;base64,aGVsbG8=", got)
}

func TestClient_GenerateBannerImage_NoImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"no image for you"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	require.Empty(t, client.GenerateBannerImage(context.Background(), "anything"))
}
