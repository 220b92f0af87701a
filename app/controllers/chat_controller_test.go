package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-guard/app/controllers"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestChatProxiesUpstreamReply(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"你好!"}}]}`))
	}))
	defer upstream.Close()

	ctrl := controllers.NewChatController("sk-test", "test-model", upstream.URL, zerolog.Nop())
	rec := httptest.NewRecorder()
	ctrl.Chat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "hello"})))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "你好!", resp["reply"])
}

func TestChatWithoutKeyStaysDiagnostic(t *testing.T) {
	ctrl := controllers.NewChatController("", "test-model", "http://127.0.0.1:0", zerolog.Nop())
	rec := httptest.NewRecorder()
	ctrl.Chat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "hello"})))

	require.Equal(t, http.StatusOK, rec.Code, "chat errors surface inside a 200 reply body")
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "DEBUG_")
}

func TestChatUpstreamErrorStaysDiagnostic(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"out of credits"}}`))
	}))
	defer upstream.Close()

	ctrl := controllers.NewChatController("sk-test", "test-model", upstream.URL, zerolog.Nop())
	rec := httptest.NewRecorder()
	ctrl.Chat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "hello"})))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "402")
}
