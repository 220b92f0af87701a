package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lingo-guard/app/dto"
)

// ChatController proxies a single-turn completion request to the upstream
// provider. It is deliberately outside the authentication core: any failure is
// reported inside a 200 reply body so the client UI keeps working.
type ChatController struct {
	APIKey  string
	Model   string
	BaseURL string
	Title   string
	Client  *http.Client
	Log     zerolog.Logger
}

func NewChatController(apiKey, model, baseURL string, log zerolog.Logger) *ChatController {
	return &ChatController{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		Title:   "Secure Grade 3 Tutor",
		Client:  &http.Client{Timeout: 10 * time.Second},
		Log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatUpstreamRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatUpstreamResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error json.RawMessage `json:"error"`
}

func (c *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed"})
		return
	}
	if c.APIKey == "" {
		writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: "DEBUG_: Environmental key NOT FOUND in settings."})
		return
	}

	var req dto.ChatRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Message == "" {
		req.Message = "hi"
	}

	payload, _ := json.Marshal(chatUpstreamRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: req.Message}},
	})
	upReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: "DEBUG_: Critical network failure: " + err.Error()})
		return
	}
	upReq.Header.Set("Content-Type", "application/json")
	upReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.APIKey))
	upReq.Header.Set("X-Title", c.Title)

	resp, err := c.Client.Do(upReq)
	if err != nil {
		c.Log.Warn().Err(err).Msg("chat upstream call failed")
		writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: "DEBUG_: Critical network failure: " + err.Error()})
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var up chatUpstreamResponse
	_ = json.Unmarshal(body, &up)

	if resp.StatusCode == http.StatusOK && len(up.Choices) > 0 {
		writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: up.Choices[0].Message.Content})
		return
	}
	c.Log.Warn().Int("status", resp.StatusCode).Msg("chat upstream returned error")
	writeJSON(w, http.StatusOK, dto.ChatResponse{
		Reply: fmt.Sprintf("DEBUG_: Provider returned error %d: %s", resp.StatusCode, string(up.Error)),
	})
}
