// Package relay implements the translate-ask-translate pipeline behind /api/groq.
//
// A learner's Kazakh question is translated to English, answered by the chat
// completion service, and the answer translated back. Every stage except the
// chat call itself degrades gracefully: a translation outage never blocks the
// question, it only changes which text is sent or returned.
package relay

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/YelnurShh/infoqaz/config"
	"github.com/YelnurShh/infoqaz/groq"
	"github.com/YelnurShh/infoqaz/policy"
	"github.com/YelnurShh/infoqaz/translate"
)

const systemPrompt = "You are a concise, accurate computer science teacher. Answer in clear English with simple structure. Provide examples when helpful."

const (
	nativeLang = "kk"
	pivotLang  = "en"
)

var (
	chatTemperature = 0.2
	chatMaxTokens   = 900
)

// Handler handles relay HTTP requests.
type Handler struct {
	translator *translate.Client
	chat       *groq.Client
	policy     *policy.Engine
	config     *config.Config
}

// NewHandler creates a new relay handler.
func NewHandler(cfg *config.Config, translator *translate.Client, chat *groq.Client, policyEngine *policy.Engine) *Handler {
	return &Handler{
		translator: translator,
		chat:       chat,
		policy:     policyEngine,
		config:     cfg,
	}
}

// RegisterRoutes registers relay routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/groq", h.Ask)
}

// AskRequest is the relay request body.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// AskResponse is the relay response body. Answer fields are null when the
// corresponding stage produced nothing.
type AskResponse struct {
	OK       bool    `json:"ok"`
	PromptKZ string  `json:"prompt_kz"`
	PromptEN string  `json:"prompt_en"`
	AnswerEN *string `json:"answer_en"`
	AnswerKZ *string `json:"answer_kz"`
}

// Ask handles a relayed question.
// POST /api/groq
func (h *Handler) Ask(c echo.Context) error {
	ctx := c.Request().Context()

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Prompt is required"})
	}

	if h.policy != nil {
		decision, err := h.policy.Evaluate(ctx, map[string]interface{}{
			"prompt_length": len([]rune(prompt)),
		})
		if err != nil {
			log.Printf("WARN: prompt policy evaluation failed: %v", err)
		} else if decision == policy.DecisionBlock {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "prompt rejected by policy"})
		}
	}

	if h.config.GroqAPIKey == "" {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Missing GROQ_API_KEY"})
	}

	promptEN := h.forwardTranslate(ctx, prompt)

	resp, err := h.chat.CreateChatCompletion(ctx, &groq.ChatCompletionRequest{
		Model: h.config.GroqModel,
		Messages: []groq.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: promptEN},
		},
		Temperature: &chatTemperature,
		MaxTokens:   &chatMaxTokens,
	})
	if err != nil {
		var svcErr *groq.ServiceError
		if errors.As(err, &svcErr) {
			log.Printf("ERROR: Groq request failed with status %d", svcErr.Status)
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error":  "Groq API error",
				"status": svcErr.Status,
				"body":   svcErr.Body,
			})
		}
		log.Printf("ERROR: Groq request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	answerEN := resp.Content()
	answerKZ := h.reverseTranslate(ctx, answerEN)

	return c.JSON(http.StatusOK, AskResponse{
		OK:       true,
		PromptKZ: prompt,
		PromptEN: promptEN,
		AnswerEN: nullable(answerEN),
		AnswerKZ: nullable(answerKZ),
	})
}

// forwardTranslate translates the prompt to English. A failed or empty
// translation retries without the source hint so the upstream can detect the
// language; if that also produces nothing, the untranslated prompt is used as
// the chat input rather than blocking the question.
func (h *Handler) forwardTranslate(ctx context.Context, prompt string) string {
	out, err := h.translator.Translate(ctx, prompt, pivotLang, nativeLang)
	if err == nil && out != "" {
		return out
	}
	if err != nil {
		log.Printf("WARN: translate (%s->%s) failed, retrying without source: %v", nativeLang, pivotLang, err)
	}

	out, err = h.translator.Translate(ctx, prompt, pivotLang, "")
	if err == nil && out != "" {
		return out
	}
	if err != nil {
		log.Printf("WARN: translate (auto->%s) failed, using original prompt: %v", pivotLang, err)
	}
	return prompt
}

// reverseTranslate translates the answer back to Kazakh. Failure degrades to
// an empty result; the English answer is still returned to the caller.
func (h *Handler) reverseTranslate(ctx context.Context, answerEN string) string {
	if answerEN == "" {
		return ""
	}
	out, err := h.translator.Translate(ctx, answerEN, nativeLang, pivotLang)
	if err != nil {
		log.Printf("WARN: translate (%s->%s) failed, returning EN answer only: %v", pivotLang, nativeLang, err)
		return ""
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
