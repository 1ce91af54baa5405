package llm

import (
	"encoding/json"
	"net/http"

	"docpipe/internal/domain"
)

const anthropicVersion = "2023-06-01"

// chatCompletionVariant covers backends speaking the OpenAI chat-completions
// protocol (groq, openai): bearer auth, messages array, content under the
// first choice.
var chatCompletionVariant = variant{
	setHeaders: func(req *http.Request, p *domain.Provider) {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	},
	buildBody: func(p *domain.Provider, prompt string, maxTokens int, temperature float64, opts Options) map[string]interface{} {
		body := map[string]interface{}{
			"model":       p.Model,
			"messages":    []map[string]interface{}{{"role": "user", "content": prompt}},
			"max_tokens":  maxTokens,
			"temperature": temperature,
		}
		if opts.ResponseFormat != "" {
			body["response_format"] = map[string]interface{}{"type": opts.ResponseFormat}
		}
		return body
	},
	extract: func(body []byte) string {
		var resp struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &resp); err != nil || len(resp.Choices) == 0 {
			return ""
		}
		return resp.Choices[0].Message.Content
	},
}

// anthropicVariant speaks the Anthropic messages protocol: dedicated API-key
// header plus a pinned protocol version, content under the first block.
var anthropicVariant = variant{
	setHeaders: func(req *http.Request, p *domain.Provider) {
		req.Header.Set("x-api-key", p.APIKey)
		req.Header.Set("anthropic-version", anthropicVersion)
	},
	buildBody: func(p *domain.Provider, prompt string, maxTokens int, temperature float64, _ Options) map[string]interface{} {
		return map[string]interface{}{
			"model":       p.Model,
			"max_tokens":  maxTokens,
			"temperature": temperature,
			"messages":    []map[string]interface{}{{"role": "user", "content": prompt}},
		}
	},
	extract: func(body []byte) string {
		var resp struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err != nil || len(resp.Content) == 0 {
			return ""
		}
		return resp.Content[0].Text
	},
}

// customVariant is the generic fallback: bearer auth, raw prompt field,
// content read from a "content" field with a "text" fallback.
var customVariant = variant{
	setHeaders: func(req *http.Request, p *domain.Provider) {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	},
	buildBody: func(p *domain.Provider, prompt string, maxTokens int, temperature float64, _ Options) map[string]interface{} {
		return map[string]interface{}{
			"model":       p.Model,
			"prompt":      prompt,
			"max_tokens":  maxTokens,
			"temperature": temperature,
		}
	},
	extract: func(body []byte) string {
		var resp struct {
			Content string `json:"content"`
			Text    string `json:"text"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return ""
		}
		if resp.Content != "" {
			return resp.Content
		}
		return resp.Text
	},
}
