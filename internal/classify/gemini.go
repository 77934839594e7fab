package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiSuggester implements Suggester against the Gemini API.
type GeminiSuggester struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiSuggester creates a Gemini-backed suggester. Credentials come
// from the environment, the same way the rest of the genai SDK expects.
func NewGeminiSuggester(ctx context.Context, model string, timeout time.Duration) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GeminiSuggester{client: client, model: model, timeout: timeout}, nil
}

type geminiAnswer struct {
	DebitAccountCode  string  `json:"debit_account_code"`
	CreditAccountCode string  `json:"credit_account_code"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
}

// Suggest asks the model for a debit/credit pair. The call is bounded by
// the configured timeout; callers treat every error as a soft failure.
func (s *GeminiSuggester) Suggest(ctx context.Context, description string, accounts []*domain.Account) (*AISuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildPrompt(description, accounts)
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var answer geminiAnswer
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &answer); err != nil {
		return nil, fmt.Errorf("unmarshal model answer: %w", err)
	}

	return &AISuggestion{
		DebitAccountCode:  answer.DebitAccountCode,
		CreditAccountCode: answer.CreditAccountCode,
		Confidence:        answer.Confidence,
		Reason:            answer.Reason,
	}, nil
}

func buildPrompt(description string, accounts []*domain.Account) string {
	var b strings.Builder
	b.WriteString("You are a Japanese double-entry bookkeeping assistant.\n\n")
	b.WriteString("Task: pick the debit and credit account for one bank statement line.\n")
	b.WriteString("Output STRICT JSON only (no comments, no Markdown, no code fences):\n")
	b.WriteString(`{"debit_account_code": string, "credit_account_code": string, "confidence": number between 0 and 1, "reason": string}`)
	b.WriteString("\n\nChart of accounts (code, name, type):\n")
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		fmt.Fprintf(&b, "- %s %s (%s)\n", a.Code, a.Name, a.Type)
	}
	b.WriteString("\nStatement line description:\n")
	b.WriteString(description)
	b.WriteString("\n\nUse only codes from the chart above. Output must begin with \"{\" and end with \"}\".\n")
	return b.String()
}

// cleanModelJSON strips Markdown fences when the model ignores the
// no-fences instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
