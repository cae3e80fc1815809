package impact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Generator produces a short congratulatory sentence for a completed
// donation. It never returns an error: any internal fault (missing key,
// transport failure, malformed or empty response) degrades to a deterministic
// fallback string, so the donation success path can never be blocked by this
// enrichment step.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	printer *message.Printer
}

const (
	geminiDefaultTimeout = 15 * time.Second
	geminiDefaultModel   = "gemini-1.5-flash"
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Options configures a Generator. All members are optional; a zero Options
// yields a generator that always answers with the no-key fallback.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGenerator constructs a Generator with sane defaults.
func NewGenerator(opts Options) *Generator {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &Generator{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
		printer: message.NewPrinter(language.English),
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate returns an impact message for the given amount and donor name
// within the client timeout. The three fallback strings are deliberately
// distinct so the served path is recognizable in the stored record.
func (g *Generator) Generate(ctx context.Context, amount float64, donorName string) string {
	if g.apiKey == "" {
		return fmt.Sprintf("Thank you, %s! Your donation of ₹%s makes a huge difference.", donorName, g.formatAmount(amount))
	}
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: g.buildPrompt(amount, donorName)}},
		}},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return g.errorFallback(amount, donorName)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return g.errorFallback(amount, donorName)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return g.errorFallback(amount, donorName)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return g.errorFallback(amount, donorName)
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return g.errorFallback(amount, donorName)
	}
	text := extractText(out)
	if text == "" {
		return fmt.Sprintf("Thank you, %s! Your contribution helps us move forward.", donorName)
	}
	return text
}

func (g *Generator) errorFallback(amount float64, donorName string) string {
	return fmt.Sprintf("Thank you, %s! Your generous donation of ₹%s has been received.", donorName, g.formatAmount(amount))
}

func (g *Generator) formatAmount(amount float64) string {
	return g.printer.Sprint(number.Decimal(amount))
}

func (g *Generator) buildPrompt(amount float64, donorName string) string {
	sb := &strings.Builder{}
	sb.WriteString("You are a helpful assistant for a Non-Governmental Organization. ")
	fmt.Fprintf(sb, "Write a single, short (max 20 words), inspiring sentence telling the donor specifically what their donation of ₹%s could achieve (e.g. buying books, feeding children, planting trees). ", g.formatAmount(amount))
	fmt.Fprintf(sb, "Address the donor as %s. Tone: Gratitude and Impact.", donorName)
	return sb.String()
}

func (g *Generator) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if t := strings.TrimSpace(part.Text); t != "" {
				return t
			}
		}
	}
	return ""
}
