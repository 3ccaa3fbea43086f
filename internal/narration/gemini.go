package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"

	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/models"
)

const tracerName = "github.com/napolitain/ascension/internal/narration"

// Gemini narrates through the generateContent REST endpoint
type Gemini struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	printer  *message.Printer
	logger   *log.Logger
	tracer   trace.Tracer
}

// NewGemini builds a Gemini narrator. Zero-valued fields take defaults.
func NewGemini(cfg Config) *Gemini {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &Gemini{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    strings.TrimSpace(cfg.Model),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/v1beta/models/" + strings.TrimSpace(cfg.Model) + ":generateContent",
		client:   cfg.HTTPClient,
		printer:  i18n.Printer(cfg.Locale),
		logger:   cfg.Logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// DescribeEra returns one line announcing the era
func (g *Gemini) DescribeEra(ctx context.Context, era models.Era) string {
	name := i18n.EraName(g.printer, era)
	text, err := g.generate(ctx, "era", g.printer.Sprintf("narration.prompt.era", name))
	if err != nil {
		g.logger.Printf("narration: era %s: %v", era, err)
		return g.printer.Sprintf("narration.era.fallback", name)
	}
	if text == "" {
		return g.printer.Sprintf("narration.era.empty", name)
	}
	return text
}

// DescribeEvent returns a one-line micro event for the civilization
func (g *Gemini) DescribeEvent(ctx context.Context, era models.Era, summary string) string {
	name := i18n.EraName(g.printer, era)
	text, err := g.generate(ctx, "event", g.printer.Sprintf("narration.prompt.event", name, summary))
	if err != nil {
		g.logger.Printf("narration: event in %s: %v", era, err)
		return g.printer.Sprintf("narration.event.fallback")
	}
	if text == "" {
		return g.printer.Sprintf("narration.event.empty")
	}
	return text
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func (g *Gemini) generate(ctx context.Context, kind, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "narration.generate", trace.WithAttributes(
		attribute.String("narration.kind", kind),
		attribute.String("narration.model", g.model),
	))
	defer span.End()

	text, err := g.post(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}

func (g *Gemini) post(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("generate request status %d: %s", res.StatusCode, strings.TrimSpace(string(payload)))
	}
	if !gjson.ValidBytes(payload) {
		return "", fmt.Errorf("generate response is not valid JSON")
	}
	return strings.TrimSpace(gjson.GetBytes(payload, "candidates.0.content.parts.0.text").String()), nil
}
