// Package narration produces flavor text for era transitions and random
// events. Narrators never fail: any problem degrades to a localized fallback.
package narration

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/models"
)

// DefaultModel is the generative model used when none is configured
const DefaultModel = "gemini-3-flash-preview"

// DefaultBaseURL is the Gemini REST endpoint root
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Narrator describes era transitions and random events
type Narrator interface {
	DescribeEra(ctx context.Context, era models.Era) string
	DescribeEvent(ctx context.Context, era models.Era, summary string) string
}

// Config configures the narrator returned by New
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Locale     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// New returns a Gemini-backed narrator, or a fallback-only narrator when no
// API key is configured.
func New(cfg Config) Narrator {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return NewFallback(cfg.Locale)
	}
	return NewGemini(cfg)
}

// Fallback narrates with fixed localized strings and makes no network calls
type Fallback struct {
	printer *message.Printer
}

// NewFallback creates a fallback narrator for the locale
func NewFallback(locale string) *Fallback {
	return &Fallback{printer: i18n.Printer(locale)}
}

func (f *Fallback) DescribeEra(_ context.Context, era models.Era) string {
	return f.printer.Sprintf("narration.era.fallback", i18n.EraName(f.printer, era))
}

func (f *Fallback) DescribeEvent(_ context.Context, _ models.Era, _ string) string {
	return f.printer.Sprintf("narration.event.fallback")
}
