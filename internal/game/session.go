// Package game implements the progression controller: one Session owns the
// ledger, building and technology state, the current era and the event log.
package game

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/message"

	"github.com/napolitain/ascension/internal/clock"
	"github.com/napolitain/ascension/internal/economy"
	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/ledger"
	"github.com/napolitain/ascension/internal/models"
	"github.com/napolitain/ascension/internal/narration"
)

const (
	// ToolsTechID is the technology that sharpens manual collection
	ToolsTechID = "tools"

	// ToolsMultiplier is applied to click power when tools are researched
	ToolsMultiplier = 8

	// MaxEvents bounds the event log
	MaxEvents = 50

	// DefaultNarrationTimeout bounds a single era narration request
	DefaultNarrationTimeout = 10 * time.Second
)

// Options configures a Session. Zero values select defaults.
type Options struct {
	Clock            clock.Clock
	Narrator         narration.Narrator
	Locale           string
	NarrationTimeout time.Duration
	Logger           *log.Logger
}

// Session is a single game in progress. All methods are safe for concurrent
// use; ticks and actions are serialized by the session mutex.
type Session struct {
	mu sync.Mutex

	catalog      *models.Catalog
	ledger       *ledger.Ledger
	buildings    []*models.Building
	technologies []*models.Technology
	era          models.Era
	clickPower   float64
	ticks        uint64
	events       []models.GameEvent

	clock            clock.Clock
	narrator         narration.Narrator
	narrationTimeout time.Duration
	printer          *message.Printer
	logger           *log.Logger

	pending sync.WaitGroup
}

// New starts a session at the Stone era with every amount at zero. The
// catalog is cloned; the session never mutates it.
func New(catalog *models.Catalog, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Locale == "" {
		opts.Locale = i18n.DefaultLocale
	}
	if opts.Narrator == nil {
		opts.Narrator = narration.NewFallback(opts.Locale)
	}
	if opts.NarrationTimeout <= 0 {
		opts.NarrationTimeout = DefaultNarrationTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		catalog:          catalog,
		ledger:           ledger.New(),
		era:              models.Stone,
		clickPower:       1,
		clock:            opts.Clock,
		narrator:         opts.Narrator,
		narrationTimeout: opts.NarrationTimeout,
		printer:          i18n.Printer(opts.Locale),
		logger:           opts.Logger,
	}
	for _, b := range catalog.Buildings {
		clone := b.Clone()
		clone.Count = 0
		clone.Level = 1
		s.buildings = append(s.buildings, clone)
	}
	for _, t := range catalog.Technologies {
		clone := t.Clone()
		clone.Unlocked = false
		s.technologies = append(s.technologies, clone)
	}
	return s
}

// Catalog returns the static catalog the session was started from
func (s *Session) Catalog() *models.Catalog {
	return s.catalog
}

func (s *Session) building(id string) *models.Building {
	for _, b := range s.buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Session) technology(id string) *models.Technology {
	for _, t := range s.technologies {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Tick applies one accrual step to the ledger
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Accrue()
	s.ticks++
}

// Collect adds the current click power to a resource
func (s *Session) Collect(rt models.ResourceType) error {
	if !rt.Valid() {
		return ErrUnknownResource
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Add(rt, s.clickPower)
	return nil
}

// Purchase buys one unit of a building. Each unit adds base production
// scaled by the building's current level.
func (s *Session) Purchase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.building(id)
	if b == nil {
		return ErrUnknownBuilding
	}
	gain := economy.PurchaseGain(b)
	if err := s.ledger.Spend(economy.PurchaseCost(b)); err != nil {
		return err
	}
	s.ledger.AddRates(gain)
	b.Count++

	s.logEvent(models.EventSuccess, s.printer.Sprintf("event.purchase", i18n.BuildingName(s.printer, b), b.Count))
	return nil
}

// Upgrade raises a building one level. The building must be owned and belong
// to the current era; the new level applies to every owned unit.
func (s *Session) Upgrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.building(id)
	if b == nil {
		return ErrUnknownBuilding
	}
	if b.Count == 0 {
		return ErrNotOwned
	}
	if b.EraRequired != s.era {
		return ErrWrongEra
	}
	gain := economy.UpgradeGain(b)
	if err := s.ledger.Spend(economy.UpgradeCost(b)); err != nil {
		return err
	}
	s.ledger.AddRates(gain)
	b.Level++

	s.logEvent(models.EventSuccess, s.printer.Sprintf("event.upgrade", i18n.BuildingName(s.printer, b), b.Level))
	return nil
}

// Research unlocks a technology. Tools multiply click power; a technology
// that unlocks a later era advances the session immediately and narrates
// the transition in the background.
func (s *Session) Research(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.technology(id)
	if t == nil {
		return ErrUnknownTechnology
	}
	if t.Unlocked {
		return ErrAlreadyResearched
	}
	if err := s.ledger.Spend(t.Cost); err != nil {
		return err
	}
	t.Unlocked = true
	s.logEvent(models.EventInfo, s.printer.Sprintf("event.research", i18n.TechnologyName(s.printer, t)))

	if t.ID == ToolsTechID {
		s.clickPower *= ToolsMultiplier
		s.logEvent(models.EventSuccess, s.printer.Sprintf("event.tools", int(s.clickPower)))
	}

	if t.UnlocksEra != "" && s.era.Before(t.UnlocksEra) {
		s.era = t.UnlocksEra
		s.logger.Printf("era advanced to %s by %s", s.era, t.ID)
		s.logEvent(models.EventEra, s.printer.Sprintf("event.era", i18n.EraName(s.printer, s.era)))
		s.narrateEra(s.era)
	}
	return nil
}

// narrateEra requests era flavor text without holding up the caller. The
// mutex must be held.
func (s *Session) narrateEra(era models.Era) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.narrationTimeout)
		defer cancel()

		text := s.narrator.DescribeEra(ctx, era)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.logEvent(models.EventEra, text)
	}()
}

// Chronicle asks the narrator for a random micro event based on the current
// era and resources, logs it and returns it. The session is not locked while
// the narrator runs.
func (s *Session) Chronicle(ctx context.Context) string {
	s.mu.Lock()
	era := s.era
	summary := s.resourceSummary()
	s.mu.Unlock()

	text := s.narrator.DescribeEvent(ctx, era, summary)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logEvent(models.EventInfo, text)
	return text
}

func (s *Session) resourceSummary() string {
	var parts []string
	for _, r := range s.ledger.Resources() {
		if r.Amount < 1 {
			continue
		}
		name := i18n.ResourceName(s.printer, s.catalog.Resource(r.Type))
		parts = append(parts, fmt.Sprintf("%s: %d", name, int(math.Floor(r.Amount))))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// Wait blocks until every pending narration has been logged. It must not be
// called while holding the session lock.
func (s *Session) Wait() {
	s.pending.Wait()
}

func (s *Session) logEvent(kind models.EventKind, msg string) {
	s.events = append(s.events, models.GameEvent{
		ID:        uuid.NewString(),
		Timestamp: s.clock.Now(),
		Message:   msg,
		Kind:      kind,
	})
	if over := len(s.events) - MaxEvents; over > 0 {
		s.events = append([]models.GameEvent(nil), s.events[over:]...)
	}
}

// Events returns the event log, oldest first
func (s *Session) Events() []models.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.GameEvent(nil), s.events...)
}

// Era returns the current era
func (s *Session) Era() models.Era {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.era
}

// ClickPower returns the amount added by one manual collection
func (s *Session) ClickPower() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clickPower
}

// Resource returns the ledger view of one resource
func (s *Session) Resource(rt models.ResourceType) models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Resource{Type: rt, Amount: s.ledger.Amount(rt), PerSecond: s.ledger.Rate(rt)}
}

// Building returns a copy of a building's current state
func (s *Session) Building(id string) (*models.Building, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.building(id)
	if b == nil {
		return nil, false
	}
	return b.Clone(), true
}

// Technology returns a copy of a technology's current state
func (s *Session) Technology(id string) (*models.Technology, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.technology(id)
	if t == nil {
		return nil, false
	}
	return t.Clone(), true
}
