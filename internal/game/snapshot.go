package game

import (
	"github.com/napolitain/ascension/internal/economy"
	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/models"
)

// BuildingView is a presentation copy of a building with its current prices
type BuildingView struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Icon           string       `json:"icon"`
	EraRequired    models.Era   `json:"eraRequired"`
	Count          int          `json:"count"`
	Level          int          `json:"level"`
	BaseProduction models.Rates `json:"baseProduction"`
	PurchaseCost   models.Costs `json:"purchaseCost"`
	UpgradeCost    models.Costs `json:"upgradeCost"`
	PurchaseGain   models.Rates `json:"purchaseGain"`
	UpgradeGain    models.Rates `json:"upgradeGain"`
	CanPurchase    bool         `json:"canPurchase"`
	CanUpgrade     bool         `json:"canUpgrade"`
}

// TechnologyView is a presentation copy of a technology
type TechnologyView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cost        models.Costs `json:"cost"`
	EraRequired models.Era   `json:"eraRequired"`
	UnlocksEra  models.Era   `json:"unlocksEra,omitempty"`
	Unlocked    bool         `json:"unlocked"`
	CanResearch bool         `json:"canResearch"`
}

// Snapshot is a deep copy of session state. Buildings and technologies are
// the ones available in the current era.
type Snapshot struct {
	Era          models.Era         `json:"era"`
	EraName      string             `json:"eraName"`
	ClickPower   float64            `json:"clickPower"`
	Ticks        uint64             `json:"ticks"`
	Resources    []models.Resource  `json:"resources"`
	Buildings    []BuildingView     `json:"buildings"`
	Technologies []TechnologyView   `json:"technologies"`
	Events       []models.GameEvent `json:"events"`
}

// Amounts returns the snapshot's resource amounts keyed by type
func (snap Snapshot) Amounts() map[models.ResourceType]float64 {
	out := make(map[models.ResourceType]float64, len(snap.Resources))
	for _, r := range snap.Resources {
		out[r.Type] = r.Amount
	}
	return out
}

// Rates returns the snapshot's production rates keyed by type
func (snap Snapshot) Rates() models.Rates {
	out := make(models.Rates, len(snap.Resources))
	for _, r := range snap.Resources {
		out[r.Type] = r.PerSecond
	}
	return out
}

// Snapshot copies the current state for presentation
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Era:        s.era,
		EraName:    i18n.EraName(s.printer, s.era),
		ClickPower: s.clickPower,
		Ticks:      s.ticks,
		Resources:  s.ledger.Resources(),
		Events:     append([]models.GameEvent(nil), s.events...),
	}
	for _, b := range s.availableBuildings() {
		snap.Buildings = append(snap.Buildings, s.buildingView(b))
	}
	for _, t := range s.availableTechnologies() {
		snap.Technologies = append(snap.Technologies, TechnologyView{
			ID:          t.ID,
			Name:        i18n.TechnologyName(s.printer, t),
			Description: t.Description,
			Cost:        t.Cost.Clone(),
			EraRequired: t.EraRequired,
			UnlocksEra:  t.UnlocksEra,
			Unlocked:    t.Unlocked,
			CanResearch: s.ledger.CanAfford(t.Cost),
		})
	}
	return snap
}

func (s *Session) buildingView(b *models.Building) BuildingView {
	purchase := economy.PurchaseCost(b)
	upgrade := economy.UpgradeCost(b)
	return BuildingView{
		ID:             b.ID,
		Name:           i18n.BuildingName(s.printer, b),
		Description:    b.Description,
		Icon:           b.Icon,
		EraRequired:    b.EraRequired,
		Count:          b.Count,
		Level:          b.Level,
		BaseProduction: b.BaseProduction.Clone(),
		PurchaseCost:   purchase,
		UpgradeCost:    upgrade,
		PurchaseGain:   economy.PurchaseGain(b),
		UpgradeGain:    economy.UpgradeGain(b),
		CanPurchase:    s.ledger.CanAfford(purchase),
		CanUpgrade:     s.canUpgrade(b),
	}
}

func (s *Session) availableBuildings() []*models.Building {
	var out []*models.Building
	for _, b := range s.buildings {
		if b.EraRequired.Reached(s.era) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Session) availableTechnologies() []*models.Technology {
	var out []*models.Technology
	for _, t := range s.technologies {
		if !t.Unlocked && t.EraRequired.Reached(s.era) {
			out = append(out, t)
		}
	}
	return out
}

// AvailableBuildings returns copies of the buildings whose era has been
// reached, in catalog order
func (s *Session) AvailableBuildings() []*models.Building {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Building
	for _, b := range s.availableBuildings() {
		out = append(out, b.Clone())
	}
	return out
}

// AvailableTechnologies returns copies of the technologies whose era has been
// reached and that are not yet researched
func (s *Session) AvailableTechnologies() []*models.Technology {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Technology
	for _, t := range s.availableTechnologies() {
		out = append(out, t.Clone())
	}
	return out
}

// CanPurchase reports whether the next unit of a building is affordable
func (s *Session) CanPurchase(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.building(id)
	return b != nil && s.ledger.CanAfford(economy.PurchaseCost(b))
}

// CanUpgrade reports whether Upgrade would currently succeed
func (s *Session) CanUpgrade(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.building(id)
	return b != nil && s.canUpgrade(b)
}

func (s *Session) canUpgrade(b *models.Building) bool {
	return b.Count > 0 && b.EraRequired == s.era && s.ledger.CanAfford(economy.UpgradeCost(b))
}

// CanResearch reports whether Research would currently succeed
func (s *Session) CanResearch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.technology(id)
	return t != nil && !t.Unlocked && s.ledger.CanAfford(t.Cost)
}
