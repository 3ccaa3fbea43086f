// Package ledger tracks the amount and accrual rate of every resource type.
package ledger

import (
	"errors"

	"github.com/napolitain/ascension/internal/models"
)

// TicksPerSecond is the number of accrual ticks that add up to one second of
// production
const TicksPerSecond = 10

// ErrInsufficientResources is returned when a cost exceeds available amounts
var ErrInsufficientResources = errors.New("insufficient resources")

// Ledger holds the amount and per-second rate of each resource type. It is not
// safe for concurrent use; the owning session serializes access.
type Ledger struct {
	amounts map[models.ResourceType]float64
	rates   map[models.ResourceType]float64
}

// New creates a ledger with every resource at zero
func New() *Ledger {
	l := &Ledger{
		amounts: make(map[models.ResourceType]float64),
		rates:   make(map[models.ResourceType]float64),
	}
	for _, rt := range models.AllResourceTypes() {
		l.amounts[rt] = 0
		l.rates[rt] = 0
	}
	return l
}

// Amount returns the current amount of a resource
func (l *Ledger) Amount(rt models.ResourceType) float64 {
	return l.amounts[rt]
}

// Rate returns the per-second production rate of a resource
func (l *Ledger) Rate(rt models.ResourceType) float64 {
	return l.rates[rt]
}

// Amounts returns a copy of all amounts
func (l *Ledger) Amounts() map[models.ResourceType]float64 {
	out := make(map[models.ResourceType]float64, len(l.amounts))
	for rt, amount := range l.amounts {
		out[rt] = amount
	}
	return out
}

// Rates returns a copy of all production rates
func (l *Ledger) Rates() models.Rates {
	out := make(models.Rates, len(l.rates))
	for rt, rate := range l.rates {
		out[rt] = rate
	}
	return out
}

// Resources returns the ledger in AllResourceTypes order
func (l *Ledger) Resources() []models.Resource {
	out := make([]models.Resource, 0, len(l.amounts))
	for _, rt := range models.AllResourceTypes() {
		out = append(out, models.Resource{
			Type:      rt,
			Amount:    l.amounts[rt],
			PerSecond: l.rates[rt],
		})
	}
	return out
}

// CanAfford reports whether every resource present in cost is covered.
// Resources absent from cost are unconstrained.
func (l *Ledger) CanAfford(cost models.Costs) bool {
	ok := true
	cost.Each(func(rt models.ResourceType, amount int) {
		if l.amounts[rt] < float64(amount) {
			ok = false
		}
	})
	return ok
}

// Spend deducts cost if affordable. Nothing changes when it is not.
func (l *Ledger) Spend(cost models.Costs) error {
	if !l.CanAfford(cost) {
		return ErrInsufficientResources
	}
	cost.Each(func(rt models.ResourceType, amount int) {
		l.amounts[rt] -= float64(amount)
	})
	return nil
}

// Add increases the amount of a resource. Negative deltas are ignored so the
// amount can only fall through Spend.
func (l *Ledger) Add(rt models.ResourceType, delta float64) {
	if delta <= 0 {
		return
	}
	l.amounts[rt] += delta
}

// AddRates increases production rates by the given partial mapping
func (l *Ledger) AddRates(gain models.Rates) {
	gain.Each(func(rt models.ResourceType, rate float64) {
		l.rates[rt] += rate
	})
}

// Accrue applies one tick of production: perSecond/TicksPerSecond to every
// resource with a positive rate
func (l *Ledger) Accrue() {
	for _, rt := range models.AllResourceTypes() {
		if rate := l.rates[rt]; rate > 0 {
			l.amounts[rt] += rate / TicksPerSecond
		}
	}
}

// Clone returns an independent copy of the ledger
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		amounts: l.Amounts(),
		rates:   map[models.ResourceType]float64(l.Rates()),
	}
}
