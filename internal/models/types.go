package models

import "time"

// ResourceType represents the different resource types in the game
type ResourceType string

const (
	Sticks      ResourceType = "sticks"
	Stones      ResourceType = "stones"
	Food        ResourceType = "food"
	Bronze      ResourceType = "bronze"
	Iron        ResourceType = "iron"
	Gold        ResourceType = "gold"
	Coal        ResourceType = "coal"
	Electricity ResourceType = "electricity"
	Data        ResourceType = "data"
	Antimatter  ResourceType = "antimatter"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		Sticks, Stones, Food,
		Bronze, Iron, Gold,
		Coal, Electricity, Data,
		Antimatter,
	}
}

// Valid reports whether rt is one of the known resource types
func (rt ResourceType) Valid() bool {
	for _, known := range AllResourceTypes() {
		if rt == known {
			return true
		}
	}
	return false
}

// Era represents a progression stage. Eras are totally ordered by their
// position in AllEras.
type Era string

const (
	Stone         Era = "stone"
	BronzeAge     Era = "bronze"
	IronAge       Era = "iron"
	Medieval      Era = "medieval"
	Industrial    Era = "industrial"
	Modern        Era = "modern"
	Digital       Era = "digital"
	Space         Era = "space"
	Future        Era = "future"
	Transcendence Era = "transcendence"
)

// AllEras returns all eras in progression order
func AllEras() []Era {
	return []Era{
		Stone, BronzeAge, IronAge, Medieval, Industrial,
		Modern, Digital, Space, Future, Transcendence,
	}
}

// Index returns the position of the era in the progression, or -1 if unknown
func (e Era) Index() int {
	for i, known := range AllEras() {
		if e == known {
			return i
		}
	}
	return -1
}

// Valid reports whether e is a known era
func (e Era) Valid() bool {
	return e.Index() >= 0
}

// Before reports whether e strictly precedes other
func (e Era) Before(other Era) bool {
	return e.Index() < other.Index()
}

// Reached reports whether e is the current era or precedes it
func (e Era) Reached(current Era) bool {
	return e == current || e.Before(current)
}

// Costs is a partial mapping of resource costs. Only present keys are
// constrained; absent resources cost nothing.
type Costs map[ResourceType]int

// Each visits present entries in AllResourceTypes order
func (c Costs) Each(fn func(ResourceType, int)) {
	for _, rt := range AllResourceTypes() {
		if amount, ok := c[rt]; ok {
			fn(rt, amount)
		}
	}
}

// Clone returns a copy of the mapping
func (c Costs) Clone() Costs {
	if c == nil {
		return nil
	}
	out := make(Costs, len(c))
	for rt, amount := range c {
		out[rt] = amount
	}
	return out
}

// Rates is a partial mapping of per-second production rates
type Rates map[ResourceType]float64

// Each visits present entries in AllResourceTypes order
func (r Rates) Each(fn func(ResourceType, float64)) {
	for _, rt := range AllResourceTypes() {
		if rate, ok := r[rt]; ok {
			fn(rt, rate)
		}
	}
}

// Clone returns a copy of the mapping
func (r Rates) Clone() Rates {
	if r == nil {
		return nil
	}
	out := make(Rates, len(r))
	for rt, rate := range r {
		out[rt] = rate
	}
	return out
}

// ResourceInfo holds display data for a resource type
type ResourceInfo struct {
	Type ResourceType
	Name string
	Icon string
}

// Building is a catalog entry plus its session state
type Building struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	BaseCost       Costs
	BaseProduction Rates
	EraRequired    Era

	Count int // times purchased
	Level int // starts at 1
}

// Clone creates a deep copy of the building
func (b *Building) Clone() *Building {
	clone := *b
	clone.BaseCost = b.BaseCost.Clone()
	clone.BaseProduction = b.BaseProduction.Clone()
	return &clone
}

// Technology is a catalog entry plus its research state
type Technology struct {
	ID          string
	Name        string
	Description string
	Cost        Costs
	EraRequired Era
	UnlocksEra  Era // empty when the technology does not change era

	Unlocked bool
}

// Clone creates a deep copy of the technology
func (t *Technology) Clone() *Technology {
	clone := *t
	clone.Cost = t.Cost.Clone()
	return &clone
}

// Resource is the ledger view of one resource type
type Resource struct {
	Type      ResourceType `json:"type"`
	Amount    float64      `json:"amount"`
	PerSecond float64      `json:"perSecond"`
}

// EventKind classifies entries in the session event log
type EventKind string

const (
	EventInfo    EventKind = "info"
	EventSuccess EventKind = "success"
	EventWarning EventKind = "warning"
	EventEra     EventKind = "era"
)

// GameEvent is a single entry in the session event log
type GameEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Kind      EventKind `json:"type"`
}
