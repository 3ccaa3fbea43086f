// Package economy holds the pure pricing and return-on-investment rules
package economy

import (
	"math"

	"github.com/napolitain/ascension/internal/models"
)

// Game mechanics constants
const (
	// PurchaseGrowth is the per-owned-unit price inflation for purchases
	PurchaseGrowth = 1.01

	// UpgradeMarkup is the flat multiplier applied to base cost for upgrades
	UpgradeMarkup = 10

	// UpgradeGrowth compounds the upgrade price per existing level
	UpgradeGrowth = 1.8
)

// PurchaseCost returns the price of the next unit of b:
// floor(baseCost * 1.01^count) for every resource in baseCost.
func PurchaseCost(b *models.Building) models.Costs {
	multiplier := math.Pow(PurchaseGrowth, float64(b.Count))
	return scale(b.BaseCost, multiplier)
}

// UpgradeCost returns the price of raising b one level:
// floor(baseCost * 10 * 1.8^level) for every resource in baseCost.
func UpgradeCost(b *models.Building) models.Costs {
	multiplier := UpgradeMarkup * math.Pow(UpgradeGrowth, float64(b.Level))
	return scale(b.BaseCost, multiplier)
}

// PurchaseGain returns the production added by buying one more unit of b.
// Each unit yields base production scaled by the building's current level.
func PurchaseGain(b *models.Building) models.Rates {
	gain := make(models.Rates, len(b.BaseProduction))
	b.BaseProduction.Each(func(rt models.ResourceType, rate float64) {
		gain[rt] = rate * float64(b.Level)
	})
	return gain
}

// UpgradeGain returns the production added by upgrading b. The new level
// applies to every owned unit.
func UpgradeGain(b *models.Building) models.Rates {
	gain := make(models.Rates, len(b.BaseProduction))
	b.BaseProduction.Each(func(rt models.ResourceType, rate float64) {
		gain[rt] = rate * float64(b.Count)
	})
	return gain
}

// MaxCost is the ceiling of any single price. Prices that would exceed it
// saturate instead of wrapping around.
const MaxCost = math.MaxInt64

func scale(base models.Costs, multiplier float64) models.Costs {
	cost := make(models.Costs, len(base))
	base.Each(func(rt models.ResourceType, amount int) {
		cost[rt] = saturate(math.Floor(float64(amount) * multiplier))
	})
	return cost
}

// saturate converts a floored price to int, clamping to [0, MaxCost]
func saturate(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(MaxCost):
		return MaxCost
	}
	return int(v)
}
