package economy

import (
	"math"
	"testing"

	"github.com/napolitain/ascension/internal/models"
)

func campfire(count, level int) *models.Building {
	return &models.Building{
		ID:             "campfire",
		BaseCost:       models.Costs{models.Sticks: 15},
		BaseProduction: models.Rates{models.Food: 1.5},
		EraRequired:    models.Stone,
		Count:          count,
		Level:          level,
	}
}

func TestPurchaseCost(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"first unit", 0, 15},
		{"tenth unit", 10, 16},
		{"hundredth unit", 100, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := PurchaseCost(campfire(tt.count, 1))
			if cost[models.Sticks] != tt.want {
				t.Errorf("Expected %d sticks, got %d", tt.want, cost[models.Sticks])
			}
			if len(cost) != 1 {
				t.Errorf("Expected only sticks in cost, got %v", cost)
			}
		})
	}
}

func TestUpgradeCost(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 270},
		{2, 486},
	}

	for _, tt := range tests {
		cost := UpgradeCost(campfire(3, tt.level))
		if cost[models.Sticks] != tt.want {
			t.Errorf("level %d: expected %d sticks, got %d", tt.level, tt.want, cost[models.Sticks])
		}
	}
}

func TestCostOnlyUsesBaseCostResources(t *testing.T) {
	b := &models.Building{
		BaseCost: models.Costs{models.Sticks: 60, models.Food: 15},
		Level:    1,
	}

	purchase := PurchaseCost(b)
	upgrade := UpgradeCost(b)

	for _, cost := range []models.Costs{purchase, upgrade} {
		if len(cost) != 2 {
			t.Errorf("Expected 2 entries, got %v", cost)
		}
		if _, ok := cost[models.Stones]; ok {
			t.Errorf("Cost should not contain stones: %v", cost)
		}
	}
	if purchase[models.Food] != 15 {
		t.Errorf("Expected 15 food, got %d", purchase[models.Food])
	}
	if upgrade[models.Sticks] != 1080 {
		t.Errorf("Expected 1080 sticks, got %d", upgrade[models.Sticks])
	}
}

func TestCostDoesNotMutateBuilding(t *testing.T) {
	b := campfire(4, 2)
	_ = PurchaseCost(b)
	_ = UpgradeCost(b)
	if b.BaseCost[models.Sticks] != 15 || b.Count != 4 || b.Level != 2 {
		t.Errorf("Building mutated: %+v", b)
	}
}

func TestPurchaseGainUsesLevel(t *testing.T) {
	gain := PurchaseGain(campfire(0, 1))
	if gain[models.Food] != 1.5 {
		t.Errorf("Expected 1.5 food/s, got %f", gain[models.Food])
	}

	gain = PurchaseGain(campfire(0, 3))
	if gain[models.Food] != 4.5 {
		t.Errorf("Expected 4.5 food/s at level 3, got %f", gain[models.Food])
	}
}

func TestUpgradeGainUsesCount(t *testing.T) {
	gain := UpgradeGain(campfire(3, 1))
	if gain[models.Food] != 4.5 {
		t.Errorf("Expected 4.5 food/s for 3 units, got %f", gain[models.Food])
	}
}

// FuzzPurchaseCost checks the purchase price never drops below base cost and
// never decreases as more units are owned
func FuzzPurchaseCost(f *testing.F) {
	f.Add(uint16(15), uint16(0))
	f.Add(uint16(60), uint16(10))
	f.Add(uint16(1), uint16(255))
	f.Add(uint16(65535), uint16(100))
	f.Add(uint16(120), uint16(4000))

	f.Fuzz(func(t *testing.T, base uint16, count uint16) {
		b := &models.Building{
			BaseCost: models.Costs{models.Stones: int(base)},
			Count:    int(count),
			Level:    1,
		}
		cost := PurchaseCost(b)[models.Stones]
		if cost < int(base) {
			t.Errorf("cost %d below base %d at count %d", cost, base, count)
		}

		b.Count++
		next := PurchaseCost(b)[models.Stones]
		if next < cost {
			t.Errorf("cost decreased from %d to %d", cost, next)
		}
	})
}

// FuzzUpgradeCost checks upgrades always cost at least ten times base and
// never get cheaper with level
func FuzzUpgradeCost(f *testing.F) {
	f.Add(uint16(15), uint16(1))
	f.Add(uint16(400), uint16(5))
	f.Add(uint16(1), uint16(20))
	f.Add(uint16(120), uint16(75))

	f.Fuzz(func(t *testing.T, base uint16, level uint16) {
		if level == 0 {
			level = 1
		}
		b := &models.Building{
			BaseCost: models.Costs{models.Iron: int(base)},
			Level:    int(level),
		}
		cost := UpgradeCost(b)[models.Iron]
		if cost < int(base)*UpgradeMarkup {
			t.Errorf("upgrade cost %d below %d", cost, int(base)*UpgradeMarkup)
		}

		b.Level++
		if next := UpgradeCost(b)[models.Iron]; next < cost {
			t.Errorf("upgrade cost decreased from %d to %d", cost, next)
		}
	})
}

func TestCostSaturatesInsteadOfWrapping(t *testing.T) {
	market := &models.Building{
		BaseCost: models.Costs{models.Food: 120, models.Iron: 40},
		Count:    4000,
		Level:    1,
	}
	for rt, amount := range PurchaseCost(market) {
		if amount != MaxCost {
			t.Errorf("Expected %s purchase cost %d, got %d", rt, MaxCost, amount)
		}
	}

	market.Count = 1
	market.Level = 75
	for rt, amount := range UpgradeCost(market) {
		if amount != MaxCost {
			t.Errorf("Expected %s upgrade cost %d, got %d", rt, MaxCost, amount)
		}
	}
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
		{42, 42},
		{math.Inf(1), MaxCost},
		{1e30, MaxCost},
	}
	for _, tt := range tests {
		if got := saturate(tt.in); got != tt.want {
			t.Errorf("saturate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
