package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/napolitain/ascension/internal/models"
)

func TestNewLedgerStartsEmpty(t *testing.T) {
	l := New()
	for _, r := range l.Resources() {
		if r.Amount != 0 || r.PerSecond != 0 {
			t.Errorf("%s: expected zero, got amount=%f rate=%f", r.Type, r.Amount, r.PerSecond)
		}
	}
	if len(l.Resources()) != len(models.AllResourceTypes()) {
		t.Errorf("Expected %d resources, got %d", len(models.AllResourceTypes()), len(l.Resources()))
	}
}

func TestSpendInsufficientIsNoop(t *testing.T) {
	l := New()
	l.Add(models.Sticks, 100)

	err := l.Spend(models.Costs{models.Sticks: 60, models.Food: 15})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("Expected ErrInsufficientResources, got %v", err)
	}
	if l.Amount(models.Sticks) != 100 {
		t.Errorf("Expected sticks unchanged at 100, got %f", l.Amount(models.Sticks))
	}
}

func TestSpendDeductsOnlyCostResources(t *testing.T) {
	l := New()
	l.Add(models.Sticks, 100)
	l.Add(models.Food, 20)
	l.Add(models.Stones, 7)

	if err := l.Spend(models.Costs{models.Sticks: 60, models.Food: 15}); err != nil {
		t.Fatalf("Spend failed: %v", err)
	}
	if l.Amount(models.Sticks) != 40 {
		t.Errorf("Expected 40 sticks, got %f", l.Amount(models.Sticks))
	}
	if l.Amount(models.Food) != 5 {
		t.Errorf("Expected 5 food, got %f", l.Amount(models.Food))
	}
	if l.Amount(models.Stones) != 7 {
		t.Errorf("Expected stones untouched, got %f", l.Amount(models.Stones))
	}
}

func TestCanAffordExactAmount(t *testing.T) {
	l := New()
	l.Add(models.Sticks, 15)
	if !l.CanAfford(models.Costs{models.Sticks: 15}) {
		t.Error("Expected exact amount to be affordable")
	}
	if l.CanAfford(models.Costs{models.Sticks: 16}) {
		t.Error("Expected 16 to be unaffordable")
	}
	if !l.CanAfford(models.Costs{}) {
		t.Error("Expected empty cost to be affordable")
	}
}

func TestAddIgnoresNegative(t *testing.T) {
	l := New()
	l.Add(models.Gold, 5)
	l.Add(models.Gold, -10)
	if l.Amount(models.Gold) != 5 {
		t.Errorf("Expected 5 gold, got %f", l.Amount(models.Gold))
	}
}

func TestAccrueAppliesTenthOfRate(t *testing.T) {
	l := New()
	l.AddRates(models.Rates{models.Food: 1.5})

	for i := 0; i < TicksPerSecond; i++ {
		l.Accrue()
	}

	if math.Abs(l.Amount(models.Food)-1.5) > 1e-9 {
		t.Errorf("Expected 1.5 food after one second, got %f", l.Amount(models.Food))
	}
	if l.Amount(models.Sticks) != 0 {
		t.Errorf("Expected no sticks, got %f", l.Amount(models.Sticks))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := New()
	l.Add(models.Iron, 3)
	clone := l.Clone()
	clone.Add(models.Iron, 10)
	clone.AddRates(models.Rates{models.Iron: 1})

	if l.Amount(models.Iron) != 3 || l.Rate(models.Iron) != 0 {
		t.Errorf("Original ledger mutated: amount=%f rate=%f", l.Amount(models.Iron), l.Rate(models.Iron))
	}
}
