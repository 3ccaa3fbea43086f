package main

import (
	"fmt"
	"strings"

	"github.com/napolitain/ascension/internal/economy"
	"github.com/napolitain/ascension/internal/models"
)

func formatTime(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

func formatCosts(catalog *models.Catalog, costs models.Costs) string {
	var parts []string
	costs.Each(func(rt models.ResourceType, amount int) {
		parts = append(parts, fmt.Sprintf("%s%d", catalog.Resource(rt).Icon, amount))
	})
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func formatRates(catalog *models.Catalog, rates models.Rates) string {
	var parts []string
	rates.Each(func(rt models.ResourceType, rate float64) {
		parts = append(parts, fmt.Sprintf("%s%.1f", catalog.Resource(rt).Icon, rate))
	})
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// economyUpgradeCost prices the first upgrade of a fresh building
func economyUpgradeCost(b *models.Building) models.Costs {
	fresh := b.Clone()
	fresh.Level = 1
	return economy.UpgradeCost(fresh)
}
