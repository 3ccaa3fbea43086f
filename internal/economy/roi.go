package economy

import (
	"math"

	"github.com/napolitain/ascension/internal/models"
)

// ROIMetric represents the components of an ROI calculation
type ROIMetric struct {
	GainPerSecond float64
	TotalCost     float64
	WaitSeconds   float64 // time until the cost is affordable at current rates
}

// Calculate computes the final ROI value. Waiting for resources dilutes the
// return; a free action with any gain ranks above everything else.
func (m ROIMetric) Calculate() float64 {
	if math.IsInf(m.WaitSeconds, 1) {
		return 0
	}
	if m.TotalCost <= 0 {
		return m.GainPerSecond * 1000
	}
	base := m.GainPerSecond / m.TotalCost
	return base / (1.0 + m.WaitSeconds/60)
}

// Metric builds the ROI metric of spending cost for gain, given the current
// amounts and production rates.
func Metric(cost models.Costs, gain models.Rates, amounts map[models.ResourceType]float64, rates models.Rates) ROIMetric {
	var total float64
	cost.Each(func(_ models.ResourceType, amount int) {
		total += float64(amount)
	})
	var perSecond float64
	gain.Each(func(_ models.ResourceType, rate float64) {
		perSecond += rate
	})
	return ROIMetric{
		GainPerSecond: perSecond,
		TotalCost:     total,
		WaitSeconds:   WaitSeconds(cost, amounts, rates),
	}
}

// WaitSeconds returns how long until every resource in cost is covered,
// assuming current rates hold. It is +Inf when a missing resource has no
// production.
func WaitSeconds(cost models.Costs, amounts map[models.ResourceType]float64, rates models.Rates) float64 {
	var wait float64
	cost.Each(func(rt models.ResourceType, amount int) {
		missing := float64(amount) - amounts[rt]
		if missing <= 0 {
			return
		}
		rate := rates[rt]
		if rate <= 0 {
			wait = math.Inf(1)
			return
		}
		wait = math.Max(wait, missing/rate)
	})
	return wait
}
