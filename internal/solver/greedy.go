package solver

import (
	"fmt"
	"sort"

	"github.com/napolitain/ascension/internal/economy"
	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/ledger"
	"github.com/napolitain/ascension/internal/models"
	"github.com/napolitain/ascension/internal/scheduler"
)

const (
	// DefaultMaxTicks bounds a headless run (one hour of game time)
	DefaultMaxTicks = 36000

	// DefaultSaveHorizon is how close, in seconds of production, the next
	// technology must be before the solver stops buying buildings
	DefaultSaveHorizon = 60.0

	// maxActionsPerTick guards against catalogs with free entries
	maxActionsPerTick = 100
)

// ActionKind identifies what the solver did
type ActionKind string

const (
	ActionPurchase ActionKind = "purchase"
	ActionUpgrade  ActionKind = "upgrade"
	ActionResearch ActionKind = "research"
)

// Action is one recorded decision
type Action struct {
	Tick     uint64
	Kind     ActionKind
	TargetID string
	Name     string
	Costs    models.Costs
	ROI      float64
	Era      models.Era // era after the action
}

// String returns a one-line description of the action
func (a Action) String() string {
	return fmt.Sprintf("t=%d %s %s", a.Tick, a.Kind, a.TargetID)
}

// Solution is the outcome of a headless run
type Solution struct {
	Actions  []Action
	Ticks    uint64
	Clicks   int
	FinalEra models.Era
	Final    game.Snapshot
}

// Seconds returns the game time covered by the run
func (s *Solution) Seconds() float64 {
	return float64(s.Ticks) / ledger.TicksPerSecond
}

// GreedySolver plays a session headlessly. Each tick it researches the next
// technology when affordable, otherwise buys the best-ROI building action,
// and spends one manual collection on the most-missing resource.
type GreedySolver struct {
	Session     *game.Session
	Scheduler   *scheduler.Scheduler
	TargetEra   models.Era // empty runs until MaxTicks
	MaxTicks    uint64
	SaveHorizon float64
}

// NewGreedySolver creates a solver with default limits
func NewGreedySolver(session *game.Session, targetEra models.Era) *GreedySolver {
	return &GreedySolver{
		Session:     session,
		Scheduler:   scheduler.New(session, 0, nil),
		TargetEra:   targetEra,
		MaxTicks:    DefaultMaxTicks,
		SaveHorizon: DefaultSaveHorizon,
	}
}

type candidate struct {
	kind     ActionKind
	building game.BuildingView
	costs    models.Costs
	gain     models.Rates
	metric   economy.ROIMetric
	roi      float64
}

// Solve runs the greedy simulation
func (s *GreedySolver) Solve() *Solution {
	sol := &Solution{}
	if s.Scheduler == nil {
		s.Scheduler = scheduler.New(s.Session, 0, nil)
	}

	for sol.Ticks < s.MaxTicks {
		snap := s.Session.Snapshot()
		if s.TargetEra != "" && s.TargetEra.Reached(snap.Era) {
			break
		}

		for i := 0; i < maxActionsPerTick; i++ {
			action, ok := s.act(snap, sol.Ticks)
			if !ok {
				break
			}
			sol.Actions = append(sol.Actions, action)
			snap = s.Session.Snapshot()
		}
		if s.TargetEra != "" && s.TargetEra.Reached(snap.Era) {
			break
		}

		if rt, ok := s.clickTarget(snap); ok {
			if err := s.Session.Collect(rt); err == nil {
				sol.Clicks++
			}
		}
		s.Scheduler.Step()
		sol.Ticks++
	}

	// Era narration runs in the background; let it land in the event log.
	s.Session.Wait()
	sol.Final = s.Session.Snapshot()
	sol.FinalEra = sol.Final.Era
	return sol
}

// act performs at most one action and reports what it did
func (s *GreedySolver) act(snap game.Snapshot, tick uint64) (Action, bool) {
	goal := nextTechnology(snap)
	if goal != nil && goal.CanResearch {
		if err := s.Session.Research(goal.ID); err != nil {
			return Action{}, false
		}
		return Action{
			Tick:     tick,
			Kind:     ActionResearch,
			TargetID: goal.ID,
			Name:     goal.Name,
			Costs:    goal.Cost,
			Era:      s.Session.Era(),
		}, true
	}

	amounts, rates := snap.Amounts(), snap.Rates()
	if goal != nil && economy.WaitSeconds(goal.Cost, amounts, rates) <= s.SaveHorizon {
		return Action{}, false
	}

	ranked := rankCandidates(snap, goal)
	if len(ranked) == 0 {
		return Action{}, false
	}
	best := ranked[0]
	if best.metric.WaitSeconds > 0 {
		// Save for the best action rather than settle for a worse one
		return Action{}, false
	}

	var err error
	switch best.kind {
	case ActionPurchase:
		err = s.Session.Purchase(best.building.ID)
	case ActionUpgrade:
		err = s.Session.Upgrade(best.building.ID)
	}
	if err != nil {
		return Action{}, false
	}
	return Action{
		Tick:     tick,
		Kind:     best.kind,
		TargetID: best.building.ID,
		Name:     best.building.Name,
		Costs:    best.costs,
		ROI:      best.roi,
		Era:      snap.Era,
	}, true
}

// nextTechnology returns the first technology still available for research
func nextTechnology(snap game.Snapshot) *game.TechnologyView {
	if len(snap.Technologies) == 0 {
		return nil
	}
	return &snap.Technologies[0]
}

// rankCandidates lists purchase and upgrade options ordered by ROI. With a
// goal technology, only actions producing a resource the goal still lacks
// are considered.
func rankCandidates(snap game.Snapshot, goal *game.TechnologyView) []candidate {
	amounts, rates := snap.Amounts(), snap.Rates()

	var missing map[models.ResourceType]bool
	if goal != nil {
		missing = make(map[models.ResourceType]bool)
		goal.Cost.Each(func(rt models.ResourceType, amount int) {
			if amounts[rt] < float64(amount) {
				missing[rt] = true
			}
		})
	}
	helps := func(gain models.Rates) bool {
		if missing == nil {
			return true
		}
		found := false
		gain.Each(func(rt models.ResourceType, rate float64) {
			if rate > 0 && missing[rt] {
				found = true
			}
		})
		return found
	}

	var out []candidate
	for _, b := range snap.Buildings {
		if helps(b.PurchaseGain) {
			metric := economy.Metric(b.PurchaseCost, b.PurchaseGain, amounts, rates)
			out = append(out, candidate{
				kind: ActionPurchase, building: b,
				costs: b.PurchaseCost, gain: b.PurchaseGain,
				metric: metric, roi: metric.Calculate(),
			})
		}
		if b.Count > 0 && b.EraRequired == snap.Era && helps(b.UpgradeGain) {
			metric := economy.Metric(b.UpgradeCost, b.UpgradeGain, amounts, rates)
			out = append(out, candidate{
				kind: ActionUpgrade, building: b,
				costs: b.UpgradeCost, gain: b.UpgradeGain,
				metric: metric, roi: metric.Calculate(),
			})
		}
	}

	filtered := out[:0]
	for _, c := range out {
		if c.roi > 0 {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].roi > filtered[j].roi
	})
	return filtered
}

// clickTarget picks the resource a manual collection helps most: the one the
// next technology (or else the best building action) is furthest from
// covering at current production.
func (s *GreedySolver) clickTarget(snap game.Snapshot) (models.ResourceType, bool) {
	amounts, rates := snap.Amounts(), snap.Rates()

	var costs models.Costs
	if goal := nextTechnology(snap); goal != nil {
		costs = goal.Cost
	} else if ranked := rankCandidates(snap, nil); len(ranked) > 0 {
		costs = ranked[0].costs
	}

	var (
		target     models.ResourceType
		found      bool
		unproduced bool
		worst      float64
	)
	costs.Each(func(rt models.ResourceType, amount int) {
		short := float64(amount) - amounts[rt]
		if short <= 0 {
			return
		}
		// Unproduced resources come first, largest shortfall wins; produced
		// ones rank by seconds of production still needed.
		isUnproduced := rates[rt] <= 0
		score := short
		if !isUnproduced {
			score = short / rates[rt]
		}
		switch {
		case !found,
			isUnproduced && !unproduced,
			isUnproduced == unproduced && score > worst:
			target, found, unproduced, worst = rt, true, isUnproduced, score
		}
	})
	if !found {
		return "", false
	}
	return target, true
}

// Advise returns the action the greedy strategy favors next, without
// performing it. The action may not be affordable yet.
func Advise(snap game.Snapshot) (Action, bool) {
	goal := nextTechnology(snap)
	if goal != nil && goal.CanResearch {
		return Action{Kind: ActionResearch, TargetID: goal.ID, Name: goal.Name, Costs: goal.Cost, Era: snap.Era}, true
	}
	if ranked := rankCandidates(snap, goal); len(ranked) > 0 {
		best := ranked[0]
		return Action{
			Kind:     best.kind,
			TargetID: best.building.ID,
			Name:     best.building.Name,
			Costs:    best.costs,
			ROI:      best.roi,
			Era:      snap.Era,
		}, true
	}
	if goal != nil {
		return Action{Kind: ActionResearch, TargetID: goal.ID, Name: goal.Name, Costs: goal.Cost, Era: snap.Era}, true
	}
	return Action{}, false
}
