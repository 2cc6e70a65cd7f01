// Floor statistics and the efficiency score.
package building

import (
	"math"
	"time"

	"liftsim/src/config"
	"liftsim/src/types"
)

// FloorStats recomputes the per-floor aggregates from the current queues.
// Wait times grow every tick, so nothing here is cached across ticks.
func (b *Building) FloorStats() []types.FloorStats {
	stats := make([]types.FloorStats, b.settings.Floors)
	for floor, queue := range b.queues {
		fs := types.FloorStats{
			Floor:         floor,
			WaitingCount:  len(queue),
			ButtonPressed: len(queue) > 0,
		}
		perElev := make(map[int]*types.ElevatorWaitStats)
		sum := 0.0
		for _, p := range queue {
			sum += p.WaitTime
			fs.MaxWait = math.Max(fs.MaxWait, p.WaitTime)
			if p.AssignedElev < 0 {
				continue
			}
			es, ok := perElev[p.AssignedElev]
			if !ok {
				es = &types.ElevatorWaitStats{Elevator: p.AssignedElev}
				perElev[p.AssignedElev] = es
			}
			es.Count++
			es.MaxWait = math.Max(es.MaxWait, p.WaitTime)
			es.AvgWait += p.WaitTime // running sum, divided below
		}
		if len(queue) > 0 {
			fs.AvgWait = sum / float64(len(queue))
		}
		for i := 0; i < b.settings.Lanes; i++ {
			es, ok := perElev[i]
			if !ok {
				continue
			}
			es.AvgWait /= float64(es.Count)
			fs.PerElevator = append(fs.PerElevator, *es)
		}
		stats[floor] = fs
	}
	return stats
}

// Stats builds the statistics surface pulled by the UI layer.
func (b *Building) Stats() types.SimStats {
	avgWait, avgTransit := b.servedAverages()
	return types.SimStats{
		WarmingUp:      b.WarmingUp(),
		WarmupLeft:     math.Max(b.warmupLeft, 0),
		AvgWaitTime:    avgWait,
		AvgTransitTime: avgTransit,
		AvgServiceTime: avgWait + avgTransit,
		ServedCount:    b.servedTotal,
		GiveUpCount:    b.giveUpCount,
		Score:          b.Score(),
	}
}

func (b *Building) servedAverages() (avgWait, avgTransit float64) {
	if len(b.servedScored) == 0 {
		return 0, 0
	}
	for _, p := range b.servedScored {
		avgWait += p.WaitTime
		avgTransit += p.TransitTime
	}
	n := float64(len(b.servedScored))
	return avgWait / n, avgTransit / n
}

type scoreCache struct {
	value      float64
	computedAt time.Time
	valid      bool
}

func (c *scoreCache) invalidate() {
	c.valid = false
}

// Score returns the efficiency score, recomputed at most once per
// config.ScoreRecomputeInterval of wall clock. The cache is invalidated the
// moment traffic changes so the UI never shows a stale value right after a
// parameter change.
func (b *Building) Score() float64 {
	if b.score.valid && time.Since(b.score.computedAt) < config.ScoreRecomputeInterval {
		return b.score.value
	}
	b.score = scoreCache{
		value:      b.computeScore(),
		computedAt: time.Now(),
		valid:      true,
	}
	return b.score.value
}

// computeScore is the canonical formula: a fixed baseline minus capped
// penalties for wait, transit, give-ups and utilization deviation, plus
// capped difficulty bonuses so harsh configurations are not unfairly
// penalized. Never negative.
func (b *Building) computeScore() float64 {
	if b.WarmingUp() {
		return config.ScoreBase
	}
	avgWait, avgTransit := b.servedAverages()

	score := config.ScoreBase
	score -= math.Min(avgWait*config.WaitPenaltyPerSec, config.WaitPenaltyCap)
	score -= math.Min(avgTransit*config.TransitPenaltyPerSec, config.TransitPenaltyCap)
	score -= math.Min(float64(b.giveUpCount)*config.GiveUpPenalty, config.GiveUpPenaltyCap)
	deviation := math.Abs(b.utilization() - config.UtilizationTarget)
	score -= math.Min(deviation*config.UtilizationPenaltyMul, config.UtilizationPenaltyCap)

	score += b.difficultyBonus()

	return math.Max(score, 0)
}

// utilization is the mean occupancy ratio across the lane roster.
func (b *Building) utilization() float64 {
	if len(b.elevators) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range b.elevators {
		sum += float64(e.PassengerCount()) / float64(e.Capacity)
	}
	return sum / float64(len(b.elevators))
}

// difficultyBonus scales with the harshness of the configuration: more
// floors, heavier flow, slower and smaller elevators, fewer lanes. Each term
// is capped separately so the bonus stays strictly monotone over realistic
// settings.
func (b *Building) difficultyBonus() float64 {
	s := b.settings
	bonus := math.Min(float64(s.Floors)*config.FloorBonusPerFloor, config.FloorBonusCap)
	bonus += math.Min(s.FlowRate*config.FlowBonusPerArrival, config.FlowBonusCap)
	bonus += math.Min(config.SpeedBonusNumerator/s.Speed, config.SpeedBonusCap)
	bonus += math.Min(config.CapacityBonusNumerator/float64(s.Capacity), config.CapacityBonusCap)
	bonus += math.Min(config.LaneBonusNumerator/float64(s.Lanes), config.LaneBonusCap)
	return bonus
}
