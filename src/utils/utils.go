package utils

import (
	"fmt"

	"liftsim/src/types"
)

// PrintStatus rewrites the one-line terminal status for the current frame.
func PrintStatus(stats types.SimStats, algorithm string, paused bool) {
	state := "running"
	if paused {
		state = "paused "
	}
	if stats.WarmingUp {
		fmt.Printf("\r[%s] %s | warm-up %4.1fs left | served %d | gave up %d          ",
			algorithm, state, stats.WarmupLeft, stats.ServedCount, stats.GiveUpCount)
		return
	}
	fmt.Printf("\r[%s] %s | score %6.1f | wait %5.1fs | transit %5.1fs | served %d | gave up %d   ",
		algorithm, state, stats.Score, stats.AvgWaitTime, stats.AvgTransitTime,
		stats.ServedCount, stats.GiveUpCount)
}
