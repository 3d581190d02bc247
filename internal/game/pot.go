package game

import "sort"

// SidePot is one pot awarded at showdown: an amount and the player ids
// allowed to win it.
type SidePot struct {
	Amount   int
	Eligible []string
}

// PotManager tracks every player's chip contributions for the current
// hand and decomposes them into side pots by all-in caps. Contributions
// only grow within a hand and reset at hand start.
type PotManager struct {
	contributions map[string]int
	caps          map[string]int
	order         []string // contributor ids in first-contribution order
}

// NewPotManager creates an empty ledger.
func NewPotManager() *PotManager {
	pm := &PotManager{}
	pm.Reset()
	return pm
}

// Reset clears the ledger for a new hand.
func (pm *PotManager) Reset() {
	pm.contributions = make(map[string]int)
	pm.caps = make(map[string]int)
	pm.order = pm.order[:0]
}

// AddContribution records delta chips from playerID. If allIn, the
// player's running total becomes their cap: they can win no more than
// that amount from each other contributor.
func (pm *PotManager) AddContribution(playerID string, delta int, allIn bool) {
	if delta < 0 {
		panic("pot: negative contribution")
	}
	if _, seen := pm.contributions[playerID]; !seen {
		pm.order = append(pm.order, playerID)
	}
	pm.contributions[playerID] += delta
	if allIn {
		pm.caps[playerID] = pm.contributions[playerID]
	}
}

// Contribution returns the total committed by playerID this hand.
func (pm *PotManager) Contribution(playerID string) int {
	return pm.contributions[playerID]
}

// Total returns the sum of all contributions.
func (pm *PotManager) Total() int {
	total := 0
	for _, c := range pm.contributions {
		total += c
	}
	return total
}

// SidePots decomposes the ledger into ordered pots by peeling at each
// distinct all-in cap, ascending, then collecting the remainder into a
// final pot. active holds the non-folded player ids; folded players'
// chips stay in the pots but they are never eligible. The sum of pot
// amounts always equals the sum of contributions.
func (pm *PotManager) SidePots(active map[string]bool) []SidePot {
	capSet := make(map[int]bool)
	for _, c := range pm.caps {
		capSet[c] = true
	}
	caps := make([]int, 0, len(capSet))
	for c := range capSet {
		caps = append(caps, c)
	}
	sort.Ints(caps)

	taken := make(map[string]int, len(pm.order))
	var pots []SidePot

	for _, capAmount := range caps {
		amount := 0
		var eligible []string
		for _, pid := range pm.order {
			contrib := pm.contributions[pid]
			if slice := min(contrib, capAmount) - taken[pid]; slice > 0 {
				amount += slice
				taken[pid] += slice
			}
			if active[pid] && contrib >= capAmount {
				eligible = append(eligible, pid)
			}
		}
		if amount > 0 {
			pots = append(pots, SidePot{Amount: amount, Eligible: eligible})
		}
	}

	// Whatever sits above the largest cap forms the final pot.
	amount := 0
	var eligible []string
	maxCap := 0
	if len(caps) > 0 {
		maxCap = caps[len(caps)-1]
	}
	for _, pid := range pm.order {
		if slice := pm.contributions[pid] - taken[pid]; slice > 0 {
			amount += slice
		}
		if active[pid] && pm.contributions[pid] > maxCap {
			eligible = append(eligible, pid)
		}
	}
	if amount > 0 {
		pots = append(pots, SidePot{Amount: amount, Eligible: eligible})
	}

	return pots
}
