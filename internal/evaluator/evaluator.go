// Package evaluator scores 5-7 card poker hands using Cactus Kev style
// lookup tables. Scores run 1 (royal flush) to 7462 (7-5-4-3-2 high);
// lower is strictly better and equal scores tie.
//
// Score ranges by hand class:
//
//	1-10      Straight Flush
//	11-166    Four of a Kind
//	167-322   Full House
//	323-1599  Flush
//	1600-1609 Straight
//	1610-2467 Three of a Kind
//	2468-3325 Two Pair
//	3326-6185 One Pair
//	6186-7462 High Card
package evaluator

import (
	"fmt"

	"cardroom/internal/deck"
)

// WorstScore is one past the weakest possible hand score, used as the
// initial value when minimizing over 5-card subsets.
const WorstScore = 7463

// HandClass is the coarse category of a hand.
type HandClass int

const (
	StraightFlush HandClass = iota + 1
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

// String returns the display name of the hand class.
func (hc HandClass) String() string {
	switch hc {
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// ClassOf maps a score to its hand class by the half-open ranges above.
func ClassOf(score int) HandClass {
	switch {
	case score <= 10:
		return StraightFlush
	case score <= 166:
		return FourOfAKind
	case score <= 322:
		return FullHouse
	case score <= 1599:
		return Flush
	case score <= 1609:
		return Straight
	case score <= 2467:
		return ThreeOfAKind
	case score <= 3325:
		return TwoPair
	case score <= 6185:
		return OnePair
	default:
		return HighCard
	}
}

// ClassName returns the display name for a score's hand class.
func ClassName(score int) string {
	return ClassOf(score).String()
}

// Lookup tables, built once at process start and immutable thereafter.
// flushTable is keyed by the one-hot rank bitmask (bit 0 = deuce);
// unique5Table and pairsTable are keyed by the product of rank primes.
var (
	flushTable   map[uint16]int
	unique5Table map[uint32]int
	pairsTable   map[uint32]int
)

func init() {
	buildTables()
}

// The ten straights from ace-high down to the wheel. The wheel ranks
// lowest; its high card is the five.
var straightRanks = [10][5]deck.Rank{
	{14, 13, 12, 11, 10},
	{13, 12, 11, 10, 9},
	{12, 11, 10, 9, 8},
	{11, 10, 9, 8, 7},
	{10, 9, 8, 7, 6},
	{9, 8, 7, 6, 5},
	{8, 7, 6, 5, 4},
	{7, 6, 5, 4, 3},
	{6, 5, 4, 3, 2},
	{5, 4, 3, 2, 14},
}

func rankBits(ranks []deck.Rank) uint16 {
	var bits uint16
	for _, r := range ranks {
		bits |= 1 << (r - deck.Two)
	}
	return bits
}

func primeProduct(ranks []deck.Rank) uint32 {
	product := uint32(1)
	for _, r := range ranks {
		product *= uint32(r.Prime())
	}
	return product
}

// combinations yields all k-element combinations of ranks, preserving
// the order of the input slice (so a descending input enumerates
// combinations highest-first, which is what the score assignment
// depends on).
func combinations(ranks []deck.Rank, k int, visit func([]deck.Rank)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]deck.Rank, k)
	for {
		for i, j := range idx {
			combo[i] = ranks[j]
		}
		visit(combo)

		// Advance indices odometer-style.
		i := k - 1
		for i >= 0 && idx[i] == len(ranks)-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func descendingRanks(exclude ...deck.Rank) []deck.Rank {
	ranks := make([]deck.Rank, 0, 13)
outer:
	for r := deck.Ace; r >= deck.Two; r-- {
		for _, ex := range exclude {
			if r == ex {
				continue outer
			}
		}
		ranks = append(ranks, r)
	}
	return ranks
}

// buildTables enumerates all 7462 distinct 5-card hands from best to
// worst, assigning consecutive scores starting at 1. The order within
// each category is fixed: rank combinations lexicographically highest
// to lowest.
func buildTables() {
	flushTable = make(map[uint16]int, 1287)
	unique5Table = make(map[uint32]int, 1287)
	pairsTable = make(map[uint32]int, 4888)

	score := 1

	// Straight flushes: 1-10.
	for _, hand := range straightRanks {
		flushTable[rankBits(hand[:])] = score
		score++
	}

	// Four of a kind: 11-166, ordered by quad rank then kicker.
	for quad := deck.Ace; quad >= deck.Two; quad-- {
		for kicker := deck.Ace; kicker >= deck.Two; kicker-- {
			if kicker == quad {
				continue
			}
			pairsTable[primeProduct([]deck.Rank{quad, quad, quad, quad, kicker})] = score
			score++
		}
	}

	// Full house: 167-322, ordered by trips rank then pair rank.
	for trips := deck.Ace; trips >= deck.Two; trips-- {
		for pair := deck.Ace; pair >= deck.Two; pair-- {
			if pair == trips {
				continue
			}
			pairsTable[primeProduct([]deck.Rank{trips, trips, trips, pair, pair})] = score
			score++
		}
	}

	// Every 5-distinct-rank combination that is not a straight, highest
	// first. Used twice: flushes then high cards.
	straightSets := make(map[uint16]bool, len(straightRanks))
	for _, hand := range straightRanks {
		straightSets[rankBits(hand[:])] = true
	}
	var kickerHands [][]deck.Rank
	combinations(descendingRanks(), 5, func(combo []deck.Rank) {
		if straightSets[rankBits(combo)] {
			return
		}
		hand := make([]deck.Rank, 5)
		copy(hand, combo)
		kickerHands = append(kickerHands, hand)
	})

	// Flushes: 323-1599.
	for _, hand := range kickerHands {
		flushTable[rankBits(hand)] = score
		score++
	}

	// Straights: 1600-1609.
	for _, hand := range straightRanks {
		unique5Table[primeProduct(hand[:])] = score
		score++
	}

	// Three of a kind: 1610-2467.
	for trips := deck.Ace; trips >= deck.Two; trips-- {
		combinations(descendingRanks(trips), 2, func(kickers []deck.Rank) {
			pairsTable[primeProduct([]deck.Rank{trips, trips, trips, kickers[0], kickers[1]})] = score
			score++
		})
	}

	// Two pair: 2468-3325.
	for hi := deck.Ace; hi >= deck.Three; hi-- {
		for lo := hi - 1; lo >= deck.Two; lo-- {
			for kicker := deck.Ace; kicker >= deck.Two; kicker-- {
				if kicker == hi || kicker == lo {
					continue
				}
				pairsTable[primeProduct([]deck.Rank{hi, hi, lo, lo, kicker})] = score
				score++
			}
		}
	}

	// One pair: 3326-6185.
	for pair := deck.Ace; pair >= deck.Two; pair-- {
		combinations(descendingRanks(pair), 3, func(kickers []deck.Rank) {
			pairsTable[primeProduct([]deck.Rank{pair, pair, kickers[0], kickers[1], kickers[2]})] = score
			score++
		})
	}

	// High card: 6186-7462.
	for _, hand := range kickerHands {
		unique5Table[primeProduct(hand)] = score
		score++
	}

	if score != WorstScore {
		panic(fmt.Sprintf("evaluator: assigned %d scores, want %d", score-1, WorstScore-1))
	}
}

const suitMask = 0xF000

// eval5 scores five encoded cards.
func eval5(c1, c2, c3, c4, c5 uint32) int {
	if c1&c2&c3&c4&c5&suitMask != 0 {
		bits := uint16(((c1 | c2 | c3 | c4 | c5) >> 16) & 0x1FFF)
		return flushTable[bits]
	}
	product := (c1 & 0x3F) * (c2 & 0x3F) * (c3 & 0x3F) * (c4 & 0x3F) * (c5 & 0x3F)
	if score, ok := unique5Table[product]; ok {
		return score
	}
	return pairsTable[product]
}

// Score evaluates the best 5-card hand from 5, 6, or 7 cards. Any other
// count (or a duplicated card) is a programming error; Score panics on
// a bad count.
func Score(cards []deck.Card) int {
	n := len(cards)
	if n < 5 || n > 7 {
		panic(fmt.Sprintf("evaluator: Score requires 5-7 cards, got %d", n))
	}

	var enc [7]uint32
	for i, c := range cards {
		enc[i] = c.EvalBits()
	}

	switch n {
	case 5:
		return eval5(enc[0], enc[1], enc[2], enc[3], enc[4])
	case 6:
		// Minimum over the six 5-card subsets.
		best := WorstScore
		for skip := 0; skip < 6; skip++ {
			var five [5]uint32
			k := 0
			for i := 0; i < 6; i++ {
				if i == skip {
					continue
				}
				five[k] = enc[i]
				k++
			}
			if s := eval5(five[0], five[1], five[2], five[3], five[4]); s < best {
				best = s
			}
		}
		return best
	default:
		// Minimum over the twenty-one 5-card subsets.
		best := WorstScore
		for skipA := 0; skipA < 7; skipA++ {
			for skipB := skipA + 1; skipB < 7; skipB++ {
				var five [5]uint32
				k := 0
				for i := 0; i < 7; i++ {
					if i == skipA || i == skipB {
						continue
					}
					five[k] = enc[i]
					k++
				}
				if s := eval5(five[0], five[1], five[2], five[3], five[4]); s < best {
					best = s
				}
			}
		}
		return best
	}
}
