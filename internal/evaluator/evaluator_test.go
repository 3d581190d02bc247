package evaluator

import "testing"

func TestScoreClasses7(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		class HandClass
	}{
		{"Royal Flush", "AsKsQsJs10s9h8h", StraightFlush},
		{"Straight Flush", "9s8s7s6s5s4h3h", StraightFlush},
		{"Four of a Kind", "AsAhAdAcKs2h3h", FourOfAKind},
		{"Full House", "AsAhAdKsKh2h3h", FullHouse},
		{"Flush", "AsKsQs8s6s4h3h", Flush},
		{"Straight", "AsKhQdJc10s9h8h", Straight},
		{"Three of a Kind", "AsAhAdKs9c7h5h", ThreeOfAKind},
		{"Two Pair", "AsAhKdKs9c7h5h", TwoPair},
		{"One Pair", "AsAhKdQs9c7h5h", OnePair},
		{"High Card", "AsKhQd9s7c5h3h", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(MustParseCards(tt.cards))
			if got := ClassOf(score); got != tt.class {
				t.Errorf("ClassOf(%d) = %v, want %v", score, got, tt.class)
			}
		})
	}
}

func TestBoundaryScores(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		score int
	}{
		{"royal flush", "AsKsQsJs10s", 1},
		{"wheel straight flush", "5s4s3s2sAs", 10},
		{"best quads", "AsAhAdAcKs", 11},
		{"worst quads", "2s2h2d2c3s", 166},
		{"best full house", "AsAhAdKsKh", 167},
		{"worst full house", "2s2h2d3s3h", 322},
		{"best flush", "AsKsQsJs9s", 323},
		{"worst flush", "7s5s4s3s2s", 1599},
		{"broadway straight", "AsKhQdJc10s", 1600},
		{"wheel straight", "5s4h3d2cAs", 1609},
		{"best trips", "AsAhAdKsQh", 1610},
		{"worst trips", "2s2h2d4s3h", 2467},
		{"best two pair", "AsAhKsKhQd", 2468},
		{"worst two pair", "3s3h2s2h4d", 3325},
		{"best pair", "AsAhKsQhJd", 3326},
		{"worst pair", "2s2h5s4h3d", 6185},
		{"best high card", "AsKhQdJc9s", 6186},
		{"worst high card", "7s5h4d3c2s", 7462},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(MustParseCards(tt.cards)); got != tt.score {
				t.Errorf("Score(%s) = %d, want %d", tt.cards, got, tt.score)
			}
		})
	}
}

func TestTableCardinalities(t *testing.T) {
	if len(flushTable) != 1287 {
		t.Errorf("flush table has %d entries, want 1287", len(flushTable))
	}
	if len(unique5Table) != 1287 {
		t.Errorf("unique5 table has %d entries, want 1287", len(unique5Table))
	}
	if len(pairsTable) != 4888 {
		t.Errorf("pairs table has %d entries, want 4888", len(pairsTable))
	}
}

func TestSuitsEquivalent(t *testing.T) {
	spades := Score(MustParseCards("AsKsQsJs9s"))
	hearts := Score(MustParseCards("AhKhQhJh9h"))
	if spades != hearts {
		t.Errorf("same flush in different suits scored %d vs %d", spades, hearts)
	}
}

func TestSixCardUsesBestFive(t *testing.T) {
	// Pair of aces plus a 6th card making a flush: flush must win.
	score := Score(MustParseCards("AsAhKsQsJs9s"))
	if got := ClassOf(score); got != Flush {
		t.Errorf("got %v, want Flush", got)
	}
}

func TestSevenCardIgnoresWorstTwo(t *testing.T) {
	// Board straight with irrelevant hole cards.
	withJunk := Score(MustParseCards("2c3d9h8s7d6c5h"))
	bare := Score(MustParseCards("9h8s7d6c5h"))
	if withJunk != bare {
		t.Errorf("7-card score %d differs from best-5 score %d", withJunk, bare)
	}
}

func TestIdenticalRanksTie(t *testing.T) {
	a := Score(MustParseCards("AsKhQd9s7c"))
	b := Score(MustParseCards("AdKcQs9h7d"))
	if a != b {
		t.Errorf("rank-identical hands scored %d vs %d", a, b)
	}
}

func TestKickerOrdering(t *testing.T) {
	aceHigh := Score(MustParseCards("AsKhQd9s7c"))
	kingHigh := Score(MustParseCards("KsQhJd9s7c"))
	if aceHigh >= kingHigh {
		t.Errorf("ace high (%d) should outrank king high (%d)", aceHigh, kingHigh)
	}

	pairKickA := Score(MustParseCards("8s8hAdQs3c"))
	pairKickK := Score(MustParseCards("8d8cKdQh3d"))
	if pairKickA >= pairKickK {
		t.Errorf("better kicker should score lower: %d vs %d", pairKickA, pairKickK)
	}
}

func TestWheelIsLowestStraight(t *testing.T) {
	wheel := Score(MustParseCards("5s4h3d2cAs"))
	sixHigh := Score(MustParseCards("6s5h4d3c2s"))
	if sixHigh >= wheel {
		t.Errorf("six-high straight (%d) should outrank the wheel (%d)", sixHigh, wheel)
	}
	if ClassOf(wheel) != Straight {
		t.Errorf("wheel classed as %v", ClassOf(wheel))
	}
}

func TestScorePanicsOnBadCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for 4-card input")
		}
	}()
	Score(MustParseCards("AsKsQsJs"))
}

func TestClassNames(t *testing.T) {
	if got := ClassName(1); got != "Straight Flush" {
		t.Errorf("ClassName(1) = %q", got)
	}
	if got := ClassName(7462); got != "High Card" {
		t.Errorf("ClassName(7462) = %q", got)
	}
}
