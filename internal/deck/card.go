package deck

import "fmt"

// Suit represents a card suit. The bit value is the suit's position in
// the Cactus Kev card encoding (bits 12-15).
type Suit int

const (
	Clubs    Suit = 0x8000
	Diamonds Suit = 0x4000
	Hearts   Suit = 0x2000
	Spades   Suit = 0x1000
)

// Suits lists all four suits in encoding order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the one-letter suit symbol.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank, 2 through 14 (Ace high).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// rankPrimes maps each rank to a unique prime so that the product of
// five card primes identifies the rank multiset (Cactus Kev scheme).
var rankPrimes = [13]int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// Prime returns the prime assigned to the rank.
func (r Rank) Prime() int {
	return rankPrimes[r-Two]
}

// String returns the rank symbol. Ten renders as "10", so a card
// string is two or three characters.
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String renders the card as rank symbol + suit letter, e.g. "As", "10h".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// EvalBits encodes the card as a Cactus Kev 32-bit word:
//
//	+--------+--------+--------+--------+
//	|xxxbbbbb|bbbbbbbb|cdhsrrrr|xxpppppp|
//	+--------+--------+--------+--------+
//
// b = one-hot rank bit (bit 16 + rank index), cdhs = suit bits,
// rrrr = rank index nibble, pppppp = rank prime.
func (c Card) EvalBits() uint32 {
	idx := uint32(c.Rank - Two)
	return 1<<(16+idx) | uint32(c.Suit) | idx<<8 | uint32(c.Rank.Prime())
}
