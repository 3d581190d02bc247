package evaluator

import (
	"fmt"
	"strings"

	"cardroom/internal/deck"
)

// ParseCards parses compact card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit].
// Ranks: A, K, Q, J, T (or "10"), 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs)
func ParseCards(s string) ([]deck.Card, error) {
	s = strings.ReplaceAll(s, " ", "")

	var cards []deck.Card
	for i := 0; i < len(s); {
		var rank deck.Rank
		var err error
		if s[i] == '1' {
			if i+1 >= len(s) || s[i+1] != '0' {
				return nil, fmt.Errorf("invalid rank at position %d: expected \"10\"", i)
			}
			rank = deck.Ten
			i += 2
		} else {
			rank, err = parseRank(s[i])
			if err != nil {
				return nil, fmt.Errorf("invalid rank '%c' at position %d", s[i], i)
			}
			i++
		}

		if i >= len(s) {
			return nil, fmt.Errorf("incomplete card at end of %q", s)
		}
		suit, err := parseSuit(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d", s[i], i)
		}
		i++

		cards = append(cards, deck.Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests).
func MustParseCards(s string) []deck.Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(c byte) (deck.Rank, error) {
	switch c {
	case 'A', 'a':
		return deck.Ace, nil
	case 'K', 'k':
		return deck.King, nil
	case 'Q', 'q':
		return deck.Queen, nil
	case 'J', 'j':
		return deck.Jack, nil
	case 'T', 't':
		return deck.Ten, nil
	case '9':
		return deck.Nine, nil
	case '8':
		return deck.Eight, nil
	case '7':
		return deck.Seven, nil
	case '6':
		return deck.Six, nil
	case '5':
		return deck.Five, nil
	case '4':
		return deck.Four, nil
	case '3':
		return deck.Three, nil
	case '2':
		return deck.Two, nil
	}
	return 0, fmt.Errorf("unknown rank %q", c)
}

func parseSuit(c byte) (deck.Suit, error) {
	switch c {
	case 's', 'S':
		return deck.Spades, nil
	case 'h', 'H':
		return deck.Hearts, nil
	case 'd', 'D':
		return deck.Diamonds, nil
	case 'c', 'C':
		return deck.Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit %q", c)
}
