package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is a shufflable 52-card deck that deals from the top. The RNG is
// owned by the caller (one per game) so shuffles are reproducible under
// a fixed seed.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full deck and shuffles it with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset restores the full 52-card deck and reshuffles.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
}

// Shuffle randomizes the remaining card order.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top n cards. Asking for more cards than
// remain is a programming fault in the caller; it surfaces as an error
// the game driver treats as fatal.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deck underflow: requested %d cards, %d remain", n, len(d.cards))
	}
	dealt := d.cards[:n:n]
	d.cards = d.cards[n:]
	return dealt, nil
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stack replaces the deck contents with the given cards in order. Used
// by tests that need a known deal.
func (d *Deck) Stack(cards []Card) {
	d.cards = append(d.cards[:0], cards...)
}
