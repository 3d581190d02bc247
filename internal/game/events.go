package game

import "cardroom/internal/deck"

// EventType names a game event as it appears on the wire.
type EventType string

const (
	EventGameState     EventType = "game_state"
	EventHandStarting  EventType = "hand_starting"
	EventCommunityCard EventType = "community_card"
	EventYourTurn      EventType = "your_turn"
	EventActionTaken   EventType = "action_taken"
	EventWinner        EventType = "winner"
	EventHandOver      EventType = "hand_over"
	EventGameOver      EventType = "game_over"
	EventChat          EventType = "chat"
	EventPong          EventType = "pong"
)

// HiddenCard is the token shown in place of another player's hole card.
const HiddenCard = "??"

// PayloadFactory builds the payload a specific recipient should see, or
// nil to skip that recipient. Redaction of opponent hole cards is the
// publisher's contract, not the subscriber's.
type PayloadFactory func(recipientID string) any

// Event pairs a type token with its per-recipient payload factory.
type Event struct {
	Type    EventType
	Payload PayloadFactory
}

// Sink receives events for fan-out to a game's subscribers. Publish
// must not block the caller on slow subscribers.
type Sink interface {
	Publish(e Event)
}

// StaticPayload wraps a payload shared by every recipient.
func StaticPayload(v any) PayloadFactory {
	return func(string) any { return v }
}

// PlayerView is the public projection of a seat.
type PlayerView struct {
	PlayerID   string   `json:"player_id"`
	Name       string   `json:"name"`
	Chips      int      `json:"chips"`
	HoleCards  []string `json:"hole_cards"`
	Bet        int      `json:"bet"`
	TotalBet   int      `json:"total_bet"`
	Folded     bool     `json:"folded"`
	AllIn      bool     `json:"all_in"`
	SittingOut bool     `json:"sitting_out"`
	IsBot      bool     `json:"is_bot"`
	Seat       int      `json:"seat"`
}

// GameStatePayload is the full table snapshot.
type GameStatePayload struct {
	GameID             string       `json:"game_id"`
	Variant            Variant      `json:"variant"`
	Phase              Phase        `json:"phase"`
	Players            []PlayerView `json:"players"`
	CommunityCards     []string     `json:"community_cards"`
	Pot                int          `json:"pot"`
	HandNumber         int          `json:"hand_number"`
	DealerIndex        int          `json:"dealer_index"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	SmallBlind         int          `json:"small_blind"`
	BigBlind           int          `json:"big_blind"`
}

// HandStartingPayload announces a new hand.
type HandStartingPayload struct {
	HandNumber  int          `json:"hand_number"`
	DealerIndex int          `json:"dealer_index"`
	Players     []PlayerView `json:"players"`
	SmallBlind  int          `json:"small_blind"`
	BigBlind    int          `json:"big_blind"`
	Pot         int          `json:"pot"`
}

// CommunityCardPayload carries newly dealt board cards. Cards holds
// only the new ones; CommunityCards the whole board.
type CommunityCardPayload struct {
	Phase          Phase    `json:"phase"`
	Cards          []string `json:"cards"`
	CommunityCards []string `json:"community_cards"`
	Pot            int      `json:"pot"`
}

// YourTurnPayload prompts the acting player. Delivered only to them.
type YourTurnPayload struct {
	PlayerID     string       `json:"player_id"`
	ValidActions ValidActions `json:"valid_actions"`
}

// ActionTakenPayload reports an applied action.
type ActionTakenPayload struct {
	PlayerID string `json:"player_id"`
	Action   Action `json:"action"`
	Amount   int    `json:"amount"`
	Pot      int    `json:"pot"`
	Phase    Phase  `json:"phase"`
}

// WinnerShare is one player's cut of the pots. HoleCards are present
// only for seats that reached showdown.
type WinnerShare struct {
	PlayerID  string   `json:"player_id"`
	Name      string   `json:"name"`
	Amount    int      `json:"amount"`
	HandClass string   `json:"hand_class,omitempty"`
	HoleCards []string `json:"hole_cards,omitempty"`
}

// WinnerPayload reports the pot distribution. The table pot is already
// cleared when this event goes out; Pot carries the awarded total.
type WinnerPayload struct {
	Winners        []WinnerShare `json:"winners"`
	Pot            int           `json:"pot"`
	CommunityCards []string      `json:"community_cards"`
	HandNumber     int           `json:"hand_number"`
}

// HandOverPayload closes a hand.
type HandOverPayload struct {
	HandNumber int `json:"hand_number"`
}

// GameOverPayload reports the last player standing.
type GameOverPayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
}

// ChatPayload relays a table chat line.
type ChatPayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// playerViews renders every seat for one recipient: the recipient sees
// their own hole cards, everyone else's are masked.
func playerViews(seats []*Seat, recipientID string) []PlayerView {
	views := make([]PlayerView, len(seats))
	for i, s := range seats {
		view := PlayerView{
			PlayerID:   s.ID,
			Name:       s.Name,
			Chips:      s.Chips,
			HoleCards:  []string{},
			Bet:        s.Bet,
			TotalBet:   s.TotalBet,
			Folded:     s.Folded,
			AllIn:      s.AllIn,
			SittingOut: s.SittingOut,
			IsBot:      s.IsBot,
			Seat:       s.Index,
		}
		if len(s.Hole) > 0 {
			if s.ID == recipientID {
				view.HoleCards = cardStrings(s.Hole)
			} else {
				view.HoleCards = []string{HiddenCard, HiddenCard}
			}
		}
		views[i] = view
	}
	return views
}

// snapshotFactory builds per-recipient game_state payloads from a
// cloned state. Opponent cards stay masked in every phase, showdown
// included; only the winner event reveals cards.
func snapshotFactory(gs *GameState) PayloadFactory {
	return func(recipientID string) any {
		return GameStatePayload{
			GameID:             gs.ID,
			Variant:            gs.Variant,
			Phase:              gs.Phase,
			Players:            playerViews(gs.Seats, recipientID),
			CommunityCards:     cardStrings(gs.Community),
			Pot:                gs.Pot,
			HandNumber:         gs.HandNumber,
			DealerIndex:        gs.DealerIndex,
			CurrentPlayerIndex: gs.CurrentIndex,
			SmallBlind:         gs.SmallBlind,
			BigBlind:           gs.BigBlind,
		}
	}
}
