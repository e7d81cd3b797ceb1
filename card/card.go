// Package card defines the 52 playing cards used by FreeCell. A card is a
// value: two cards are the same card iff they have the same rank and suit.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// Rank goes from Ace (1) to King (13). The zero value is not a valid rank.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
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
)

// Suit order matters: it is the order used by numbered deals (clubs,
// diamonds, hearts, spades).
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const NumSuits = 4
const NumRanks = 13
const DeckSize = NumSuits * NumRanks

type Color uint8

const (
	Black Color = iota
	Red
)

var (
	ErrUnknownRank = errors.New("unknown rank")
	ErrUnknownSuit = errors.New("unknown suit")
)

var rankNames = [...]string{"", "ace", "2", "3", "4", "5", "6", "7", "8", "9",
	"10", "jack", "queen", "king"}

var rankShort = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9",
	"T", "J", "Q", "K"}

var suitNames = [...]string{"clubs", "diamonds", "hearts", "spades"}

var suitShort = [...]string{"C", "D", "H", "S"}

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rank(%d)", uint8(r))
	}
	return rankNames[r]
}

func (s Suit) Valid() bool {
	return s <= Spades
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("suit(%d)", uint8(s))
	}
	return suitNames[s]
}

// Color returns Red for diamonds and hearts, Black otherwise.
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Card packs a rank and a suit into a byte: the rank in the upper six bits
// and the suit in the lower two. The zero Card is NoCard.
type Card uint8

const NoCard Card = 0

// New creates a card. It does not validate its arguments; use Valid.
func New(r Rank, s Suit) Card {
	return Card(uint8(r)<<2 | uint8(s))
}

func (c Card) Rank() Rank { return Rank(c >> 2) }
func (c Card) Suit() Suit { return Suit(c & 0x3) }

func (c Card) Color() Color { return c.Suit().Color() }

func (c Card) Valid() bool { return c.Rank().Valid() }

// Index maps a card to 0..51, ordered AC AD AH AS 2C ... KS.
func (c Card) Index() int {
	return int(c.Rank()-1)*NumSuits + int(c.Suit())
}

// FromIndex is the inverse of Index.
func FromIndex(i int) Card {
	return New(Rank(i/NumSuits+1), Suit(i%NumSuits))
}

// String returns the long form used in saved states, e.g. "queen_of_hearts".
func (c Card) String() string {
	if !c.Valid() {
		return "no_card"
	}
	return c.Rank().String() + "_of_" + c.Suit().String()
}

// Short returns a two-character form such as "QH" or "TS".
func (c Card) Short() string {
	if !c.Valid() {
		return "--"
	}
	return rankShort[c.Rank()] + suitShort[c.Suit()]
}

func parseRank(s string) (Rank, error) {
	s = strings.ToLower(s)
	for i := Ace; i <= King; i++ {
		if s == rankNames[i] || s == strings.ToLower(rankShort[i]) {
			return i, nil
		}
	}
	switch s {
	case "1":
		return Ace, nil
	case "j":
		return Jack, nil
	case "q":
		return Queen, nil
	case "k":
		return King, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

func parseSuit(s string) (Suit, error) {
	s = strings.ToLower(s)
	for i, n := range suitNames {
		if s == n || s == strings.ToLower(suitShort[i]) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, s)
}

// FromString parses either the long form ("10_of_hearts") or the short form
// ("TH", "10H", "as").
func FromString(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if rs, ss, ok := strings.Cut(s, "_of_"); ok {
		r, err := parseRank(rs)
		if err != nil {
			return NoCard, err
		}
		st, err := parseSuit(ss)
		if err != nil {
			return NoCard, err
		}
		return New(r, st), nil
	}
	if len(s) < 2 {
		return NoCard, fmt.Errorf("%w: %q", ErrUnknownRank, s)
	}
	r, err := parseRank(s[:len(s)-1])
	if err != nil {
		return NoCard, err
	}
	st, err := parseSuit(s[len(s)-1:])
	if err != nil {
		return NoCard, err
	}
	return New(r, st), nil
}

// FullDeck returns the 52 cards in Index order.
func FullDeck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = FromIndex(i)
	}
	return deck
}
