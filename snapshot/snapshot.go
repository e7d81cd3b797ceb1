// Package snapshot reads and writes boards as plain text. Each line holds one
// pile: its kind, then its cards bottom first, all separated by semicolons:
//
//	tableau;king_of_spades;queen_of_hearts
//	free-cell;
//	foundation;ace_of_clubs
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/deal"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

var deckFileRegex = regexp.MustCompile(`^deck(\d+)\.txt$`)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}

// Format renders b, one line per pile.
func Format(b *board.Board) string {
	var sb strings.Builder
	for _, p := range b.Piles() {
		sb.WriteString(p.Kind.String())
		sb.WriteString(";")
		names := make([]string, len(p.Cards))
		for i, c := range p.Cards {
			names[i] = c.String()
		}
		sb.WriteString(strings.Join(names, ";"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Parse reads a board in the standard 16-pile layout. Anything that does
// not describe exactly one full deck in legal piles is rejected with an
// error wrapping ErrMalformedSnapshot.
func Parse(s string) (*board.Board, error) {
	var piles []board.PileData
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		kind, err := board.ParseKind(fields[0])
		if err != nil {
			return nil, malformed("line %d: %v", n+1, err)
		}
		pd := board.PileData{Kind: kind}
		for _, f := range fields[1:] {
			if strings.TrimSpace(f) == "" {
				continue
			}
			c, err := card.FromString(f)
			if err != nil {
				return nil, malformed("line %d: %v", n+1, err)
			}
			pd.Cards = append(pd.Cards, c)
		}
		if err := checkPile(pd); err != nil {
			return nil, malformed("line %d: %v", n+1, err)
		}
		piles = append(piles, pd)
	}

	kinds := deal.Kinds()
	if len(piles) != len(kinds) {
		return nil, malformed("have %d piles, need %d", len(piles), len(kinds))
	}
	for i, p := range piles {
		if p.Kind != kinds[i] {
			return nil, malformed("pile %d is a %v, expected a %v", i+1, p.Kind, kinds[i])
		}
	}
	b := board.FromPiles(piles)
	if err := b.ValidateDeck(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return b, nil
}

func checkPile(pd board.PileData) error {
	switch pd.Kind {
	case board.FreeCell:
		if len(pd.Cards) > 1 {
			return fmt.Errorf("free cell holds %d cards", len(pd.Cards))
		}
	case board.Foundation:
		for i, c := range pd.Cards {
			if c.Rank() != card.Rank(i+1) || c.Suit() != pd.Cards[0].Suit() {
				return fmt.Errorf("foundation out of order at %v", c)
			}
		}
	}
	return nil
}

// ParseReader reads a whole snapshot from r. Input that is not valid UTF-8
// is taken to be ISO 8859-1.
func ParseReader(r io.Reader) (*board.Board, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		decoder := charmap.ISO8859_1.NewDecoder()
		raw, _, err = transform.Bytes(decoder, raw)
		if err != nil {
			return nil, err
		}
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	return Parse(string(raw))
}

func LoadFile(path string) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// NextPath returns the path of the first unused deckN.txt in dir, counting
// from 1 and filling gaps.
func NextPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	var used []int
	for _, e := range entries {
		m := deckFileRegex.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		used = append(used, n)
	}
	slices.Sort(used)
	next := 1
	for _, n := range used {
		if n == next {
			next++
		} else if n > next {
			break
		}
	}
	return filepath.Join(dir, fmt.Sprintf("deck%d.txt", next)), nil
}

// SaveNext writes b to the first unused deckN.txt in dir, creating dir if
// needed, and returns the path written.
func SaveNext(dir string, b *board.Board) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path, err := NextPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(Format(b)), 0o644); err != nil {
		return "", err
	}
	log.Debug().Str("path", path).Uint64("fingerprint", b.Fingerprint()).Msg("saved-board")
	return path, nil
}
