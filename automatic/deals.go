package automatic

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/deal"
)

// Deal is one starting board to solve, with a name that identifies it in
// the output.
type Deal struct {
	Name  string
	Board *board.Board
}

// NumberedDeals returns the classic numbered deals from..to, inclusive.
func NumberedDeals(from, to uint32) []Deal {
	var deals []Deal
	for n := from; n <= to && n >= from; n++ {
		deals = append(deals, Deal{Name: "#" + strconv.FormatUint(uint64(n), 10), Board: deal.Numbered(n)})
	}
	return deals
}

// ParseDealRange parses "N" or "FROM-TO" into numbered deals.
func ParseDealRange(s string) ([]Deal, error) {
	fromStr, toStr, isRange := strings.Cut(s, "-")
	from, err := strconv.ParseUint(strings.TrimSpace(fromStr), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("bad deal range %q: %w", s, err)
	}
	to := from
	if isRange {
		to, err = strconv.ParseUint(strings.TrimSpace(toStr), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad deal range %q: %w", s, err)
		}
	}
	if to < from {
		return nil, fmt.Errorf("bad deal range %q: end before start", s)
	}
	return NumberedDeals(uint32(from), uint32(to)), nil
}

// Seed reproduces one shuffled deal. Its text form is unpadded URL-safe
// base64, and a deal shuffled from it is named after its first 8 characters.
type Seed [32]byte

func (s Seed) String() string {
	return base64.RawURLEncoding.EncodeToString(s[:])
}

// Deal shuffles the deal for this seed. The same seed always gives the same
// deal.
func (s Seed) Deal() Deal {
	return Deal{
		Name:  "seed:" + s.String()[:8],
		Board: deal.Shuffled(frand.NewCustom(s[:], 1024, 12)),
	}
}

var ErrBadSeed = errors.New("bad deal seed")

func ParseSeed(txt string) (Seed, error) {
	var s Seed
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(txt, "seed:"))
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrBadSeed, err)
	}
	if len(raw) != len(s) {
		return s, fmt.Errorf("%w: %d bytes, want %d", ErrBadSeed, len(raw), len(s))
	}
	copy(s[:], raw)
	return s, nil
}

func GenerateSeeds(n int) []Seed {
	seeds := make([]Seed, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

func SeededDeals(seeds []Seed) []Deal {
	return lo.Map(seeds, func(s Seed, _ int) Deal { return s.Deal() })
}

// WriteSeeds writes one seed per line, after a comment line.
func WriteSeeds(w io.Writer, seeds []Seed) error {
	lines := lo.Map(seeds, func(s Seed, _ int) string { return s.String() })
	_, err := fmt.Fprintf(w, "# %d freecell deal seeds\n%s\n", len(seeds), strings.Join(lines, "\n"))
	return err
}

// ReadSeeds reads seeds written by WriteSeeds. Blank lines and lines
// starting with # are skipped.
func ReadSeeds(r io.Reader) ([]Seed, error) {
	var seeds []Seed
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		seeds = append(seeds, s)
	}
	return seeds, sc.Err()
}

func SaveSeeds(path string, seeds []Seed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSeeds(f, seeds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadSeeds(path string) ([]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeeds(f)
}
