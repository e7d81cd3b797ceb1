package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/testhelpers"
)

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	b := deal.Numbered(617)
	txt := Format(b)
	is.Equal(len(strings.Split(strings.TrimSpace(txt), "\n")), 16)
	is.True(strings.HasPrefix(txt, "tableau;"))
	is.True(strings.Contains(txt, "\nfree-cell;\n"))

	parsed, err := Parse(txt)
	is.NoErr(err)
	is.True(parsed.Equal(b))

	end := testhelpers.EndgameBoard()
	parsed, err = Parse(Format(end))
	is.NoErr(err)
	is.True(parsed.Equal(end))
}

func TestFormatLine(t *testing.T) {
	is := is.New(t)
	txt := Format(testhelpers.EndgameBoard())
	lines := strings.Split(txt, "\n")
	is.Equal(lines[0], "tableau;queen_of_clubs;king_of_hearts")
	is.Equal(lines[8], "free-cell;")
	is.True(strings.HasPrefix(lines[12], "foundation;ace_of_clubs;2_of_clubs;"))
}

func TestParseShortFormAndAliases(t *testing.T) {
	is := is.New(t)
	end := testhelpers.EndgameBoard()
	txt := strings.Replace(Format(end), "tableau;queen_of_clubs;king_of_hearts",
		"tableau;QC;KH;", 1)
	txt = strings.Replace(txt, "free-cell;", "freecell;", 1)
	parsed, err := Parse(txt)
	is.NoErr(err)
	is.True(parsed.Equal(end))
}

func TestParseMalformed(t *testing.T) {
	good := Format(testhelpers.EndgameBoard())
	lines := strings.Split(strings.TrimSpace(good), "\n")

	for name, txt := range map[string]string{
		"unknown-rank":     strings.Replace(good, "queen_of_clubs", "duke_of_clubs", 1),
		"unknown-suit":     strings.Replace(good, "queen_of_clubs", "queen_of_stars", 1),
		"unknown-kind":     strings.Replace(good, "tableau;queen", "cascade;queen", 1),
		"missing-pile":     strings.Join(lines[1:], "\n"),
		"extra-pile":       good + "tableau;\n",
		"wrong-kinds":      strings.Join(append(lines[8:], lines[:8]...), "\n"),
		"missing-card":     strings.Replace(good, ";king_of_hearts", "", 1),
		"duplicate-card":   strings.Replace(good, "tableau;king_of_clubs", "tableau;king_of_clubs;king_of_hearts", 1),
		"foundation-order": strings.Replace(good, "foundation;ace_of_clubs;2_of_clubs", "foundation;2_of_clubs;ace_of_clubs", 1),
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := Parse(txt)
			is.True(err != nil)
			is.True(errors.Is(err, ErrMalformedSnapshot))
		})
	}
}

func TestOverfullFreeCell(t *testing.T) {
	is := is.New(t)
	good := Format(testhelpers.EndgameBoard())
	txt := strings.Replace(good, "tableau;king_of_clubs", "tableau;", 1)
	txt = strings.Replace(txt, "tableau;queen_of_clubs;king_of_hearts", "tableau;", 1)
	txt = strings.Replace(txt, "free-cell;", "free-cell;queen_of_clubs;king_of_hearts", 1)
	txt = strings.Replace(txt, "free-cell;\n", "free-cell;king_of_clubs\n", 1)
	_, err := Parse(txt)
	is.True(errors.Is(err, ErrMalformedSnapshot))
	is.True(strings.Contains(err.Error(), "free cell holds 2 cards"))
}

func TestParseReaderLatin1(t *testing.T) {
	is := is.New(t)
	b := testhelpers.EndgameBoard()
	// A trailing non-breaking space encoded as a single ISO 8859-1 byte.
	raw := strings.Replace(Format(b), "king_of_hearts\n", "king_of_hearts\xa0\n", 1)

	_, err := Parse(raw)
	is.True(err != nil)

	parsed, err := ParseReader(strings.NewReader(raw))
	is.NoErr(err)
	is.True(parsed.Equal(b))
}

func TestSaveNextAndLoad(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	statesDir := filepath.Join(dir, "states")

	p, err := NextPath(statesDir)
	is.NoErr(err)
	is.Equal(filepath.Base(p), "deck1.txt")

	b := deal.Numbered(11982)
	path, err := SaveNext(statesDir, b)
	is.NoErr(err)
	is.Equal(filepath.Base(path), "deck1.txt")

	is.NoErr(os.WriteFile(filepath.Join(statesDir, "deck3.txt"), []byte(Format(b)), 0o644))
	is.NoErr(os.WriteFile(filepath.Join(statesDir, "notes.txt"), []byte("hi"), 0o644))
	path, err = SaveNext(statesDir, b)
	is.NoErr(err)
	is.Equal(filepath.Base(path), "deck2.txt")
	path, err = SaveNext(statesDir, b)
	is.NoErr(err)
	is.Equal(filepath.Base(path), "deck4.txt")

	loaded, err := LoadFile(path)
	is.NoErr(err)
	is.True(loaded.Equal(b))

	_, err = LoadFile(filepath.Join(statesDir, "notes.txt"))
	is.True(errors.Is(err, ErrMalformedSnapshot))
}
