package shell

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/freecell/board"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/search"
	"github.com/domino14/freecell/snapshot"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) Duration(key string, def time.Duration) (time.Duration, error) {
	v := c[key]
	if len(v) == 0 {
		return def, nil
	}
	return time.ParseDuration(v[0])
}

func (c CmdOptions) StringArray(key string) []string {
	return c[key]
}

func msg(message string) *Response {
	return &Response{message: message}
}

func fingerprint(b *board.Board) string {
	return fmt.Sprintf("%016x", b.Fingerprint())
}

func (sc *ShellController) loadBoard(b *board.Board) *Response {
	sc.game.LoadBoard(b)
	sc.lastMoves = nil
	sc.lastResult = nil
	return msg(b.ToDisplayText())
}

func (sc *ShellController) newDeal(cmd *shellcmd) (*Response, error) {
	seed := cmd.options.String("seed")
	if seed == "" {
		return sc.loadBoard(deal.Shuffled(nil)), nil
	}
	n, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad seed: %w", err)
	}
	return sc.loadBoard(deal.Shuffled(deal.SeededRNG(n))), nil
}

func (sc *ShellController) numberedDeal(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: deal <number>")
	}
	n, err := strconv.ParseUint(cmd.args[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("bad deal number: %w", err)
	}
	return sc.loadBoard(deal.Numbered(uint32(n))), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	b, err := snapshot.LoadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return sc.loadBoard(b), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	dir := sc.cfg.GetString(config.ConfigStatesPath)
	if len(cmd.args) > 0 {
		dir = cmd.args[0]
	}
	path, err := snapshot.SaveNext(dir, sc.game.Board())
	if err != nil {
		return nil, err
	}
	return msg("saved board to " + path), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	var sb strings.Builder
	sb.WriteString(b.ToDisplayText())
	fmt.Fprintf(&sb, "fingerprint: %s  moves played: %d\n", fingerprint(b), sc.game.History().Cursor())
	if sc.game.HasSolution() {
		fmt.Fprintf(&sb, "solution loaded, %d moves left\n", sc.game.SolutionRemaining())
	}
	if sc.game.IsWin() {
		sb.WriteString("solved!\n")
	}
	return msg(sb.String()), nil
}

func moveTableRow(idx int, m move.Move) string {
	return fmt.Sprintf("%3d: %s", idx+1, m.ShortDescription())
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	sc.lastMoves = sc.game.Board().LegalMoves()
	if len(sc.lastMoves) == 0 {
		return msg("no legal moves"), nil
	}
	rows := lo.Map(sc.lastMoves, func(m move.Move, i int) string {
		return moveTableRow(i, m)
	})
	return msg(strings.Join(rows, "\n")), nil
}

// findMove resolves `move <n>` against the last move listing, and
// `move <src> <tgt> [count]` against the legal moves. Without a count the
// longest legal run is moved.
func (sc *ShellController) findMove(args []string) (move.Move, error) {
	ints := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return move.Move{}, fmt.Errorf("bad move argument %q", a)
		}
		ints[i] = v
	}
	switch len(ints) {
	case 1:
		if sc.lastMoves == nil {
			sc.lastMoves = sc.game.Board().LegalMoves()
		}
		if ints[0] < 1 || ints[0] > len(sc.lastMoves) {
			return move.Move{}, fmt.Errorf("move index must be between 1 and %d", len(sc.lastMoves))
		}
		return sc.lastMoves[ints[0]-1], nil
	case 2, 3:
		candidates := lo.Filter(sc.game.Board().LegalMoves(), func(m move.Move, _ int) bool {
			return m.Source == ints[0] && m.Target == ints[1] &&
				(len(ints) == 2 || m.NumCards() == ints[2])
		})
		if len(candidates) == 0 {
			return move.Move{}, fmt.Errorf("%w: %s", errIllegal, strings.Join(args, " "))
		}
		return lo.MaxBy(candidates, func(a, b move.Move) bool {
			return a.NumCards() > b.NumCards()
		}), nil
	}
	return move.Move{}, errors.New("usage: move <index> | move <source> <target> [count]")
}

var errIllegal = errors.New("illegal move")

func (sc *ShellController) afterMove() *Response {
	sc.lastMoves = nil
	text := sc.game.Board().ToDisplayText()
	if sc.game.IsWin() {
		text += "solved!\n"
	}
	return msg(text)
}

func (sc *ShellController) playMove(cmd *shellcmd) (*Response, error) {
	m, err := sc.findMove(cmd.args)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return sc.afterMove(), nil
}

// auto plays foundation moves until there are none left.
func (sc *ShellController) auto(cmd *shellcmd) (*Response, error) {
	played := 0
	for {
		fm := sc.game.Board().FoundationMoves()
		if len(fm) == 0 {
			break
		}
		if err := sc.game.PlayMove(fm[0]); err != nil {
			return nil, err
		}
		played++
	}
	if played == 0 {
		return msg("no foundation moves"), nil
	}
	return sc.afterMove(), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if !sc.game.Undo() {
		return nil, errors.New("nothing to undo")
	}
	return sc.afterMove(), nil
}

func (sc *ShellController) redo(cmd *shellcmd) (*Response, error) {
	if !sc.game.Redo() {
		return nil, errors.New("nothing to redo")
	}
	return sc.afterMove(), nil
}

func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	if _, err := sc.game.Next(); err != nil {
		return nil, err
	}
	return sc.afterMove(), nil
}

func (sc *ShellController) prev(cmd *shellcmd) (*Response, error) {
	if _, err := sc.game.Prev(); err != nil {
		return nil, err
	}
	return sc.afterMove(), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	m, err := sc.game.Hint()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("hint: %s (%d moves left)", m.ShortDescription(), sc.game.SolutionRemaining())), nil
}

type solutionExport struct {
	Strategy    string   `yaml:"strategy"`
	Outcome     string   `yaml:"outcome"`
	Partial     bool     `yaml:"partial"`
	Fingerprint string   `yaml:"fingerprint"`
	Start       string   `yaml:"start"`
	Moves       []string `yaml:"moves"`
	Expanded    uint64   `yaml:"expanded"`
	Visited     int      `yaml:"visited"`
	ElapsedSec  float64  `yaml:"elapsed_sec"`
}

func exportResult(path string, res *search.Result) error {
	if len(res.Path) == 0 {
		return errors.New("result has no path to export")
	}
	start := res.Path[0]
	out := solutionExport{
		Strategy:    res.Strategy.String(),
		Outcome:     res.Outcome.String(),
		Partial:     res.Partial,
		Fingerprint: fingerprint(start),
		Start:       snapshot.Format(start),
		Moves: lo.Map(res.Moves, func(m move.Move, _ int) string {
			return m.ShortDescription()
		}),
		Expanded:   res.Expanded,
		Visited:    res.Visited,
		ElapsedSec: res.Elapsed.Seconds(),
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: export <file.yaml>")
	}
	if sc.lastResult == nil {
		return nil, errors.New("nothing to export; run `solve` first")
	}
	if err := exportResult(cmd.args[0], sc.lastResult); err != nil {
		return nil, err
	}
	return msg("exported solution to " + cmd.args[0]), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	settings := sc.cfg.SanitizedSettings()
	if len(cmd.args) == 0 {
		keys := lo.Keys(settings)
		slices.Sort(keys)
		rows := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%-22s %v", k, settings[k])
		})
		return msg(strings.Join(rows, "\n")), nil
	}
	key := cmd.args[0]
	if _, ok := settings[key]; !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, settings[key])), nil
	}
	val := cmd.args[1]
	if key == config.ConfigStrategy {
		if _, err := search.ParseStrategy(val); err != nil {
			return nil, err
		}
	}
	sc.cfg.Set(key, val)
	return msg("set " + key + " to " + val), nil
}
