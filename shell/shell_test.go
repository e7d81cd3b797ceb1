package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/snapshot"
	"github.com/domino14/freecell/testhelpers"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"solve -export /path/to/out.yaml",
			&shellcmd{"solve", nil, CmdOptions{"export": {"/path/to/out.yaml"}}},
			nil},
		{"solve stop",
			&shellcmd{"solve", []string{"stop"}, CmdOptions{}},
			nil},
		{"move 0 2 -note 'two words' ",
			&shellcmd{"move",
				[]string{"0", "2"},
				CmdOptions{"note": {"two words"}}},
			nil,
		},
		{"bench 1-10 -out",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newController(t *testing.T) (*ShellController, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return newTestController(config.DefaultConfig(), buf), buf
}

func TestPlayUndoRedo(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "moves")
	is.True(bytes.Contains(buf.Bytes(), []byte("  1: ")))
	sc.Execute(sig, "move 1")
	is.True(!sc.game.Board().Equal(deal.Numbered(1)))
	is.Equal(sc.game.History().Cursor(), 1)

	sc.Execute(sig, "undo")
	is.True(sc.game.Board().Equal(deal.Numbered(1)))
	sc.Execute(sig, "redo")
	is.Equal(sc.game.History().Cursor(), 1)

	buf.Reset()
	sc.Execute(sig, "redo")
	is.Equal(buf.String(), "Error: nothing to redo\n")
}

func TestMoveBySourceAndTarget(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)
	sc.game.LoadBoard(testhelpers.OneMoveBoard())

	sc.Execute(sig, "move 8 3")
	is.True(bytes.Contains(buf.Bytes(), []byte("illegal move")))

	buf.Reset()
	sc.Execute(sig, "move 8 12")
	is.True(sc.game.IsWin())
	is.True(bytes.Contains(buf.Bytes(), []byte("solved!")))
}

func TestSolveAndStep(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)
	sc.game.LoadBoard(testhelpers.EndgameBoard())

	sc.Execute(sig, "solve -strategy bfs")
	is.True(bytes.Contains(buf.Bytes(), []byte("bfs: solved")))
	is.True(sc.game.HasSolution())
	is.Equal(sc.game.SolutionRemaining(), 3)

	buf.Reset()
	sc.Execute(sig, "hint")
	is.Equal(buf.String(), "hint: 0->14 KH (3 moves left)\n")

	for range 3 {
		sc.Execute(sig, "next")
	}
	is.True(sc.game.IsWin())

	sc.Execute(sig, "prev")
	is.True(!sc.game.IsWin())
	is.Equal(sc.game.SolutionRemaining(), 1)
}

func TestSolveExport(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)
	sig := make(chan os.Signal, 1)
	sc.game.LoadBoard(testhelpers.EndgameBoard())
	path := filepath.Join(t.TempDir(), "solution.yaml")

	sc.Execute(sig, "solve -export "+path)
	dat, err := os.ReadFile(path)
	is.NoErr(err)

	var exp solutionExport
	is.NoErr(yaml.Unmarshal(dat, &exp))
	is.Equal(exp.Strategy, "astar")
	is.Equal(exp.Outcome, "solved")
	is.True(!exp.Partial)
	is.Equal(len(exp.Moves), sc.game.SolutionRemaining())

	start, err := snapshot.Parse(exp.Start)
	is.NoErr(err)
	is.True(start.Equal(testhelpers.EndgameBoard()))
}

func TestSaveAndLoad(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)
	dir := t.TempDir()

	sc.Execute(sig, "save "+dir)
	is.Equal(buf.String(), "saved board to "+filepath.Join(dir, "deck1.txt")+"\n")

	sc.Execute(sig, "deal 2")
	is.True(sc.game.Board().Equal(deal.Numbered(2)))
	sc.Execute(sig, "load "+filepath.Join(dir, "deck1.txt"))
	is.True(sc.game.Board().Equal(deal.Numbered(1)))
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "set strategy greedy")
	is.Equal(sc.cfg.GetString(config.ConfigStrategy), "greedy")

	buf.Reset()
	sc.Execute(sig, "set strategy ida")
	is.True(bytes.HasPrefix(buf.Bytes(), []byte("Error: ")))
	is.Equal(sc.cfg.GetString(config.ConfigStrategy), "greedy")

	buf.Reset()
	sc.Execute(sig, "set nonsense 1")
	is.Equal(buf.String(), "Error: unknown setting \"nonsense\"\n")
}

func TestBusyWhileSolving(t *testing.T) {
	is := is.New(t)
	sc, buf := newController(t)
	sig := make(chan os.Signal, 1)
	cancelled := false
	sc.solveCancel = func() { cancelled = true }

	sc.Execute(sig, "move 1")
	is.Equal(buf.String(), "Error: "+errSolverBusy.Error()+"\n")
	is.Equal(sc.game.History().Cursor(), 0)

	sc.Execute(sig, "solve stop")
	is.True(cancelled)
}

func TestExit(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)
	sig := make(chan os.Signal, 1)
	sc.Execute(sig, "exit")
	is.Equal(len(sig), 1)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)
	c := NewShellCompleter(sc)

	line := []rune("sol")
	matches, n := c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("ve")})
	is.Equal(n, 3)

	line = []rune("solve -strategy gr")
	matches, n = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("eedy")})
	is.Equal(n, 2)

	line = []rune("bench 1-5 -th")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("reads")})
}
