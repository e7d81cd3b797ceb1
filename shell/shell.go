// Package shell is an interactive command line for playing and solving
// FreeCell boards.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errSolverBusy        = errors.New("a solve is running; wait for it or use `solve stop`")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	cfg      *config.Config
	execPath string

	// gameMu guards game, lastMoves and lastResult, which a background
	// solve writes when it finishes.
	gameMu     sync.Mutex
	game       *game.Game
	lastMoves  []move.Move
	lastResult *search.Result

	solveMu     sync.Mutex
	solveCancel context.CancelFunc
	solveDone   chan struct{}

	interactive bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := &ShellController{
		cfg:      cfg,
		execPath: execPath,
		game:     game.New(deal.Shuffled(nil)),
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mfreecell>\033[0m ",
		HistoryFile:     "/tmp/freecell_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// newTestController has no terminal; output goes to w.
func newTestController(cfg *config.Config, w io.Writer) *ShellController {
	return &ShellController{
		cfg:  cfg,
		out:  w,
		game: game.New(deal.Numbered(1)),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments and its -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[i][1:]
			options[key] = append(options[key], fields[i+1])
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) solving() bool {
	sc.solveMu.Lock()
	defer sc.solveMu.Unlock()
	return sc.solveCancel != nil
}

// mutating commands are refused while a background solve runs.
var mutating = map[string]bool{
	"new": true, "deal": true, "load": true, "move": true, "auto": true,
	"undo": true, "redo": true, "next": true, "prev": true, "solve": true,
	"bench": true, "set": true,
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	if cmd.cmd == "solve" && len(cmd.args) > 0 && cmd.args[0] == "stop" {
		return sc.solveStop()
	}
	if mutating[cmd.cmd] && sc.solving() {
		return nil, errSolverBusy
	}
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "set":
		return sc.set(cmd)
	case "bench":
		return sc.bench(cmd)
	case "solve":
		if sc.interactive {
			return sc.solve(cmd)
		}
		return sc.solveSync(cmd)
	}

	sc.gameMu.Lock()
	defer sc.gameMu.Unlock()
	switch cmd.cmd {
	case "new":
		return sc.newDeal(cmd)
	case "deal":
		return sc.numberedDeal(cmd)
	case "load":
		return sc.load(cmd)
	case "save":
		return sc.save(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "move", "m":
		return sc.playMove(cmd)
	case "auto":
		return sc.auto(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "redo":
		return sc.redo(cmd)
	case "next", "n":
		return sc.next(cmd)
	case "prev", "p":
		return sc.prev(cmd)
	case "hint":
		return sc.hint(cmd)
	case "export":
		return sc.export(cmd)
	}
	return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
}

// Execute runs a single command line, for scripted use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	cmd, err := extractFields(line)
	if err == errNoData {
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	resp, err := sc.dispatch(cmd)
	if err == errQuit {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.interactive = true

	sc.gameMu.Lock()
	sc.showMessage(sc.game.Board().ToDisplayText())
	sc.gameMu.Unlock()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		cmd, err := extractFields(line)
		if err == errNoData {
			continue
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		resp, err := sc.dispatch(cmd)
		if err == errQuit {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

// Cleanup stops a running solve and waits for it.
func (sc *ShellController) Cleanup() {
	sc.solveMu.Lock()
	cancel, done := sc.solveCancel, sc.solveDone
	sc.solveMu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
