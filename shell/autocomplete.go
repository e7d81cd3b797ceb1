package shell

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/freecell/search"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-seed"},
	},
	"solve": {
		Options: []string{"-strategy", "-maxtime", "-maxnodes", "-maxdepth", "-export"},
		Args:    []string{"stop"},
	},
	"bench": {
		Options: []string{"-strategies", "-threads", "-maxtime", "-out", "-analyze"},
	},
	"help": {
		Args: []string{"solve", "bench", "move"},
	},
}

var commandNames = []string{
	"new", "deal", "load", "save", "show", "moves", "move", "auto", "undo",
	"redo", "solve", "next", "prev", "hint", "export", "bench", "set",
	"help", "exit",
}

func strategyNames() []string {
	return lo.Map(search.AllStrategies(), func(s search.Strategy, _ int) string {
		return s.String()
	})
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-strategy":
			completions = strategyNames()
		case cmdName == "set" && len(fields) == 1 ||
			cmdName == "set" && len(fields) == 2 && !endsWithSpace:
			completions = c.settingKeys()
		case cmdName == "set" && lastCompleteField == "strategy":
			completions = strategyNames()
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) settingKeys() []string {
	if c.sc == nil || c.sc.cfg == nil {
		return nil
	}
	keys := c.sc.cfg.AllKeys()
	slices.Sort(keys)
	return keys
}
