package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board for a terminal: free cells and
// foundations on top, then the tableau columns side by side.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	var cells, founds, columns []*Pile
	var colIdx []int
	for i, p := range b.piles {
		switch p.kind {
		case FreeCell:
			cells = append(cells, p)
		case Foundation:
			founds = append(founds, p)
		case Tableau:
			columns = append(columns, p)
			colIdx = append(colIdx, i)
		}
	}

	topRow := func(label string, piles []*Pile) {
		sb.WriteString(label)
		for _, p := range piles {
			top, ok := p.Top()
			if !ok {
				sb.WriteString(" [  ]")
				continue
			}
			fmt.Fprintf(&sb, " [%s]", top.Short())
		}
		sb.WriteString("\n")
	}
	topRow("cells:", cells)
	topRow("found:", founds)
	sb.WriteString("\n")

	height := 0
	for _, c := range columns {
		height = max(height, c.Len())
	}
	for _, i := range colIdx {
		fmt.Fprintf(&sb, "%4d", i+1)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 4*len(columns)) + "\n")
	for row := 0; row < height; row++ {
		for _, c := range columns {
			if row < c.Len() {
				fmt.Fprintf(&sb, "%4s", c.cards[row].Short())
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")
	}
	return "\n" + sb.String()
}
