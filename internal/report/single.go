package report

import (
	"fmt"
	"strings"

	"github.com/avrillon/steamworth/internal/library"
)

// RenderGame builds the one-game view shown after a single refresh: a status
// line for the game's category followed by its one-row table.
func (b *Builder) RenderGame(g library.Game) string {
	sym := b.symbol()
	var sb strings.Builder

	switch Categorize(g) {
	case UnknownPrice:
		fmt.Fprintf(&sb, "Price is unknown for %s\n\n", g.Name)
		writeTable(&sb, []string{"Name", "Playtime", "Reason"},
			[][]string{{g.Name, formatHours(g.PlaytimeForever), g.Error}})
	case Free:
		fmt.Fprintf(&sb, "%s is free\n\n", g.Name)
		writeTable(&sb, []string{"Name", "Playtime"},
			[][]string{{g.Name, formatHours(g.PlaytimeForever)}})
	case Unplayed:
		fmt.Fprintf(&sb, "%s has not been played\n\n", g.Name)
		writeTable(&sb, []string{"Name", "Price", "Target playtime"},
			[][]string{{g.Name, formatPrice(*g.Price, sym), b.targetPlaytime(g)}})
	case Played:
		writeTable(&sb, []string{"Name", "Playtime", "Price", "Ratio (min/" + sym + ")", "Remaining playtime"},
			[][]string{{
				g.Name,
				formatHours(g.PlaytimeForever),
				formatPrice(*g.Price, sym),
				fmt.Sprintf("%.2f", g.Ratio()),
				b.remainingPlaytime(g),
			}})
	}

	return sb.String()
}
