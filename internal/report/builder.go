package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"

	"github.com/avrillon/steamworth/internal/config"
	"github.com/avrillon/steamworth/internal/library"
)

// Writer persists a rendered report for an account. *cachestore.Store
// implements it.
type Writer interface {
	WriteReport(account library.Account, text string) error
}

// Builder renders the playtime-per-price report for a library snapshot.
type Builder struct {
	// TargetRatio is the desired minutes of play per currency unit. Games
	// below it get a remaining-playtime projection.
	TargetRatio float64
	// Currency is the code prices are denominated in, used for symbols.
	Currency string
}

// NewBuilder creates a Builder with tuning taken from the loaded configuration.
func NewBuilder() *Builder {
	return &Builder{
		TargetRatio: config.TargetRatio(),
		Currency:    config.TargetCurrency(),
	}
}

// symbol returns the currency grapheme, falling back to the code itself for
// currencies go-money does not know.
func (b *Builder) symbol() string {
	if cur := money.GetCurrency(b.Currency); cur != nil {
		return cur.Grapheme
	}
	return b.Currency
}

// Render builds the full report text for a snapshot. Output is deterministic:
// the same snapshot always renders byte-identical text.
func (b *Builder) Render(games []library.Game) string {
	p := PartitionGames(games)
	sym := b.symbol()

	var sb strings.Builder

	if len(p.UnknownPrice) > 0 {
		rows := make([][]string, len(p.UnknownPrice))
		for i, g := range p.UnknownPrice {
			rows[i] = []string{g.Name, formatHours(g.PlaytimeForever), g.Error}
		}
		writeSection(&sb, "Games with unknown price", []string{"Name", "Playtime", "Reason"}, rows)
	}

	if len(p.Free) > 0 {
		rows := make([][]string, len(p.Free))
		for i, g := range p.Free {
			rows[i] = []string{g.Name, formatHours(g.PlaytimeForever)}
		}
		writeSection(&sb, "Free games", []string{"Name", "Playtime"}, rows)
	}

	if len(p.Unplayed) > 0 {
		rows := make([][]string, len(p.Unplayed))
		for i, g := range p.Unplayed {
			rows[i] = []string{g.Name, formatPrice(*g.Price, sym), b.targetPlaytime(g)}
		}
		writeSection(&sb, "Unplayed games", []string{"Name", "Price", "Target playtime"}, rows)
	}

	if len(p.Played) > 0 {
		rows := make([][]string, len(p.Played))
		for i, g := range p.Played {
			rows[i] = []string{
				g.Name,
				formatHours(g.PlaytimeForever),
				formatPrice(*g.Price, sym),
				fmt.Sprintf("%.2f", g.Ratio()),
				b.remainingPlaytime(g),
			}
		}
		writeSection(&sb, "Played games",
			[]string{"Name", "Playtime", "Price", "Ratio (min/" + sym + ")", "Remaining playtime"}, rows)
	}

	b.writeAggregates(&sb, p, sym)
	return sb.String()
}

// Write renders the snapshot and persists the result through the store.
func (b *Builder) Write(store Writer, account library.Account, games []library.Game) error {
	return store.WriteReport(account, b.Render(games))
}

// targetPlaytime is how long an unplayed game would need to be played to
// reach the target ratio.
func (b *Builder) targetPlaytime(g library.Game) string {
	return formatDuration(*g.Price * b.TargetRatio)
}

// remainingPlaytime is the playtime still missing to reach the target ratio,
// or N/A when the game already met it.
func (b *Builder) remainingPlaytime(g library.Game) string {
	if g.Ratio() >= b.TargetRatio {
		return "N/A"
	}
	return formatDuration(*g.Price*b.TargetRatio - float64(g.PlaytimeForever))
}

func (b *Builder) writeAggregates(sb *strings.Builder, p Partition, sym string) {
	ratios := make([]float64, len(p.Played))
	totalPlaytime := 0
	totalPrice := 0.0

	for i, g := range p.Played {
		ratios[i] = g.Ratio()
		totalPlaytime += g.PlaytimeForever
		totalPrice += *g.Price
	}
	for _, g := range p.Unplayed {
		totalPrice += *g.Price
	}
	for _, g := range p.Free {
		totalPlaytime += g.PlaytimeForever
	}
	for _, g := range p.UnknownPrice {
		totalPlaytime += g.PlaytimeForever
	}

	// Mean and median are undefined on an empty Played set.
	if len(ratios) > 0 {
		fmt.Fprintf(sb, "Mean ratio: %.2f\n", mean(ratios))
		fmt.Fprintf(sb, "Median ratio: %.2f\n", median(ratios))
	} else {
		sb.WriteString("Mean ratio: N/A\n")
		sb.WriteString("Median ratio: N/A\n")
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Total playtime: %.2fh\n", float64(totalPlaytime)/60)
	fmt.Fprintf(sb, "Total price: %.2f%s\n", totalPrice, sym)
}

func writeSection(sb *strings.Builder, title string, header []string, rows [][]string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	writeTable(sb, header, rows)
	sb.WriteString("\n")
}

func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	w := tabwriter.NewWriter(sb, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// formatDuration renders minutes as hours once they reach a full hour.
func formatDuration(minutes float64) string {
	if minutes >= 60 {
		return fmt.Sprintf("%.2fh", minutes/60)
	}
	return fmt.Sprintf("%.2fmin", minutes)
}

// formatHours renders a playtime column value, always in hours.
func formatHours(minutes int) string {
	return fmt.Sprintf("%.2fh", float64(minutes)/60)
}

func formatPrice(price float64, sym string) string {
	return fmt.Sprintf("%.2f%s", price, sym)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
