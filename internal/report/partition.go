// Package report partitions an enriched library into value categories and
// renders the playtime-per-price report.
package report

import (
	"sort"

	"github.com/avrillon/steamworth/internal/library"
)

// Category is the value bucket a game falls into. Every game lands in
// exactly one category.
type Category int

const (
	// UnknownPrice holds games whose enrichment recorded an error reason.
	UnknownPrice Category = iota
	// Free holds games priced at zero.
	Free
	// Unplayed holds paid games with zero playtime.
	Unplayed
	// Played holds paid games with playtime, the only ones with a ratio.
	Played
)

// Categorize returns the category for one enriched game.
func Categorize(g library.Game) Category {
	switch {
	case !g.HasPrice():
		return UnknownPrice
	case *g.Price == 0:
		return Free
	case g.PlaytimeForever == 0:
		return Unplayed
	default:
		return Played
	}
}

// Partition holds the four category buckets, each sorted for display.
type Partition struct {
	UnknownPrice []library.Game // by playtime, descending
	Free         []library.Game // by playtime, descending
	Unplayed     []library.Game // by price, descending
	Played       []library.Game // by ratio, descending
}

// PartitionGames splits games into the four buckets and sorts each one.
// Sorts are stable so equal keys keep their snapshot order and repeated
// builds render byte-identical output.
func PartitionGames(games []library.Game) Partition {
	var p Partition
	for _, g := range games {
		switch Categorize(g) {
		case UnknownPrice:
			p.UnknownPrice = append(p.UnknownPrice, g)
		case Free:
			p.Free = append(p.Free, g)
		case Unplayed:
			p.Unplayed = append(p.Unplayed, g)
		case Played:
			p.Played = append(p.Played, g)
		}
	}

	sort.SliceStable(p.Played, func(i, j int) bool {
		return p.Played[i].Ratio() > p.Played[j].Ratio()
	})
	sort.SliceStable(p.Unplayed, func(i, j int) bool {
		return *p.Unplayed[i].Price > *p.Unplayed[j].Price
	})
	sort.SliceStable(p.Free, func(i, j int) bool {
		return p.Free[i].PlaytimeForever > p.Free[j].PlaytimeForever
	})
	sort.SliceStable(p.UnknownPrice, func(i, j int) bool {
		return p.UnknownPrice[i].PlaytimeForever > p.UnknownPrice[j].PlaytimeForever
	})
	return p
}
