package dataprocessing

import (
	"sort"

	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// groupKey is the composite grouping key of both aggregates
type groupKey struct {
	Date    domain.Date
	Station string
	Window  domain.DutyWindow
	Rank    domain.Rank
}

// groupCounter counts records per composite key in a single pass
type groupCounter struct {
	counts map[groupKey]int
}

func newGroupCounter() *groupCounter {
	return &groupCounter{counts: make(map[groupKey]int)}
}

func (c *groupCounter) add(k groupKey) {
	c.counts[k]++
}

// rows materializes the counters sorted by date, window ordinal and rank
func (c *groupCounter) rows() []domain.AggregateRow {
	rows := make([]domain.AggregateRow, 0, len(c.counts))
	for k, n := range c.counts {
		rows = append(rows, domain.AggregateRow{
			Date:              k.Date,
			Station:           k.Station,
			DutyWindow:        k.Window.Label,
			DutyWindowOrdinal: k.Window.Ordinal,
			Rank:              k.Rank,
			Count:             n,
		})
	}
	SortAggregateRows(rows)
	return rows
}

// SortAggregateRows orders rows by date, duty window ordinal and rank.
// Station breaks the remaining ties so the order is total.
func SortAggregateRows(rows []domain.AggregateRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if a.DutyWindowOrdinal != b.DutyWindowOrdinal {
			return a.DutyWindowOrdinal < b.DutyWindowOrdinal
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Station < b.Station
	})
}
