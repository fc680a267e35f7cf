package report

import "sort"

// RankingSize caps the requester ranking.
const RankingSize = 10

// Summary label for the synthetic totals row.
const TotalLabel = "Total"

// Summarize tallies records per SLA status and computes percentages over the
// full row count. Percentages keep full float precision; display rounding is
// the presentation layer's problem. A zero-row input yields 0 for every
// bucket percentage and 100 on the Total row.
func Summarize(records []TicketRecord) []SummaryRow {
	counts := make(map[SLAStatus]int, len(Statuses))
	for _, rec := range records {
		counts[rec.Status]++
	}

	total := len(records)
	rows := make([]SummaryRow, 0, len(Statuses)+1)
	for _, status := range Statuses {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[status]) / float64(total) * 100
		}
		rows = append(rows, SummaryRow{
			Status:     string(status),
			Count:      counts[status],
			Percentage: pct,
		})
	}
	rows = append(rows, SummaryRow{Status: TotalLabel, Count: total, Percentage: 100})
	return rows
}

// RankRequesters groups records by requester and returns the ten most
// frequent, descending by count, ties in encounter order. A blank requester
// is a group like any other.
func RankRequesters(records []TicketRecord) []RankingEntry {
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if _, seen := counts[rec.Requester]; !seen {
			order = append(order, rec.Requester)
		}
		counts[rec.Requester]++
	}

	entries := make([]RankingEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, RankingEntry{Requester: name, Count: counts[name]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > RankingSize {
		entries = entries[:RankingSize]
	}
	return entries
}
