package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithStatuses(statuses ...SLAStatus) []TicketRecord {
	records := make([]TicketRecord, len(statuses))
	for i, s := range statuses {
		records[i] = TicketRecord{Status: s}
	}
	return records
}

func TestSummarize(t *testing.T) {
	t.Run("counts and percentages", func(t *testing.T) {
		records := recordsWithStatuses(
			StatusOnTime, StatusOnTime, StatusLate, StatusNoDeadline,
		)

		summary := Summarize(records)

		require.Len(t, summary, 4)
		assert.Equal(t, SummaryRow{Status: string(StatusOnTime), Count: 2, Percentage: 50}, summary[0])
		assert.Equal(t, SummaryRow{Status: string(StatusLate), Count: 1, Percentage: 25}, summary[1])
		assert.Equal(t, SummaryRow{Status: string(StatusNoDeadline), Count: 1, Percentage: 25}, summary[2])
		assert.Equal(t, SummaryRow{Status: TotalLabel, Count: 4, Percentage: 100}, summary[3])
	})

	t.Run("bucket counts sum to total and percentages to 100", func(t *testing.T) {
		records := recordsWithStatuses(
			StatusOnTime, StatusLate, StatusLate, StatusNoDeadline,
			StatusOnTime, StatusOnTime, StatusLate,
		)

		summary := Summarize(records)

		countSum := 0
		pctSum := 0.0
		for _, row := range summary[:3] {
			countSum += row.Count
			pctSum += row.Percentage
		}
		assert.Equal(t, len(records), countSum)
		assert.InDelta(t, 100, pctSum, 0.5)
	})

	t.Run("zero rows short-circuit percentages", func(t *testing.T) {
		summary := Summarize(nil)

		require.Len(t, summary, 4)
		for _, row := range summary[:3] {
			assert.Equal(t, 0, row.Count)
			assert.Equal(t, 0.0, row.Percentage)
		}
		assert.Equal(t, SummaryRow{Status: TotalLabel, Count: 0, Percentage: 100}, summary[3])
	})
}

func TestRankRequesters(t *testing.T) {
	t.Run("descending by count", func(t *testing.T) {
		records := []TicketRecord{
			{Requester: "Ana"}, {Requester: "Beto"}, {Requester: "Beto"},
			{Requester: "Carla"}, {Requester: "Beto"}, {Requester: "Ana"},
		}

		ranking := RankRequesters(records)

		require.Len(t, ranking, 3)
		assert.Equal(t, RankingEntry{Requester: "Beto", Count: 3}, ranking[0])
		assert.Equal(t, RankingEntry{Requester: "Ana", Count: 2}, ranking[1])
		assert.Equal(t, RankingEntry{Requester: "Carla", Count: 1}, ranking[2])
	})

	t.Run("ties keep encounter order", func(t *testing.T) {
		records := []TicketRecord{
			{Requester: "Zeca"}, {Requester: "Ana"}, {Requester: "Maria"},
		}

		ranking := RankRequesters(records)

		require.Len(t, ranking, 3)
		assert.Equal(t, "Zeca", ranking[0].Requester)
		assert.Equal(t, "Ana", ranking[1].Requester)
		assert.Equal(t, "Maria", ranking[2].Requester)
	})

	t.Run("truncates to ten entries", func(t *testing.T) {
		var records []TicketRecord
		for i := 0; i < 15; i++ {
			records = append(records, TicketRecord{Requester: fmt.Sprintf("user-%d", i)})
		}

		ranking := RankRequesters(records)

		assert.Len(t, ranking, RankingSize)
	})

	t.Run("blank requester is a valid group", func(t *testing.T) {
		records := []TicketRecord{
			{Requester: ""}, {Requester: ""}, {Requester: "Ana"},
		}

		ranking := RankRequesters(records)

		require.Len(t, ranking, 2)
		assert.Equal(t, RankingEntry{Requester: "", Count: 2}, ranking[0])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RankRequesters(nil))
	})
}
