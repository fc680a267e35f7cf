package report

const (
	AnswerYes = "Sim"
	AnswerNo  = "Não"
)

// Label for the synthetic overall-rate row of the quality summary.
const OverallQualityLabel = "Qualidade Geral"

// Verdict fails a row only on an explicit "Não". A blank or unrecognized
// answer never fails by itself, even though it also never counts toward the
// per-question conformance rate; that asymmetry matches how the checklist is
// audited and must stay.
func Verdict(answers map[string]string, questions []string) string {
	for _, q := range questions {
		if answers[q] == AnswerNo {
			return VerdictRejected
		}
	}
	return VerdictApproved
}

// ScoreQuality computes the per-question conformance rates plus the overall
// pass rate, as percentages of the full record count. Only an exact "Sim"
// counts toward a question's numerator, only an approved verdict toward the
// overall one. Records must already carry their verdicts.
func ScoreQuality(records []TicketRecord, questions []string) []QualityRow {
	total := len(records)

	rows := make([]QualityRow, 0, len(questions)+1)
	for _, q := range questions {
		yes := 0
		for _, rec := range records {
			if rec.Answers[q] == AnswerYes {
				yes++
			}
		}
		rows = append(rows, QualityRow{Question: q, Rate: rate(yes, total)})
	}

	approved := 0
	for _, rec := range records {
		if rec.Verdict == VerdictApproved {
			approved++
		}
	}
	rows = append(rows, QualityRow{Question: OverallQualityLabel, Rate: rate(approved, total)})
	return rows
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
