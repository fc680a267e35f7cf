package ingest

import (
	"fmt"
	"strings"
)

// Canonical column names of a ticket export.
const (
	ColTicketID   = "ID do ticket"
	ColResolution = "Hora da resolução"
	ColDeadline   = "Primeiro prazo"
	ColRequester  = "Solicitante"
)

// The six quality checklist columns. All must be present for the quality
// sub-pipeline to activate; their absence is not a schema error.
var QualityColumns = []string{
	"Saudação e cordialidade",
	"Entendimento da solicitação",
	"Solução aplicada corretamente",
	"Comunicação clara",
	"Registro completo no ticket",
	"Encerramento adequado",
}

var requiredColumns = []string{ColTicketID, ColResolution, ColDeadline, ColRequester}

// columnAliases maps known exported header variants to canonical names.
// Matching is by exact string; unknown spellings stay unmapped and trip the
// schema check.
var columnAliases = map[string]string{
	"Ticket ID":           ColTicketID,
	"ID do Ticket":        ColTicketID,
	"Hora da resolucao":   ColResolution,
	"Resolvido em":        ColResolution,
	"Primeiro Prazo":      ColDeadline,
	"Prazo":               ColDeadline,
	"Nome do solicitante": ColRequester,
	"Cliente":             ColRequester,
}

// SchemaError reports every required column missing after normalization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("colunas esperadas não encontradas: %s", strings.Join(e.Missing, ", "))
}

// NormalizeColumns renames aliased headers to their canonical form and
// verifies the required set. Cell values are never touched.
func NormalizeColumns(t *Table) error {
	for i, h := range t.Headers {
		if canonical, ok := columnAliases[h]; ok {
			t.Headers[i] = canonical
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if t.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// HasQualityColumns reports whether all six checklist columns are present.
func HasQualityColumns(t *Table) bool {
	for _, col := range QualityColumns {
		if t.ColumnIndex(col) < 0 {
			return false
		}
	}
	return true
}
