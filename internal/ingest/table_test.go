package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	t.Run("utf-8 input", func(t *testing.T) {
		data := []byte("ID do ticket,Solicitante\n1,Ana\n2,Beto\n")

		table, err := Load("tickets.csv", data)

		require.NoError(t, err)
		assert.Equal(t, []string{"ID do ticket", "Solicitante"}, table.Headers)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, "Ana", table.Cell(0, 1))
	})

	t.Run("BOM is stripped", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ID do ticket\n1\n")...)

		table, err := Load("tickets.csv", data)

		require.NoError(t, err)
		assert.Equal(t, "ID do ticket", table.Headers[0])
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// "José" with an ISO-8859-1 é (0xE9), invalid as UTF-8.
		data := []byte("Solicitante\nJos\xe9\n")

		table, err := Load("tickets.csv", data)

		require.NoError(t, err)
		assert.Equal(t, "José", table.Cell(0, 0))
	})

	t.Run("ragged rows tolerated", func(t *testing.T) {
		data := []byte("a,b,c\n1,2\n4,5,6,7\n")

		table, err := Load("tickets.csv", data)

		require.NoError(t, err)
		assert.Equal(t, "", table.Cell(0, 2))
		assert.Equal(t, "6", table.Cell(1, 2))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Load("tickets.csv", nil)

		assert.ErrorIs(t, err, ErrEmptyTable)
	})
}

func TestLoadXLSX(t *testing.T) {
	t.Run("first sheet is read", func(t *testing.T) {
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"ID do ticket", "Solicitante"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"42", "Carla"}))
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		table, err := Load("export.xlsx", buf.Bytes())

		require.NoError(t, err)
		assert.Equal(t, []string{"ID do ticket", "Solicitante"}, table.Headers)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "42", table.Cell(0, 0))
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, err := Load("export.xlsx", []byte("not a zip"))

		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestLoadXLS(t *testing.T) {
	// Legacy BIFF workbook with two sheets: "Planilha1" holds a header row
	// plus two tickets (one with a blank deadline cell), "Resumo" holds an
	// unrelated row that must not leak into the import.
	fixture, err := os.ReadFile(filepath.Join("testdata", "tickets.xls"))
	require.NoError(t, err)

	t.Run("headers and rows", func(t *testing.T) {
		table, err := Load("tickets.xls", fixture)

		require.NoError(t, err)
		assert.Equal(t, []string{"ID do ticket", "Hora da resolução", "Primeiro prazo", "Solicitante"}, table.Headers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "1", table.Cell(0, 0))
		assert.Equal(t, "10/01/2024", table.Cell(0, 2))
		assert.Equal(t, "José", table.Cell(0, 3))
	})

	t.Run("blank cell stays blank", func(t *testing.T) {
		table, err := Load("tickets.xls", fixture)

		require.NoError(t, err)
		assert.Equal(t, "", table.Cell(1, 2))
		assert.Equal(t, "Beto", table.Cell(1, 3))
	})

	t.Run("only the first sheet is read", func(t *testing.T) {
		table, err := Load("tickets.xls", fixture)

		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		for _, row := range table.Rows {
			assert.NotContains(t, row, "Outro")
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, err := Load("tickets.xls", []byte("not a compound file"))

		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("tickets.pdf", []byte("%PDF"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".pdf")
}

func TestTableHeadersTrimmed(t *testing.T) {
	data := []byte(" ID do ticket , Solicitante \n1,Ana\n")

	table, err := Load("t.csv", data)

	require.NoError(t, err)
	assert.Equal(t, []string{"ID do ticket", "Solicitante"}, table.Headers)
	assert.Equal(t, "Ana", table.Cell(0, 1))
}
