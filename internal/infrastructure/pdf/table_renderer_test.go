package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

func TestColumnSizes(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{12}},
		{2, []int{6, 6}},
		{5, []int{3, 3, 2, 2, 2}},
		{10, []int{2, 2, 1, 1, 1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		got := columnSizes(tt.n)
		assert.Equal(t, tt.want, got)
		sum := 0
		for _, s := range got {
			sum += s
		}
		assert.Equal(t, gridSize, sum)
	}
}

func TestTableRenderer_Render(t *testing.T) {
	r := NewTableRenderer()
	var buf bytes.Buffer
	err := r.Render(&buf, reports.Table{
		Title:   "Estadísticas del almacén",
		Headers: []string{"Indicador", "Valor"},
		Rows:    [][]string{{"Categorías", "3"}, {"Operaciones de hoy", "12"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "pdf", r.Extension())
}

func TestTableRenderer_RejectsEmptyAndWideTables(t *testing.T) {
	r := NewTableRenderer()
	require.Error(t, r.Render(&bytes.Buffer{}, reports.Table{}))
	wide := make([]string, 13)
	require.Error(t, r.Render(&bytes.Buffer{}, reports.Table{Headers: wide}))
}
