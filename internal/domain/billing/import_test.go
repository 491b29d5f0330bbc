package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
)

var importHeader = []string{"Image", "Qty", "Description", "Unit Price", "CBM", "Link"}

func TestArticlesFromRows(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"img1.jpg", "2", "Office chair", "$64.87", "0.35", "https://example.com/chair"},
		{"", "4", "Desk lamp", "50.00", "", ""},
	}

	articles, err := ArticlesFromRows(rows)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Office chair", articles[0].Description)
	assert.Equal(t, 2, articles[0].Quantity)
	assert.Equal(t, "64.87", articles[0].UnitPrice.String())
	assert.Equal(t, "0.35", articles[0].WeightCbm.String())

	// empty weight counts as zero
	assert.True(t, articles[1].WeightCbm.IsZero())
}

func TestArticlesFromRows_HeaderOnly(t *testing.T) {
	articles, err := ArticlesFromRows([][]string{importHeader})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestArticlesFromRows_Empty(t *testing.T) {
	_, err := ArticlesFromRows(nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestArticlesFromRows_MalformedAborts(t *testing.T) {
	tests := []struct {
		name    string
		row     []string
		wantRow int
	}{
		{name: "bad quantity", row: []string{"", "two", "x", "10.00", "", ""}, wantRow: 2},
		{name: "bad price", row: []string{"", "1", "x", "ten", "", ""}, wantRow: 2},
		{name: "bad weight", row: []string{"", "1", "x", "10.00", "heavy?!", ""}, wantRow: 2},
		{name: "negative price", row: []string{"", "1", "x", "-5.00", "", ""}, wantRow: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{
				importHeader,
				{"", "1", "ok row", "10.00", "", ""},
				tt.row,
				{"", "3", "never reached", "1.00", "", ""},
			}
			articles, err := ArticlesFromRows(rows)
			require.Error(t, err)
			assert.Nil(t, articles, "abort returns nothing, not a partial batch")

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeMalformedRow, appErr.Code)
			assert.EqualValues(t, tt.wantRow, appErr.Details["row"])
		})
	}
}

func TestWorksheet_ImportRows_FailureLeavesItems(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(1, "99.00"))
	require.NoError(t, err)

	_, err = ws.ImportRows(ctx, [][]string{
		importHeader,
		{"", "oops", "bad", "1.00", "", ""},
	})
	require.Error(t, err)

	require.Len(t, ws.Articles(), 1)
	assert.Equal(t, "99.00", ws.Totals().Subtotal.StringFixed(2))
}

func TestWorksheet_ImportRows_Replaces(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(1, "99.00"))
	require.NoError(t, err)

	totals, err := ws.ImportRows(ctx, [][]string{
		importHeader,
		{"", "2", "imported", "5.00", "", ""},
	})
	require.NoError(t, err)

	require.Len(t, ws.Articles(), 1)
	assert.Equal(t, "imported", ws.Articles()[0].Description)
	assert.Equal(t, "10.00", totals.Subtotal.StringFixed(2))
}
