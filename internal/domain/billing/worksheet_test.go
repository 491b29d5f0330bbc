package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
)

func TestWorksheet_Defaults(t *testing.T) {
	ws := NewWorksheet()

	assert.Equal(t, FeePercentages[0], ws.FeePercentage())
	assert.True(t, ws.Transport().IsZero())
	assert.Empty(t, ws.Articles())
	assert.True(t, ws.Totals().Total.IsZero())
}

func TestWorksheet_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()

	totals, err := ws.AddItem(ctx, art(2, "10.00"))
	require.NoError(t, err)
	assert.Equal(t, "20.00", totals.Subtotal.StringFixed(2))

	// duplicates are separate lines
	totals, err = ws.AddItem(ctx, art(2, "10.00"))
	require.NoError(t, err)
	assert.Equal(t, "40.00", totals.Subtotal.StringFixed(2))
	assert.Len(t, ws.Articles(), 2)

	totals, err = ws.UpdateItem(ctx, 1, art(1, "5.00"))
	require.NoError(t, err)
	assert.Equal(t, "25.00", totals.Subtotal.StringFixed(2))

	totals, err = ws.DeleteItem(0)
	require.NoError(t, err)
	assert.Equal(t, "5.00", totals.Subtotal.StringFixed(2))
	assert.Len(t, ws.Articles(), 1)
}

func TestWorksheet_IndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(1, "10.00"))
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 99} {
		_, err := ws.UpdateItem(ctx, idx, art(1, "1.00"))
		assert.True(t, apperror.HasCode(err, apperror.CodeIndexOutOfRange), "update index %d", idx)

		_, err = ws.DeleteItem(idx)
		assert.True(t, apperror.HasCode(err, apperror.CodeIndexOutOfRange), "delete index %d", idx)
	}

	// sequence untouched after rejected mutations
	assert.Len(t, ws.Articles(), 1)
	assert.Equal(t, "10.00", ws.Totals().Subtotal.StringFixed(2))
}

func TestWorksheet_RejectedFeeKeepsPriorTotals(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(1, "100.00"))
	require.NoError(t, err)

	_, err = ws.SetFeePercentage(10)
	require.NoError(t, err)
	before := ws.Totals()

	_, err = ws.SetFeePercentage(7)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFeePercentage))

	assert.Equal(t, 10, ws.FeePercentage())
	assert.True(t, ws.Totals().Total.Equal(before.Total))
}

func TestWorksheet_NegativeTransportRejected(t *testing.T) {
	ws := NewWorksheet()
	_, err := ws.SetTransport(types.MustMoney("-3"))
	require.Error(t, err)
	assert.True(t, ws.Transport().IsZero())
}

func TestWorksheet_ClearItems(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(3, "7.00"))
	require.NoError(t, err)
	_, err = ws.SetTransport(types.MustMoney("9.00"))
	require.NoError(t, err)

	totals := ws.ClearItems()
	assert.Empty(t, ws.Articles())
	assert.True(t, totals.Subtotal.IsZero())
	// transport survives clearing the lines
	assert.Equal(t, "9.00", totals.Total.StringFixed(2))
}

func TestWorksheet_ArticlesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	ws := NewWorksheet()
	_, err := ws.AddItem(ctx, art(1, "10.00"))
	require.NoError(t, err)

	got := ws.Articles()
	got[0].Quantity = 99

	assert.Equal(t, 1, ws.Articles()[0].Quantity)
}

func TestWorksheetFromDraft_RoundTrip(t *testing.T) {
	d := Draft{
		ID:            "DRAFT1700000000000",
		ClientName:    "Moussa Diallo",
		ClientPhone:   "+224 620 00 11 22",
		FeePercentage: 15,
		Transport:     types.MustMoney("25.00"),
		Articles:      []Article{art(2, "30.00")},
	}

	ws := WorksheetFromDraft(d)

	assert.Equal(t, d.ID, ws.DraftID)
	assert.Equal(t, 15, ws.FeePercentage())
	assert.Equal(t, "60.00", ws.Totals().Subtotal.StringFixed(2))
	assert.Equal(t, "94.00", ws.Totals().Total.StringFixed(2)) // 60 + 9 + 25
}
