package billing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/types"
)

func art(qty int, price string) Article {
	return Article{Description: "item", Quantity: qty, UnitPrice: types.MustMoney(price)}
}

func TestCalculate_WorkedExample(t *testing.T) {
	// 2×64.87 + 4×50.00 = 329.74; 10% fees 32.974; transport 31.50.
	// Rounded for presentation: fees 32.97, total 394.21.
	articles := []Article{
		art(2, "64.87"),
		art(4, "50.00"),
	}
	totals, err := Calculate(articles, 10, types.MustMoney("31.50"))
	require.NoError(t, err)

	assert.Equal(t, "329.74", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "32.974", totals.Fees.String())
	assert.Equal(t, "394.214", totals.Total.String())

	rounded := totals.Rounded()
	assert.Equal(t, "32.97", rounded.Fees.StringFixed(2))
	assert.Equal(t, "394.21", rounded.Total.StringFixed(2))
}

func TestCalculate_AllAcceptedFees(t *testing.T) {
	articles := []Article{art(1, "100.00")}

	for _, pct := range FeePercentages {
		totals, err := Calculate(articles, pct, types.Zero())
		require.NoError(t, err)
		wantFees := types.MustMoney("100").
			Mul(types.NewMoneyFromInt(int64(pct))).
			Div(types.NewMoneyFromInt(100))
		assert.True(t, totals.Fees.Equal(wantFees), "fees for %d%%", pct)
		assert.Equal(t, pct, totals.FeePercentage)
	}
}

func TestCalculate_RejectsUnknownFee(t *testing.T) {
	for _, pct := range []int{0, -5, 7, 20, 100} {
		_, err := Calculate([]Article{art(1, "10")}, pct, types.Zero())
		require.Error(t, err, "fee %d", pct)
	}
}

func TestCalculate_EmptyArticles(t *testing.T) {
	totals, err := Calculate(nil, 5, types.MustMoney("12.00"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Fees.IsZero())
	assert.Equal(t, "12.00", totals.Total.StringFixed(2))
	assert.Equal(t, 0, totals.TotalQuantity)
}

func TestCalculate_SumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(8)
		articles := make([]Article, n)
		for j := range articles {
			articles[j] = Article{
				Description: "x",
				Quantity:    1 + rng.Intn(50),
				UnitPrice:   types.NewMoney(float64(rng.Intn(100000)) / 100),
				WeightCbm:   types.NewMoney(float64(rng.Intn(500)) / 100),
			}
		}
		pct := FeePercentages[rng.Intn(len(FeePercentages))]
		transport := types.NewMoney(float64(rng.Intn(20000)) / 100)

		totals, err := Calculate(articles, pct, transport)
		require.NoError(t, err)

		// total = subtotal + fees + transport, exactly
		assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Fees).Add(totals.Transport)))

		// determinism
		again, err := Calculate(articles, pct, transport)
		require.NoError(t, err)
		assert.True(t, totals.Total.Equal(again.Total))

		// rounded view stays self-consistent
		r := totals.Rounded()
		assert.True(t, r.Total.Equal(r.Subtotal.Add(r.Fees).Add(r.Transport)))
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FAC001", FormatInvoiceNumber(1))
	assert.Equal(t, "FAC042", FormatInvoiceNumber(42))
	assert.Equal(t, "FAC999", FormatInvoiceNumber(999))
	// width grows past the pad, never truncates
	assert.Equal(t, "FAC1000", FormatInvoiceNumber(1000))
}
