package billing

import (
	"strconv"
	"strings"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
)

// Import column positions. The import boundary yields rows of string cells;
// the first row is a header and is discarded.
const (
	colImage = iota
	colQuantity
	colDescription
	colUnitPrice
	colWeightCbm
	colItemLink
)

// ArticlesFromRows converts externally parsed tabular rows into articles.
// The first malformed required cell aborts the whole import: the error
// carries the 1-based data row index and nothing is returned. Optional cells
// (weight, link) may be absent; an empty weight counts as zero.
func ArticlesFromRows(rows [][]string) ([]Article, error) {
	if len(rows) == 0 {
		return nil, apperror.NewValidation("import contains no rows")
	}

	data := rows[1:] // header discarded
	articles := make([]Article, 0, len(data))

	for i, row := range data {
		rowNo := i + 1

		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		qty, err := strconv.Atoi(cell(colQuantity))
		if err != nil {
			return nil, apperror.NewMalformedRow(rowNo, "quantity", err)
		}
		if qty < 0 {
			return nil, apperror.NewMalformedRow(rowNo, "quantity", nil).
				WithDetail("reason", "negative")
		}

		price, err := types.ParseAmount(cell(colUnitPrice))
		if err != nil {
			return nil, apperror.NewMalformedRow(rowNo, "unitPrice", err)
		}
		if price.IsNegative() {
			return nil, apperror.NewMalformedRow(rowNo, "unitPrice", nil).
				WithDetail("reason", "negative")
		}

		weight := types.Zero()
		if raw := cell(colWeightCbm); raw != "" {
			weight, err = types.ParseAmount(raw)
			if err != nil {
				return nil, apperror.NewMalformedRow(rowNo, "weightCbm", err)
			}
			if weight.IsNegative() {
				return nil, apperror.NewMalformedRow(rowNo, "weightCbm", nil).
					WithDetail("reason", "negative")
			}
		}

		articles = append(articles, Article{
			ImageURL:    cell(colImage),
			Quantity:    qty,
			Description: cell(colDescription),
			UnitPrice:   price,
			WeightCbm:   weight,
			ItemLink:    cell(colItemLink),
		})
	}

	return articles, nil
}
