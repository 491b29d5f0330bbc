package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "12.50", want: "12.5"},
		{name: "integer", in: "40", want: "40"},
		{name: "dollar prefix", in: "$1,299.99", want: "1299.99"},
		{name: "euro suffix", in: "45,00 €", want: "4500"},
		{name: "currency code", in: "120 USD", want: "120"},
		{name: "spaces", in: " 15.00 ", want: "15"},
		{name: "empty", in: "", wantErr: true},
		{name: "only junk", in: "$ ,", wantErr: true},
		{name: "garbage", in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "12.50", Display(MustMoney("12.5")))
	assert.Equal(t, "0.00", Display(Zero()))
	assert.Equal(t, "329.74", Display(MustMoney("329.74")))
}
