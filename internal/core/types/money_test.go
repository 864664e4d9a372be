package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"$1,250.50", "1250.5", true},
		{"₹ 1,20,000", "120000", true},
		{"-€40", "-40", true},
		{"100", "100", true},
		{"", "0", false},
		{"n/a", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCurrency(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIsCurrencyDecorated(t *testing.T) {
	assert.True(t, IsCurrencyDecorated("£10"))
	assert.False(t, IsCurrencyDecorated("10"))
}
