package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, Money{Amount: 4_100_000, Currency: "IDR"}, Rupiah(4_100_000))
}
