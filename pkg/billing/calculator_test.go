package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapDiscountTier(t *testing.T) {
	cases := []struct {
		percent int
		want    int
	}{
		{0, 0},
		{3, 0},
		{5, 0},
		{6, 10},
		{10, 10},
		{15, 10},
		{16, 20},
		{17, 20},
		{25, 20},
		{26, 30},
		{50, 30},
		{100, 30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SnapDiscountTier(tc.percent), "percent %d", tc.percent)
	}
}

func TestComputeTotal(t *testing.T) {
	procedures := []ProcedureLine{
		{Label: "Scaling", Amount: 30000},
		{Label: "X-ray", Amount: 20000},
	}

	t.Run("no discount", func(t *testing.T) {
		total := ComputeTotal(50000, false, procedures, 0)
		assert.Equal(t, int64(100000), total)
	})

	t.Run("snapped discount applies to subtotal", func(t *testing.T) {
		// 17% snaps to 20%: 100000 - 20000 = 80000
		total := ComputeTotal(50000, false, procedures, 17)
		assert.Equal(t, int64(80000), total)
	})

	t.Run("waived consultation drops its charge", func(t *testing.T) {
		total := ComputeTotal(50000, true, procedures, 0)
		assert.Equal(t, int64(50000), total)
	})

	t.Run("waived consultation with discount", func(t *testing.T) {
		total := ComputeTotal(50000, true, procedures, 10)
		assert.Equal(t, int64(45000), total)
	})

	t.Run("no charges yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ComputeTotal(0, true, nil, 30))
	})
}

func TestDiscountAmount(t *testing.T) {
	assert.Equal(t, int64(0), DiscountAmount(100000, 5))
	assert.Equal(t, int64(10000), DiscountAmount(100000, 10))
	assert.Equal(t, int64(20000), DiscountAmount(100000, 17))
	assert.Equal(t, int64(30000), DiscountAmount(100000, 99))
}
