package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func defaultLoyalty() LoyaltyConfig {
	return LoyaltyConfig{Interval: DefaultLoyaltyInterval, Percent: DefaultLoyaltyPercent}
}

func percentCoupon(code string, value float64) *models.Coupon {
	return &models.Coupon{
		ID:        "c-" + code,
		Code:      code,
		Type:      models.CouponTypePercentage,
		Value:     value,
		CreatedAt: time.Now(),
	}
}

func fixedCoupon(code string, value float64) *models.Coupon {
	c := percentCoupon(code, value)
	c.Type = models.CouponTypeFixed
	return c
}

func TestLoyaltyFiresEveryThirdOrder(t *testing.T) {
	cfg := defaultLoyalty()
	now := time.Now()

	for n := 1; n <= 100; n++ {
		for _, coupon := range []*models.Coupon{nil, fixedCoupon("SAVE5", 5)} {
			decision, err := DecideDiscount(cfg, "user-1", n, coupon, 100, now)
			require.NoError(t, err, "commande n°%d", n)
			require.Equal(t, n%3 == 0, decision.LoyaltyApplied,
				"la fidélité doit jouer si et seulement si n%%3 == 0 (n=%d)", n)
		}
	}
}

func TestLoyaltyDiscountAmount(t *testing.T) {
	decision, err := DecideDiscount(defaultLoyalty(), "user-1", 3, nil, 100, time.Now())
	require.NoError(t, err)
	require.True(t, decision.LoyaltyApplied)
	require.Equal(t, 10.0, decision.Amount)
	require.Equal(t, 10.0, decision.Percent)
	require.Equal(t, 3, decision.OrderNumber)
	require.Contains(t, decision.Code, "3")
}

func TestLoyaltyIgnoresManualCode(t *testing.T) {
	coupon := fixedCoupon("SAVE5", 5)
	decision, err := DecideDiscount(defaultLoyalty(), "user-1", 6, coupon, 200, time.Now())
	require.NoError(t, err)
	require.True(t, decision.LoyaltyApplied)
	require.Equal(t, 20.0, decision.Amount)
	require.NotEqual(t, "SAVE5", decision.Code)
}

func TestManualPercentageCoupon(t *testing.T) {
	decision, err := DecideDiscount(defaultLoyalty(), "user-1", 2, percentCoupon("PROMO20", 20), 49.90, time.Now())
	require.NoError(t, err)
	require.False(t, decision.LoyaltyApplied)
	require.Equal(t, 9.98, decision.Amount)
	require.Equal(t, "PROMO20", decision.Code)
}

func TestManualFixedCouponClampedToSubtotal(t *testing.T) {
	decision, err := DecideDiscount(defaultLoyalty(), "user-1", 1, fixedCoupon("BIG50", 50), 30, time.Now())
	require.NoError(t, err)
	require.Equal(t, 30.0, decision.Amount)
	require.Equal(t, 0.0, FinalTotal(30, decision.Amount))
}

func TestManualCouponAlreadyUsed(t *testing.T) {
	coupon := fixedCoupon("SAVE5", 5)
	usedBy := "user-2"
	usedAt := time.Now()
	coupon.IsUsed = true
	coupon.UsedBy = &usedBy
	coupon.UsedAt = &usedAt

	_, err := DecideDiscount(defaultLoyalty(), "user-1", 1, coupon, 100, time.Now())
	require.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestManualCouponExpired(t *testing.T) {
	coupon := percentCoupon("OLD10", 10)
	expired := time.Now().Add(-time.Hour)
	coupon.ExpiresAt = &expired

	_, err := DecideDiscount(defaultLoyalty(), "user-1", 1, coupon, 100, time.Now())
	require.ErrorIs(t, err, ErrCouponExpired)
}

func TestNoDiscountWithoutCoupon(t *testing.T) {
	decision, err := DecideDiscount(defaultLoyalty(), "user-1", 2, nil, 100, time.Now())
	require.NoError(t, err)
	require.Zero(t, decision.Amount)
	require.Empty(t, decision.Code)
	require.False(t, decision.LoyaltyApplied)
}

func TestFinalTotalNeverNegative(t *testing.T) {
	require.Equal(t, 0.0, FinalTotal(10, 50))
	require.Equal(t, 90.0, FinalTotal(100, 10))
	require.Equal(t, 53.97, FinalTotal(59.97, 6))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 6.0, Round2(5.997))
	require.Equal(t, 9.98, Round2(9.980000001))
	require.Equal(t, 0.1, Round2(0.1))
}

func TestLoyaltyCouponCode(t *testing.T) {
	code := LoyaltyCouponCode(3, "a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	require.Equal(t, "LOYALTY-3-A1B2C3D4", code)

	// Identifiant court : pas de panique, fragment complet
	require.Equal(t, fmt.Sprintf("LOYALTY-%d-AB", 6), LoyaltyCouponCode(6, "ab"))
}
