package models

import "time"

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

type Coupon struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"` // "percentage" ou "fixed"
	Value     float64    `json:"value"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *string    `json:"used_by,omitempty"` // Toujours renseignés ensemble avec used_at
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired indique si le coupon est expiré à l'instant donné
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
