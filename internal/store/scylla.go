package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// Scylla est l'implémentation ScyllaDB des stores produits, coupons et
// commandes. Les tables doivent être créées via scripts/scylladb_init.cql.
type Scylla struct {
	session *gocql.Session
}

func NewScylla(session *gocql.Session) *Scylla {
	return &Scylla{session: session}
}

func notFound(err error) bool {
	return errors.Is(err, gocql.ErrNotFound)
}

// --- Produits ---

func (s *Scylla) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.session.Query(`SELECT product_id, name, description, price, stock, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, id).WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lecture produit %s: %w", id, err)
	}
	return &p, nil
}

func (s *Scylla) ListProducts(ctx context.Context) ([]models.Product, error) {
	iter := s.session.Query(`SELECT product_id, name, description, price, stock, is_active, created_at, updated_at
		FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}
	return products, nil
}

func (s *Scylla) SaveProduct(ctx context.Context, p *models.Product) error {
	err := s.session.Query(`INSERT INTO products (product_id, name, description, price, stock, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.IsActive, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("sauvegarde produit %s: %w", p.ID, err)
	}
	return nil
}

// --- Coupons ---

func (s *Scylla) scanCoupon(q *gocql.Query) (*models.Coupon, error) {
	var c models.Coupon
	var usedBy string
	var usedAt, expiresAt time.Time

	err := q.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.IsUsed, &usedBy, &usedAt, &expiresAt, &c.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lecture coupon: %w", err)
	}

	// used_by/used_at vont toujours ensemble — reconstruits uniquement si
	// le coupon est consommé
	if c.IsUsed {
		c.UsedBy = &usedBy
		c.UsedAt = &usedAt
	}
	if !expiresAt.IsZero() {
		c.ExpiresAt = &expiresAt
	}
	return &c, nil
}

func (s *Scylla) GetCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	q := s.session.Query(`SELECT coupon_id, code, type, value, is_used, used_by, used_at, expires_at, created_at
		FROM coupons WHERE coupon_id = ?`, id).WithContext(ctx)
	return s.scanCoupon(q)
}

func (s *Scylla) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	q := s.session.Query(`SELECT coupon_id, code, type, value, is_used, used_by, used_at, expires_at, created_at
		FROM coupons_by_code WHERE code = ? LIMIT 1`, strings.ToUpper(code)).WithContext(ctx)
	return s.scanCoupon(q)
}

func (s *Scylla) SaveCoupon(ctx context.Context, coupon *models.Coupon) error {
	var usedBy string
	var usedAt, expiresAt time.Time
	if coupon.UsedBy != nil {
		usedBy = *coupon.UsedBy
	}
	if coupon.UsedAt != nil {
		usedAt = *coupon.UsedAt
	}
	if coupon.ExpiresAt != nil {
		expiresAt = *coupon.ExpiresAt
	}

	// Double écriture : table principale + table indexée par code
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO coupons (coupon_id, code, type, value, is_used, used_by, used_at, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		coupon.ID, strings.ToUpper(coupon.Code), coupon.Type, coupon.Value, coupon.IsUsed, usedBy, usedAt, expiresAt, coupon.CreatedAt)
	batch.Query(`INSERT INTO coupons_by_code (coupon_id, code, type, value, is_used, used_by, used_at, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		coupon.ID, strings.ToUpper(coupon.Code), coupon.Type, coupon.Value, coupon.IsUsed, usedBy, usedAt, expiresAt, coupon.CreatedAt)

	if err := s.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("sauvegarde coupon %s: %w", coupon.Code, err)
	}
	return nil
}

func (s *Scylla) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	iter := s.session.Query(`SELECT coupon_id, code, type, value, is_used, used_by, used_at, expires_at, created_at
		FROM coupons`).WithContext(ctx).Iter()

	var coupons []models.Coupon
	for {
		var c models.Coupon
		var usedBy string
		var usedAt, expiresAt time.Time
		if !iter.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.IsUsed, &usedBy, &usedAt, &expiresAt, &c.CreatedAt) {
			break
		}
		if c.IsUsed {
			ub, ua := usedBy, usedAt
			c.UsedBy = &ub
			c.UsedAt = &ua
		}
		if !expiresAt.IsZero() {
			ea := expiresAt
			c.ExpiresAt = &ea
		}
		coupons = append(coupons, c)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture coupons: %w", err)
	}
	return coupons, nil
}

// --- Commandes ---

// Les lignes de commande sont figées au checkout, on les stocke en JSON
// plutôt que dans une table séparée (pas de requête ligne à ligne)

func (s *Scylla) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	var itemsJSON string
	err := s.session.Query(`SELECT order_id, user_id, items, subtotal, discount_amount, discount_code, total_price, status, created_at, updated_at
		FROM orders WHERE order_id = ?`, id).WithContext(ctx).
		Scan(&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.DiscountAmount, &o.DiscountCode, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lecture commande %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, fmt.Errorf("décodage lignes commande %s: %w", id, err)
	}
	return &o, nil
}

func (s *Scylla) SaveOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encodage lignes commande: %w", err)
	}

	err = s.session.Query(`INSERT INTO orders (order_id, user_id, items, subtotal, discount_amount, discount_code, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, string(itemsJSON), order.Subtotal, order.DiscountAmount,
		order.DiscountCode, order.TotalPrice, order.Status, order.CreatedAt, order.UpdatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("sauvegarde commande %s: %w", order.ID, err)
	}
	return nil
}

func (s *Scylla) listOrders(ctx context.Context, cql string, args ...interface{}) ([]models.Order, error) {
	iter := s.session.Query(cql, args...).WithContext(ctx).Iter()

	var orders []models.Order
	for {
		var o models.Order
		var itemsJSON string
		if !iter.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.DiscountAmount, &o.DiscountCode, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt) {
			break
		}
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, fmt.Errorf("décodage lignes commande %s: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture commandes: %w", err)
	}
	return orders, nil
}

func (s *Scylla) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.listOrders(ctx, `SELECT order_id, user_id, items, subtotal, discount_amount, discount_code, total_price, status, created_at, updated_at
		FROM orders WHERE user_id = ? ALLOW FILTERING`, userID)
}

func (s *Scylla) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.listOrders(ctx, `SELECT order_id, user_id, items, subtotal, discount_amount, discount_code, total_price, status, created_at, updated_at
		FROM orders`)
}

func (s *Scylla) CountNonCancelledOrders(ctx context.Context, userID string) (int, error) {
	iter := s.session.Query(`SELECT status FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).
		WithContext(ctx).Iter()

	count := 0
	var status string
	for iter.Scan(&status) {
		if status != models.OrderStatusCancelled {
			count++
		}
	}
	if err := iter.Close(); err != nil {
		return 0, fmt.Errorf("comptage commandes de %s: %w", userID, err)
	}
	return count, nil
}
