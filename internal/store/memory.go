package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"velora_back_end/internal/models"
)

// Memory est l'implémentation en mémoire des stores — utilisée par les
// tests et le mode développement sans ScyllaDB
type Memory struct {
	mu       sync.RWMutex
	products map[string]models.Product
	carts    map[string]models.Cart
	coupons  map[string]models.Coupon // par id
	byCode   map[string]string        // code → id
	orders   map[string]models.Order
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[string]models.Product),
		carts:    make(map[string]models.Cart),
		coupons:  make(map[string]models.Coupon),
		byCode:   make(map[string]string),
		orders:   make(map[string]models.Order),
	}
}

// --- Produits ---

func (m *Memory) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *Memory) SaveProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = *p
	return nil
}

// --- Paniers ---

func (m *Memory) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	// Copie défensive de la liste d'items
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

func (m *Memory) SaveCart(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	m.carts[cart.UserID] = models.Cart{UserID: cart.UserID, Items: items}
	return nil
}

func (m *Memory) ClearCart(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, userID)
	return nil
}

// --- Coupons ---

func (m *Memory) GetCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.coupons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, ErrNotFound
	}
	c := m.coupons[id]
	return &c, nil
}

func (m *Memory) SaveCoupon(ctx context.Context, coupon *models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.coupons[coupon.ID] = *coupon
	m.byCode[strings.ToUpper(coupon.Code)] = coupon.ID
	return nil
}

func (m *Memory) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coupons := make([]models.Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		coupons = append(coupons, c)
	}
	sort.Slice(coupons, func(i, j int) bool { return coupons[i].Code < coupons[j].Code })
	return coupons, nil
}

// --- Commandes ---

func (m *Memory) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return &o, nil
}

func (m *Memory) SaveOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	saved := *order
	saved.Items = items
	m.orders[order.ID] = saved
	return nil
}

func (m *Memory) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *Memory) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *Memory) CountNonCancelledOrders(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, o := range m.orders {
		if o.UserID == userID && o.Status != models.OrderStatusCancelled {
			count++
		}
	}
	return count, nil
}
