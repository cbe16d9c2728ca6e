// Package memory implementa los puertos de persistencia en memoria del proceso.
// Las transacciones toman el lock exclusivo del store durante toda su duración y
// restauran una copia del estado si la función devuelve error.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.StockRepository   = (*StockRepo)(nil)
	_ repository.CartRepository    = (*CartRepo)(nil)
	_ cart.TxRunner                = (*Store)(nil)
	_ payment.TxRunner             = (*Store)(nil)
)

type cartKey struct {
	cartID    string
	productID string
}

type state struct {
	products map[string]entity.Product // StockQuantity no se usa aquí; se toma de stocks
	stocks   map[string]entity.Stock   // por product_id
	carts    map[cartKey]entity.CartItem
}

func (s *state) clone() *state {
	c := &state{
		products: make(map[string]entity.Product, len(s.products)),
		stocks:   make(map[string]entity.Stock, len(s.stocks)),
		carts:    make(map[cartKey]entity.CartItem, len(s.carts)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = v
	}
	return c
}

type db struct {
	mu sync.RWMutex
	st *state
}

// Store agrupa los repositorios en memoria y actúa como TxRunner.
type Store struct {
	db *db
}

// New crea un store vacío.
func New() *Store {
	return &Store{db: &db{st: &state{
		products: map[string]entity.Product{},
		stocks:   map[string]entity.Stock{},
		carts:    map[cartKey]entity.CartItem{},
	}}}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{db: s.db} }

// Stocks devuelve el repositorio de stock fuera de transacción.
func (s *Store) Stocks() *StockRepo { return &StockRepo{db: s.db} }

// Carts devuelve el repositorio del carrito fuera de transacción.
func (s *Store) Carts() *CartRepo { return &CartRepo{db: s.db} }

// Ping siempre responde ok (health check).
func (s *Store) Ping(context.Context) error { return nil }

// AddProduct inserta un producto con su fila de stock.
func (s *Store) AddProduct(_ context.Context, name string, price decimal.Decimal, stock int) (*entity.Product, error) {
	if strings.TrimSpace(name) == "" || len(name) > entity.ProductNameMaxLen || price.IsNegative() || stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now()
	p := entity.Product{ID: uuid.New().String(), Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
	s.db.st.products[p.ID] = p
	s.db.st.stocks[p.ID] = entity.Stock{ID: uuid.New().String(), ProductID: p.ID, Quantity: stock, UpdatedAt: now}
	p.StockQuantity = stock
	return &p, nil
}

// Count devuelve cuántos productos hay en el catálogo.
func (s *Store) Count(context.Context) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return len(s.db.st.products), nil
}

// AddProductWithoutStock inserta un producto sin fila de stock.
func (s *Store) AddProductWithoutStock(name string, price decimal.Decimal) *entity.Product {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now()
	p := entity.Product{ID: uuid.New().String(), Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
	s.db.st.products[p.ID] = p
	return &p
}

// StockOf devuelve la cantidad física de un producto (0 si no tiene stock).
func (s *Store) StockOf(productID string) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.st.stocks[productID].Quantity
}

// CartLines devuelve cuántas líneas tiene un carrito.
func (s *Store) CartLines(cartID string) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for k := range s.db.st.carts {
		if k.cartID == cartID {
			n++
		}
	}
	return n
}

// RunCart ejecuta fn con repositorios atados a una transacción exclusiva.
func (s *Store) RunCart(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.run(ctx, func(tx *db) error {
		return fn(&CartRepo{db: tx, inTx: true}, &StockRepo{db: tx, inTx: true}, &ProductRepo{db: tx, inTx: true})
	})
}

// RunPayment ejecuta fn con repositorios atados a una transacción exclusiva.
func (s *Store) RunPayment(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.run(ctx, func(tx *db) error {
		return fn(&StockRepo{db: tx, inTx: true}, &ProductRepo{db: tx, inTx: true})
	})
}

func (s *Store) run(ctx context.Context, fn func(tx *db) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	snapshot := s.db.st.clone()
	if err := fn(s.db); err != nil {
		s.db.st = snapshot // rollback
		return err
	}
	return nil
}

func (d *db) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	d.mu.RLock()
	return d.mu.RUnlock
}

func (d *db) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	d.mu.Lock()
	return d.mu.Unlock
}

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	db   *db
	inTx bool
}

func (r *ProductRepo) withStock(p entity.Product) *entity.Product {
	p.StockQuantity = r.db.st.stocks[p.ID].Quantity
	return &p
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.db.rlock(r.inTx)()
	p, ok := r.db.st.products[id]
	if !ok {
		return nil, nil
	}
	return r.withStock(p), nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.db.rlock(r.inTx)()
	return r.sorted(), nil
}

// ListPaged devuelve la ventana pedida y el total de productos.
func (r *ProductRepo) ListPaged(_ context.Context, limit, offset int) ([]*entity.Product, int, error) {
	defer r.db.rlock(r.inTx)()
	all := r.sorted()
	total := len(all)
	if offset < 0 || limit < 0 {
		return nil, 0, domain.ErrInvalidInput
	}
	if offset >= total {
		return []*entity.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *ProductRepo) sorted() []*entity.Product {
	list := make([]*entity.Product, 0, len(r.db.st.products))
	for _, p := range r.db.st.products {
		list = append(list, r.withStock(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct {
	db   *db
	inTx bool
}

// GetForUpdate devuelve una copia del stock (nil si no hay fila). Dentro de RunCart/RunPayment
// el store ya está bloqueado de forma exclusiva.
func (r *StockRepo) GetForUpdate(_ context.Context, productID string) (*entity.Stock, error) {
	defer r.db.rlock(r.inTx)()
	s, ok := r.db.st.stocks[productID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Update persiste la cantidad. Rechaza cantidades negativas (equivale al CHECK de la tabla).
func (r *StockRepo) Update(_ context.Context, stock *entity.Stock) error {
	defer r.db.lock(r.inTx)()
	if stock.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	if _, ok := r.db.st.stocks[stock.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.db.st.stocks[stock.ProductID] = *stock
	return nil
}

// CartRepo implementación en memoria de CartRepository.
type CartRepo struct {
	db   *db
	inTx bool
}

// GetByProduct devuelve la línea del producto o nil.
func (r *CartRepo) GetByProduct(_ context.Context, cartID, productID string) (*entity.CartItem, error) {
	defer r.db.rlock(r.inTx)()
	it, ok := r.db.st.carts[cartKey{cartID, productID}]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// ListDetails devuelve las líneas del carrito con datos del producto, ordenadas por nombre.
func (r *CartRepo) ListDetails(_ context.Context, cartID string) ([]*entity.CartItemDetail, error) {
	defer r.db.rlock(r.inTx)()
	var list []*entity.CartItemDetail
	for k, it := range r.db.st.carts {
		if k.cartID != cartID {
			continue
		}
		p := r.db.st.products[it.ProductID]
		list = append(list, &entity.CartItemDetail{
			CartItem:      it,
			ProductName:   p.Name,
			Price:         p.Price,
			StockQuantity: r.db.st.stocks[it.ProductID].Quantity,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductName != list[j].ProductName {
			return list[i].ProductName < list[j].ProductName
		}
		return list[i].ProductID < list[j].ProductID
	})
	return list, nil
}

// ReservedByProduct suma reservas de todos los carritos por producto.
func (r *CartRepo) ReservedByProduct(_ context.Context, productIDs ...string) (map[string]int, error) {
	defer r.db.rlock(r.inTx)()
	items := make([]*entity.CartItem, 0, len(r.db.st.carts))
	for _, it := range r.db.st.carts {
		it := it
		items = append(items, &it)
	}
	out := map[string]int{}
	if len(productIDs) == 0 {
		for _, it := range items {
			out[it.ProductID] += it.Quantity
		}
		return out, nil
	}
	for _, id := range productIDs {
		if n := inventory.ReservedFor(items, id); n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

// Create inserta una línea. Rechaza duplicados (equivale al índice único cart_id+product_id).
func (r *CartRepo) Create(_ context.Context, item *entity.CartItem) error {
	defer r.db.lock(r.inTx)()
	if item.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := r.db.st.products[item.ProductID]; !ok {
		return domain.ErrNotFound
	}
	k := cartKey{item.CartID, item.ProductID}
	if _, ok := r.db.st.carts[k]; ok {
		return domain.ErrInvalidInput
	}
	r.db.st.carts[k] = *item
	return nil
}

// UpdateQuantity reemplaza la cantidad de una línea existente.
func (r *CartRepo) UpdateQuantity(_ context.Context, item *entity.CartItem) error {
	defer r.db.lock(r.inTx)()
	k := cartKey{item.CartID, item.ProductID}
	cur, ok := r.db.st.carts[k]
	if !ok {
		return domain.ErrCartItemNotFound
	}
	if item.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	cur.Quantity = item.Quantity
	cur.UpdatedAt = item.UpdatedAt
	r.db.st.carts[k] = cur
	return nil
}

// Remove elimina la línea si existe.
func (r *CartRepo) Remove(_ context.Context, cartID, productID string) error {
	defer r.db.lock(r.inTx)()
	delete(r.db.st.carts, cartKey{cartID, productID})
	return nil
}

// Clear elimina todas las líneas del carrito.
func (r *CartRepo) Clear(_ context.Context, cartID string) error {
	defer r.db.lock(r.inTx)()
	for k := range r.db.st.carts {
		if k.cartID == cartID {
			delete(r.db.st.carts, k)
		}
	}
	return nil
}
