package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository sobre la tabla carts (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByProduct devuelve la línea del producto en el carrito o nil.
func (r *CartRepo) GetByProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT id::text, cart_id, product_id::text, quantity, created_at, updated_at
		FROM carts WHERE cart_id = $1 AND product_id = $2`
	var it entity.CartItem
	err := r.q.QueryRow(ctx, query, cartID, productID).Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// ListDetails devuelve las líneas del carrito con nombre, precio y stock del producto.
func (r *CartRepo) ListDetails(ctx context.Context, cartID string) ([]*entity.CartItemDetail, error) {
	query := `
		SELECT c.id::text, c.cart_id, c.product_id::text, c.quantity, c.created_at, c.updated_at,
		       p.name, p.price, COALESCE(s.quantity, 0)
		FROM carts c
		JOIN products p ON p.id = c.product_id
		LEFT JOIN stocks s ON s.product_id = c.product_id
		WHERE c.cart_id = $1
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()
	list := []*entity.CartItemDetail{}
	for rows.Next() {
		var d entity.CartItemDetail
		if err := rows.Scan(&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductName, &d.Price, &d.StockQuantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ReservedByProduct suma las reservas de todos los carritos. Sin ids devuelve todos los productos reservados.
func (r *CartRepo) ReservedByProduct(ctx context.Context, productIDs ...string) (map[string]int, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(productIDs) == 0 {
		rows, err = r.q.Query(ctx, `SELECT product_id::text, SUM(quantity) FROM carts GROUP BY product_id`)
	} else {
		ids := validUUIDs(productIDs)
		if len(ids) == 0 {
			return map[string]int{}, nil
		}
		rows, err = r.q.Query(ctx, `
			SELECT product_id::text, SUM(quantity) FROM carts
			WHERE product_id = ANY($1::uuid[])
			GROUP BY product_id`, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("sum reservations: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out[id] = int(n)
	}
	return out, rows.Err()
}

// Create inserta una línea. El índice único (cart_id, product_id) impide duplicados.
func (r *CartRepo) Create(ctx context.Context, item *entity.CartItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO carts (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, item.ID, item.CartID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%w: el producto ya está en el carrito", domain.ErrInvalidInput)
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: no existe el producto %s", domain.ErrNotFound, item.ProductID)
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity reemplaza la cantidad de una línea existente.
func (r *CartRepo) UpdateQuantity(ctx context.Context, item *entity.CartItem) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE carts SET quantity = $3, updated_at = $4 WHERE cart_id = $1 AND product_id = $2`,
		item.CartID, item.ProductID, item.Quantity, item.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update cart item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrCartItemNotFound, item.ProductID)
	}
	return nil
}

// Remove elimina la línea si existe.
func (r *CartRepo) Remove(ctx context.Context, cartID, productID string) error {
	if !isUUID(productID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE cart_id = $1 AND product_id = $2`, cartID, productID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Clear elimina todas las líneas del carrito.
func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
