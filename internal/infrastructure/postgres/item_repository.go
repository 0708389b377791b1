package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `
	i.id, i.name, i.description, COALESCE(i.category_id::text, ''), COALESCE(c.name, ''),
	i.price, i.quantity, i.min_quantity, i.barcode, i.location, i.supplier, i.created_at, i.updated_at`

const itemFrom = ` FROM items i LEFT JOIN categories c ON c.id = i.category_id`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID, &i.CategoryName,
		&i.Price, &i.Quantity, &i.MinQuantity, &i.Barcode, &i.Location, &i.Supplier, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ItemRepo) queryItems(ctx context.Context, op, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, description, category_id, price, quantity, min_quantity, barcode, location, supplier, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.CategoryID, item.Price, item.Quantity, item.MinQuantity,
		item.Barcode, item.Location, item.Supplier, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return mapItemWriteError("insert item", err)
	}
	return nil
}

// GetByID obtiene un artículo con el nombre de su categoría.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `SELECT`+itemColumns+itemFrom+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT ... FOR UPDATE OF i).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `SELECT`+itemColumns+itemFrom+` WHERE i.id = $1 FOR UPDATE OF i`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return i, nil
}

// Update reemplaza los campos editables.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, category_id = NULLIF($4, '')::uuid, price = $5, quantity = $6,
			min_quantity = $7, barcode = $8, location = $9, supplier = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.CategoryID, item.Price, item.Quantity, item.MinQuantity,
		item.Barcode, item.Location, item.Supplier, item.UpdatedAt,
	)
	if err != nil {
		return mapItemWriteError("update item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// UpdateQuantity fija el stock (usado por el motor de operaciones dentro de la tx).
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteByCategory elimina los artículos de una categoría y devuelve cuántos.
func (r *ItemRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete items by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.queryItems(ctx, "list items", `SELECT`+itemColumns+itemFrom+` ORDER BY i.name`)
}

// Search filtra por texto, categoría, rango de precio y estado de stock.
func (r *ItemRepo) Search(ctx context.Context, f repository.ItemSearch) ([]*entity.Item, error) {
	var w whereBuilder
	if f.Query != "" {
		w.add(`(i.name ILIKE ? OR i.description ILIKE ? OR i.barcode ILIKE ?)`, likePattern(f.Query))
	}
	if f.CategoryID != "" {
		w.add(`i.category_id::text = ?`, f.CategoryID)
	}
	if f.MinPrice != nil {
		w.add(`i.price >= ?`, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add(`i.price <= ?`, *f.MaxPrice)
	}
	if f.InStock {
		w.conds = append(w.conds, `i.quantity > 0`)
	}
	if f.LowStock {
		w.conds = append(w.conds, `i.quantity <= i.min_quantity`)
	}
	return r.queryItems(ctx, "search items", `SELECT`+itemColumns+itemFrom+w.sql()+` ORDER BY i.name`, w.args...)
}

// ListLowStock artículos con quantity <= min_quantity, los más críticos primero.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	return r.queryItems(ctx, "list low stock",
		`SELECT`+itemColumns+itemFrom+` WHERE i.quantity <= i.min_quantity ORDER BY (i.quantity - i.min_quantity), i.name`)
}

func mapItemWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return domain.ErrCategoryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
