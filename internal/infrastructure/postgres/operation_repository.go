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

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationSelect = `
	SELECT o.id, o.type, o.item_id, COALESCE(i.name, ''), COALESCE(o.employee_id::text, ''), COALESCE(u.name, ''),
		o.quantity, o.date, o.status, o.notes, o.supplier, o.recipient, o.created_at
	FROM operations o
	LEFT JOIN items i ON i.id = o.item_id
	LEFT JOIN users u ON u.id = o.employee_id`

// OperationRepo implementación de OperationRepository (usable con pool o tx).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var o entity.Operation
	err := row.Scan(&o.ID, &o.Type, &o.ItemID, &o.ItemName, &o.EmployeeID, &o.EmployeeName,
		&o.Quantity, &o.Date, &o.Status, &o.Notes, &o.Supplier, &o.Recipient, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste la operación. Dentro de la tx del motor de stock.
func (r *OperationRepo) Create(ctx context.Context, o *entity.Operation) error {
	query := `
		INSERT INTO operations (id, type, item_id, employee_id, quantity, date, status, notes, supplier, recipient, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Type, o.ItemID, o.EmployeeID, o.Quantity, o.Date, o.Status, o.Notes, o.Supplier, o.Recipient, o.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID devuelve la operación con nombres de artículo y empleado.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	o, err := scanOperation(r.q.QueryRow(ctx, operationSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return o, nil
}

// List filtra por tipo, rango de fechas, artículo y empleado.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var w whereBuilder
	if f.Type != "" {
		w.add(`o.type = ?`, f.Type)
	}
	if f.StartDate != nil {
		w.add(`o.date >= ?`, *f.StartDate)
	}
	if f.EndDate != nil {
		w.add(`o.date < ?`, *f.EndDate)
	}
	if f.ItemID != "" {
		w.add(`o.item_id::text = ?`, f.ItemID)
	}
	if f.EmployeeID != "" {
		w.add(`o.employee_id::text = ?`, f.EmployeeID)
	}
	query := operationSelect + w.sql() + orderOperations(f.SortBy, f.SortOrder)
	if f.Limit > 0 {
		query += ` LIMIT ` + w.arg(f.Limit)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Operation, 0)
	for rows.Next() {
		o, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// orderOperations solo acepta columnas conocidas; por defecto fecha descendente.
func orderOperations(sortBy, sortOrder string) string {
	col := "o.date"
	if sortBy == "quantity" {
		col = "o.quantity"
	}
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}
	return " ORDER BY " + col + " " + dir + ", o.created_at " + dir
}
