package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

const reportFrom = `
	FROM operations o
	JOIN items i ON i.id = o.item_id
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN users u ON u.id = o.employee_id`

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func reportWhere(f repository.ReportFilter) whereBuilder {
	var w whereBuilder
	if f.DateFrom != nil {
		w.add(`o.date >= ?`, *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add(`o.date < ?`, *f.DateTo)
	}
	if f.OpType != "" {
		w.add(`o.type = ?`, f.OpType)
	}
	if f.CategoryID != "" {
		w.add(`i.category_id::text = ?`, f.CategoryID)
	}
	if f.ItemQuery != "" {
		w.add(`(i.name ILIKE ? OR i.barcode ILIKE ?)`, likePattern(f.ItemQuery))
	}
	if f.EmployeeQuery != "" {
		w.add(`(u.username ILIKE ? OR u.name ILIKE ?)`, likePattern(f.EmployeeQuery))
	}
	return w
}

// Summary totales de entradas, salidas, operaciones y artículos distintos.
func (r *ReportRepo) Summary(ctx context.Context, f repository.ReportFilter) (*repository.ReportSummary, error) {
	w := reportWhere(f)
	query := `
		SELECT
			COALESCE(SUM(o.quantity) FILTER (WHERE o.type = 'incoming'), 0),
			COALESCE(SUM(o.quantity) FILTER (WHERE o.type = 'outgoing'), 0),
			COUNT(*),
			COUNT(DISTINCT o.item_id)` + reportFrom + w.sql()
	var s repository.ReportSummary
	err := r.q.QueryRow(ctx, query, w.args...).Scan(&s.TotalIncoming, &s.TotalOutgoing, &s.TotalOperations, &s.UniqueItems)
	if err != nil {
		return nil, fmt.Errorf("report summary: %w", err)
	}
	return &s, nil
}

// Operations filas detalladas, más recientes primero.
func (r *ReportRepo) Operations(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.ReportOperationRow, error) {
	w := reportWhere(f)
	query := `
		SELECT o.id, o.date, o.type, i.name, COALESCE(c.name, ''), o.quantity, COALESCE(u.name, ''),
			o.supplier, o.recipient, o.notes` + reportFrom + w.sql() + ` ORDER BY o.date DESC`
	if limit > 0 {
		query += ` LIMIT ` + w.arg(limit)
	}
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report operations: %w", err)
	}
	defer rows.Close()
	list := make([]repository.ReportOperationRow, 0)
	for rows.Next() {
		var row repository.ReportOperationRow
		if err := rows.Scan(&row.ID, &row.Date, &row.Type, &row.ItemName, &row.CategoryName, &row.Quantity,
			&row.EmployeeName, &row.Supplier, &row.Recipient, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan report operation: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ByCategory cantidad de artículos y stock total por categoría. Solo aplica el filtro de categoría.
func (r *ReportRepo) ByCategory(ctx context.Context, f repository.ReportFilter) ([]repository.CategoryReportRow, error) {
	var w whereBuilder
	if f.CategoryID != "" {
		w.add(`c.id::text = ?`, f.CategoryID)
	}
	query := `
		SELECT c.name, COUNT(i.id), COALESCE(SUM(i.quantity), 0)
		FROM categories c
		LEFT JOIN items i ON i.category_id = c.id` + w.sql() + `
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report by category: %w", err)
	}
	defer rows.Close()
	list := make([]repository.CategoryReportRow, 0)
	for rows.Next() {
		var row repository.CategoryReportRow
		if err := rows.Scan(&row.CategoryName, &row.ItemCount, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan category report: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopItems artículos con mayor volumen movido (entradas + salidas).
func (r *ReportRepo) TopItems(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.TopItemRow, error) {
	w := reportWhere(f)
	query := `
		SELECT i.id, i.name,
			COALESCE(SUM(o.quantity) FILTER (WHERE o.type = 'incoming'), 0) AS incoming,
			COALESCE(SUM(o.quantity) FILTER (WHERE o.type = 'outgoing'), 0) AS outgoing,
			COALESCE(SUM(o.quantity), 0) AS volume` + reportFrom + w.sql() + `
		GROUP BY i.id, i.name
		ORDER BY volume DESC, i.name`
	if limit > 0 {
		query += ` LIMIT ` + w.arg(limit)
	}
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report top items: %w", err)
	}
	defer rows.Close()
	list := make([]repository.TopItemRow, 0)
	for rows.Next() {
		var row repository.TopItemRow
		if err := rows.Scan(&row.ItemID, &row.ItemName, &row.TotalIncoming, &row.TotalOutgoing, &row.TotalVolume); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Stats indicadores del tablero en una sola consulta.
func (r *ReportRepo) Stats(ctx context.Context, dayStart time.Time) (*repository.InventoryStats, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(quantity), 0) FROM items),
			(SELECT COALESCE(SUM(price * quantity), 0) FROM items),
			(SELECT COUNT(*) FROM items WHERE quantity <= min_quantity),
			(SELECT COUNT(*) FROM operations WHERE date >= $1 AND date < $1 + interval '1 day'),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM operations)`
	var s repository.InventoryStats
	err := r.q.QueryRow(ctx, query, dayStart).Scan(
		&s.TotalItems, &s.TotalValue, &s.LowStockItems, &s.TodayOperations, &s.TotalCategories, &s.TotalOperations,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	return &s, nil
}
