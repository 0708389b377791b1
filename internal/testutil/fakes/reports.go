package fakes

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReportRepo implementa repository.ReportRepository recorriendo el store.
type ReportRepo struct{ s *Store }

// NewReportRepo construye el repo.
func NewReportRepo(s *Store) *ReportRepo { return &ReportRepo{s: s} }

var _ repository.ReportRepository = (*ReportRepo)(nil)

func (r *ReportRepo) matches(op entity.Operation, f repository.ReportFilter) bool {
	it := r.s.Items[op.ItemID]
	u := r.s.Users[op.EmployeeID]
	if f.DateFrom != nil && op.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !op.Date.Before(*f.DateTo) {
		return false
	}
	if f.OpType != "" && op.Type != f.OpType {
		return false
	}
	if f.CategoryID != "" && it.CategoryID != f.CategoryID {
		return false
	}
	if q := strings.ToLower(f.ItemQuery); q != "" &&
		!strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.Barcode), q) {
		return false
	}
	if q := strings.ToLower(f.EmployeeQuery); q != "" &&
		!strings.Contains(strings.ToLower(u.Username), q) && !strings.Contains(strings.ToLower(u.Name), q) {
		return false
	}
	return true
}

func (r *ReportRepo) ops(f repository.ReportFilter) []entity.Operation {
	out := make([]entity.Operation, 0)
	for _, op := range r.s.Operations {
		if r.matches(op, f) {
			out = append(out, op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *ReportRepo) Summary(ctx context.Context, f repository.ReportFilter) (*repository.ReportSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := &repository.ReportSummary{}
	items := map[string]bool{}
	for _, op := range r.ops(f) {
		sum.TotalOperations++
		items[op.ItemID] = true
		if op.Type == entity.OperationIncoming {
			sum.TotalIncoming += op.Quantity
		} else {
			sum.TotalOutgoing += op.Quantity
		}
	}
	sum.UniqueItems = int64(len(items))
	return sum, nil
}

func (r *ReportRepo) Operations(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.ReportOperationRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.ReportOperationRow, 0)
	for _, op := range r.ops(f) {
		it := r.s.Items[op.ItemID]
		out = append(out, repository.ReportOperationRow{
			ID:           op.ID,
			Date:         op.Date,
			Type:         op.Type,
			ItemName:     it.Name,
			CategoryName: r.s.Categories[it.CategoryID].Name,
			Quantity:     op.Quantity,
			EmployeeName: r.s.Users[op.EmployeeID].Name,
			Supplier:     op.Supplier,
			Recipient:    op.Recipient,
			Notes:        op.Notes,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ReportRepo) ByCategory(ctx context.Context, f repository.ReportFilter) ([]repository.CategoryReportRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.CategoryReportRow, 0)
	for id, c := range r.s.Categories {
		if f.CategoryID != "" && id != f.CategoryID {
			continue
		}
		row := repository.CategoryReportRow{CategoryName: c.Name}
		for _, it := range r.s.Items {
			if it.CategoryID == id {
				row.ItemCount++
				row.TotalQuantity += it.Quantity
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

func (r *ReportRepo) TopItems(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.TopItemRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc := map[string]*repository.TopItemRow{}
	for _, op := range r.ops(f) {
		row, ok := acc[op.ItemID]
		if !ok {
			row = &repository.TopItemRow{ItemID: op.ItemID, ItemName: r.s.Items[op.ItemID].Name}
			acc[op.ItemID] = row
		}
		if op.Type == entity.OperationIncoming {
			row.TotalIncoming += op.Quantity
		} else {
			row.TotalOutgoing += op.Quantity
		}
		row.TotalVolume += op.Quantity
	}
	out := make([]repository.TopItemRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalVolume > out[j].TotalVolume })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) Stats(ctx context.Context, dayStart time.Time) (*repository.InventoryStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &repository.InventoryStats{TotalValue: decimal.Zero}
	for _, it := range r.s.Items {
		st.TotalItems += it.Quantity
		st.TotalValue = st.TotalValue.Add(it.Value())
		if it.Quantity <= it.MinQuantity {
			st.LowStockItems++
		}
	}
	dayEnd := dayStart.Add(24 * time.Hour)
	for _, op := range r.s.Operations {
		st.TotalOperations++
		if !op.Date.Before(dayStart) && op.Date.Before(dayEnd) {
			st.TodayOperations++
		}
	}
	st.TotalCategories = int64(len(r.s.Categories))
	return st, nil
}
