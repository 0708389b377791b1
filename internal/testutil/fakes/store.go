// Package fakes repositorios en memoria para los tests de casos de uso y handlers.
package fakes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Store estado compartido por todos los repos en memoria.
type Store struct {
	mu          sync.Mutex
	Items       map[string]entity.Item
	Categories  map[string]entity.Category
	Operations  map[string]entity.Operation
	Users       map[string]entity.User
	Roles       map[string]entity.Role // por nombre
	Permissions []entity.Permission
	UserRoles   map[string][]string

	// FailOn hace fallar la operación nombrada ("item.update_quantity", "op.create", ...).
	FailOn map[string]error
}

// NewStore crea un store con los cuatro roles del sistema.
func NewStore() *Store {
	s := &Store{
		Items:      map[string]entity.Item{},
		Categories: map[string]entity.Category{},
		Operations: map[string]entity.Operation{},
		Users:      map[string]entity.User{},
		Roles:      map[string]entity.Role{},
		UserRoles:  map[string][]string{},
		FailOn:     map[string]error{},
	}
	perms := map[string][]string{
		entity.RoleAdmin:    {entity.PermItemsRead, entity.PermItemsWrite, entity.PermCategoriesWrite, entity.PermOperationsCreate, entity.PermReportsView, entity.PermUsersManage},
		entity.RoleManager:  {entity.PermItemsRead, entity.PermItemsWrite, entity.PermCategoriesWrite, entity.PermOperationsCreate, entity.PermReportsView},
		entity.RoleOperator: {entity.PermItemsRead, entity.PermOperationsCreate},
		entity.RoleViewer:   {entity.PermItemsRead, entity.PermReportsView},
	}
	for _, name := range entity.KnownRoles {
		s.Roles[name] = entity.Role{ID: uuid.NewString(), Name: name, Permissions: perms[name]}
	}
	for _, p := range perms[entity.RoleAdmin] {
		module := strings.SplitN(p, ".", 2)[0]
		s.Permissions = append(s.Permissions, entity.Permission{ID: uuid.NewString(), Name: p, Module: module})
	}
	return s
}

func (s *Store) fail(op string) error {
	return s.FailOn[op]
}

// snapshot copia el estado para poder restaurarlo en un rollback.
func (s *Store) snapshot() *Store {
	cp := &Store{
		Items:      make(map[string]entity.Item, len(s.Items)),
		Categories: make(map[string]entity.Category, len(s.Categories)),
		Operations: make(map[string]entity.Operation, len(s.Operations)),
		Users:      make(map[string]entity.User, len(s.Users)),
		UserRoles:  make(map[string][]string, len(s.UserRoles)),
	}
	for k, v := range s.Items {
		cp.Items[k] = v
	}
	for k, v := range s.Categories {
		cp.Categories[k] = v
	}
	for k, v := range s.Operations {
		cp.Operations[k] = v
	}
	for k, v := range s.Users {
		cp.Users[k] = v
	}
	for k, v := range s.UserRoles {
		cp.UserRoles[k] = append([]string(nil), v...)
	}
	return cp
}

func (s *Store) restore(cp *Store) {
	s.Items = cp.Items
	s.Categories = cp.Categories
	s.Operations = cp.Operations
	s.Users = cp.Users
	s.UserRoles = cp.UserRoles
}

// AddCategory inserta una categoría de prueba y devuelve su ID.
func (s *Store) AddCategory(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.Categories[id] = entity.Category{ID: id, Name: name, Icon: entity.DefaultCategoryIcon, Color: entity.DefaultCategoryColor, Active: true}
	return id
}

// AddItem inserta un artículo de prueba y devuelve su ID.
func (s *Store) AddItem(it entity.Item) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	s.Items[it.ID] = it
	return it.ID
}

// AddUser inserta un usuario con sus roles y devuelve su ID.
func (s *Store) AddUser(u entity.User, roles ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.Users[u.ID] = u
	s.UserRoles[u.ID] = roles
	return u.ID
}

// Item lee un artículo sin pasar por los repos.
func (s *Store) Item(id string) (entity.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.Items[id]
	return it, ok
}

// OperationCount número de operaciones guardadas.
func (s *Store) OperationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Operations)
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

// TxRunner simula transacciones: si fn devuelve error se restaura el estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) inTx(fn func() error) error {
	r.s.mu.Lock()
	cp := r.s.snapshot()
	r.s.mu.Unlock()
	if err := fn(); err != nil {
		r.s.mu.Lock()
		r.s.restore(cp)
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.OperationRepository) error) error {
	return r.inTx(func() error { return fn(&ItemRepo{s: r.s}, &OperationRepo{s: r.s}) })
}

// RunCatalog implementa usecase.CatalogTxRunner.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(repository.CategoryRepository, repository.ItemRepository) error) error {
	return r.inTx(func() error { return fn(&CategoryRepo{s: r.s}, &ItemRepo{s: r.s}) })
}

// RunUsers implementa usecase.UserTxRunner.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(repository.UserRepository, repository.RoleRepository) error) error {
	return r.inTx(func() error { return fn(&UserRepo{s: r.s}, &RoleRepo{s: r.s}) })
}

// ─── Items ───────────────────────────────────────────────────────────────────

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct{ s *Store }

// NewItemRepo construye el repo.
func NewItemRepo(s *Store) *ItemRepo { return &ItemRepo{s: s} }

var _ repository.ItemRepository = (*ItemRepo)(nil)

func (r *ItemRepo) withCategory(it entity.Item) *entity.Item {
	if c, ok := r.s.Categories[it.CategoryID]; ok {
		it.CategoryName = c.Name
	}
	return &it
}

func (r *ItemRepo) checkWrite(it *entity.Item) error {
	if it.CategoryID != "" {
		if _, ok := r.s.Categories[it.CategoryID]; !ok {
			return domain.ErrCategoryNotFound
		}
	}
	if it.Barcode != "" {
		for id, other := range r.s.Items {
			if id != it.ID && other.Barcode == it.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	return nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkWrite(it); err != nil {
		return err
	}
	r.s.Items[it.ID] = *it
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.Items[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(it), nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Items[it.ID]; !ok {
		return domain.ErrItemNotFound
	}
	if err := r.checkWrite(it); err != nil {
		return err
	}
	r.s.Items[it.ID] = *it
	return nil
}

func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("item.update_quantity"); err != nil {
		return err
	}
	it, ok := r.s.Items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Quantity = quantity
	r.s.Items[id] = it
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.s.Items, id)
	for opID, op := range r.s.Operations {
		if op.ItemID == id {
			delete(r.s.Operations, opID)
		}
	}
	return nil
}

func (r *ItemRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("item.delete_by_category"); err != nil {
		return 0, err
	}
	var n int64
	for id, it := range r.s.Items {
		if it.CategoryID == categoryID {
			delete(r.s.Items, id)
			n++
		}
	}
	return n, nil
}

func (r *ItemRepo) filter(keep func(entity.Item) bool) []*entity.Item {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Item, 0)
	for _, it := range r.s.Items {
		if keep(it) {
			out = append(out, r.withCategory(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.filter(func(entity.Item) bool { return true }), nil
}

func (r *ItemRepo) Search(ctx context.Context, f repository.ItemSearch) ([]*entity.Item, error) {
	q := strings.ToLower(f.Query)
	return r.filter(func(it entity.Item) bool {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) &&
			!strings.Contains(strings.ToLower(it.Barcode), q) {
			return false
		}
		if f.CategoryID != "" && it.CategoryID != f.CategoryID {
			return false
		}
		if f.MinPrice != nil && it.Price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && it.Price.GreaterThan(*f.MaxPrice) {
			return false
		}
		if f.InStock && it.Quantity <= 0 {
			return false
		}
		if f.LowStock && it.Quantity > it.MinQuantity {
			return false
		}
		return true
	}), nil
}

func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	return r.filter(func(it entity.Item) bool { return it.Quantity <= it.MinQuantity }), nil
}

// ─── Categories ──────────────────────────────────────────────────────────────

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

// NewCategoryRepo construye el repo.
func NewCategoryRepo(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) count(id string) int64 {
	var n int64
	for _, it := range r.s.Items {
		if it.CategoryID == id {
			n++
		}
	}
	return n
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.Categories {
		if strings.EqualFold(other.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.Categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.Categories[id]
	if !ok {
		return nil, nil
	}
	c.ItemCount = r.count(id)
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.s.Categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("category.delete"); err != nil {
		return err
	}
	if _, ok := r.s.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	if r.count(id) > 0 {
		return errors.New("fakes: categoría con artículos (restrict)")
	}
	delete(r.s.Categories, id)
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.Categories))
	for id, c := range r.s.Categories {
		c.ItemCount = r.count(id)
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Operations ──────────────────────────────────────────────────────────────

// OperationRepo implementa repository.OperationRepository.
type OperationRepo struct{ s *Store }

// NewOperationRepo construye el repo.
func NewOperationRepo(s *Store) *OperationRepo { return &OperationRepo{s: s} }

var _ repository.OperationRepository = (*OperationRepo)(nil)

func (r *OperationRepo) resolve(op entity.Operation) *entity.Operation {
	if it, ok := r.s.Items[op.ItemID]; ok {
		op.ItemName = it.Name
	}
	if u, ok := r.s.Users[op.EmployeeID]; ok {
		op.EmployeeName = u.Name
	}
	return &op
}

func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("op.create"); err != nil {
		return err
	}
	if _, ok := r.s.Items[op.ItemID]; !ok {
		return domain.ErrItemNotFound
	}
	r.s.Operations[op.ID] = *op
	return nil
}

func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	op, ok := r.s.Operations[id]
	if !ok {
		return nil, nil
	}
	return r.resolve(op), nil
}

func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Operation, 0)
	for _, op := range r.s.Operations {
		if f.Type != "" && op.Type != f.Type {
			continue
		}
		if f.ItemID != "" && op.ItemID != f.ItemID {
			continue
		}
		if f.EmployeeID != "" && op.EmployeeID != f.EmployeeID {
			continue
		}
		if f.StartDate != nil && op.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && !op.Date.Before(*f.EndDate) {
			continue
		}
		out = append(out, r.resolve(op))
	}
	less := func(i, j int) bool { return out[i].Date.Before(out[j].Date) }
	if f.SortBy == "quantity" {
		less = func(i, j int) bool { return out[i].Quantity < out[j].Quantity }
	}
	if f.SortOrder == "asc" {
		sort.SliceStable(out, less)
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(j, i) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// AddOperation inserta una operación con fecha dada (sin validar el artículo).
func (s *Store) AddOperation(op entity.Operation) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.Date.IsZero() {
		op.Date = time.Now()
	}
	if op.Status == "" {
		op.Status = entity.OperationStatusCompleted
	}
	s.Operations[op.ID] = op
	return op.ID
}
