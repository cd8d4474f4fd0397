// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan los tests de los casos de uso; la semántica de cada
// operación replica la del adaptador de PostgreSQL, incluida la atomicidad
// del TxRunner (snapshot y restauración ante error).
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	adjustments []*entity.StockAdjustment
	sales       map[string]*entity.Sale
	saleItems   []*entity.SaleItem
	customers   map[string]*entity.Customer
	users       map[string]*entity.User
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		sales:     make(map[string]*entity.Sale),
		customers: make(map[string]*entity.Customer),
		users:     make(map[string]*entity.User),
	}
}

// snapshot copia profunda del estado, para emular rollback.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for _, a := range s.adjustments {
		cp := *a
		snap.adjustments = append(snap.adjustments, &cp)
	}
	for id, sa := range s.sales {
		cp := *sa
		snap.sales[id] = &cp
	}
	for _, it := range s.saleItems {
		cp := *it
		snap.saleItems = append(snap.saleItems, &cp)
	}
	for id, c := range s.customers {
		cp := *c
		snap.customers[id] = &cp
	}
	for id, u := range s.users {
		cp := *u
		snap.users[id] = &cp
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.products = snap.products
	s.adjustments = snap.adjustments
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.customers = snap.customers
	s.users = snap.users
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ store *Store }

// NewProductRepository construye el repositorio sobre el Store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Code == product.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *product
	cp.StockQuantity = stored.StockQuantity // el saldo solo cambia vía UpdateStock
	r.store.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(productID string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *ProductRepo) SetActive(productID string, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		if filter.OnlyActive && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func matchesSearch(p *entity.Product, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{p.Code, p.Name, p.Brand, p.Model} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

func paginate(list []*entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (r *ProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// StockAdjustmentRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo registro de auditoría en memoria (insert-only).
type StockAdjustmentRepo struct {
	store *Store

	// FailCreate fuerza error en Create; lo usan los tests de rollback.
	FailCreate error
}

// NewStockAdjustmentRepository construye el repositorio sobre el Store.
func NewStockAdjustmentRepository(store *Store) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{store: store}
}

func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *adjustment
	r.store.adjustments = append(r.store.adjustments, &cp)
	return nil
}

func (r *StockAdjustmentRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockAdjustment
	for i := len(r.store.adjustments) - 1; i >= 0; i-- {
		a := r.store.adjustments[i]
		if a.ProductID == productID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return slicePage(out, limit, offset), nil
}

func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockAdjustment
	for i := len(r.store.adjustments) - 1; i >= 0; i-- {
		cp := *r.store.adjustments[i]
		out = append(out, &cp)
	}
	return slicePage(out, limit, offset), nil
}

func slicePage[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// SaleRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo repositorio de ventas en memoria (insert-only).
type SaleRepo struct {
	store *Store

	// FailCreateItem fuerza error al insertar líneas; lo usan los tests de rollback.
	FailCreateItem error
}

// NewSaleRepository construye el repositorio sobre el Store.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sales {
		if s.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}

func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	if r.FailCreateItem != nil {
		return r.FailCreateItem
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.saleItems = append(r.store.saleItems, &cp)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SaleRepo) GetItemsBySale(saleID string) ([]*entity.SaleItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.SaleItem
	for _, it := range r.store.saleItems {
		if it.SaleID == saleID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) ListByPeriod(start, end time.Time, limit, offset int) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.CreatedAt.Before(start) || s.CreatedAt.After(end) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return slicePage(out, limit, offset), nil
}

func (r *SaleRepo) CountItemsByProduct(productID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, it := range r.store.saleItems {
		if it.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *SaleRepo) CountByCustomer(customerID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, s := range r.store.sales {
		if s.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// CustomerRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo repositorio de clientes en memoria.
type CustomerRepo struct {
	store *Store

	// FailAddPurchase fuerza error al acumular compras; lo usan los tests de rollback.
	FailAddPurchase error
}

// NewCustomerRepository construye el repositorio sobre el Store.
func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{store: store}
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.customers {
		if c.Phone == customer.Phone {
			return domain.ErrDuplicate
		}
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.customers[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.store.customers {
		if c.ID != customer.ID && c.Phone == customer.Phone {
			return domain.ErrDuplicate
		}
	}
	cp := *customer
	// los acumuladores solo cambian vía AddPurchase
	cp.TotalPurchases = stored.TotalPurchases
	cp.LoyaltyPoints = stored.LoyaltyPoints
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) AddPurchase(customerID string, amount decimal.Decimal, loyaltyPoints int) error {
	if r.FailAddPurchase != nil {
		return r.FailAddPurchase
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.LoyaltyPoints += loyaltyPoints
	return nil
}

func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.store.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return slicePage(out, limit, offset), nil
}

func (r *CustomerRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.customers, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// UserRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ store *Store }

// NewUserRepository construye el repositorio sobre el Store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
