package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Customers and suppliers share one column layout but live in separate tables.
const contactColumns = `name, org_number, email, phone, address, postal_code, city, created_at, last_updated_at`

func contactDest(c *domain.Contact, a *domain.AuditFields) []any {
	return []any{&c.Name, &c.OrgNumber, &c.Email, &c.Phone, &c.Address, &c.PostalCode, &c.City, &a.CreatedAt, &a.LastUpdatedAt}
}

func contactArgs(c domain.Contact) []any {
	return []any{c.Name, c.OrgNumber, c.Email, c.Phone, c.Address, c.PostalCode, c.City}
}

// --- Customers ---

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	dest := append([]any{&c.CustomerID, &c.UserID}, contactDest(&c.Contact, &c.AuditFields)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, user_id, ` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	args := append([]any{customer.CustomerID, customer.UserID}, contactArgs(customer.Contact)...)
	args = append(args, customer.CreatedAt, customer.LastUpdatedAt)
	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(err, "save customer")
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	query := `SELECT customer_id, user_id, ` + contactColumns + ` FROM customers WHERE customer_id = $1 AND user_id = $2;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find customer %s", customerID))
	}
	return customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, userID string, limit, offset int) ([]domain.Customer, error) {
	page, args := pageClause([]any{userID}, limit, offset)
	query := `SELECT customer_id, user_id, ` + contactColumns + ` FROM customers WHERE user_id = $1 ORDER BY name, created_at` + page
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list customers")
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers SET
			name = $3, org_number = $4, email = $5, phone = $6, address = $7, postal_code = $8, city = $9,
			last_updated_at = $10
		WHERE customer_id = $1 AND user_id = $2;
	`
	args := append([]any{customer.CustomerID, customer.UserID}, contactArgs(customer.Contact)...)
	args = append(args, customer.LastUpdatedAt)
	tag, err := r.Pool.Exec(ctx, query, args...)
	return requireAffected(tag, err, "update customer")
}

// DeleteCustomer fails with ErrConflict while invoices still reference the customer.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1 AND user_id = $2;`, customerID, userID)
	return requireAffected(tag, err, "delete customer")
}

// --- Suppliers ---

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(db *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func scanSupplier(row rowScanner) (*domain.Supplier, error) {
	var s domain.Supplier
	dest := append([]any{&s.SupplierID, &s.UserID}, contactDest(&s.Contact, &s.AuditFields)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		INSERT INTO suppliers (supplier_id, user_id, ` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	args := append([]any{supplier.SupplierID, supplier.UserID}, contactArgs(supplier.Contact)...)
	args = append(args, supplier.CreatedAt, supplier.LastUpdatedAt)
	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(err, "save supplier")
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, userID, supplierID string) (*domain.Supplier, error) {
	query := `SELECT supplier_id, user_id, ` + contactColumns + ` FROM suppliers WHERE supplier_id = $1 AND user_id = $2;`
	supplier, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find supplier %s", supplierID))
	}
	return supplier, nil
}

// FindSupplierByNameContains returns the oldest supplier whose name contains name, case-insensitively.
func (r *PgxSupplierRepository) FindSupplierByNameContains(ctx context.Context, userID, name string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, user_id, ` + contactColumns + `
		FROM suppliers
		WHERE user_id = $1 AND name ILIKE $2
		ORDER BY created_at
		LIMIT 1;
	`
	supplier, err := scanSupplier(r.Pool.QueryRow(ctx, query, userID, containsPattern(name)))
	if err != nil {
		return nil, mapPgError(err, "find supplier by name")
	}
	return supplier, nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, userID string, limit, offset int) ([]domain.Supplier, error) {
	page, args := pageClause([]any{userID}, limit, offset)
	query := `SELECT supplier_id, user_id, ` + contactColumns + ` FROM suppliers WHERE user_id = $1 ORDER BY name, created_at` + page
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list suppliers")
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		UPDATE suppliers SET
			name = $3, org_number = $4, email = $5, phone = $6, address = $7, postal_code = $8, city = $9,
			last_updated_at = $10
		WHERE supplier_id = $1 AND user_id = $2;
	`
	args := append([]any{supplier.SupplierID, supplier.UserID}, contactArgs(supplier.Contact)...)
	args = append(args, supplier.LastUpdatedAt)
	tag, err := r.Pool.Exec(ctx, query, args...)
	return requireAffected(tag, err, "update supplier")
}

// DeleteSupplier detaches the supplier from its expenses (ON DELETE SET NULL).
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, userID, supplierID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1 AND user_id = $2;`, supplierID, userID)
	return requireAffected(tag, err, "delete supplier")
}

// --- Categories ---

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, user_id, name, type, created_at, last_updated_at`

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.CategoryID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.LastUpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, category.Type, category.CreatedAt, category.LastUpdatedAt)
	if err != nil {
		return mapPgError(err, "save category")
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1 AND user_id = $2;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find category %s", categoryID))
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	var rows pgx.Rows
	var err error
	if categoryType != nil {
		rows, err = r.Pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND type = $2 ORDER BY name;`, userID, *categoryType)
	} else {
		rows, err = r.Pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY type, name;`, userID)
	}
	if err != nil {
		return nil, mapPgError(err, "list categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `UPDATE categories SET name = $3, type = $4, last_updated_at = $5 WHERE category_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, category.CategoryID, category.UserID, category.Name, category.Type, category.LastUpdatedAt)
	return requireAffected(tag, err, "update category")
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND user_id = $2;`, categoryID, userID)
	return requireAffected(tag, err, "delete category")
}
