package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop-catalog/internal/domain/page"
	"github.com/xenking/shop-catalog/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

const selectProduct = `
SELECT p.id, p.name, p.description, p.quantity, p.price, p.discount,
       p.special_price, p.image, p.category_id, c.name
FROM products p
JOIN categories c ON c.id = p.category_id`

var sortColumns = map[string]string{
	product.SortByID:           "p.id",
	product.SortByName:         "p.name",
	product.SortByDescription:  "p.description",
	product.SortByQuantity:     "p.quantity",
	product.SortByPrice:        "p.price",
	product.SortByDiscount:     "p.discount",
	product.SortBySpecialPrice: "p.special_price",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID returns product.ErrNotFound when no product has the given id.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, selectProduct+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &p, nil
}

// List returns one page of all products.
func (r *ProductRepository) List(ctx context.Context, req page.Request) (page.Page[product.Product], error) {
	return r.queryPage(ctx, req, "", nil)
}

// ListByCategory returns one page of the products of a category.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64, req page.Request) (page.Page[product.Product], error) {
	return r.queryPage(ctx, req, `p.category_id = $1`, []any{categoryID})
}

// SearchByName returns one page of the products whose name contains keyword,
// case-insensitively. LIKE wildcards in keyword match literally.
func (r *ProductRepository) SearchByName(ctx context.Context, keyword string, req page.Request) (page.Page[product.Product], error) {
	return r.queryPage(ctx, req, `p.name ILIKE '%' || $1 || '%' ESCAPE '\'`, []any{likeEscaper.Replace(keyword)})
}

// NamesInCategory returns the names of all products of a category.
func (r *ProductRepository) NamesInCategory(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing product names of category %d: %w", categoryID, err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning product names: %w", err)
	}
	return names, nil
}

// CountInCategory returns the number of products in a category.
func (r *ProductRepository) CountInCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting products of category %d: %w", categoryID, err)
	}
	return n, nil
}

// Create inserts p and sets its generated id. A second product with the same
// name in the same category yields product.ErrDuplicateName.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO products (name, description, quantity, price, discount, special_price, image, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		p.Name, p.Description, p.Quantity, p.Price, p.Discount, p.SpecialPrice, p.Image, p.CategoryID,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(product.ErrDuplicateName, "creating product %q", p.Name)
		}
		return fmt.Errorf("creating product %q: %w", p.Name, err)
	}
	return nil
}

// Update stores every mutable column of p. The category is never changed.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE products
SET name = $2, description = $3, quantity = $4, price = $5,
    discount = $6, special_price = $7, image = $8
WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Quantity, p.Price, p.Discount, p.SpecialPrice, p.Image,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(product.ErrDuplicateName, "updating product %d", p.ID)
		}
		return fmt.Errorf("updating product %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete removes product id.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// queryPage sends the page query and the matching count in one batch. where
// may reference args as $1..$n; LIMIT and OFFSET are appended after them.
func (r *ProductRepository) queryPage(ctx context.Context, req page.Request, where string, args []any) (page.Page[product.Product], error) {
	listSQL, countSQL, err := pageQueries(req, where, len(args))
	if err != nil {
		return page.Page[product.Product]{}, err
	}

	batch := &pgx.Batch{}
	var items []product.Product
	var total int64

	batch.Queue(listSQL, append(args, req.Size, req.Offset())...).Query(func(rows pgx.Rows) error {
		var err error
		items, err = pgx.CollectRows(rows, scanProduct)
		return err
	})
	batch.Queue(countSQL, args...).QueryRow(func(row pgx.Row) error {
		return row.Scan(&total)
	})

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return page.Page[product.Product]{}, fmt.Errorf("querying product page: %w", err)
	}
	return page.New(req, items, total), nil
}

func pageQueries(req page.Request, where string, nargs int) (listSQL, countSQL string, _ error) {
	column, ok := sortColumns[req.SortBy]
	if !ok {
		return "", "", errors.Errorf("unsupported sort field %q", req.SortBy)
	}
	dir := "DESC"
	if req.Dir == page.Asc {
		dir = "ASC"
	}

	filter := ""
	if where != "" {
		filter = " WHERE " + where
	}

	listSQL = fmt.Sprintf("%s%s ORDER BY %s %s, p.id ASC LIMIT $%d OFFSET $%d",
		selectProduct, filter, column, dir, nargs+1, nargs+2)
	countSQL = "SELECT count(*) FROM products p" + filter
	return listSQL, countSQL, nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.Discount,
		&p.SpecialPrice, &p.Image, &p.CategoryID, &p.CategoryName,
	)
	return p, err
}
