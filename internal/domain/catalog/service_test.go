package catalog

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shop-catalog/internal/domain/category"
	"github.com/xenking/shop-catalog/internal/domain/page"
	"github.com/xenking/shop-catalog/internal/domain/product"
)

// --- Mock implementations ---

type mockCategoryRepo struct {
	byID      map[int64]*category.Category
	nextID    int64
	deleted   []int64
	listErr   error
	createErr error
}

func newCategoryRepo(cats ...category.Category) *mockCategoryRepo {
	m := &mockCategoryRepo{byID: make(map[int64]*category.Category), nextID: 1}
	for i := range cats {
		c := cats[i]
		m.byID[c.ID] = &c
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

func (m *mockCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]category.Category, 0, len(m.byID))
	for id := int64(1); id < m.nextID; id++ {
		if c, ok := m.byID[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id int64) (*category.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) Create(_ context.Context, c *category.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = m.nextID
	m.nextID++
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *category.Category) error {
	if _, ok := m.byID[c.ID]; !ok {
		return category.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return category.ErrNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockProductRepo struct {
	items     []product.Product
	nextID    int64
	lastReq   page.Request
	lastQuery string
	created   int
	updated   int
	createErr error
	listErr   error
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	m := &mockProductRepo{nextID: 1}
	for _, p := range products {
		m.items = append(m.items, p)
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *mockProductRepo) find(id int64) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *mockProductRepo) pageOf(req page.Request, keep func(product.Product) bool) page.Page[product.Product] {
	m.lastReq = req
	var matched []product.Product
	for _, p := range m.items {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	from := min(req.Offset(), len(matched))
	to := min(from+req.Size, len(matched))
	return page.New(req, matched[from:to], int64(len(matched)))
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	i := m.find(id)
	if i < 0 {
		return nil, product.ErrNotFound
	}
	p := m.items[i]
	return &p, nil
}

func (m *mockProductRepo) List(_ context.Context, req page.Request) (page.Page[product.Product], error) {
	if m.listErr != nil {
		return page.Page[product.Product]{}, m.listErr
	}
	return m.pageOf(req, func(product.Product) bool { return true }), nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, categoryID int64, req page.Request) (page.Page[product.Product], error) {
	return m.pageOf(req, func(p product.Product) bool { return p.CategoryID == categoryID }), nil
}

func (m *mockProductRepo) SearchByName(_ context.Context, keyword string, req page.Request) (page.Page[product.Product], error) {
	m.lastQuery = keyword
	kw := strings.ToLower(keyword)
	return m.pageOf(req, func(p product.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw)
	}), nil
}

func (m *mockProductRepo) NamesInCategory(_ context.Context, categoryID int64) ([]string, error) {
	var names []string
	for _, p := range m.items {
		if p.CategoryID == categoryID {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

func (m *mockProductRepo) CountInCategory(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, p := range m.items {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepo) Create(_ context.Context, p *product.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	m.items = append(m.items, *p)
	m.created++
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	i := m.find(p.ID)
	if i < 0 {
		return product.ErrNotFound
	}
	m.items[i] = *p
	m.updated++
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	i := m.find(id)
	if i < 0 {
		return product.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

type mockImageStore struct {
	name  string
	err   error
	dir   string
	data  string
	calls int
}

func (m *mockImageStore) SaveImage(_ context.Context, dir, _ string, content io.Reader) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.dir = dir
	m.data = string(b)
	return m.name, nil
}

// --- Helpers ---

func newTestProduct(id int64, name string, price string, categoryID int64) product.Product {
	p := product.Product{
		ID:           id,
		Name:         name,
		Quantity:     5,
		Price:        decimal.RequireFromString(price),
		Discount:     decimal.Zero,
		Image:        product.DefaultImage,
		CategoryID:   categoryID,
		CategoryName: "Electronics",
	}
	p.Reprice()
	return p
}

func defaultPage() page.Request {
	return page.NewRequest(0, 50, product.SortByID, "asc")
}

func newTestService(cats *mockCategoryRepo, products *mockProductRepo, images *mockImageStore) *Service {
	if images == nil {
		images = &mockImageStore{}
	}
	return NewService(Config{ImageDir: "images/", MaxPageSize: 100}, cats, products, images)
}

// --- Tests ---

func TestCreateCategory(t *testing.T) {
	cats := newCategoryRepo()
	svc := newTestService(cats, newProductRepo(), nil)

	got, err := svc.CreateCategory(context.Background(), CategoryDTO{CategoryName: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CategoryID)
	assert.Equal(t, "Electronics", got.CategoryName)

	all, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, all.Content, 1)
	assert.Equal(t, "Electronics", all.Content[0].CategoryName)
	assert.Equal(t, int64(1), all.TotalElements)
	assert.Equal(t, 1, all.TotalPages)
	assert.True(t, all.LastPage)
}

func TestCreateCategory_BlankName(t *testing.T) {
	svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

	_, err := svc.CreateCategory(context.Background(), CategoryDTO{CategoryName: "   "})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "categoryName", vErr.Field)
}

func TestGetAllCategories_Empty(t *testing.T) {
	svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

	got, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Content)
	assert.Empty(t, got.Content)
	assert.Zero(t, got.TotalElements)
	assert.True(t, got.LastPage)
}

func TestGetAllCategories_Error(t *testing.T) {
	cats := newCategoryRepo()
	cats.listErr = errors.New("db down")
	svc := newTestService(cats, newProductRepo(), nil)

	_, err := svc.GetAllCategories(context.Background())
	require.Error(t, err)
}

func TestUpdateCategory(t *testing.T) {
	t.Run("renamed", func(t *testing.T) {
		cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
		svc := newTestService(cats, newProductRepo(), nil)

		got, err := svc.UpdateCategory(context.Background(), CategoryDTO{CategoryName: "Gadgets"}, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CategoryID)
		assert.Equal(t, "Gadgets", got.CategoryName)
		assert.Equal(t, "Gadgets", cats.byID[1].Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

		_, err := svc.UpdateCategory(context.Background(), CategoryDTO{CategoryName: "Gadgets"}, 42)

		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "Category not found with categoryId: 42", nfErr.Error())
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("empty category", func(t *testing.T) {
		cats := newCategoryRepo(category.Category{ID: 3, Name: "Books"})
		svc := newTestService(cats, newProductRepo(), nil)

		msg, err := svc.DeleteCategory(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Category with categoryId: 3 deleted successfully", msg)
		assert.Equal(t, []int64{3}, cats.deleted)
	})

	t.Run("with products", func(t *testing.T) {
		cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
		products := newProductRepo(
			newTestProduct(1, "Phone", "100.00", 1),
			newTestProduct(2, "Laptop", "900.00", 1),
		)
		svc := newTestService(cats, products, nil)

		msg, err := svc.DeleteCategory(context.Background(), 1)
		require.NoError(t, err)
		assert.Contains(t, msg, "categoryId: 1 deleted successfully")
		assert.Contains(t, msg, "2 product(s)")
	})

	t.Run("not found", func(t *testing.T) {
		cats := newCategoryRepo()
		svc := newTestService(cats, newProductRepo(), nil)

		_, err := svc.DeleteCategory(context.Background(), 9)

		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Empty(t, cats.deleted)
	})
}

func TestAddProduct(t *testing.T) {
	cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
	products := newProductRepo()
	svc := newTestService(cats, products, nil)

	got, err := svc.AddProduct(context.Background(), 1, ProductDTO{
		ProductName: "Phone",
		Description: "A phone",
		Quantity:    10,
		Price:       100,
		Discount:    10,
		// Output-only fields are ignored on input.
		SpecialPrice: 1,
		Image:        "evil.png",
		CategoryID:   99,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ProductID)
	assert.Equal(t, "Phone", got.ProductName)
	assert.Equal(t, 90.0, got.SpecialPrice)
	assert.Equal(t, product.DefaultImage, got.Image)
	assert.Equal(t, int64(1), got.CategoryID)
	assert.Equal(t, "Electronics", got.CategoryName)

	require.Len(t, products.items, 1)
	stored := products.items[0]
	assert.True(t, decimal.RequireFromString("90.00").Equal(stored.SpecialPrice),
		"expected 90.00, got %s", stored.SpecialPrice)
}

func TestAddProduct_DuplicateName(t *testing.T) {
	cats := newCategoryRepo(
		category.Category{ID: 1, Name: "Electronics"},
		category.Category{ID: 2, Name: "Books"},
	)
	products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1))
	svc := newTestService(cats, products, nil)

	_, err := svc.AddProduct(context.Background(), 1, ProductDTO{ProductName: "Phone", Price: 50})

	var dupErr *DuplicateError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "Phone", dupErr.Value)
	assert.Zero(t, products.created)

	// The same name in another category is allowed.
	_, err = svc.AddProduct(context.Background(), 2, ProductDTO{ProductName: "Phone", Price: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, products.created)
}

func TestAddProduct_DuplicateRaceReportedByStore(t *testing.T) {
	cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
	products := newProductRepo()
	products.createErr = errors.Wrap(product.ErrDuplicateName, "insert product")
	svc := newTestService(cats, products, nil)

	_, err := svc.AddProduct(context.Background(), 1, ProductDTO{ProductName: "Phone", Price: 50})

	var dupErr *DuplicateError
	require.ErrorAs(t, err, &dupErr)
}

func TestAddProduct_CategoryNotFound(t *testing.T) {
	products := newProductRepo()
	svc := newTestService(newCategoryRepo(), products, nil)

	_, err := svc.AddProduct(context.Background(), 7, ProductDTO{ProductName: "Phone", Price: 50})

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Category", nfErr.Resource)
	assert.Zero(t, products.created)
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		dto   ProductDTO
		field string
	}{
		{"blank name", ProductDTO{ProductName: " ", Price: 1}, "productName"},
		{"negative quantity", ProductDTO{ProductName: "x", Quantity: -1}, "quantity"},
		{"negative price", ProductDTO{ProductName: "x", Price: -0.01}, "price"},
		{"price beyond NUMERIC(12,2)", ProductDTO{ProductName: "x", Price: 1e13}, "price"},
		{"price rounding up to the limit", ProductDTO{ProductName: "x", Price: 9999999999.996}, "price"},
		{"quantity beyond int32", ProductDTO{ProductName: "x", Price: 1, Quantity: 1 << 40}, "quantity"},
		{"discount above 100", ProductDTO{ProductName: "x", Discount: 100.5}, "discount"},
		{"negative discount", ProductDTO{ProductName: "x", Discount: -1}, "discount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
			products := newProductRepo()
			svc := newTestService(cats, products, nil)

			_, err := svc.AddProduct(context.Background(), 1, tt.dto)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, products.created)
		})
	}
}

func TestGetAllProducts_Paging(t *testing.T) {
	var seeded []product.Product
	for i := int64(1); i <= 7; i++ {
		seeded = append(seeded, newTestProduct(i, "Item", "10.00", 1))
	}
	svc := newTestService(newCategoryRepo(), newProductRepo(seeded...), nil)

	tests := []struct {
		pageNo     int
		wantItems  int
		wantPages  int
		wantIsLast bool
	}{
		{0, 3, 3, false},
		{1, 3, 3, false},
		{2, 1, 3, true},
		{3, 0, 3, true},
	}
	for _, tt := range tests {
		got, err := svc.GetAllProducts(context.Background(), page.NewRequest(tt.pageNo, 3, "productId", "asc"))
		require.NoError(t, err)
		assert.Len(t, got.Content, tt.wantItems, "page %d", tt.pageNo)
		assert.Equal(t, tt.pageNo, got.PageNumber)
		assert.Equal(t, 3, got.PageSize)
		assert.Equal(t, int64(7), got.TotalElements)
		assert.Equal(t, tt.wantPages, got.TotalPages)
		assert.Equal(t, tt.wantIsLast, got.LastPage, "page %d", tt.pageNo)
	}
}

func TestGetAllProducts_PageValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   page.Request
		field string
	}{
		{"negative page", page.NewRequest(-1, 10, "productId", "asc"), "pageNo"},
		{"zero size", page.NewRequest(0, 0, "productId", "asc"), "pageSize"},
		{"oversized", page.NewRequest(0, 101, "productId", "asc"), "pageSize"},
		{"unknown sort field", page.NewRequest(0, 10, "password", "asc"), "sortBy"},
		{"offset overflow", page.NewRequest(1<<62, 4, "productId", "asc"), "pageNo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

			_, err := svc.GetAllProducts(context.Background(), tt.req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestGetAllProducts_CanonicalSortField(t *testing.T) {
	products := newProductRepo()
	svc := newTestService(newCategoryRepo(), products, nil)

	_, err := svc.GetAllProducts(context.Background(), page.NewRequest(0, 10, "special_price", "DESC"))
	require.NoError(t, err)
	assert.Equal(t, product.SortBySpecialPrice, products.lastReq.SortBy)
	assert.Equal(t, page.Desc, products.lastReq.Dir)
}

func TestGetAllProducts_Error(t *testing.T) {
	products := newProductRepo()
	products.listErr = errors.New("db down")
	svc := newTestService(newCategoryRepo(), products, nil)

	got, err := svc.GetAllProducts(context.Background(), defaultPage())
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestSearchByCategory(t *testing.T) {
	cats := newCategoryRepo(
		category.Category{ID: 1, Name: "Electronics"},
		category.Category{ID: 2, Name: "Books"},
	)
	book := newTestProduct(2, "Novel", "12.50", 2)
	book.CategoryName = ""
	products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1), book)
	svc := newTestService(cats, products, nil)

	got, err := svc.SearchByCategory(context.Background(), 2, page.NewRequest(0, 10, "price", "desc"))
	require.NoError(t, err)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "Novel", got.Content[0].ProductName)
	assert.Equal(t, int64(2), got.Content[0].CategoryID)
	assert.Equal(t, "Books", got.Content[0].CategoryName)
	assert.Equal(t, product.SortByPrice, products.lastReq.SortBy)
	assert.Equal(t, page.Desc, products.lastReq.Dir)
}

func TestSearchByCategory_NotFound(t *testing.T) {
	svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

	_, err := svc.SearchByCategory(context.Background(), 5, defaultPage())

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestSearchByCategory_NotFoundBeforePageValidation(t *testing.T) {
	svc := newTestService(newCategoryRepo(), newProductRepo(), nil)

	_, err := svc.SearchByCategory(context.Background(), 5, page.NewRequest(0, 0, "productId", "asc"))

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestAddProduct_PriceJustBelowLimit(t *testing.T) {
	cats := newCategoryRepo(category.Category{ID: 1, Name: "Electronics"})
	products := newProductRepo()
	svc := newTestService(cats, products, nil)

	got, err := svc.AddProduct(context.Background(), 1, ProductDTO{ProductName: "Yacht", Price: 9999999999.99, Quantity: product.MaxQuantity})
	require.NoError(t, err)
	assert.Equal(t, product.MaxQuantity, got.Quantity)
	assert.Equal(t, 1, products.created)
}

func TestSearchProductByKeyword(t *testing.T) {
	products := newProductRepo(
		newTestProduct(1, "iPhone", "100.00", 1),
		newTestProduct(2, "Phone case", "5.00", 1),
		newTestProduct(3, "Laptop", "900.00", 1),
	)
	svc := newTestService(newCategoryRepo(), products, nil)

	got, err := svc.SearchProductByKeyword(context.Background(), "PHONE", defaultPage())
	require.NoError(t, err)
	assert.Len(t, got.Content, 2)
	assert.Equal(t, int64(2), got.TotalElements)
	assert.Equal(t, "PHONE", products.lastQuery)

	got, err = svc.SearchProductByKeyword(context.Background(), "tablet", defaultPage())
	require.NoError(t, err)
	assert.Empty(t, got.Content)
	assert.True(t, got.LastPage)
}

func TestUpdateProduct(t *testing.T) {
	original := newTestProduct(1, "Phone", "100.00", 1)
	original.Image = "abc.png"
	products := newProductRepo(original)
	svc := newTestService(newCategoryRepo(), products, nil)

	got, err := svc.UpdateProduct(context.Background(), ProductDTO{
		ProductName: "Phone X",
		Quantity:    3,
		Price:       200,
		Discount:    25,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Phone X", got.ProductName)
	assert.Equal(t, 150.0, got.SpecialPrice)
	assert.Equal(t, "abc.png", got.Image)
	assert.Equal(t, int64(1), got.CategoryID)
	assert.Equal(t, 1, products.updated)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	products := newProductRepo()
	svc := newTestService(newCategoryRepo(), products, nil)

	_, err := svc.UpdateProduct(context.Background(), ProductDTO{ProductName: "x"}, 3)

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Product not found with productId: 3", nfErr.Error())
	assert.Zero(t, products.updated)
}

func TestDeleteProduct(t *testing.T) {
	products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1))
	svc := newTestService(newCategoryRepo(), products, nil)

	got, err := svc.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Phone", got.ProductName)
	assert.Empty(t, products.items)

	_, err = svc.DeleteProduct(context.Background(), 1)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestUpdateProductImage(t *testing.T) {
	products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1))
	images := &mockImageStore{name: "1b4e28ba-2fa1-11d2-883f-0016d3cca427.png"}
	svc := newTestService(newCategoryRepo(), products, images)

	got, err := svc.UpdateProductImage(context.Background(), 1, "photo.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, images.name, got.Image)
	assert.Equal(t, "images/", images.dir)
	assert.Equal(t, "PNGDATA", images.data)
	assert.Equal(t, images.name, products.items[0].Image)
}

func TestUpdateProductImage_Errors(t *testing.T) {
	t.Run("product not found", func(t *testing.T) {
		images := &mockImageStore{name: "x.png"}
		svc := newTestService(newCategoryRepo(), newProductRepo(), images)

		_, err := svc.UpdateProductImage(context.Background(), 1, "photo.png", strings.NewReader(""))

		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Zero(t, images.calls)
	})

	t.Run("missing extension", func(t *testing.T) {
		products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1))
		images := &mockImageStore{err: ErrNoExtension}
		svc := newTestService(newCategoryRepo(), products, images)

		_, err := svc.UpdateProductImage(context.Background(), 1, "photo", strings.NewReader(""))

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, product.DefaultImage, products.items[0].Image)
	})

	t.Run("write failure", func(t *testing.T) {
		products := newProductRepo(newTestProduct(1, "Phone", "100.00", 1))
		diskErr := errors.New("disk full")
		images := &mockImageStore{err: diskErr}
		svc := newTestService(newCategoryRepo(), products, images)

		_, err := svc.UpdateProductImage(context.Background(), 1, "photo.png", strings.NewReader(""))

		var sErr *StorageError
		require.ErrorAs(t, err, &sErr)
		require.ErrorIs(t, err, diskErr)
		assert.Equal(t, product.DefaultImage, products.items[0].Image)
	})
}
