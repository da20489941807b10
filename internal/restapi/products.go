package restapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/shopmind/shopmind/internal/catalog"
	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/store"
	"github.com/shopmind/shopmind/internal/webserver"
)

// registerProductRoutes registers catalog CRUD and AI helper endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/search", searchProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/products/:id/image", getProductImage)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPOST("/products/generate-description", generateDescription)
	webserver.ApiPOST("/products/generate-image", generateImage)
}

func listProducts(c echo.Context) error {
	products, err := deps.Catalog.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

func searchProducts(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("keyword"))
	products, err := deps.Catalog.Search(c.Request().Context(), keyword)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search products", err.Error())
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := deps.Catalog.GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, product)
}

func getProductImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := deps.Catalog.GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	if len(product.ImageData) == 0 {
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Product has no image", nil)
	}
	contentType := product.ImageType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, product.ImageData)
}

// bindProductForm reads the multipart form fields into the product. The
// optional "image" part is returned separately.
func bindProductForm(c echo.Context, product *domain.Product) (*catalog.ImageUpload, error) {
	product.Name = c.FormValue("name")
	product.Description = c.FormValue("description")
	product.Brand = c.FormValue("brand")
	product.Category = c.FormValue("category")
	product.Available = c.FormValue("available") == "true"

	if v := c.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.New("invalid price")
		}
		product.Price = price
	}
	if v := c.FormValue("stock_qty"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid stock_qty")
		}
		product.StockQty = qty
	}
	if v := c.FormValue("release_date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, errors.New("invalid release_date")
		}
		product.ReleaseDate = date
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no image part
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &catalog.ImageUpload{
		Name: file.Filename,
		Type: file.Header.Get("Content-Type"),
		Data: data,
	}, nil
}

func createProduct(c echo.Context) error {
	var product domain.Product
	image, err := bindProductForm(c, &product)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	saved, err := deps.Catalog.AddOrUpdate(c.Request().Context(), &product, image)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return created(c, saved)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := deps.Catalog.GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	image, err := bindProductForm(c, product)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	saved, err := deps.Catalog.AddOrUpdate(c.Request().Context(), product, image)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, saved)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := deps.Catalog.Delete(c.Request().Context(), id); errors.Is(err, store.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

func generateDescription(c echo.Context) error {
	var req domain.GenerateDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	desc, err := deps.Catalog.GenerateDescription(c.Request().Context(), req.Name, req.Category)
	if err != nil {
		return fail(c, http.StatusBadGateway, "AI_UPSTREAM_ERROR", "Description generation failed", err.Error())
	}
	return c.String(http.StatusOK, desc)
}

func generateImage(c echo.Context) error {
	var req domain.GenerateImageRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	img, err := deps.Catalog.GenerateImage(c.Request().Context(), req.Name, req.Category, req.Description)
	if err != nil {
		return fail(c, http.StatusBadGateway, "AI_UPSTREAM_ERROR", "Image generation failed", err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", img)
}
