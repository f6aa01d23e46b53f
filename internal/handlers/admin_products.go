package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

type ProductsHandler struct {
	products *services.ProductService
}

func NewProductsHandler(products *services.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List godoc
// @Summary     List premade products
// @Description Public listing of the ready-painted figures. Also served under /admin for the dashboard.
// @Tags        premade
// @Produce     json
// @Success     200 {object} models.PremadeProductListResponse
// @Router      /premade-products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []models.PremadeProduct{}
	}
	c.JSON(http.StatusOK, models.PremadeProductListResponse{Products: products})
}

// Create godoc
// @Summary     Create a premade product
// @Description Creates a product. When the SKU already exists the stored product is returned with 200 instead of 201.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePremadeProductRequest true "Product"
// @Success     201 {object} models.PremadeProductResponse
// @Success     200 {object} models.PremadeProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/premade-products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req models.CreatePremadeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	product, created, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, models.PremadeProductResponse{Product: *product})
}

// Update godoc
// @Summary     Update a premade product
// @Description Partial update; omitted fields are left unchanged
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdatePremadeProductRequest true "Product ID and changed fields"
// @Success     200 {object} models.PremadeProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/premade-products [patch]
func (h *ProductsHandler) Update(c *gin.Context) {
	var req models.UpdatePremadeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PremadeProductResponse{Product: *product})
}

// Delete godoc
// @Summary     Delete a premade product
// @Description Deletes the product and its image when the image lives in our bucket
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id query int true "Product ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/premade-products [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Product ID is required"})
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// UploadImage godoc
// @Summary     Upload a product image
// @Description Stores an image in the product bucket and returns its public URL
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Image (max 5MB)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/premade-products/image [post]
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxImageSize+(1<<20))

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required", Message: err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	resp, err := h.products.UploadImage(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Seed godoc
// @Summary     Seed starter products
// @Description Inserts the starter premade products, but only into an empty table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SuccessResponse
// @Router      /admin/seed-products [post]
func (h *ProductsHandler) Seed(c *gin.Context) {
	inserted, existing, err := h.products.SeedProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if existing > 0 {
		c.JSON(http.StatusOK, models.SuccessResponse{
			Success: true,
			Message: fmt.Sprintf("Database already has %d products", existing),
			Count:   existing,
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: fmt.Sprintf("Seeded %d products", inserted),
		Count:   inserted,
	})
}
