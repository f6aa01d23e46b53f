package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/catalog"
)

type CatalogHandler struct {
	finder *catalog.Finder
}

func NewCatalogHandler(finder *catalog.Finder) *CatalogHandler {
	return &CatalogHandler{finder: finder}
}

// Browse godoc
// @Summary     Browse the figure finder
// @Description Filters, sorts and paginates the catalog according to the query string. The response carries the canonical query for the rendered view.
// @Tags        catalog
// @Produce     json
// @Param       material query string false "metal or plastic"
// @Param       genre    query string false "Genre facet"
// @Param       gender   query string false "Gender facet"
// @Param       race     query string false "Race facet"
// @Param       holding  query string false "Holding facet"
// @Param       wearing  query string false "Wearing facet"
// @Param       sort     query string false "most-recent, a-z, oldest, cheapest or most-expensive"
// @Param       page     query int    false "1-indexed page"
// @Success     200 {object} catalog.Result
// @Failure     502 {object} models.ErrorResponse
// @Router      /figurefinder [get]
func (h *CatalogHandler) Browse(c *gin.Context) {
	view := catalog.ParseQuery(c.Request.URL.RawQuery)

	result, err := h.finder.Browse(c.Request.Context(), view)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Product godoc
// @Summary     Get a catalog product
// @Description Returns one product by SKU, for the painting options page
// @Tags        catalog
// @Produce     json
// @Param       sku path string true "Product SKU"
// @Success     200 {object} models.Product
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /catalog/{sku} [get]
func (h *CatalogHandler) Product(c *gin.Context) {
	product, err := h.finder.Lookup(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
