package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainCatalog "github.com/BruksfildServices01/salon-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/imaging"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	ucProduct "github.com/BruksfildServices01/salon-manager/internal/usecase/product"
)

type ProductHandler struct {
	catalog *ucProduct.Catalog
	log     *zap.Logger
}

func NewProductHandler(catalog *ucProduct.Catalog, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// --------- Handlers ---------

// List filtra por ?category, ?active e ?query. Quem não administra o
// catálogo só enxerga produtos ativos.
func (h *ProductHandler) List(c *gin.Context) {
	f := domainCatalog.Filter{
		Category: c.Query("category"),
		Active:   queryBool(c, "active"),
		Query:    c.Query("query"),
	}
	if !role.Can(middleware.UserRole(c), role.ProductsWrite) {
		active := true
		f.Active = &active
	}

	products, err := h.catalog.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !p.Active && !role.Can(middleware.UserRole(c), role.ProductsWrite) {
		httperr.Abort(c, httperr.CodeProductNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), ucProduct.CreateProductInput{
		ActorID:     middleware.UserID(c),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), ucProduct.UpdateProductInput{
		ActorID:     middleware.UserID(c),
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.SetActive(c.Request.Context(), middleware.UserID(c), c.Param("id"), *req.Active)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil || fh.Size > imaging.MaxUploadBytes {
		httperr.Abort(c, httperr.CodeInvalidImage)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Abort(c, httperr.CodeInvalidImage)
		return
	}
	defer f.Close()

	p, err := h.catalog.UploadImage(c.Request.Context(), middleware.UserID(c), c.Param("id"), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
