// Package handler はproductsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market_backend/internal/api"
	"market_backend/internal/feature/products/domain"
	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/feature/products/transport/http/dto"
	"market_backend/internal/platform/logger"
	"market_backend/internal/repository"
)

// ProductUsecase は商品カタログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ProductUsecase interface {
	ListProducts(ctx context.Context, filters map[string]any, skip, limit int) ([]entity.Product, error)
	PaginateProducts(ctx context.Context, filters map[string]any, page, perPage int) (*repository.Page[entity.Product], error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	CreateProduct(ctx context.Context, name string, price int, unitID uint) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uint, name string, price int, unitID uint) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ListUnits(ctx context.Context) ([]entity.Unit, error)
}

// ProductHandler は商品カタログのHTTPリクエストを処理します。
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// Index は商品一覧APIです。
// クエリパラメータでの絞り込みは部分一致（search）で行い、
// page/per_pageが指定された場合は完全一致でのページング応答を返します。
func (h *ProductHandler) Index(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	if query.Page > 0 || query.PerPage > 0 {
		page, err := h.products.PaginateProducts(c.Request.Context(), query.Filters(), query.Page, query.PerPage)
		if err != nil {
			logger.Get().Error().Err(err).Msg("failed to paginate products")
			c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	products, err := h.products.ListProducts(c.Request.Context(), query.Filters(), query.Skip, query.Limit)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// Store は商品登録APIです。name, price, unit_idは必須です。
func (h *ProductHandler) Store(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req.Name, *req.Price, req.UnitID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to create product")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// Show は商品取得APIです。存在しない場合は404を返します。
func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Update は商品更新APIです。存在しない場合は404を返します。
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, req.Name, *req.Price, req.UnitID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Destroy は商品削除APIです。存在しない場合は404を返します。
func (h *ProductHandler) Destroy(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success("resource deleted"))
}

// Units は単位一覧APIです。
func (h *ProductHandler) Units(c *gin.Context) {
	units, err := h.products.ListUnits(c.Request.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to list units")
		c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": units})
}

func (h *ProductHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, api.Error("resource not found"))
		return
	}
	logger.Get().Error().Err(err).Msg("product operation failed")
	c.JSON(http.StatusInternalServerError, api.Error(api.MsgSomethingWentWrong))
}
