// Package productdelivery manages delivery layer of products.
package productdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/internal/middleware"
	"github.com/go-vendo/vending-machine/pkg/errorspkg"
	"github.com/go-vendo/vending-machine/pkg/tokenpkg"
	"github.com/go-vendo/vending-machine/pkg/web"
)

// Service provides service layer interface needed by product delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package productdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Product, error)
	Update(ctx context.Context, seller string, arg domain.UpdateProductParams) (domain.Product, error)
	Delete(ctx context.Context, seller string, id int64) error
}

// Handler facilitates product delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns product handler.
func NewHandler(ps Service) Handler {
	return Handler{service: ps}
}

type data struct {
	Product domain.Product `json:"product"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,price"`
	Stock int64  `json:"stock" binding:"gte=0"`
}

// Create handles http request to create a product.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.CreateProductParams{
		Name:   req.Name,
		Seller: authPayload.Username,
		Price:  req.Price,
		Stock:  req.Stock,
	}

	createdProduct, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrSellerNotFound, domain.ErrInvalidPrice:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{createdProduct},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a product.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	product, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrProductNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{product},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataProducts struct {
	Products []domain.Product `json:"products"`
}
type responseProducts struct {
	Data dataProducts `json:"data,omitempty"`
}

// List handles http request to list products.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	products, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseProducts{
		Data: dataProducts{products},
	}

	gctx.JSON(http.StatusOK, res)
}

type updateRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,price"`
	Stock int64  `json:"stock" binding:"gte=0"`
}

// Update handles http request to update a product.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.UpdateProductParams{
		ID:    uri.ID,
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	updatedProduct, err := h.service.Update(ctx, authPayload.Username, arg)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrProductSellerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrInvalidPrice:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{updatedProduct},
	}

	gctx.JSON(http.StatusOK, res)
}

// Delete handles http request to delete a product.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Delete(ctx, authPayload.Username, req.ID); err != nil {
		switch err {
		case domain.ErrProductNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrProductSellerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
