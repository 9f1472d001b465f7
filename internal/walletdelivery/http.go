// Package walletdelivery manages delivery layer of coin deposits and purchases.
package walletdelivery

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

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	Deposit(ctx context.Context, username string, coins []int64) (domain.DepositResult, error)
	Buy(ctx context.Context, username string, productID, quantity int64) (domain.Receipt, error)
	Reset(ctx context.Context, username string) (int64, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns wallet handler.
func NewHandler(ws Service) Handler {
	return Handler{service: ws}
}

type depositRequest struct {
	Coins []int64 `json:"coins" binding:"required,min=1,dive,denomination"`
}

type depositData struct {
	Deposit domain.DepositResult `json:"deposit"`
}
type depositResponse struct {
	Data depositData `json:"data,omitempty"`
}

// Deposit handles http request to deposit coins.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req depositRequest
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

	deposited, err := h.service.Deposit(ctx, authPayload.Username, req.Coins)
	if err != nil {
		var invalidCoins domain.InvalidDenominationError

		switch {
		case errors.As(err, &invalidCoins):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case err == domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := depositResponse{
		Data: depositData{deposited},
	}

	gctx.JSON(http.StatusOK, res)
}

type buyRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int64 `json:"quantity" binding:"required,min=1"`
}

type buyData struct {
	Receipt domain.Receipt `json:"receipt"`
}
type buyResponse struct {
	Data buyData `json:"data,omitempty"`
}

// Buy handles http request to buy a product.
func (h *Handler) Buy(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req buyRequest
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

	receipt, err := h.service.Buy(ctx, authPayload.Username, req.ProductID, req.Quantity)
	if err != nil {
		var (
			outOfStock        domain.OutOfStockError
			insufficientFunds domain.InsufficientFundsError
		)

		switch {
		case errors.As(err, &outOfStock), errors.As(err, &insufficientFunds), err == domain.ErrInvalidQuantity:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case err == domain.ErrProductNotFound, err == domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := buyResponse{
		Data: buyData{receipt},
	}

	gctx.JSON(http.StatusOK, res)
}

type resetData struct {
	PreviousBalance int64 `json:"previous_balance"`
	Balance         int64 `json:"balance"`
}
type resetResponse struct {
	Data resetData `json:"data,omitempty"`
}

// Reset handles http request to reset the deposit.
func (h *Handler) Reset(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	previous, err := h.service.Reset(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := resetResponse{
		Data: resetData{PreviousBalance: previous, Balance: 0},
	}

	gctx.JSON(http.StatusOK, res)
}
