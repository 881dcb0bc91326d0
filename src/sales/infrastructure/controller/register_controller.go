package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"sales/src/sales/application/request"
	"sales/src/sales/application/response"
	"sales/src/sales/application/usecase"
	"sales/src/sales/domain/entity"

	"github.com/gin-gonic/gin"
)

// RegisterController maneja las peticiones HTTP de las cajas
type RegisterController struct {
	pool *usecase.StationPool
}

// NewRegisterController crea una nueva instancia del controlador
func NewRegisterController(pool *usecase.StationPool) *RegisterController {
	return &RegisterController{pool: pool}
}

// RegisterRoutes registra las rutas del controlador
func (c *RegisterController) RegisterRoutes(router *gin.RouterGroup) {
	sale := router.Group("/stations/:station_id/sale")
	{
		sale.GET("", c.GetSale)
		sale.POST("", c.StartSale)
		sale.POST("/items", c.EnterItem)
		sale.POST("/end", c.EndSale)
		sale.POST("/discount", c.SignalDiscountRequest)
		sale.POST("/customer", c.EnterCustomerID)
		sale.POST("/payment", c.EnterAmountPaid)
		sale.GET("/receipt", c.Receipt)
		sale.POST("/sync", c.UpdateExternalSystems)
	}

	log.Println("Rutas Register disponibles:")
	log.Println("  GET    /api/v1/stations/:station_id/sale")
	log.Println("  POST   /api/v1/stations/:station_id/sale")
	log.Println("  POST   /api/v1/stations/:station_id/sale/items")
	log.Println("  POST   /api/v1/stations/:station_id/sale/end")
	log.Println("  POST   /api/v1/stations/:station_id/sale/discount")
	log.Println("  POST   /api/v1/stations/:station_id/sale/customer")
	log.Println("  POST   /api/v1/stations/:station_id/sale/payment")
	log.Println("  GET    /api/v1/stations/:station_id/sale/receipt")
	log.Println("  POST   /api/v1/stations/:station_id/sale/sync")
}

// GetSale retorna el registro de la venta en curso
func (c *RegisterController) GetSale(ctx *gin.Context) {
	var saleLog *entity.SaleLog
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		var err error
		saleLog, err = uc.CurrentSale()
		return err
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, saleLog)
}

// StartSale inicia una venta nueva en la caja
func (c *RegisterController) StartSale(ctx *gin.Context) {
	stationID := ctx.Param("station_id")
	var resp response.SaleStartedResponse
	err := c.pool.With(stationID, func(uc *usecase.RegisterUseCase) error {
		uc.StartSale(ctx.Request.Context())
		saleLog, err := uc.CurrentSale()
		if err != nil {
			return err
		}
		resp = response.SaleStartedResponse{SaleID: saleLog.SaleID, StationID: uc.StationID(), State: saleLog.State}
		return nil
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// EnterItem ingresa un item y devuelve el PurchaseInfo
func (c *RegisterController) EnterItem(ctx *gin.Context) {
	var req request.EnterItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var info *response.PurchaseInfo
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		var err error
		info, err = uc.EnterItem(ctx.Request.Context(), req.ItemID, req.Quantity)
		return err
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// EndSale cierra la venta y devuelve el monto a pagar
func (c *RegisterController) EndSale(ctx *gin.Context) {
	var req request.EndSaleRequest
	// ContentLength es -1 en requests chunked; cuerpo vacío = usar el último PurchaseInfo
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	c.amountOperation(ctx, func(rctx context.Context, uc *usecase.RegisterUseCase) (entity.Amount, error) {
		var info *response.PurchaseInfo
		if req.RunningTotal != nil {
			info = &response.PurchaseInfo{RunningTotal: *req.RunningTotal}
		}
		return uc.EndSale(rctx, info)
	})
}

// SignalDiscountRequest abre un pedido de descuento
func (c *RegisterController) SignalDiscountRequest(ctx *gin.Context) {
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		return uc.SignalDiscountRequest(ctx.Request.Context())
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"discount_requested": true})
}

// EnterCustomerID aplica el descuento y devuelve el monto a pagar
func (c *RegisterController) EnterCustomerID(ctx *gin.Context) {
	var req request.CustomerIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	c.amountOperation(ctx, func(rctx context.Context, uc *usecase.RegisterUseCase) (entity.Amount, error) {
		return uc.EnterCustomerID(rctx, req.CustomerID)
	})
}

// EnterAmountPaid registra el pago y devuelve el vuelto
func (c *RegisterController) EnterAmountPaid(ctx *gin.Context) {
	var req request.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	c.amountOperation(ctx, func(rctx context.Context, uc *usecase.RegisterUseCase) (entity.Amount, error) {
		return uc.EnterAmountPaid(rctx, *req.Payment, *req.TotalPrice)
	})
}

// Receipt devuelve el recibo en texto plano
func (c *RegisterController) Receipt(ctx *gin.Context) {
	var receipt string
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		var err error
		receipt, err = uc.ReceiptString(ctx.Request.Context())
		return err
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, receipt)
}

// UpdateExternalSystems propaga la venta a inventario y contabilidad
func (c *RegisterController) UpdateExternalSystems(ctx *gin.Context) {
	var resp response.SyncResponse
	var syncErr error
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		saleLog, err := uc.CurrentSale()
		if err != nil {
			return err
		}
		resp.SaleID = saleLog.SaleID
		syncErr = uc.UpdateExternalSystems(ctx.Request.Context())
		if syncErr == nil {
			resp.InventoryPosted, resp.AccountingPosted = true, true
			return nil
		}
		resp.InventoryPosted, resp.AccountingPosted = uc.ExternalSyncStatus()
		return nil
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	if syncErr != nil {
		if !errors.Is(syncErr, entity.ErrExternalSyncIncomplete) {
			writeError(ctx, syncErr)
			return
		}
		log.Printf("Error updating external systems: %v", syncErr)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":             "External systems were not fully updated, retry to resend the missing part",
			"details":           syncErr.Error(),
			"sale_id":           resp.SaleID,
			"inventory_posted":  resp.InventoryPosted,
			"accounting_posted": resp.AccountingPosted,
		})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *RegisterController) amountOperation(ctx *gin.Context, op func(context.Context, *usecase.RegisterUseCase) (entity.Amount, error)) {
	var resp response.AmountResponse
	err := c.pool.With(ctx.Param("station_id"), func(uc *usecase.RegisterUseCase) error {
		amount, err := op(ctx.Request.Context(), uc)
		if err != nil {
			return err
		}
		saleLog, err := uc.CurrentSale()
		if err != nil {
			return err
		}
		resp = response.AmountResponse{SaleID: saleLog.SaleID, Amount: amount, Currency: saleLog.Currency, State: saleLog.State}
		return nil
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// writeError traduce errores de dominio a códigos HTTP
func writeError(ctx *gin.Context, err error) {
	var opErr *entity.OperationFailedError

	switch {
	case errors.Is(err, usecase.ErrInvalidStationID):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrItemNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Item not found", "details": err.Error()})
	case errors.As(err, &opErr):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": opErr.Message, "details": err.Error()})
	case errors.Is(err, entity.ErrDescriptionRequired), errors.Is(err, entity.ErrInvalidPrice):
		// El precio y la descripción vienen del catálogo, no del cajero
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Item catalog returned invalid item data", "details": err.Error()})
	case errors.Is(err, entity.ErrInsufficientPayment):
		ctx.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrPreconditionViolated):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidCustomerID),
		errors.Is(err, entity.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Error processing register request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
