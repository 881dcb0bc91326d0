package controller

import (
	"errors"
	"log"
	"net/http"

	"sales/src/sales/application/usecase"

	"github.com/gin-gonic/gin"
)

// ReportController maneja las peticiones HTTP para reportes
type ReportController struct {
	dailyReportUC *usecase.DailyReportUseCase
	listSalesUC   *usecase.ListSalesUseCase
}

// NewReportController crea una nueva instancia del controlador
func NewReportController(dailyReportUC *usecase.DailyReportUseCase, listSalesUC *usecase.ListSalesUseCase) *ReportController {
	return &ReportController{
		dailyReportUC: dailyReportUC,
		listSalesUC:   listSalesUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/daily", c.DailyReport)
		reports.GET("/sales", c.ListSales)
	}

	log.Println("Rutas Report disponibles:")
	log.Println("  GET    /api/v1/reports/daily?date=YYYY-MM-DD")
	log.Println("  GET    /api/v1/reports/sales?date=YYYY-MM-DD")
}

// DailyReport maneja el reporte diario de ventas
func (c *ReportController) DailyReport(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required (format: YYYY-MM-DD)",
		})
		return
	}

	resp, err := c.dailyReportUC.Execute(ctx.Request.Context(), date)
	if err != nil {
		writeReportError(ctx, "Error generating daily report", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSales lista las ventas registradas en el día
func (c *ReportController) ListSales(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required (format: YYYY-MM-DD)",
		})
		return
	}

	items, err := c.listSalesUC.Execute(ctx.Request.Context(), date)
	if err != nil {
		writeReportError(ctx, "Error listing sales", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": len(items),
	})
}

func writeReportError(ctx *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)

	// Formato de fecha -> 400, resto -> 500
	if errors.Is(err, usecase.ErrInvalidDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date format",
			"details": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
