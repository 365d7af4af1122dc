package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/service"
)

const (
	contractNotFound = "Contract not found"
	pointNotFound    = "Point not found"
)

type Handler struct {
	contracts *service.ContractService
	points    *service.PointService
	invoices  *service.InvoiceService
	db        *gorm.DB
	log       zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	points *service.PointService,
	invoices *service.InvoiceService,
	db *gorm.DB,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts: contracts,
		points:    points,
		invoices:  invoices,
		db:        db,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)

	router.GET("/contracts", h.listContracts)
	router.POST("/add_contract", h.addContract)
	router.PUT("/update_contract/:id", h.updateContract)
	router.DELETE("/delete_contract/:id", h.deleteContract)

	router.POST("/add_point", h.addPoint)
	router.GET("/get_points/:id", h.getPoints)
	router.PUT("/update_point/:id", h.updatePoint)
	router.DELETE("/delete_point/:id", h.deletePoint)

	router.GET("/contracts_with_points", h.contractsWithPoints)
	router.GET("/contracts_with_points/export", h.exportContractsWithPoints)
	router.GET("/contracts/:id/invoice", h.contractInvoice)
	router.GET("/contracts/:id/invoice.pdf", h.contractInvoicePDF)
}

// Request fields are pointers so that "required" only rejects absent or null
// keys. Empty strings and a zero contract_id are valid values.
type contractRequest struct {
	ContractName *string `json:"contract_name" binding:"required,max=100"`
	StartDate    *string `json:"start_date" binding:"required,max=20"`
	EndDate      *string `json:"end_date" binding:"required,max=20"`
}

type addPointRequest struct {
	ContractID *int64  `json:"contract_id" binding:"required"`
	Point      *string `json:"point" binding:"required,max=100"`
	Value      *string `json:"value" binding:"required,max=100"`
}

type updatePointRequest struct {
	Point *string `json:"point" binding:"required,max=100"`
	Value *string `json:"value" binding:"required,max=100"`
}

type contractResponse struct {
	ID           uint   `json:"id"`
	ContractName string `json:"contract_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type pointResponse struct {
	ID         uint   `json:"id"`
	ContractID int64  `json:"contract_id"`
	Point      string `json:"point"`
	Value      string `json:"value"`
}

type contractSummaryResponse struct {
	ID           uint    `json:"id"`
	ContractName string  `json:"contract_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalPoints  int     `json:"total_points"`
	TotalValue   float64 `json:"total_value"`
}

type invoiceResponse struct {
	Contract    contractResponse `json:"contract"`
	Points      []pointResponse  `json:"points"`
	TotalPoints int              `json:"total_points"`
	TotalValue  float64          `json:"total_value"`
}

func (h *Handler) health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.contracts.List(c.Request.Context())
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusOK, toContractResponses(contracts))
}

func (h *Handler) addContract(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.contracts.Create(c.Request.Context(), req.input()); err != nil {
		h.handleWriteError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Contract added successfully!"})
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := pathID(c, contractNotFound)
	if !ok {
		return
	}

	// An unknown id is reported before the body is looked at.
	if _, err := h.contracts.Get(c.Request.Context(), id); err != nil {
		h.handleWriteError(c, err, contractNotFound)
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contracts.Update(c.Request.Context(), id, req.input()); err != nil {
		h.handleWriteError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract updated successfully!"})
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := pathID(c, contractNotFound)
	if !ok {
		return
	}

	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleWriteError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract and associated points deleted successfully!"})
}

func (h *Handler) addPoint(c *gin.Context) {
	var req addPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.points.Create(c.Request.Context(), service.PointInput{
		ContractID: *req.ContractID,
		Point:      *req.Point,
		Value:      *req.Value,
	})
	if err != nil {
		h.handleWriteError(c, err, pointNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Point added successfully!"})
}

func (h *Handler) getPoints(c *gin.Context) {
	contractID, ok := pathID(c, contractNotFound)
	if !ok {
		return
	}

	points, err := h.points.ListByContract(c.Request.Context(), contractID)
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusOK, toPointResponses(points))
}

func (h *Handler) updatePoint(c *gin.Context) {
	id, ok := pathID(c, pointNotFound)
	if !ok {
		return
	}

	if _, err := h.points.Get(c.Request.Context(), id); err != nil {
		h.handleWriteError(c, err, pointNotFound)
		return
	}

	var req updatePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.points.Update(c.Request.Context(), id, service.PointInput{
		Point: *req.Point,
		Value: *req.Value,
	})
	if err != nil {
		h.handleWriteError(c, err, pointNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Point updated successfully!"})
}

func (h *Handler) deletePoint(c *gin.Context) {
	id, ok := pathID(c, pointNotFound)
	if !ok {
		return
	}

	if err := h.points.Delete(c.Request.Context(), id); err != nil {
		h.handleWriteError(c, err, pointNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Point deleted successfully!"})
}

func (h *Handler) contractsWithPoints(c *gin.Context) {
	summaries, err := h.invoices.Summaries(c.Request.Context())
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}

	result := make([]contractSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, contractSummaryResponse{
			ID:           summary.Contract.ID,
			ContractName: summary.Contract.ContractName,
			StartDate:    summary.Contract.StartDate,
			EndDate:      summary.Contract.EndDate,
			TotalPoints:  summary.TotalPoints,
			TotalValue:   summary.TotalValue,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) exportContractsWithPoints(c *gin.Context) {
	result, err := h.invoices.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) contractInvoice(c *gin.Context) {
	id, ok := pathID(c, contractNotFound)
	if !ok {
		return
	}

	invoice, err := h.invoices.Invoice(c.Request.Context(), id)
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{
		Contract:    toContractResponse(invoice.Contract),
		Points:      toPointResponses(invoice.Points),
		TotalPoints: invoice.TotalPoints,
		TotalValue:  invoice.TotalValue,
	})
}

func (h *Handler) contractInvoicePDF(c *gin.Context) {
	id, ok := pathID(c, contractNotFound)
	if !ok {
		return
	}

	result, err := h.invoices.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleReadError(c, err, contractNotFound)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

// handleWriteError maps failures of mutating operations. Anything other
// than a missing row is reported to the caller as a bad request.
func (h *Handler) handleWriteError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrStorage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) handleReadError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// pathID parses the :id segment. A malformed id is answered like an
// unknown one.
func pathID(c *gin.Context, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return 0, false
	}
	return uint(id), true
}

func (r contractRequest) input() service.ContractInput {
	return service.ContractInput{
		ContractName: *r.ContractName,
		StartDate:    *r.StartDate,
		EndDate:      *r.EndDate,
	}
}

func toContractResponse(contract model.Contract) contractResponse {
	return contractResponse{
		ID:           contract.ID,
		ContractName: contract.ContractName,
		StartDate:    contract.StartDate,
		EndDate:      contract.EndDate,
	}
}

func toContractResponses(contracts []model.Contract) []contractResponse {
	result := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		result = append(result, toContractResponse(contract))
	}
	return result
}

func toPointResponses(points []model.Point) []pointResponse {
	result := make([]pointResponse, 0, len(points))
	for _, point := range points {
		result = append(result, pointResponse{
			ID:         point.ID,
			ContractID: point.ContractID,
			Point:      point.Point,
			Value:      point.Value,
		})
	}
	return result
}
