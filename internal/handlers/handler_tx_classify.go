package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/middleware"
)

// txClassifyHandler handles the review listing and the classification changes.
type txClassifyHandler struct {
	classificationService portssvc.ClassificationSvcFacade
}

// RegisterTxClassifyRoutes registers the review and classification routes. Mutations share
// the given limiter; a nil limiter leaves them unthrottled.
func RegisterTxClassifyRoutes(rg *gin.RouterGroup, classificationService portssvc.ClassificationSvcFacade, mutationLimiter *limiter.Limiter) {
	h := &txClassifyHandler{classificationService: classificationService}

	txc := rg.Group("/tx-classify")
	txc.GET("/unclassified/", h.listUnclassified)

	mutations := txc.Group("")
	if mutationLimiter != nil {
		mutations.Use(middleware.RateLimit(mutationLimiter))
	}
	mutations.POST("/classify/", h.classify)
	mutations.POST("/split/", h.split)
	mutations.POST("/reclassify/", h.reclassify)
	mutations.POST("/resplit/", h.resplit)
}

func unauthorized(c *gin.Context, logger *slog.Logger) {
	logger.Error("Session not found in context")
	c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
}

// listUnclassified godoc
// @Summary List bank transactions for review
// @Description Lists non-deleted transactions of one bank account with their classification state
// @Tags tx-classify
// @Produce json
// @Param bank_account_id query int true "Bank account ID"
// @Param type query string false "credit, debit or both"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param min_amount query string false "Minimum absolute amount"
// @Param max_amount query string false "Maximum absolute amount"
// @Param unclassified_only query string false "1 (default) or 0"
// @Param include_children query string false "Attach active classifications"
// @Param flatten_splits query string false "Replace split parents by one row per child"
// @Param limit query int false "Page size (1-500, default 200)"
// @Param offset query int false "Row offset"
// @Success 200 {object} dto.ListReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /tx-classify/unclassified/ [get]
func (h *txClassifyHandler) listUnclassified(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}

	var params dto.ListReviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, logger, err)
		return
	}
	// A flag sent without a value is off; only an absent flag takes its default.
	for key, flag := range map[string]*string{
		"unclassified_only": &params.UnclassifiedOnly,
		"include_children":  &params.IncludeChildren,
		"flatten_splits":    &params.FlattenSplits,
	} {
		if v, present := c.GetQuery(key); present && v == "" {
			*flag = "0"
		}
	}

	resp, err := h.classificationService.ListReviewRows(c.Request.Context(), session, params)
	if err != nil {
		writeServiceError(c, logger, err, "List review rows")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// classify godoc
// @Summary Classify a transaction
// @Description Creates the single classification of an unclassified transaction. The amount must equal the transaction amount.
// @Tags tx-classify
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Classification"
// @Success 201 {object} dto.ClassificationCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /tx-classify/classify/ [post]
func (h *txClassifyHandler) classify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}

	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.Int64("bank_transaction_id", req.BankTransactionID))
	resp, err := h.classificationService.Classify(c.Request.Context(), session, req)
	if err != nil {
		writeServiceError(c, logger, err, "Classify")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// split godoc
// @Summary Split a transaction
// @Description Divides an unclassified transaction into several classifications whose amounts add up to the transaction amount
// @Tags tx-classify
// @Accept json
// @Produce json
// @Param request body dto.SplitRequest true "Split rows"
// @Success 201 {object} dto.ChildrenCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /tx-classify/split/ [post]
func (h *txClassifyHandler) split(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}

	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.Int64("bank_transaction_id", req.BankTransactionID), slog.Int("rows", len(req.Rows)))
	resp, err := h.classificationService.Split(c.Request.Context(), session, req)
	if err != nil {
		writeServiceError(c, logger, err, "Split")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// reclassify godoc
// @Summary Reclassify a classification
// @Description Replaces an active classification by a new one with the same amount
// @Tags tx-classify
// @Accept json
// @Produce json
// @Param request body dto.ReclassifyRequest true "New metadata"
// @Success 201 {object} dto.ClassificationCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /tx-classify/reclassify/ [post]
func (h *txClassifyHandler) reclassify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}

	var req dto.ReclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("classification_id", req.ClassificationID))
	resp, err := h.classificationService.Reclassify(c.Request.Context(), session, req)
	if err != nil {
		writeServiceError(c, logger, err, "Reclassify")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// resplit godoc
// @Summary Re-split a classification
// @Description Divides one active classification into several whose amounts add up to its amount. Sibling classifications are kept.
// @Tags tx-classify
// @Accept json
// @Produce json
// @Param request body dto.ResplitRequest true "Split rows"
// @Success 201 {object} dto.ChildrenCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /tx-classify/resplit/ [post]
func (h *txClassifyHandler) resplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}

	var req dto.ResplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("classification_id", req.ClassificationID), slog.Int("rows", len(req.Rows)))
	resp, err := h.classificationService.Resplit(c.Request.Context(), session, req)
	if err != nil {
		writeServiceError(c, logger, err, "Resplit")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
