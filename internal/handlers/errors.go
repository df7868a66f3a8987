package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
)

// writeBindError reports a request body that could not be decoded or failed binding rules.
// Rule failures are keyed by json field name.
func writeBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body := gin.H{}
		for _, fe := range verrs {
			path := fieldPath(fe)
			if _, seen := body[path]; !seen {
				body[path] = []string{fieldMessage(fe)}
			}
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{typeErr.Field: []string{"Invalid value."}})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
}

// writeServiceError maps a service failure to a status code and a detail body.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		logger.Warn(action+" rejected", slog.String("field", appErr.Field), slog.String("error", appErr.Message))
		c.JSON(http.StatusBadRequest, gin.H{appErr.Field: []string{appErr.Message}})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		logger.Warn(action+" rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailOf(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(action+" target not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
	default:
		logger.Error(action+" failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
	}
}

func detailOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
