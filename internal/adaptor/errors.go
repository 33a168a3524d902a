package adaptor

import (
	"context"
	"errors"
	"net/http"

	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrMissingField),
		errors.Is(err, usecase.ErrInvalidPhoneNumber),
		errors.Is(err, usecase.ErrUnsupportedMethod):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrGatewayDeclined):
		log.Info(operation+" failed - declined", zap.Error(err))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrAttemptInProgress),
		errors.Is(err, usecase.ErrAttemptClosed),
		errors.Is(err, usecase.ErrAlreadySettled),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrDistrictExists),
		errors.Is(err, usecase.ErrDistrictInUse):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" abandoned by client", zap.Error(err))
		utils.ResponseJSON(w, http.StatusRequestTimeout, false, "Request abandoned", nil, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
