package http

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/simcop2387/usgromana/internal/imagemeta"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/internal/validators"
	"github.com/simcop2387/usgromana/models"
)

var errorStatusMap = map[error]int{
	ErrMissingToken:     http.StatusUnauthorized,
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrInvalidQuery:     http.StatusBadRequest,
	ErrInvalidFileType:  http.StatusBadRequest,
	ErrAdminOnly:        http.StatusForbidden,
	ErrResourceNotFound: http.StatusNotFound,

	service.ErrTokenExpired:             http.StatusUnauthorized,
	service.ErrTokenMalformed:           http.StatusUnauthorized,
	service.ErrTokenSignature:           http.StatusUnauthorized,
	service.ErrSubjectMismatch:          http.StatusUnauthorized,
	service.ErrInvalidCredentials:       http.StatusUnauthorized,
	service.ErrAdminCredentialsRequired: http.StatusForbidden,
	service.ErrGuestDisabled:            http.StatusForbidden,
	service.ErrGuestNotAllowed:          http.StatusForbidden,
	service.ErrUnknownGroup:             http.StatusBadRequest,
	service.ErrInvalidWorkflowName:      http.StatusBadRequest,
	service.ErrInvalidWorkflow:          http.StatusBadRequest,
	service.ErrWorkflowDenied:           http.StatusForbidden,

	validators.ErrInvalidUsername:    http.StatusBadRequest,
	validators.ErrReservedUsername:   http.StatusBadRequest,
	validators.ErrPasswordTooShort:   http.StatusBadRequest,
	validators.ErrPasswordNoDigit:    http.StatusBadRequest,
	validators.ErrPasswordNoSpecial:  http.StatusBadRequest,
	validators.ErrPasswordHasSpace:   http.StatusBadRequest,
	validators.ErrEmptyPassword:      http.StatusBadRequest,
	validators.ErrInvalidGroups:      http.StatusBadRequest,
	validators.ErrInvalidExpireHours: http.StatusBadRequest,
	validators.ErrUnknownAction:      http.StatusBadRequest,
	validators.ErrEmptyPrompt:        http.StatusBadRequest,
	validators.ErrInvalidScore:       http.StatusBadRequest,
	validators.ErrEmptyPath:          http.StatusBadRequest,

	store.ErrUserNotFound:     http.StatusNotFound,
	store.ErrUsernameTaken:    http.StatusConflict,
	store.ErrReservedUser:     http.StatusBadRequest,
	store.ErrLastAdmin:        http.StatusConflict,
	store.ErrPathTraversal:    http.StatusBadRequest,
	store.ErrCorruptFile:      http.StatusInternalServerError,
	store.ErrWritingFile:      http.StatusInternalServerError,
	store.ErrInvalidRoot:      http.StatusInternalServerError,
	store.ErrWorkflowNotFound: http.StatusNotFound,
	store.ErrGlobalWorkflow:   http.StatusForbidden,
	queue.ErrInvalidPrompt:    http.StatusBadRequest,
	fs.ErrNotExist:            http.StatusNotFound,

	imagemeta.ErrUnsupportedFormat: http.StatusBadRequest,
	imagemeta.ErrMalformed:         http.StatusUnprocessableEntity,
	imagemeta.ErrSegmentTooLarge:   http.StatusUnprocessableEntity,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and replies with the mapped status. Internal failures
// are not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
		message = http.StatusText(status)
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

func writeDenial(w http.ResponseWriter, denial models.Denial) {
	utils.WriteJSON(w, models.ErrorResponse{
		Error:      denial.Message,
		Code:       denial.Code,
		Role:       denial.Role,
		Permission: denial.Permission,
	}, http.StatusForbidden)
}
