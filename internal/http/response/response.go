package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFailure renders any service error through FromError.
func RespondFailure(c *gin.Context, err error) {
	ae := FromError(err)
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondError(c, ae.Status, ae.Code, ae)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// FromError translates service failures into HTTP errors. Barter failures
// answer with their kind as the code; other aggregate failures with the
// aggregate code. Server-side failures never leak their cause.
func FromError(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	msg := domainagg.MessageOf(err)
	if f, ok := barter.AsFailure(err); ok {
		return apierr.New(kindStatus(f.Kind), string(f.Kind), plain(msg))
	}
	code := domainagg.CodeOf(err)
	status := codeStatus(code)
	if status >= http.StatusInternalServerError {
		if code == "" {
			code = domainagg.CodeInternal
		}
		msg = "internal error"
		if code == domainagg.CodeRetryable {
			msg = "temporarily unavailable, retry the request"
		}
	}
	return apierr.New(status, string(code), plain(msg))
}

func kindStatus(kind barter.Kind) int {
	switch kind {
	case barter.KindUnknownActor, barter.KindUnknownItemType:
		return http.StatusNotFound
	case barter.KindConcurrentModification:
		return http.StatusConflict
	default:
		// duplicate_rebel answers 400 like every other rejected input.
		return http.StatusBadRequest
	}
}

func codeStatus(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation, domainagg.CodePreconditionFailed:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type plainError string

func (e plainError) Error() string { return string(e) }

func plain(msg string) error { return plainError(msg) }
