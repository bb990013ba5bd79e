package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
)

type ErrorEnvelope struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: msg,
		Code:  code,
	})
}

// RespondAppError maps a service error onto the HTTP envelope via the
// apierr taxonomy. Internal error messages are hidden outside debug mode.
func RespondAppError(c *gin.Context, err error) {
	ae := apierr.From(err)
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError && gin.Mode() != gin.DebugMode {
		msg = "Internal server error"
	}
	c.JSON(ae.Status, ErrorEnvelope{
		Error: msg,
		Code:  ae.Code,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// parseUUIDParam validates a path parameter before it reaches any
// query. On failure it writes the 400 envelope and reports !ok.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return uuid.Nil, false
	}
	return id, true
}
