package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sardaar2003/fortigatex-sub001/internal/adapters"
	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/usecase"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/ctxmeta"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

// envelope: uniform response body for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, code int, message string, data any) {
	c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, envelope{Success: false, Message: message})
}

func failWith(c *gin.Context, code int, message string, data any) {
	c.JSON(code, envelope{Success: false, Message: message, Data: data})
}

// submitOrder returns the POST handler for one project. The body is
// the shared submission shape; the project and the authenticated user
// come from the route and the context, never from the payload.
func (h *Handler) submitOrder(project domain.Project) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub domain.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		sub.Project = project
		if userID, ufound := ctxmeta.UserIDFromContext(c.Request.Context()); ufound {
			sub.UserID = userID
		}

		ctx := c.Request.Context()
		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}

		order, err := h.processor.Process(ctx, &sub)
		switch {
		case err == nil:
			ok(c, http.StatusCreated, "order accepted", order)
		case errors.Is(err, validate.ErrInvalidSubmission),
			errors.Is(err, usecase.ErrRejected),
			errors.Is(err, usecase.ErrUnknownProject):
			// Business rejection. When the pipeline produced a record the
			// caller gets it back alongside the reason.
			failWith(c, http.StatusBadRequest, err.Error(), order)
		case errors.Is(err, adapters.ErrVendorUnavailable),
			errors.Is(err, adapters.ErrUnmappedStatus):
			h.log.Errorf(ctx, "submit failed project=%s session=%s err=%v",
				project, sub.SessionID, err)
			fail(c, http.StatusInternalServerError, "order validation unavailable")
		default:
			h.log.Errorf(ctx, "submit failed project=%s session=%s err=%v",
				project, sub.SessionID, err)
			fail(c, http.StatusInternalServerError, "internal server error")
		}
	}
}

type emailVerifyRequest struct {
	Email string `json:"email" binding:"required"`
}

// verifyEmail runs the standalone mailbox eligibility gate.
func (h *Handler) verifyEmail(c *gin.Context) {
	var req emailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	accepted, reason, err := h.emails.Verify(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "email verify failed err=%v", err)
		fail(c, http.StatusInternalServerError, "email verification unavailable")
		return
	}
	if !accepted {
		fail(c, http.StatusBadRequest, "email rejected: "+reason)
		return
	}
	ok(c, http.StatusOK, "email accepted", gin.H{"result": reason})
}
