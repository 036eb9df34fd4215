package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kgp-ops/wpr-portal/internal/domain"
	"github.com/kgp-ops/wpr-portal/internal/http/response"
	"github.com/kgp-ops/wpr-portal/internal/services"
)

type FormHandler struct {
	formService services.FormService
}

func NewFormHandler(formService services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// Bootstrap returns everything the entry form needs: employee names, option
// sets, and whether the form is currently disabled.
func (fh *FormHandler) Bootstrap(c *gin.Context) {
	boot, err := fh.formService.Bootstrap(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, boot)
}

// Employee returns the master-row fields copied onto a permit for the named
// employee.
func (fh *FormHandler) Employee(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_name", errors.New("query parameter name is required"))
		return
	}
	det, err := fh.formService.EmployeeDetails(c.Request.Context(), name)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, det)
}

func (fh *FormHandler) Submit(c *gin.Context) {
	var req domain.PermitSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := fh.formService.Submit(c.Request.Context(), req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
