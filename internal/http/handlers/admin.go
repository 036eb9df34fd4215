package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kgp-ops/wpr-portal/internal/http/response"
	"github.com/kgp-ops/wpr-portal/internal/services"
	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Records returns one page of the filtered sheet.
func (ah *AdminHandler) Records(c *gin.Context) {
	q, err := parseBrowseQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	page, err := ah.adminService.Browse(c.Request.Context(), q)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// Stats aggregates one column of the sheet. The by parameter accepts either a
// display header or its canonical form.
func (ah *AdminHandler) Stats(c *gin.Context) {
	key := tabular.NormalizeHeader(c.Query("by"))
	res, err := ah.adminService.Stats(c.Request.Context(), key)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// Export streams the filtered sheet back as a download in the backing file's
// own format.
func (ah *AdminHandler) Export(c *gin.Context) {
	q, err := parseBrowseQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.adminService.Export(c.Request.Context(), q)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	c.Data(http.StatusOK, res.ContentType, res.Content)
}

// Activity returns recent submission and export audit events.
func (ah *AdminHandler) Activity(c *gin.Context) {
	limit, err := parseIntParam(c.Query("limit"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("limit: %w", err))
		return
	}
	res, err := ah.adminService.Activity(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func parseBrowseQuery(c *gin.Context) (services.BrowseQuery, error) {
	q := services.BrowseQuery{
		Employee:   c.Query("employee"),
		WorkArea:   c.Query("work_area"),
		Discipline: c.Query("discipline"),
		PermitType: c.Query("permit_type"),
		Shift:      c.Query("shift"),
	}
	var err error
	if q.From, err = parseDateParam(c.Query("from")); err != nil {
		return q, fmt.Errorf("from: %w", err)
	}
	if q.To, err = parseDateParam(c.Query("to")); err != nil {
		return q, fmt.Errorf("to: %w", err)
	}
	if q.Page, err = parseIntParam(c.Query("page")); err != nil {
		return q, fmt.Errorf("page: %w", err)
	}
	if q.Size, err = parseIntParam(c.Query("size")); err != nil {
		return q, fmt.Errorf("size: %w", err)
	}
	return q, nil
}

func parseDateParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseIntParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
