package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bruno-duarte/afinpe-api/internal/planning"
	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
)

// PlanningHandler exposes the monthly planning aggregation endpoints.
type PlanningHandler struct {
	Service *planning.Service
}

func NewPlanningHandler(svc *planning.Service) *PlanningHandler {
	return &PlanningHandler{Service: svc}
}

// parseScope reads user/month/year/currency from the query string.
// user, month and year are required; a missing one is a client error
// regardless of the other parameters.
func parseScope(c *gin.Context) (userID string, month, year int, currencyID string, ok bool) {
	userID = c.Query("user")
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	currencyID = c.Query("currency")

	if userID == "" || monthStr == "" || yearStr == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "required parameters: user, month, year")
		return "", 0, 0, "", false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be an integer")
		return "", 0, 0, "", false
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be 1-12")
		return "", 0, 0, "", false
	}

	year, err = strconv.Atoi(yearStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "year must be an integer")
		return "", 0, 0, "", false
	}

	return userID, month, year, currencyID, true
}

// GetSummary handles GET /planning/summary.
func (h *PlanningHandler) GetSummary(c *gin.Context) {
	userID, month, year, currencyID, ok := parseScope(c)
	if !ok {
		return
	}

	summary, err := h.Service.Summarize(userID, month, year, currencyID)
	if errors.Is(err, planning.ErrNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "planning not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "summary failed")
		return
	}

	util.JSON(c, summary)
}

// GetCategories handles GET /planning/categories.
func (h *PlanningHandler) GetCategories(c *gin.Context) {
	userID, month, year, currencyID, ok := parseScope(c)
	if !ok {
		return
	}

	lines, err := h.Service.Categories(userID, month, year, currencyID)
	if errors.Is(err, planning.ErrNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "planning not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "breakdown failed")
		return
	}

	util.JSON(c, lines)
}
