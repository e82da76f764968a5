package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
	"github.com/dokanlab/pos-terminal-api/pkg/pagination"
)

// SalesHandler handles sale journal queries
type SalesHandler struct {
	sales *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(sales *service.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// List returns the branch's submission journal, newest first
func (h *SalesHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleRecordFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseSaleStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// Include the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	result, err := h.sales.ListSales(c.Request.Context(), GetBranchID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
