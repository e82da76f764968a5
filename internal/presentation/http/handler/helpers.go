package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	cashierIDVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	cashierID, ok := cashierIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &cashierID
}

// GetCashierName extracts the cashier name from the Gin context
func GetCashierName(c *gin.Context) string {
	name, exists := c.Get("cashier_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetBranchID extracts the branch ID from the Gin context
func GetBranchID(c *gin.Context) string {
	branchID, exists := c.Get("branch_id")
	if !exists {
		return ""
	}
	return branchID.(string)
}

// sessionIDParam parses the :session_id path parameter
func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
