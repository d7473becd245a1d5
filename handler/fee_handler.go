package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/bill-dispute-analyzer/service"
)

// CalculateFee handles GET /fees?savings=.
func CalculateFee(c *gin.Context) {
	raw := c.Query("savings")
	savings, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(savings) || math.IsInf(savings, 0) {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("invalid savings %q", raw), nil)
		return
	}
	c.JSON(http.StatusOK, service.CalculateSmartFee(savings))
}
