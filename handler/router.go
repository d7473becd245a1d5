package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter registers every API route on a new gin engine.
func SetupRouter(analysis *AnalysisHandler, statements *StatementHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bill Dispute Analyzer",
		})
	})

	api := router.Group("/api/v1")
	{
		bills := api.Group("/bills")
		{
			bills.POST("/analyze", analysis.AnalyzeBill)
			bills.GET("", analysis.ListAnalyses)
			bills.GET("/:id", analysis.GetAnalysis)
			bills.GET("/:id/export", analysis.ExportAnalysis)
			bills.POST("/:id/letter", analysis.GenerateLetter)
		}

		api.POST("/statements/analyze", statements.AnalyzeStatement)
		api.GET("/fees", CalculateFee)
	}

	return router
}
