package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends data as the bare JSON body, the way the marketplace API does
func JSONResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// JSONDetail sends an error payload in the {"detail": ...} shape used by auth endpoints
func JSONDetail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

// JSONError sends an error payload in the {"error": ...} shape used by business endpoints
func JSONError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
