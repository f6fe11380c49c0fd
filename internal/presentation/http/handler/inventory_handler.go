package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
)

// Inventory is a placeholder until stock tracking exists
func Inventory(c *gin.Context) {
	response.OK(c, "Inventory management is coming soon", gin.H{"available": false})
}
