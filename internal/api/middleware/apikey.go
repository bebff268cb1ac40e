package middleware

import (
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware 校验 X-API-Key 并把店铺 ID 放进请求上下文
func APIKeyMiddleware(storeSvc service.StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(consts.HeaderAPIKey)
		store, err := storeSvc.ResolveAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("store_id", store.ID)
		c.Next()
	}
}
