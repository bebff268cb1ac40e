package api

import (
	"Vitrine/internal/api/middleware"
	"Vitrine/internal/pkg/logger"
	"Vitrine/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, storeSvc service.StoreService) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 店铺侧接口全部走 API Key 认证
		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.APIKeyMiddleware(storeSvc))
		{
			authGroup.POST("/events", group.EventHandler.Ingest)

			authGroup.GET("/recommendations", group.RecommendationHandler.Get)
			authGroup.POST("/recommendations/:recommendation_id/impression", group.RecommendationHandler.RecordImpression)
			authGroup.POST("/recommendations/:recommendation_id/click", group.RecommendationHandler.RecordClick)

			authGroup.GET("/trending", group.TrendingHandler.Get)

			authGroup.GET("/products/:product_id/similar", group.SimilarHandler.Get)

			authGroup.POST("/users", group.UserHandler.Create)
			authGroup.GET("/users/:user_id/profile", group.UserHandler.GetBehaviorProfile)
			authGroup.GET("/users/:user_id/rec-profile", group.UserHandler.GetRecommendationProfile)
		}
	}

	return r
}
