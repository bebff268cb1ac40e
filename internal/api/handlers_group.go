package api

import "Vitrine/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	EventHandler          *handler.EventHandler
	RecommendationHandler *handler.RecommendationHandler
	TrendingHandler       *handler.TrendingHandler
	SimilarHandler        *handler.SimilarHandler
	UserHandler           *handler.UserHandler
}
