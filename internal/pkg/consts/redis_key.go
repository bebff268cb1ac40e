package consts

const (
	StoreAPIKeyKey     = "store:apikey:"
	ProfileDirtyKey    = "profile:dirty"
	TrendingWindowKey  = "trending:window:"
	SimilarProductsKey = "similar:products:"
	RecProfileKey      = "rec:profile:"
)

const (
	RecommendLock = "recommend:lock:"
	TrendingLock  = "trending:lock:"
	SimilarLock   = "similar:lock:"
)
