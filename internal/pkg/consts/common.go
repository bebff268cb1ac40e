package consts

const (
	HeaderAPIKey    = "X-API-Key"
	HeaderSessionID = "X-Session-ID"
)

const (
	AnonymousUserID = 0
)
