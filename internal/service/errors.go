package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid           = errors.New("参数错误")
	ErrAPIKeyInvalid          = errors.New("API Key 无效")
	ErrStoreNotFound          = errors.New("店铺不存在")
	ErrUserNotFound           = errors.New("用户不存在")
	ErrProductNotFound        = errors.New("商品不存在")
	ErrInteractionTypeInvalid = errors.New("互动类型不合法")
	ErrWindowInvalid          = errors.New("时间窗不合法")
	ErrAlgorithmInvalid       = errors.New("算法标识不合法")
	ErrRecommendationNotFound = errors.New("推荐不存在")
	ErrProfileNotFound        = errors.New("画像不存在")
	UnExpectedError           = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:           BadRequest,
	ErrAPIKeyInvalid:          Unauthorized,
	ErrStoreNotFound:          NotFound,
	ErrUserNotFound:           NotFound,
	ErrProductNotFound:        NotFound,
	ErrInteractionTypeInvalid: BadRequest,
	ErrWindowInvalid:          BadRequest,
	ErrAlgorithmInvalid:       BadRequest,
	ErrRecommendationNotFound: NotFound,
	ErrProfileNotFound:        NotFound,
	UnExpectedError:           InternalServerError,
}
