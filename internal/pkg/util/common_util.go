package util

import "strconv"

// StrSliceToUInt64Slice 字符串切片转 uint64 切片，遇到非法值直接返回错误
func StrSliceToUInt64Slice(values []string) ([]uint64, error) {
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

// PtrFloat64 用于将 float64 转换为 *float64
func PtrFloat64(f float64) *float64 {
	return &f
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}
