package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestContentSimilarity(t *testing.T) {
	// 同价拿满价格加成
	assert.Equal(t, 1.0, ContentSimilarity(ptr(100), ptr(100)))

	// 价差一半只拿一半加成
	assert.InDelta(t, 0.85, ContentSimilarity(ptr(100), ptr(50)), 0.0001)

	// 价格未知时只有类目基础分
	assert.Equal(t, 0.7, ContentSimilarity(nil, ptr(50)))
	assert.Equal(t, 0.7, ContentSimilarity(ptr(100), nil))
	assert.Equal(t, 0.7, ContentSimilarity(ptr(0), ptr(50)))
}

func TestContentSimilarityClamped(t *testing.T) {
	// 价差远超源价时加成为负，结果钳制在 [0,1]
	score := ContentSimilarity(ptr(10), ptr(1000))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
