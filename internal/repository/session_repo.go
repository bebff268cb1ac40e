package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SessionStats 行为画像重算需要的会话聚合
type SessionStats struct {
	Count       int64
	AvgDuration float64
	FirstStart  *time.Time
	LastStart   *time.Time
}

type SessionRepo interface {
	GetBySessionID(ctx context.Context, storeID uint64, sessionID string) (*model.UserSession, error)
	Create(ctx context.Context, session *model.UserSession) error
	UpdateMetrics(ctx context.Context, session *model.UserSession) error
	Stats(ctx context.Context, storeID, userID uint64) (*SessionStats, error)
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &sessionRepoImpl{db: db}
}

func (r *sessionRepoImpl) GetBySessionID(ctx context.Context, storeID uint64, sessionID string) (*model.UserSession, error) {
	var session model.UserSession
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND session_id = ?", storeID, sessionID).
		Order("start_time DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepoImpl) Create(ctx context.Context, session *model.UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepoImpl) UpdateMetrics(ctx context.Context, session *model.UserSession) error {
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"page_views":         session.PageViews,
			"products_viewed":    session.ProductsViewed,
			"total_interactions": session.TotalInteractions,
			"added_to_cart":      session.AddedToCart,
			"purchased":          session.Purchased,
			"total_value":        session.TotalValue,
			"end_time":           session.EndTime,
			"duration_seconds":   session.DurationSeconds,
		}).Error
}

func (r *sessionRepoImpl) Stats(ctx context.Context, storeID, userID uint64) (*SessionStats, error) {
	var stats SessionStats
	row := r.db.WithContext(ctx).Model(&model.UserSession{}).
		Select("COUNT(*) AS count, COALESCE(AVG(duration_seconds), 0) AS avg_duration, MIN(start_time) AS first_start, MAX(start_time) AS last_start").
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Row()
	if err := row.Scan(&stats.Count, &stats.AvgDuration, &stats.FirstStart, &stats.LastStart); err != nil {
		return nil, err
	}
	return &stats, nil
}
