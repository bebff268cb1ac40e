package cron

import (
	"Vitrine/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	trendingJob        *job.TrendingJob
	similarityJob      *job.SimilarityJob
	behaviorProfileJob *job.BehaviorProfileJob
	gcJob              *job.RecommendationGCJob
}

func NewCronManager(
	trendingJob *job.TrendingJob,
	similarityJob *job.SimilarityJob,
	behaviorProfileJob *job.BehaviorProfileJob,
	gcJob *job.RecommendationGCJob,
) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		trendingJob:        trendingJob,
		similarityJob:      similarityJob,
		behaviorProfileJob: behaviorProfileJob,
		gcJob:              gcJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 10m", s.trendingJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.similarityJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 5m", s.behaviorProfileJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.gcJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
