package config

import (
	"Vitrine/internal/model"
	"fmt"
)

// Config 配置主体
type Config struct {
	Server                   ServerConfig             `mapstructure:"server"`
	DB                       DBConfig                 `mapstructure:"database"`
	Redis                    RedisConfig              `mapstructure:"redis"`
	Mongo                    MongoConfig              `mapstructure:"mongo"`
	Logstash                 LogstashConfig           `mapstructure:"logstash"`
	Kafka                    KafkaConfig              `mapstructure:"kafka"`
	KafkaInteractionConsumer KafkaInteractionConsumer `mapstructure:"kafka_interaction_consumer"`
	Recommend                RecommendConfig          `mapstructure:"recommend"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 原始事件归档库
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaInteractionConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// CombinerWeights 混合推荐各算法权重，一次加载后视为不可变
type CombinerWeights struct {
	Collaborative float64 `mapstructure:"collaborative"`
	Content       float64 `mapstructure:"content"`
	Popularity    float64 `mapstructure:"popularity"`
	Default       float64 `mapstructure:"default"`
}

// RecommendConfig 推荐引擎配置
type RecommendConfig struct {
	Weights           CombinerWeights    `mapstructure:"weights"`
	EngagementWeights map[string]float64 `mapstructure:"engagement_weights"` // 可选覆盖，key 必须属于互动类型闭集
	TTLHours          int                `mapstructure:"ttl_hours"`
	RetentionDays     int                `mapstructure:"retention_days"`
	TrendingKeep      int                `mapstructure:"trending_keep"`
	SimilarFanout     int                `mapstructure:"similar_fanout"`
	MaxResults        int                `mapstructure:"max_results"`
}

// ApplyDefaults 未配置项回落到源系统的启发式常量
func (c *RecommendConfig) ApplyDefaults() {
	if c.Weights.Collaborative == 0 {
		c.Weights.Collaborative = 0.40
	}
	if c.Weights.Content == 0 {
		c.Weights.Content = 0.35
	}
	if c.Weights.Popularity == 0 {
		c.Weights.Popularity = 0.25
	}
	if c.Weights.Default == 0 {
		c.Weights.Default = 0.10
	}
	if c.TTLHours == 0 {
		c.TTLHours = 24
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = 30
	}
	if c.TrendingKeep == 0 {
		c.TrendingKeep = 50
	}
	if c.SimilarFanout == 0 {
		c.SimilarFanout = 20
	}
	if c.MaxResults == 0 {
		c.MaxResults = 10
	}
}

// Validate 启动期拒绝非法配置
func (c *RecommendConfig) Validate() error {
	for key := range c.EngagementWeights {
		if !model.IsInteractionType(key) {
			return fmt.Errorf("recommend.engagement_weights: unknown interaction type %q", key)
		}
	}
	if c.Weights.Collaborative < 0 || c.Weights.Content < 0 || c.Weights.Popularity < 0 || c.Weights.Default < 0 {
		return fmt.Errorf("recommend.weights: weights must be non-negative")
	}
	if c.TTLHours < 0 || c.RetentionDays < 0 || c.TrendingKeep <= 0 || c.SimilarFanout <= 0 || c.MaxResults <= 0 {
		return fmt.Errorf("recommend: limits must be positive")
	}
	return nil
}
