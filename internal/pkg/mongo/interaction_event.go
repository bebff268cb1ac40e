package mongo

import "time"

// InteractionEvent MongoDB 原始互动事件归档模型
// MySQL 只保留聚合所需字段，完整事件负载原样落在这里
type InteractionEvent struct {
	ID              string                 `bson:"_id,omitempty" json:"id"`              // MongoDB 自动生成的 ObjectID
	StoreID         uint64                 `bson:"store_id" json:"storeId"`              // 关联 MySQL 的店铺 ID
	UserExternalID  string                 `bson:"user_external_id" json:"userExternalId"`
	SessionID       string                 `bson:"session_id,omitempty" json:"sessionId"`
	ProductID       string                 `bson:"product_id" json:"productId"`          // 店铺侧商品外部 ID
	InteractionType string                 `bson:"interaction_type" json:"interactionType"`
	Metadata        map[string]interface{} `bson:"metadata,omitempty" json:"metadata"`   // 原始事件负载
	OccurredAt      time.Time              `bson:"occurred_at" json:"occurredAt"`
	ReceivedAt      time.Time              `bson:"received_at" json:"receivedAt"`
}
