package support

import (
	"time"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
)

// UnknownClient 是请求未携带 client_id 时使用的占位标识。
const UnknownClient = "unknown"

// InteractionRecord 记录一次被受理的求助请求，创建后不再修改。
type InteractionRecord struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	ClientID  string     `json:"client_id"`
	Message   string     `json:"message"`
	Emotion   string     `json:"emotion"`
	Score     float64    `json:"score"`
	Response  string     `json:"response"`
	RiskLevel risk.Level `json:"risk_level"`
}

// EmotionSample 是用于绘制情绪曲线的记录投影。
type EmotionSample struct {
	Timestamp time.Time `json:"timestamp"`
	Emotion   string    `json:"emotion"`
	Score     float64   `json:"score"`
	ClientID  string    `json:"client_id"`
}

// Sample projects the record onto its chart sample.
func (r InteractionRecord) Sample() EmotionSample {
	return EmotionSample{
		Timestamp: r.Timestamp,
		Emotion:   r.Emotion,
		Score:     r.Score,
		ClientID:  r.ClientID,
	}
}
