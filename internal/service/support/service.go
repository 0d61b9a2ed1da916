package support

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
	model "github.com/zhouzirui/support-line/internal/model/support"
	"github.com/zhouzirui/support-line/internal/observability"
	"github.com/zhouzirui/support-line/internal/service/sessionlog"
)

// Classifier 是情绪分类适配器的最小接口，失败时自行降级，不返回错误。
type Classifier interface {
	Classify(ctx context.Context, text string) (string, float64)
}

// Service 持有会话日志与分类器句柄，处理一次求助请求的完整流程。
type Service struct {
	classifier Classifier
	log        *sessionlog.Log
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewService 创建求助服务。
func NewService(classifier Classifier, log *sessionlog.Log, logger *zap.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		classifier: classifier,
		log:        log,
		logger:     logger.Named("support"),
		metrics:    metrics,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Log 返回会话日志，供仪表盘读取快照。
func (s *Service) Log() *sessionlog.Log {
	return s.log
}

// Classifier 返回底层分类器。
func (s *Service) Classifier() Classifier {
	return s.classifier
}

// Handle 分类消息、套用风险策略并记录交互。message 必须已通过校验。
func (s *Service) Handle(ctx context.Context, message, clientID string) (model.Response, model.InteractionRecord) {
	clientID = NormalizeClientID(clientID)
	s.logger.Info("received message", zap.String("client_id", clientID))

	emotion, score := s.classifier.Classify(ctx, message)
	assessment := risk.Classify(emotion, score)

	record := s.log.Append(model.InteractionRecord{
		Timestamp: s.now(),
		ClientID:  clientID,
		Message:   message,
		Emotion:   emotion,
		Score:     score,
		Response:  assessment.Message,
		RiskLevel: assessment.Level,
	})

	s.metrics.IncRisk(string(assessment.Level))
	s.metrics.SetSessionLogRecords(s.log.Len())
	if assessment.Level == risk.High {
		s.logger.Warn("high risk message",
			zap.String("client_id", clientID),
			zap.String("emotion", emotion),
			zap.Float64("score", score))
	}

	return model.Response{Message: assessment.Message, RiskLevel: assessment.Level}, record
}

// NormalizeClientID 把缺省或空白的 client_id 替换为 "unknown"。
func NormalizeClientID(clientID string) string {
	if strings.TrimSpace(clientID) == "" {
		return model.UnknownClient
	}
	return clientID
}
