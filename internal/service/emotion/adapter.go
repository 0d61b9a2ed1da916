package emotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/observability"
)

// UnknownLabel 是分类器不可用时返回的占位标签。
const UnknownLabel = "unknown"

var errEmptyLabel = errors.New("classifier returned empty label")

// Prediction 是后端模型给出的单标签分类结果。
type Prediction struct {
	Label string
	Score float64
}

// Model 是外部情绪分类能力的边界。
type Model interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// ConcurrencySafe 由可并发调用的后端实现；未实现的后端会被串行调用。
type ConcurrencySafe interface {
	ConcurrencySafe() bool
}

// Loader 构建后端模型，可能因缺少凭证或网络问题失败。
type Loader func(ctx context.Context) (Model, error)

// Status 描述分类器句柄的初始化状态。
type Status string

const (
	StatusPending  Status = "pending"
	StatusReady    Status = "ready"
	StatusDegraded Status = "degraded"
)

// Adapter 懒加载并缓存分类模型。首次调用时最多初始化一次，失败结果同样被缓存，
// 之后所有调用直接返回 ("unknown", 0)。
type Adapter struct {
	provider string
	loader   Loader
	logger   *zap.Logger
	metrics  *observability.Metrics

	once   sync.Once
	model  Model
	serial bool
	callMu sync.Mutex
	status atomic.Value
}

// NewAdapter 创建分类适配器，不会立即加载模型。
func NewAdapter(provider string, loader Loader, logger *zap.Logger, metrics *observability.Metrics) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{
		provider: provider,
		loader:   loader,
		logger:   logger.Named("classifier"),
		metrics:  metrics,
	}
	a.status.Store(StatusPending)
	return a
}

// Provider 返回后端名称。
func (a *Adapter) Provider() string {
	return a.provider
}

// Status 返回当前初始化状态。
func (a *Adapter) Status() Status {
	return a.status.Load().(Status)
}

// Classify 返回情绪标签与 0~1 的置信度。任何失败都降级为 ("unknown", 0)。
func (a *Adapter) Classify(ctx context.Context, text string) (string, float64) {
	model := a.load(ctx)
	if model == nil {
		a.metrics.IncDegraded("unavailable")
		return UnknownLabel, 0
	}

	start := time.Now()
	pred, err := a.invoke(ctx, model, text)
	a.metrics.ObserveClassifierLatency(time.Since(start))
	if err != nil {
		a.logger.Error("classification failed, returning unknown", zap.Error(err))
		a.metrics.IncDegraded("invoke_failed")
		return UnknownLabel, 0
	}

	label, score, err := normalize(pred)
	if err != nil {
		a.logger.Warn("classifier output rejected, returning unknown",
			zap.String("label", pred.Label),
			zap.Float64("score", pred.Score),
			zap.Error(err))
		a.metrics.IncDegraded("invalid_output")
		return UnknownLabel, 0
	}
	return label, score
}

func (a *Adapter) load(ctx context.Context) Model {
	a.once.Do(func() {
		// 初始化不随触发它的请求一起被取消。
		model, err := a.safeLoad(context.WithoutCancel(ctx))
		if err != nil || model == nil {
			if err == nil {
				err = errors.New("loader returned nil model")
			}
			a.logger.Error("failed to load emotion classifier", zap.String("provider", a.provider), zap.Error(err))
			a.metrics.IncInit(a.provider, "failed")
			a.status.Store(StatusDegraded)
			return
		}

		a.model = model
		if cs, ok := model.(ConcurrencySafe); !ok || !cs.ConcurrencySafe() {
			a.serial = true
		}
		a.logger.Info("emotion classifier loaded", zap.String("provider", a.provider), zap.Bool("serialized", a.serial))
		a.metrics.IncInit(a.provider, "ok")
		a.status.Store(StatusReady)
	})
	return a.model
}

func (a *Adapter) safeLoad(ctx context.Context) (model Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panic: %v\n%s", r, debug.Stack())
		}
	}()
	if a.loader == nil {
		return nil, errors.New("no classifier loader configured")
	}
	return a.loader(ctx)
}

func (a *Adapter) invoke(ctx context.Context, model Model, text string) (pred Prediction, err error) {
	if a.serial {
		a.callMu.Lock()
		defer a.callMu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panic: %v\n%s", r, debug.Stack())
		}
	}()
	return model.Classify(ctx, text)
}

// normalize 统一标签格式，并把置信度限制在 [0,1]。
func normalize(pred Prediction) (string, float64, error) {
	label := strings.ToLower(strings.TrimSpace(pred.Label))
	if label == "" {
		return "", 0, errEmptyLabel
	}
	if math.IsNaN(pred.Score) || math.IsInf(pred.Score, 0) {
		return "", 0, fmt.Errorf("non-finite score %v", pred.Score)
	}
	return label, math.Max(0, math.Min(1, pred.Score)), nil
}
