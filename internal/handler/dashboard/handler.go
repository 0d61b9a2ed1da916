package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/observability"
	"github.com/zhouzirui/support-line/internal/service/emotion"
	"github.com/zhouzirui/support-line/internal/service/sessionlog"
	"github.com/zhouzirui/support-line/pkg/utils"
)

const (
	chartWidth  = 900
	chartHeight = 400

	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
)

// ClassifierInfo exposes the adapter state shown on the dashboard.
type ClassifierInfo interface {
	Provider() string
	Status() emotion.Status
}

// Handler 渲染接收端仪表盘并推送实时记录。
type Handler struct {
	log        *sessionlog.Log
	classifier ClassifierInfo
	publicURL  string
	logger     *zap.Logger
	metrics    *observability.Metrics
	upgrader   websocket.Upgrader
}

// New 创建仪表盘处理器。classifier 可以为 nil。
func New(log *sessionlog.Log, classifier ClassifierInfo, publicURL string, logger *zap.Logger, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		log:        log,
		classifier: classifier,
		publicURL:  publicURL,
		logger:     logger.Named("dashboard"),
		metrics:    metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterPage 注册仪表盘页面
func (h *Handler) RegisterPage(r chi.Router) {
	r.Get("/", h.handlePage)
}

// RegisterRoutes 注册仪表盘 API 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.handleHistory)
	r.Get("/emotions", h.handleEmotions)
	r.Get("/feed", h.handleFeed)
}

func (h *Handler) provider() (string, emotion.Status) {
	if h.classifier == nil {
		return "none", emotion.StatusDegraded
	}
	return h.classifier.Provider(), h.classifier.Status()
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	provider, status := h.provider()
	chart := layoutChart(BuildSeries(h.log.Samples()), chartWidth, chartHeight)

	data := map[string]any{
		"Online":           true,
		"URL":              h.publicURL,
		"Provider":         provider,
		"ClassifierStatus": status,
		"Records":          h.log.All(),
		"Chart":            chart,
		"AxisBottom":       chart.Height - chart.Padding,
		"AxisRight":        chart.Width - chart.Padding,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render dashboard", zap.Error(err))
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.log.All())
}

func (h *Handler) handleEmotions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, BuildSeries(h.log.Samples()))
}

// handleFeed 通过 WebSocket 推送新追加的交互记录。
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	feed, cancel := h.log.Subscribe()
	defer cancel()

	h.metrics.AddFeedSubscribers(1)
	defer h.metrics.AddFeedSubscribers(-1)
	h.logger.Debug("feed subscriber connected", zap.String("remote", r.RemoteAddr))

	// 读循环只负责处理 pong 与关闭帧。
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case record, ok := <-feed:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(record); err != nil {
				h.logger.Debug("feed write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
