package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	model "github.com/zhouzirui/support-line/internal/model/support"
	"github.com/zhouzirui/support-line/internal/observability"
	supportService "github.com/zhouzirui/support-line/internal/service/support"
	"github.com/zhouzirui/support-line/pkg/utils"
)

// maxBodyBytes 限制请求体大小，超出按无效 JSON 处理。
const maxBodyBytes = 1 << 20

// Handler 求助接口的HTTP处理器
type Handler struct {
	svc     *supportService.Service
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New 创建求助处理器
func New(svc *supportService.Service, logger *zap.Logger, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("support_handler"), metrics: metrics}
}

// RegisterRoutes 注册求助相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/support", h.handleSupport)
}

// handleSupport 校验请求、分类情绪并返回回复。
//
// 校验顺序：请求体缺失、无法解析、不是对象或是空对象 {} 时返回 "No JSON data received"；
// 之后 message 缺失、不是字符串或为空时返回 "Empty message"。
func (h *Handler) handleSupport(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("error processing request",
				zap.Error(fmt.Errorf("panic: %v", rec)),
				zap.Stack("stack"))
			h.respondError(w, http.StatusInternalServerError, model.ErrInternalServer)
		}
	}()

	var payload map[string]json.RawMessage
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil || len(payload) == 0 {
		h.logger.Info("rejected request without json data", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, model.ErrNoJSONData)
		return
	}

	message := stringField(payload, "message")
	if message == "" {
		h.logger.Info("rejected request with empty message")
		h.respondError(w, http.StatusBadRequest, model.ErrEmptyMessage)
		return
	}

	resp, _ := h.svc.Handle(r.Context(), message, stringField(payload, "client_id"))

	h.metrics.IncRequest(strconv.Itoa(http.StatusOK))
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.metrics.IncRequest(strconv.Itoa(status))
	utils.RespondJSON(w, status, model.ErrorResponse{Error: message})
}

// stringField 读取字符串字段；字段缺失、为 null 或不是字符串时返回空串。
func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
