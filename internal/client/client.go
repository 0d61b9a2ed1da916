package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
	model "github.com/zhouzirui/support-line/internal/model/support"
)

// ErrNotConfigured 表示尚未设置服务端地址，此时不会发起任何网络请求。
var ErrNotConfigured = errors.New("server URL not configured")

// CrisisWarning 在最近一条助手回复为高风险时展示。
const CrisisWarning = "Please consider reaching out to emergency services or a crisis helpline."

// Contact 是一条紧急联系方式。
type Contact struct {
	Service string
	Number  string
}

// EmergencyContacts 按展示顺序列出紧急联系方式。
var EmergencyContacts = []Contact{
	{Service: "National Suicide Prevention Lifeline", Number: "988"},
	{Service: "Crisis Text Line", Number: "Text HOME to 741741"},
	{Service: "Emergency Services", Number: "911"},
}

// Role 区分对话中的发言方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 是本地对话记录中的一条消息。
type Turn struct {
	Timestamp time.Time
	Role      Role
	Content   string
	RiskLevel risk.Level
}

// StatusError 表示服务端返回了非 200 状态码。
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// Client 向接收端发送求助消息并维护本地对话记录。
type Client struct {
	httpClient *http.Client
	clientID   string
	now        func() time.Time

	mu         sync.RWMutex
	baseURL    string
	transcript []Turn
}

// New 创建客户端并生成本进程唯一的 client_id。baseURL 可以为空，稍后通过 Connect 设置。
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		clientID:   uuid.NewString(),
		now:        time.Now,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ClientID 返回本进程的客户端标识。
func (c *Client) ClientID() string {
	return c.clientID
}

// Connect 根据主机与端口设置服务端地址。
func (c *Client) Connect(host string, port int) error {
	host = strings.TrimSpace(host)
	if host == "" {
		return errors.New("server host is required")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port %d", port)
	}
	c.SetBaseURL("http://" + net.JoinHostPort(host, strconv.Itoa(port)))
	return nil
}

// SetBaseURL 直接设置服务端地址。
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	c.mu.Unlock()
}

// BaseURL 返回当前服务端地址，未连接时为空。
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Connected reports whether a server URL is configured.
func (c *Client) Connected() bool {
	return c.BaseURL() != ""
}

// Send 发送一条消息。成功时追加用户与助手两条记录；失败时对话记录保持不变。
func (c *Client) Send(ctx context.Context, message string) error {
	baseURL := c.BaseURL()
	if baseURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(model.Request{Message: message, ClientID: c.clientID})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/support", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	var body model.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	timestamp := c.now()
	c.mu.Lock()
	c.transcript = append(c.transcript,
		Turn{Timestamp: timestamp, Role: RoleUser, Content: message},
		Turn{Timestamp: timestamp, Role: RoleAssistant, Content: body.Message, RiskLevel: body.RiskLevel},
	)
	c.mu.Unlock()
	return nil
}

// Transcript 返回对话记录的副本。
func (c *Client) Transcript() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]Turn, len(c.transcript))
	copy(copied, c.transcript)
	return copied
}

// NeedsCrisisWarning reports whether the most recent assistant turn is high risk.
func (c *Client) NeedsCrisisWarning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].Role == RoleAssistant {
			return c.transcript[i].RiskLevel == risk.High
		}
	}
	return false
}
