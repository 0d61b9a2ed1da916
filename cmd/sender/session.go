package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/client"
)

const helpText = `Commands:
  /connect host:port  connect to a support receiver
  /history            show the conversation so far
  /help               show this help
  /quit               exit`

// session 驱动行式终端对话。
type session struct {
	client *client.Client
	out    io.Writer
	logger *zap.Logger
}

func newSession(c *client.Client, out io.Writer, logger *zap.Logger) *session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &session{client: c, out: out, logger: logger}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	s.banner()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if quit := s.handleLine(ctx, scanner.Text()); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *session) banner() {
	fmt.Fprintln(s.out, "Mental Health Support Chat")
	fmt.Fprintln(s.out, "If you are in immediate danger, please reach out now.")
	client.RenderContacts(s.out)
	s.status()
	fmt.Fprintln(s.out, helpText)
}

func (s *session) status() {
	if s.client.Connected() {
		fmt.Fprintf(s.out, "Status: connected to %s\n", s.client.BaseURL())
		return
	}
	fmt.Fprintln(s.out, "Status: not connected (use /connect host:port)")
}

// handleLine 处理一行输入，返回 true 表示退出。
func (s *session) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "/") {
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "/quit", "/exit":
			return true
		case "/help":
			fmt.Fprintln(s.out, helpText)
		case "/history":
			turns := s.client.Transcript()
			if len(turns) == 0 {
				fmt.Fprintln(s.out, "No messages yet.")
				return false
			}
			client.RenderTranscript(s.out, turns)
		case "/connect":
			host, port, err := parseHostPort(arg)
			if err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
				return false
			}
			if err := s.client.Connect(host, port); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
				return false
			}
			s.status()
		default:
			fmt.Fprintf(s.out, "Unknown command %q, try /help\n", cmd)
		}
		return false
	}

	s.send(ctx, line)
	return false
}

func (s *session) send(ctx context.Context, message string) {
	err := s.client.Send(ctx, message)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrNotConfigured):
		fmt.Fprintln(s.out, "Please connect to a server first (/connect host:port).")
		return
	default:
		s.logger.Debug("send failed", zap.Error(err))
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(s.out, "Error: Server returned status code %d\n", statusErr.Code)
		} else {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		return
	}

	turns := s.client.Transcript()
	client.RenderTurn(s.out, turns[len(turns)-1])
}

// parseHostPort 解析 "host:port" 形式的地址，缺省主机为 localhost。
func parseHostPort(raw string) (string, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", 0, errors.New("usage: /connect host:port")
	}

	host, portText, found := strings.Cut(raw, ":")
	if !found {
		return "", 0, fmt.Errorf("missing port in %q", raw)
	}
	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}

	port, err := strconv.Atoi(strings.TrimSpace(portText))
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in %q", raw)
	}
	return host, port, nil
}
