package client

import (
	"fmt"
	"io"

	"github.com/zhouzirui/support-line/internal/analysis/risk"
)

// RenderTurn 以文本形式输出一条消息；高风险助手回复下方附带警示。
func RenderTurn(w io.Writer, turn Turn) {
	label := "you"
	if turn.Role == RoleAssistant {
		label = "support"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", turn.Timestamp.Format("2006-01-02 15:04:05"), label, turn.Content)
	if turn.Role == RoleAssistant && turn.RiskLevel == risk.High {
		fmt.Fprintf(w, "  ⚠ %s\n", CrisisWarning)
	}
}

// RenderTranscript 输出完整对话记录。
func RenderTranscript(w io.Writer, turns []Turn) {
	for _, turn := range turns {
		RenderTurn(w, turn)
	}
}

// RenderContacts 输出紧急联系方式。
func RenderContacts(w io.Writer) {
	fmt.Fprintln(w, "Emergency Contacts:")
	for _, contact := range EmergencyContacts {
		fmt.Fprintf(w, "  %s: %s\n", contact.Service, contact.Number)
	}
}
