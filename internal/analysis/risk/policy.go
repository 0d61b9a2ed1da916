package risk

// Level 表示回复附带的风险等级。
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
)

// highRiskThreshold 是判定高风险的置信度下界（不含）。
const highRiskThreshold = 0.5

const (
	CrisisMessage = "I hear how much pain you're in, and I want you to know that your life has value. " +
		"Please reach out to the crisis helpline immediately at 988 - they are available " +
		"24/7 and want to support you. You don't have to go through this alone."

	SupportiveMessage = "Thank you for reaching out. It takes courage to share these feelings. " +
		"While I'm here to listen, it's important to connect with mental health " +
		"professionals who can provide the support you need."
)

// highRiskEmotions 区分大小写，只做精确匹配。
var highRiskEmotions = map[string]struct{}{
	"sadness": {},
	"fear":    {},
	"grief":   {},
}

// Assessment 是风险策略给出的回复文本与等级。
type Assessment struct {
	Message string `json:"message"`
	Level   Level  `json:"risk_level"`
}

// Classify 根据情绪标签与置信度选择回复。
func Classify(emotion string, score float64) Assessment {
	if IsHighRiskEmotion(emotion) && score > highRiskThreshold {
		return Assessment{Message: CrisisMessage, Level: High}
	}
	return Assessment{Message: SupportiveMessage, Level: Medium}
}

// IsHighRiskEmotion reports whether the label belongs to the crisis set.
func IsHighRiskEmotion(emotion string) bool {
	_, ok := highRiskEmotions[emotion]
	return ok
}
