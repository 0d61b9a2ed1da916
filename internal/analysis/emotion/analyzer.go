package emotion

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Label 是 go_emotions 标签集合中的情绪标签。
type Label string

const (
	Neutral     Label = "neutral"
	Joy         Label = "joy"
	Gratitude   Label = "gratitude"
	Sadness     Label = "sadness"
	Grief       Label = "grief"
	Fear        Label = "fear"
	Nervousness Label = "nervousness"
	Anger       Label = "anger"
	Remorse     Label = "remorse"
	Caring      Label = "caring"
	Optimism    Label = "optimism"
)

// Decision 给出识别出的情绪及其置信度（0~1）。
type Decision struct {
	Emotion Label
	Score   float64
	Hits    int
}

// neutralScore 是没有命中任何关键词时的置信度。
const neutralScore = 0.5

var keywordBuckets = map[Label][]string{
	Sadness: {
		"sad", "hopeless", "depressed", "unhappy", "miserable", "lonely", "alone", "empty", "cry",
		"crying", "heartbroken", "worthless", "numb", "down", "難過", "难过", "伤心", "沮丧", "绝望",
	},
	Grief: {
		"passed away", "died", "death", "funeral", "lost my", "mourning", "grieving", "miss her",
		"miss him", "去世", "葬礼",
	},
	Fear: {
		"scared", "afraid", "terrified", "panic", "frightened", "fear", "unsafe", "threat", "害怕", "恐惧",
	},
	Nervousness: {
		"anxious", "nervous", "worried", "stress", "stressed", "overwhelmed", "uneasy", "焦虑", "紧张",
	},
	Anger: {
		"angry", "furious", "rage", "mad", "annoyed", "pissed", "hate", "生气", "愤怒",
	},
	Remorse: {
		"sorry", "regret", "my fault", "guilty", "ashamed", "后悔", "内疚",
	},
	Joy: {
		"happy", "glad", "great", "awesome", "amazing", "fine day", "good day", "excited", "fun",
		"开心", "高兴", "快乐",
	},
	Gratitude: {
		"thanks", "thank you", "grateful", "appreciate", "谢谢", "感谢",
	},
	Caring: {
		"take care", "worried about you", "support you", "陪着", "关心",
	},
	Optimism: {
		"hope", "hopeful", "looking forward", "better tomorrow", "期待", "希望",
	},
}

// Analyze 通过关键词命中推断文本的情绪标签与置信度。
func Analyze(text string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Decision{Emotion: Neutral, Score: neutralScore}
	}

	padded := " " + strings.Join(tokenize(normalized), " ") + " "

	scores := make(map[Label]int)
	total := 0
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if word == "" {
				continue
			}
			if matches(normalized, padded, word) {
				scores[label]++
				total++
			}
		}
	}

	if total == 0 {
		return Decision{Emotion: Neutral, Score: neutralScore}
	}

	best, hits := pickBest(scores)

	// 命中占比乘以饱和系数，单次命中约 0.7，多次命中趋近上限。
	share := float64(hits) / float64(total)
	saturation := math.Min(1, 0.4+0.3*float64(hits))
	score := math.Min(0.95, share*saturation)

	return Decision{Emotion: best, Score: score, Hits: hits}
}

// matches 对 ASCII 关键词按整词匹配，避免 "hopeless" 命中 "hope"；中文关键词按子串匹配。
func matches(normalized, padded, keyword string) bool {
	if !isASCII(keyword) {
		return strings.Contains(normalized, keyword)
	}
	return strings.Contains(padded, " "+keyword+" ")
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= unicode.MaxASCII {
			return false
		}
	}
	return true
}

// pickBest 取命中最多的标签，平局时按标签名排序以保证结果稳定。
func pickBest(scores map[Label]int) (Label, int) {
	labels := make([]Label, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	bestLabel := Neutral
	bestScore := 0
	for _, label := range labels {
		if scores[label] > bestScore {
			bestScore = scores[label]
			bestLabel = label
		}
	}
	return bestLabel, bestScore
}
