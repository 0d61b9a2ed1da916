package dashboard

import (
	"fmt"
	"strings"
	"time"

	model "github.com/zhouzirui/support-line/internal/model/support"
)

// Point 是情绪曲线上的一个采样点。
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}

// Series 按情绪与客户端分组的曲线，颜色区分情绪，虚线样式区分客户端。
type Series struct {
	Emotion  string  `json:"emotion"`
	ClientID string  `json:"client_id"`
	Points   []Point `json:"points"`
}

// BuildSeries groups samples by (emotion, client) in order of first appearance.
func BuildSeries(samples []model.EmotionSample) []Series {
	index := make(map[string]int)
	series := make([]Series, 0)
	for _, sample := range samples {
		key := sample.Emotion + "\x00" + sample.ClientID
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, Series{Emotion: sample.Emotion, ClientID: sample.ClientID})
		}
		series[i].Points = append(series[i].Points, Point{Timestamp: sample.Timestamp, Score: sample.Score})
	}
	return series
}

var palette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac"}

var dashPatterns = []string{"", "6 3", "2 2", "8 3 2 3", "1 4"}

// svgSeries 是已换算为画布坐标的曲线。
type svgSeries struct {
	Label  string
	Color  string
	Dash   string
	Points string
	Dots   []svgDot
}

type svgDot struct {
	X, Y float64
}

type chartLayout struct {
	Width, Height float64
	Padding       float64
	Series        []svgSeries
	Emotions      []legendItem
	Clients       []legendItem
}

type legendItem struct {
	Label string
	Style string
}

// layoutChart 把曲线映射到 width x height 的画布，x 为时间，y 为 0~1 的置信度。
func layoutChart(series []Series, width, height float64) chartLayout {
	const padding = 40.0
	layout := chartLayout{Width: width, Height: height, Padding: padding}
	if len(series) == 0 {
		return layout
	}

	var minT, maxT time.Time
	for _, s := range series {
		for _, p := range s.Points {
			if minT.IsZero() || p.Timestamp.Before(minT) {
				minT = p.Timestamp
			}
			if p.Timestamp.After(maxT) {
				maxT = p.Timestamp
			}
		}
	}
	span := maxT.Sub(minT)

	plotW := width - 2*padding
	plotH := height - 2*padding
	xFor := func(t time.Time) float64 {
		if span <= 0 {
			return padding + plotW/2
		}
		return padding + plotW*float64(t.Sub(minT))/float64(span)
	}
	yFor := func(score float64) float64 {
		return padding + plotH*(1-score)
	}

	emotionColor := make(map[string]string)
	clientDash := make(map[string]string)
	for _, s := range series {
		if _, ok := emotionColor[s.Emotion]; !ok {
			emotionColor[s.Emotion] = palette[len(emotionColor)%len(palette)]
			layout.Emotions = append(layout.Emotions, legendItem{Label: s.Emotion, Style: emotionColor[s.Emotion]})
		}
		if _, ok := clientDash[s.ClientID]; !ok {
			clientDash[s.ClientID] = dashPatterns[len(clientDash)%len(dashPatterns)]
			layout.Clients = append(layout.Clients, legendItem{Label: s.ClientID, Style: clientDash[s.ClientID]})
		}

		coords := make([]string, 0, len(s.Points))
		dots := make([]svgDot, 0, len(s.Points))
		for _, p := range s.Points {
			x, y := xFor(p.Timestamp), yFor(p.Score)
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
			dots = append(dots, svgDot{X: x, Y: y})
		}
		layout.Series = append(layout.Series, svgSeries{
			Label:  s.Emotion + " / " + s.ClientID,
			Color:  emotionColor[s.Emotion],
			Dash:   clientDash[s.ClientID],
			Points: strings.Join(coords, " "),
			Dots:   dots,
		})
	}
	return layout
}
