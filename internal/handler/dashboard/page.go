package dashboard

import "html/template"

var pageTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"score": formatScore,
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Support System Server</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; }
aside { width: 240px; padding: 16px; background: #f4f4f6; min-height: 100vh; }
main { flex: 1; padding: 16px 24px; }
table { border-collapse: collapse; width: 100%; font-size: 14px; }
th, td { border-bottom: 1px solid #ddd; padding: 6px 8px; text-align: left; vertical-align: top; }
tr.high td { background: #fdecea; }
.legend span { margin-right: 12px; font-size: 13px; }
</style>
</head>
<body>
<aside>
<h3>Server Status</h3>
<p>Status: {{if .Online}}Online{{else}}Offline{{end}}</p>
<p>Server is running at:<br><code>{{.URL}}</code></p>
<p>Classifier: {{.Provider}} ({{.ClassifierStatus}})</p>
<p>Records: {{len .Records}}</p>
</aside>
<main>
<h1>Support System Server</h1>
<h2>Message History</h2>
{{if .Records}}
<table>
<thead><tr><th>Time</th><th>Client</th><th>Message</th><th>Emotion</th><th>Score</th><th>Risk</th><th>Response</th></tr></thead>
<tbody>
{{range .Records}}<tr class="{{.RiskLevel}}"><td>{{.Timestamp.Format "2006-01-02 15:04:05"}}</td><td>{{.ClientID}}</td><td>{{.Message}}</td><td>{{.Emotion}}</td><td>{{score .Score}}</td><td>{{.RiskLevel}}</td><td>{{.Response}}</td></tr>
{{end}}</tbody>
</table>
{{else}}
<p>No messages yet.</p>
{{end}}
<h2>Emotional Pattern Analysis</h2>
{{if .Chart.Series}}
<svg width="{{.Chart.Width}}" height="{{.Chart.Height}}" role="img" aria-label="Emotional Patterns Over Time">
<line x1="{{.Chart.Padding}}" y1="{{.Chart.Padding}}" x2="{{.Chart.Padding}}" y2="{{.AxisBottom}}" stroke="#888"/>
<line x1="{{.Chart.Padding}}" y1="{{.AxisBottom}}" x2="{{.AxisRight}}" y2="{{.AxisBottom}}" stroke="#888"/>
<text x="4" y="{{.Chart.Padding}}" font-size="12">1.0</text>
<text x="4" y="{{.AxisBottom}}" font-size="12">0.0</text>
{{range .Chart.Series}}<polyline fill="none" stroke="{{.Color}}" stroke-width="2" stroke-dasharray="{{.Dash}}" points="{{.Points}}"><title>{{.Label}}</title></polyline>
{{$color := .Color}}{{range .Dots}}<circle cx="{{.X}}" cy="{{.Y}}" r="3" fill="{{$color}}"/>{{end}}
{{end}}</svg>
<div class="legend">Emotion: {{range .Chart.Emotions}}<span><svg width="10" height="10"><rect width="10" height="10" fill="{{.Style}}"/></svg> {{.Label}}</span>{{end}}</div>
<div class="legend">Client ID: {{range .Chart.Clients}}<span>{{.Label}}{{if .Style}} (dash {{.Style}}){{end}}</span>{{end}}</div>
{{else}}
<p>No emotion data yet.</p>
{{end}}
</main>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/api/feed");
  ws.onmessage = function () { location.reload(); };
  ws.onclose = function () { setTimeout(function () { location.reload(); }, 5000); };
})();
</script>
</body>
</html>
`))
