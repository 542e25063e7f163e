// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// issueTmpl is the Substack-compatible HTML layout. Styling is inline so
// the document pastes cleanly into the editor. Summaries and titles are
// plain text; the template escapes them on the way in.
var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"meta":    metaLine,
	"title":   recordTitle,
	"authors": FormatAuthors,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Tokenization Digest &mdash; Issue #{{.Number}}</title>
<style>
body { font-family: Georgia, serif; max-width: 680px; margin: 0 auto; padding: 20px; color: #333; line-height: 1.6; }
h1 { font-size: 28px; margin-bottom: 5px; }
h2 { font-size: 22px; color: #555; border-bottom: 1px solid #ddd; padding-bottom: 8px; }
h3 { font-size: 18px; margin-bottom: 5px; }
.subtitle { color: #888; font-style: italic; margin-bottom: 30px; }
.meta { font-size: 13px; color: #888; margin-top: 0; margin-bottom: 10px; }
.placeholder { color: #999; font-style: italic; padding: 20px; background: #f9f9f9; border-left: 3px solid #ddd; margin: 15px 0; }
.editorial { font-size: 15px; color: #444; }
.summary { font-size: 15px; color: #444; margin-top: 4px; margin-bottom: 15px; }
.paper-link { font-size: 13px; margin-bottom: 8px; }
.paper-link a { color: #666; }
.item { margin-bottom: 20px; }
hr { border: none; border-top: 1px solid #eee; margin: 25px 0; }
.footer { font-size: 14px; color: #888; margin-top: 40px; }
</style>
</head>
<body>
<h1>Tokenization Digest &mdash; Issue #{{.Number}}</h1>
<p class="subtitle">{{.Date}}</p>
<hr>
<h2>&#127942; Human's Pick</h2>
<div class="placeholder">[Your review goes here.]</div>
<hr>
{{- if .Editorial}}
<h2>&#9997;&#65039; From the Editor</h2>
<p class="editorial">{{.Editorial}}</p>
<hr>
{{- end}}
{{- with .Sections.TextPapers}}
<h2>&#128196; Text Processing &amp; Linguistics</h2>
{{- range .}}{{template "item" .}}{{end}}
<hr>
{{- end}}
{{- with .Sections.TextBlogs}}
<h2>&#128221; Blog Posts &amp; Discussions</h2>
{{- range .}}{{template "item" .}}{{end}}
<hr>
{{- end}}
{{- with .Sections.OtherPapers}}
<h2>&#128266; Tokenization Beyond Text</h2>
{{- range .}}{{template "item" .}}{{end}}
<hr>
{{- end}}
{{- if .Rest}}
<h2>&#128218; Also Published This Month</h2>
<ul style="font-size: 15px; line-height: 1.8;">
{{- range .Rest}}
<li>{{if .URL}}<a href="{{.URL}}">{{title .}}</a>{{else}}{{title .}}{{end}}{{with authors .Authors}} &mdash; <span style="color: #888;">{{.}}</span>{{end}}</li>
{{- end}}
</ul>
<hr>
{{- end}}
<div class="footer">
<p><strong>Tokenization Digest</strong> is a monthly newsletter tracking research and developments
in LLM tokenization. Whether you're a seasoned researcher or just getting started, we aim to keep
you informed about what's happening in this foundational area of language modeling.</p>
<p><em>Have a paper, post, or project related to tokenization? Reply to this newsletter or reach out!</em></p>
</div>
</body>
</html>
{{- define "item"}}
<div class="item">
<h3>{{title .}}</h3>
{{- with meta .}}
<p class="meta">{{.}}</p>
{{- end}}
{{- if .URL}}
<p class="paper-link">&#128279; <a href="{{.URL}}">{{.URL}}</a></p>
{{- end}}
{{- if .Summary}}
<p class="summary">{{.Summary}}</p>
{{- end}}
</div>
{{- end}}`))

// HTML renders the issue as a standalone HTML document.
func HTML(issue types.Issue) (string, error) {
	var b strings.Builder
	if err := issueTmpl.Execute(&b, issue); err != nil {
		return "", fmt.Errorf("rendering HTML issue: %w", err)
	}
	return b.String(), nil
}
