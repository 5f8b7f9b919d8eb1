package generator

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	// 从提示词中取回主题和关键词，拼成一篇示例 HTML。
	topic := promptField(prompt.Text, "Topic: ")
	keywords := promptField(prompt.Text, "SEO Keywords to incorporate naturally: ")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(topic)))
	sb.WriteString("<p>This is a locally generated sample post. No model was called.</p>\n")
	sb.WriteString("<h2>Overview</h2>\n")
	sb.WriteString(fmt.Sprintf("<p>A short piece about <strong>%s</strong>.</p>\n", html.EscapeString(topic)))
	if keywords != "" {
		sb.WriteString("<h2>Keywords</h2>\n<ul>\n")
		for _, k := range strings.Split(keywords, ", ") {
			sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(k)))
		}
		sb.WriteString("</ul>\n")
	}
	sb.WriteString("<h2>Conclusion</h2>\n<p><em>Replace the mock provider with a real one to get actual content.</em></p>")
	return sb.String(), nil
}

func promptField(text, prefix string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
