package generator

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var (
	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\n(.*?)\n?```$")
	tagRe   = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^>]*)?>`)
)

// PostProcess 清理模型输出并保证返回 HTML。
//
// A surrounding code fence is stripped. Output without any HTML tag is treated
// as Markdown and rendered. The markup itself is passed through untouched.
func PostProcess(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(content); len(m) == 2 {
		content = strings.TrimSpace(m[1])
	}
	if content == "" {
		return "", ErrEmptyContent
	}
	if tagRe.MatchString(content) {
		return content, nil
	}
	html, err := mdToHTML(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(html), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
