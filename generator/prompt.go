package generator

import (
	"fmt"
	"strings"
)

// DefaultMaxTokens caps the model output of a single generation.
const DefaultMaxTokens = 4096

// Prompt 表示发送给 LLM 的单条指令，不带历史。
type Prompt struct {
	Text      string
	MaxTokens int
}

// AllowedTags 是要求模型使用的 HTML 标签。
var AllowedTags = []string{"h1", "h2", "h3", "p", "ul", "li", "strong", "em"}

// BuildPrompt renders the blog-writing instruction for req.
// req is expected to be validated and normalized.
func BuildPrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert SEO blog writer. Create a comprehensive, SEO-optimized blog post with the following requirements:\n\n")

	sb.WriteString(fmt.Sprintf("Topic: %s\n", req.Topic))
	if req.TargetAudience != "" {
		sb.WriteString(fmt.Sprintf("Target Audience: %s\n", req.TargetAudience))
	}
	if len(req.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("SEO Keywords to incorporate naturally: %s\n", strings.Join(req.Keywords, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Tone: %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("Target Word Count: %d words\n\n", req.WordCount))

	sb.WriteString("Requirements:\n")
	for i, r := range requirements(req) {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
	}

	sb.WriteString("\nFormat the output as proper HTML markup that can be directly rendered. Make it SEO-optimized with:\n")
	sb.WriteString("- Natural keyword placement\n")
	sb.WriteString("- Good content structure\n")
	sb.WriteString("- Scannable formatting\n")
	sb.WriteString("- Valuable information\n")
	sb.WriteString("- Clear headings and subheadings\n\n")
	sb.WriteString("Generate the complete blog post now:")

	return Prompt{Text: sb.String(), MaxTokens: DefaultMaxTokens}
}

func requirements(req Request) []string {
	tags := make([]string, len(AllowedTags))
	for i, t := range AllowedTags {
		tags[i] = "<" + t + ">"
	}
	return []string{
		"Write a compelling, SEO-friendly title (H1)",
		"Include an engaging introduction that hooks the reader",
		"Use proper heading hierarchy (H2, H3) for better SEO",
		"Incorporate the keywords naturally throughout the content (avoid keyword stuffing)",
		"Include relevant subheadings that break up the content",
		fmt.Sprintf("Write in a %s tone", req.Tone),
		fmt.Sprintf("Aim for approximately %d words", req.WordCount),
		"Include actionable insights and examples",
		"End with a strong conclusion",
		"Use HTML formatting: " + strings.Join(tags, ", "),
	}
}
