package generator

import "strings"

// Tone 文章语气。
type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneCasual         Tone = "casual"
	ToneFriendly       Tone = "friendly"
	ToneAuthoritative  Tone = "authoritative"
	ToneConversational Tone = "conversational"
	ToneEducational    Tone = "educational"
)

// DefaultTone is used when the request leaves tone empty.
const DefaultTone = ToneProfessional

// DefaultWordCount is the target length used when the request omits one.
const DefaultWordCount = 1000

// Tones lists the tones offered to the UI.
var Tones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneFriendly,
	ToneAuthoritative,
	ToneConversational,
	ToneEducational,
}

// WordCountOptions 前端下拉框的常用字数，后端不强制。
var WordCountOptions = []int{500, 750, 1000, 1500, 2000, 2500}

// Known reports whether t is one of the listed tones.
func (t Tone) Known() bool {
	for _, known := range Tones {
		if t == known {
			return true
		}
	}
	return false
}

// Request 描述一次生成的参数。
type Request struct {
	Topic          string   `json:"topic"`
	TargetAudience string   `json:"targetAudience"`
	Keywords       []string `json:"keywords"`
	Tone           Tone     `json:"tone"`
	WordCount      int      `json:"wordCount"`
}

// Validate rejects a request before any model call is made.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}

// Normalized fills tone and word count defaults.
func (r Request) Normalized() Request {
	if strings.TrimSpace(string(r.Tone)) == "" {
		r.Tone = DefaultTone
	}
	if r.WordCount <= 0 {
		r.WordCount = DefaultWordCount
	}
	return r
}

// Metrics 由生成内容计算得出，不单独存储。
type Metrics struct {
	WordCount    int `json:"wordCount"`
	ReadingTime  int `json:"readingTime"`
	KeywordsUsed int `json:"keywordsUsed"`
}

// Result is the model output for one request.
type Result struct {
	ID      string  `json:"id,omitempty"`
	Content string  `json:"content"`
	Metrics Metrics `json:"metrics"`
}
