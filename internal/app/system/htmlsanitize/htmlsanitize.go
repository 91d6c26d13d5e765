// Package htmlsanitize prepares content block descriptions for display.
// Descriptions may be plain text or rich markup written in the content
// editor; markup is cleaned with bluemonday before it reaches a template.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	strict     *bluemonday.Policy
	policyOnce sync.Once
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
		policy.AllowElements("u", "s", "sub", "sup", "mark")
		policy.AllowAttrs("class").OnElements("p", "span", "blockquote")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)

		strict = bluemonday.StrictPolicy()
	})
	return policy, strict
}

// Sanitize cleans rich markup, keeping safe formatting such as emphasis,
// lists, links and images.
func Sanitize(markup string) string {
	if markup == "" {
		return ""
	}
	p, _ := policies()
	return p.Sanitize(markup)
}

// IsPlainText reports whether content has no markup.
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// PlainTextToHTML escapes text and turns blank-line separated blocks into
// paragraphs, with single newlines as <br>.
func PlainTextToHTML(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		escaped := template.HTMLEscapeString(para)
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(escaped, "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// PrepareForDisplay returns content as sanitized HTML ready for rendering,
// converting plain text first.
func PrepareForDisplay(content string) template.HTML {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		return template.HTML(PlainTextToHTML(content))
	}
	return template.HTML(Sanitize(content))
}

// Excerpt returns at most max runes of content with all markup removed,
// cut on a word boundary with an ellipsis when shortened.
func Excerpt(content string, max int) string {
	_, s := policies()
	text := strings.Join(strings.Fields(html.UnescapeString(s.Sanitize(content))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
