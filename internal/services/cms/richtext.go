package cms

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const excerptLength = 200

// Paragraphs turns a rich text field into plain paragraphs. The field may be
// a block list (only "paragraph" blocks are kept), an HTML string, or plain
// text separated by blank lines.
func Paragraphs(v any) []string {
	switch t := v.(type) {
	case []any:
		return paragraphsFromBlocks(t)
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		if strings.Contains(t, "<") {
			return paragraphsFromHTML(t)
		}
		return paragraphsFromText(t)
	default:
		return nil
	}
}

func paragraphsFromBlocks(blocks []any) []string {
	var out []string
	for _, b := range blocks {
		block, ok := b.(map[string]any)
		if !ok || block["type"] != "paragraph" {
			continue
		}
		if text := childText(block["children"]); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// childText joins the text leaves of a block, descending into inline nodes such as links
func childText(v any) string {
	children, ok := v.([]any)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := child["text"].(string); ok && (child["type"] == nil || child["type"] == "text") {
			sb.WriteString(text)
			continue
		}
		sb.WriteString(childText(child["children"]))
	}
	return sb.String()
}

func paragraphsFromHTML(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return paragraphsFromText(html)
	}

	var out []string
	doc.Find("p, li, h1, h2, h3, h4, blockquote").Each(func(_ int, s *goquery.Selection) {
		// Nested matches are picked up through their parent
		if s.ParentsFiltered("p, li, blockquote").Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			out = append(out, text)
		}
	})

	if len(out) == 0 {
		if text := strings.Join(strings.Fields(doc.Text()), " "); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func paragraphsFromText(s string) []string {
	var out []string
	for _, part := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if text := strings.TrimSpace(part); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// FirstText returns the first text leaf of the first block, or the string itself
func FirstText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) == 0 {
			return ""
		}
		block, ok := t[0].(map[string]any)
		if !ok {
			return ""
		}
		children, ok := block["children"].([]any)
		if !ok || len(children) == 0 {
			return ""
		}
		child, ok := children[0].(map[string]any)
		if !ok {
			return ""
		}
		text, _ := child["text"].(string)
		return text
	default:
		return ""
	}
}

// Excerpt returns the first paragraph cut to at most max runes on a word boundary
func Excerpt(paragraphs []string, max int) string {
	if len(paragraphs) == 0 {
		return ""
	}
	first := paragraphs[0]
	if utf8.RuneCountInString(first) <= max {
		return first
	}

	runes := []rune(first)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
