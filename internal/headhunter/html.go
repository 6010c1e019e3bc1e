package headhunter

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, ul, ol, h1, h2, h3, h4, h5, h6"

// HTMLToText flattens a vacancy description into plain sentences. List items are joined
// with commas, and every block ends with punctuation unless it introduces the next one
// with a colon.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style").Remove()

	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("p, ul, ol").Length() > 0 {
			return
		}

		var text string
		switch goquery.NodeName(s) {
		case "ul", "ol":
			var items []string
			s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if item := collapseSpaces(li.Text()); item != "" {
					items = append(items, strings.TrimRight(item, ".;,"))
				}
			})
			text = strings.Join(items, ", ")
		default:
			text = collapseSpaces(s.Text())
		}

		if text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return collapseSpaces(doc.Text()), nil
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(block)
		if !strings.HasSuffix(block, ":") && !strings.ContainsAny(block[len(block)-1:], ".!?;") {
			b.WriteByte('.')
		}
	}

	return b.String(), nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
