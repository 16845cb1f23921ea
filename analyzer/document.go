package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML extracts a scoreable Document from CMS-rendered HTML. Headings
// become Markdown-style markers so the text rules see the same structure the
// page declares, and same-site anchors are counted as internal links.
func FromHTML(html string, keywords []string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder

	for level := 1; level <= 3; level++ {
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			b.WriteString(strings.Repeat("#", level))
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(s.Text()))
			b.WriteString("\n\n")
		})
	}

	doc.Find("p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	})

	internalLinks := 0
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" {
			return
		}
		// Relative hrefs are same-site; absolute ones point elsewhere.
		if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") ||
			!strings.Contains(href, "://") {
			internalLinks++
		}
	})

	extracted := Document{
		Text:          strings.TrimSpace(b.String()),
		Keywords:      keywords,
		InternalLinks: internalLinks,
	}

	// Schema.org markup shows up as JSON-LD script tags.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		if strings.Contains(body, `"Article"`) || strings.Contains(body, `"BlogPosting"`) {
			extracted.StructuredData.Article = true
		}
		if strings.Contains(body, `"FAQPage"`) {
			extracted.StructuredData.FAQ = true
		}
		if strings.Contains(body, `"HowTo"`) {
			extracted.StructuredData.HowTo = true
		}
		if strings.Contains(body, `"Review"`) {
			extracted.StructuredData.Review = true
		}
	})

	return extracted, nil
}
