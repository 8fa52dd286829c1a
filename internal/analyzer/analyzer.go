package analyzer

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"SEOScorer/internal/domain"
)

var nonWordExpr = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Analyzer extracts the fixed SEO signal set from HTML markup. Parsing is
// lenient: malformed or empty markup yields a baseline SignalSet, never an
// error.
type Analyzer struct {
	internalDomain string
}

// New builds an analyzer; internalDomain may be empty, in which case only
// relative, fragment and javascript: hrefs count as internal.
func New(internalDomain string) *Analyzer {
	return &Analyzer{internalDomain: internalDomain}
}

// Analyze inspects the document against the target keywords and returns the
// complete signal set.
func (a *Analyzer) Analyze(htmlContent string, targetKeywords []string) domain.SignalSet {
	if strings.TrimSpace(htmlContent) == "" {
		return domain.EmptySignalSet()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return domain.EmptySignalSet()
	}

	keywords := normalizeKeywords(targetKeywords)

	titleText := strings.TrimSpace(doc.Find("title").First().Text())

	h1Texts := headingTexts(doc, "h1")
	h2Texts := headingTexts(doc, "h2")

	bodyText := a.bodyText(doc)
	wordCount := len(strings.Fields(bodyText))

	imagesCount, withAlt, withoutAlt := a.analyzeImages(doc)
	internalLinks, externalLinks := a.analyzeLinks(doc)

	metaDescription := strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))

	density := keywordDensity(bodyText, keywords)

	return domain.SignalSet{
		TitleContainsKeyword: containsAnyKeyword(titleText, keywords),
		H1Present:            len(h1Texts) > 0,
		H1Count:              len(h1Texts),
		H1ContainsKeyword:    anyContainsKeyword(h1Texts, keywords),
		H2Count:              len(h2Texts),
		H2ContainsKeyword:    anyContainsKeyword(h2Texts, keywords),
		KeywordDensity:       density,
		KeywordDensityOK:     density >= domain.MinKeywordDensity && density <= domain.MaxKeywordDensity,
		ImagesCount:          imagesCount,
		ImagesWithAlt:        withAlt,
		ImagesWithoutAlt:     withoutAlt,
		ImagesHaveAlt:        withoutAlt == 0,
		WordCount:            wordCount,
		WordCountAdequate:    wordCount >= domain.MinWordCount,
		InternalLinks:        internalLinks,
		ExternalLinks:        externalLinks,
		HasInternalLinks:     internalLinks > 0,
		HasExternalLinks:     externalLinks > 0,
		MetaDescription:      metaDescription != "",
		MetaDescriptionLen:   utf8.RuneCountInString(metaDescription),
		TitleLength:          utf8.RuneCountInString(titleText),
	}
}

// bodyText walks text nodes under <body> (or the whole document when no body
// tag survived parsing), joining them with spaces so words in adjacent tags
// do not fuse.
func (a *Analyzer) bodyText(doc *goquery.Document) string {
	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	var sb strings.Builder
	for _, node := range sel.Nodes {
		collectText(node, &sb)
	}
	return strings.TrimSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteByte(' ')
		}
		return
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func headingTexts(doc *goquery.Document, tag string) []string {
	var texts []string
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

func (a *Analyzer) analyzeImages(doc *goquery.Document) (total, withAlt, withoutAlt int) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		total++
		if strings.TrimSpace(s.AttrOr("alt", "")) != "" {
			withAlt++
		} else {
			withoutAlt++
		}
	})
	return total, withAlt, withoutAlt
}

func (a *Analyzer) analyzeLinks(doc *goquery.Document) (internal, external int) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		switch a.classifyLink(href) {
		case linkInternal:
			internal++
		case linkExternal:
			external++
		}
	})
	return internal, external
}

type linkKind int

const (
	linkIgnored linkKind = iota
	linkInternal
	linkExternal
)

func (a *Analyzer) classifyLink(href string) linkKind {
	if href == "" {
		return linkIgnored
	}

	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return linkInternal
	}

	// mailto: and tel: are neither internal nor external.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return linkIgnored
	}

	if a.internalDomain != "" {
		parsed, err := url.Parse(href)
		if err != nil {
			return linkIgnored
		}
		if parsed.Host == a.internalDomain {
			return linkInternal
		}
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return linkExternal
	}

	// Bare relative paths like "about.html".
	return linkInternal
}

func normalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return normalized
}

func containsAnyKeyword(text string, keywords []string) bool {
	if text == "" || len(keywords) == 0 {
		return false
	}

	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func anyContainsKeyword(texts []string, keywords []string) bool {
	for _, text := range texts {
		if containsAnyKeyword(text, keywords) {
			return true
		}
	}
	return false
}

// keywordDensity is the share of body tokens matching any keyword, as a
// percentage rounded to two decimals. Tokens are case-folded and stripped of
// punctuation before substring matching.
func keywordDensity(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return 0
	}

	matches := 0
	for _, token := range tokens {
		cleaned := nonWordExpr.ReplaceAllString(token, "")
		if cleaned == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(cleaned, kw) {
				matches++
				break
			}
		}
	}

	return math.Round(float64(matches)/float64(len(tokens))*100*100) / 100
}
