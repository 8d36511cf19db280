package wannasurf

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	headingSel   = cascadia.MustCompile("h3.wanna-item")
	tableSel     = cascadia.MustCompile("table")
	inlinePSel   = cascadia.MustCompile(`p[style*="display:inline"]`)
	labelSpanSel = cascadia.MustCompile("span.wanna-item-label")
	gpsLabelSel  = cascadia.MustCompile("span.wanna-item-label-gps")
)

// 文档顺序中的下一个节点，先子节点再兄弟节点
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

/*
输入文档、起始选择集和匹配器，输出文档中位于起点之后的第一个匹配元素

起点自身的后代也算作之后的元素，找不到时返回空选择集
*/
func findNext(doc *goquery.Document, start *goquery.Selection, m cascadia.Matcher) *goquery.Selection {
	if start.Length() == 0 {
		return start
	}
	for n := nextInDocument(start.Get(0)); n != nil; n = nextInDocument(n) {
		if n.Type == html.ElementNode && m.Match(n) {
			return doc.FindNodes(n)
		}
	}
	return doc.FindNodes()
}

// 返回第一个满足条件的h3.wanna-item标题
func findHeading(doc *goquery.Document, match func(text string) bool) *goquery.Selection {
	return doc.FindMatcher(headingSel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(strings.ToLower(cleanText(s.Text())))
	}).First()
}

// 标题之后的第一个表格
func tableAfterHeading(doc *goquery.Document, match func(text string) bool) *goquery.Selection {
	h := findHeading(doc, match)
	if h.Length() == 0 {
		return h
	}
	return findNext(doc, h, tableSel)
}
