package wannasurf

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// 所有空白（含各类不换行空格）折叠为单个空格并去掉首尾空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// 标签统一为小写，去掉结尾的冒号等标点
func normalizeLabel(s string) string {
	s = strings.ToLower(cleanText(s))
	return strings.TrimRight(s, ":?.; ")
}

// 按sep拼接所有文本节点，每个文本节点先去掉首尾空白，空节点跳过
func textWithSeparator(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

/*
输入页面文档和页面地址，输出页面名称

名称取<title>中" - "之前的部分，没有标题时取地址的最后一段路径
*/
func nameFromTitle(doc *goquery.Document, pageURL string) string {
	title := cleanText(doc.Find("title").First().Text())
	if title != "" {
		return strings.TrimSpace(strings.SplitN(title, " - ", 2)[0])
	}
	return lastPathSegment(pageURL)
}

func lastPathSegment(raw string) string {
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(last); err == nil {
		return unescaped
	}
	return last
}

// 将页面中的相对链接解析为绝对地址
func resolveURL(base string, ref string) string {
	ref = strings.TrimSpace(ref)
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
