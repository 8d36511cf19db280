package wannasurf

import (
	"context"
	"fmt"

	"github.com/antchfx/htmlquery"
	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	continentXPath = `//h2[contains(@class,'wanna-title-continent')]`
	countryXPath   = `.//a[contains(@class,'wanna-main-menu-static-tabbar-submenu')]`
)

/*
输入首页地址，输出按页面顺序排列的大洲及其国家链接

首页抓取失败或没有发现任何大洲时返回错误，整个抓取随之终止
*/
func (p *Parser) DiscoverGroups(ctx context.Context, rootURL string) ([]GroupLinks, error) {
	req := spider.NewRequest(rootURL, "home", 0)
	doc, err := p.fetchDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discover groups: %w", err)
	}

	groups, err := groupsFromRoot(doc.Nodes[0], rootURL)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%s: %w", rootURL, ErrNoGroups)
	}
	for _, g := range groups {
		p.logger.Info("group discovered",
			zap.String("group", g.Name),
			zap.Int("countries", len(g.Countries)))
	}
	return groups, nil
}

func groupsFromRoot(root *html.Node, base string) ([]GroupLinks, error) {
	headings, err := htmlquery.QueryAll(root, continentXPath)
	if err != nil {
		return nil, err
	}

	groups := make([]GroupLinks, 0, len(headings))
	for _, h := range headings {
		g := GroupLinks{Name: cleanText(htmlquery.InnerText(h))}
		if a := htmlquery.FindOne(h, ".//a"); a != nil {
			g.Name = cleanText(htmlquery.InnerText(a))
		}

		table := htmlquery.FindOne(h, "following::table[1]")
		if table != nil {
			anchors, err := htmlquery.QueryAll(table, countryXPath)
			if err != nil {
				return nil, err
			}
			for _, a := range anchors {
				href := htmlquery.SelectAttr(a, "href")
				if href == "" {
					continue
				}
				g.Countries = append(g.Countries, Link{
					Name: cleanText(htmlquery.InnerText(a)),
					URL:  resolveURL(base, href),
				})
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}
