package wannasurf

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
)

const (
	aboutPlaceholder = "wanna add some info"
	automaticMarker  = "automatic build"
)

/*
输入国家或区域页面地址和角色，输出节点及其完整子树

先提取节点自身的信息，再解析浪点和子区域，单个子项失败只会记录日志并被跳过。
页面列出子区域时，其浪点列表是子区域浪点的汇总，不作为本节点的浪点解析
*/
func (p *Parser) ParseNode(ctx context.Context, url string, role Role) (*Node, error) {
	depth := 1
	if role == RoleZone {
		depth = 2
	}
	return p.parseNode(ctx, spider.NewRequest(url, "", depth), role)
}

func (p *Parser) parseNode(ctx context.Context, req *spider.Request, role Role) (*Node, error) {
	doc, err := p.fetchDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Name:    nameFromTitle(doc, req.URL),
		URL:     req.URL,
		Role:    role,
		About:   about(doc),
		Seasons: Seasons{},
		MapURL:  mapURL(doc, req.URL),
	}
	if role == RoleCountry {
		node.AtAGlance = atAGlance(doc)
	}
	if table := doc.Find("#wanna-country-tab-additional-info #wanna-season-table").First(); table.Length() > 0 {
		node.Seasons = DecodeSeasons(table, ModePaired)
	}

	logger := p.logger.With(
		zap.String("name", node.Name),
		zap.String("url", req.URL),
		zap.Stringer("role", role))

	zones := discoverLinks(doc, req.URL, "zones")
	var spots []Link
	if len(zones) == 0 {
		spots = discoverLinks(doc, req.URL, "surf spots")
	}
	logger.Debug("links discovered", zap.Int("zones", len(zones)), zap.Int("spots", len(spots)))

	node.Spots = p.parseSpots(ctx, capLinks(spots, p.maxSpots), req.Depth+1, logger)
	node.Children = p.parseZones(ctx, capLinks(zones, p.maxZones), req.Depth+1, logger)

	logger.Debug("node parsed",
		zap.Int("children", len(node.Children)),
		zap.Int("spots", len(node.Spots)))
	return node, nil
}

func (p *Parser) parseSpots(ctx context.Context, links []Link, depth int, logger *zap.Logger) []*Spot {
	slots := make([]*Spot, len(links))
	p.forEach(ctx, len(links), func(ctx context.Context, i int) {
		l := links[i]
		err := p.isolate(l.Name, l.URL, func() error {
			spot, err := p.parseSpot(ctx, spider.NewRequest(l.URL, l.Name, depth))
			slots[i] = spot
			return err
		})
		if err != nil {
			logger.Warn("surf spot skipped",
				zap.String("spot", l.Name),
				zap.String("spot_url", l.URL),
				zap.Error(err))
		}
	})

	spots := make([]*Spot, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			spots = append(spots, s)
		}
	}
	return spots
}

func (p *Parser) parseZones(ctx context.Context, links []Link, depth int, logger *zap.Logger) []*Node {
	slots := make([]*Node, len(links))
	p.forEach(ctx, len(links), func(ctx context.Context, i int) {
		l := links[i]
		err := p.isolate(l.Name, l.URL, func() error {
			zone, err := p.parseNode(ctx, spider.NewRequest(l.URL, l.Name, depth), RoleZone)
			slots[i] = zone
			return err
		})
		if err != nil {
			logger.Warn("zone skipped",
				zap.String("zone", l.Name),
				zap.String("zone_url", l.URL),
				zap.Error(err))
		}
	})

	children := make([]*Node, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			children = append(children, c)
		}
	}
	return children
}

func about(doc *goquery.Document) string {
	div := doc.Find("#wanna-country-tab-about").First()
	if div.Length() == 0 {
		return ""
	}
	p := div.FindMatcher(inlinePSel).First()
	if p.Length() == 0 {
		p = div.Find("p").First()
	}
	text := cleanText(p.Text())
	if strings.HasPrefix(strings.ToLower(text), aboutPlaceholder) {
		return ""
	}
	return text
}

func atAGlance(doc *goquery.Document) string {
	div := doc.Find("#wanna-country-tab-infos").First()
	if div.Length() == 0 {
		return ""
	}
	text := cleanText(textWithSeparator(div, " "))
	if strings.Contains(strings.ToLower(text), automaticMarker) {
		return ""
	}
	return text
}

func mapURL(doc *goquery.Document, base string) string {
	src := doc.Find("#wanna-item-tab-additional-map img").First().AttrOr("src", "")
	if strings.TrimSpace(src) == "" {
		return ""
	}
	return resolveURL(base, src)
}

/*
输入文档、页面地址和标题关键字，输出标题之后第一个表格中的链接

每行第一个单元格中带href的链接为一项，名称为空时取地址的最后一段路径
*/
func discoverLinks(doc *goquery.Document, base string, heading string) []Link {
	table := tableAfterHeading(doc, func(text string) bool {
		return strings.Contains(text, heading)
	})
	var links []Link
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		a := tr.Find("td").First().Find("a").First()
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		u := resolveURL(base, href)
		name := cleanText(a.Text())
		if name == "" {
			name = lastPathSegment(u)
		}
		links = append(links, Link{Name: name, URL: u})
	})
	return links
}
