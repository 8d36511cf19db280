package wannasurf

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	characteristicsLeft  = "#wanna-item-specific-2columns-left"
	characteristicsRight = "#wanna-item-specific-2columns-right"
)

/*
输入浪点页面地址，输出浪点记录

只有抓取失败时返回错误；页面缺少某个区块时对应字段记为Sentinel
*/
func (p *Parser) ParseSpot(ctx context.Context, url string) (*Spot, error) {
	return p.parseSpot(ctx, spider.NewRequest(url, "", 0))
}

func (p *Parser) parseSpot(ctx context.Context, req *spider.Request) (*Spot, error) {
	doc, err := p.fetchDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	name := nameFromTitle(doc, req.URL)
	logger := p.logger.With(zap.String("spot", name), zap.String("url", req.URL))

	values := make(map[Field]string, FieldCount)
	merge := func(m map[Field]string) {
		for f, v := range m {
			values[f] = v
		}
	}

	access := tableAfterHeading(doc, func(text string) bool {
		return strings.HasSuffix(text, "access")
	})
	merge(ExtractFields(access.Find("p"), AccessLabels))

	if findHeading(doc, func(text string) bool {
		return strings.Contains(text, "surf spot characteristics")
	}).Length() > 0 {
		for _, col := range []string{characteristicsLeft, characteristicsRight} {
			merge(p.characteristics(doc.Find(col).First(), logger))
		}
	}

	if v := additionalInformation(doc); v != "" {
		values[AdditionalInformation] = v
	}

	for f, marker := range map[Field]string{Latitude: "Latitude", Longitude: "Longitude"} {
		if v := coordinate(doc, marker); v != "" {
			values[f] = v
		}
	}

	spot := NewSpot(name, req.URL, values)
	logger.Debug("spot parsed", zap.Int("fields", len(values)))
	return spot, nil
}

// 逐个读取栏目中的段落，h5小标题只用于日志
func (p *Parser) characteristics(col *goquery.Selection, logger *zap.Logger) map[Field]string {
	result := make(map[Field]string)
	section := ""
	col.ChildrenFiltered("h5, p").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "h5" {
			section = strings.ToLower(cleanText(s.Text()))
			return
		}
		f, v, ok := extractOne(s, CharacteristicLabels)
		if !ok {
			return
		}
		result[f] = v
		logger.Debug("characteristic", zap.String("section", section), zap.Stringer("field", f))
	})
	return result
}

func additionalInformation(doc *goquery.Document) string {
	h := findHeading(doc, func(text string) bool {
		return strings.HasPrefix(text, "additional information")
	})
	if h.Length() == 0 {
		return ""
	}
	return cleanText(findNext(doc, h, inlinePSel).Text())
}

// 读取坐标标签之后紧邻的文本
func coordinate(doc *goquery.Document, marker string) string {
	label := doc.FindMatcher(gpsLabelSel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), marker)
	}).First()
	if label.Length() == 0 {
		return ""
	}
	next := label.Get(0).NextSibling
	if next == nil {
		return ""
	}
	if next.Type == html.TextNode {
		return cleanText(next.Data)
	}
	return cleanText(doc.FindNodes(next).Text())
}
