package wannasurf

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 季节表的表头形式
type SeasonMode int

const (
	// 第二行表头为双月分组，如Jan/Feb
	ModePaired SeasonMode = iota
	// 表头为单个月份缩写，如Jan
	ModeSingle
)

func (m SeasonMode) String() string {
	if m == ModeSingle {
		return "single"
	}
	return "paired"
}

// 空白评级图片的文件名前缀
const emptyRatingPrefix = "wanna-empty"

var monthRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

/*
输入季节表和表头形式，输出 指标 -> 列键 -> 值 的映射

找不到符合形式的表头时返回空映射；行中缺少的单元格以空字符串占位，列键依然存在。
单元格含图片时取图片文件名，空白评级图片记为"0"，否则取单元格文本
*/
func DecodeSeasons(table *goquery.Selection, mode SeasonMode) Seasons {
	result := make(Seasons)
	keys := seasonKeys(table, mode)
	if len(keys) == 0 {
		return result
	}

	table.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td, th")
		if cells.Length() == 0 {
			return
		}
		metric := metricKey(cells.First().Text())
		values := make(map[string]string, len(keys))
		for i, key := range keys {
			idx := i + 1
			if idx >= cells.Length() {
				values[key] = ""
				continue
			}
			values[key] = decodeCell(cells.Eq(idx))
		}
		result[metric] = values
	})
	return result
}

func seasonKeys(table *goquery.Selection, mode SeasonMode) []string {
	rows := table.Find("thead > tr")
	var keys []string
	switch mode {
	case ModePaired:
		if rows.Length() < 2 {
			return nil
		}
		rows.Eq(1).ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
			key := strings.ToLower(strings.Join(strings.Fields(th.Text()), ""))
			key = strings.NewReplacer("/", "_", " ", "_").Replace(key)
			keys = append(keys, key)
		})
	case ModeSingle:
		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			row.ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
				if text := cleanText(th.Text()); monthRe.MatchString(text) {
					keys = append(keys, strings.ToLower(text))
				}
			})
			return len(keys) == 0
		})
	}
	return keys
}

func metricKey(text string) string {
	key := strings.ToLower(cleanText(text))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, ".", "")
}

func decodeCell(cell *goquery.Selection) string {
	img := cell.Find("img").First()
	if img.Length() == 0 {
		return cleanText(cell.Text())
	}
	name := imageName(img.AttrOr("src", ""))
	if strings.HasPrefix(strings.ToLower(name), emptyRatingPrefix) {
		return "0"
	}
	return name
}

// 取图片地址路径中的文件名
func imageName(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}
