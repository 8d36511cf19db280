package report

import (
	"strings"

	"github.com/dszqbsm/wannasurf/parse/wannasurf"
)

// 报表中展示的季节指标
type Metric struct {
	Key     string
	Display string
}

var Metrics = []Metric{
	{"best_surfing_season", "best surfing"},
	{"typical_swell_size", "Typical Swell Size"},
	{"surf_equipment", "Surf Equipment"},
	{"water_temp", "Water temp."},
	{"air_temp", "Air temp."},
}

// 固定的双月坐标轴
var seasonAxis = []string{"jan_feb", "mar_apr", "may_jun", "jul_aug", "sep_oct", "nov_dec"}

/*
输入季节映射和指标键，输出六行"Jan/Feb - 值"形式的文本

缺少指标、缺少列或值为空、为"0"时写为empty
*/
func RenderSeason(seasons wannasurf.Seasons, metric string) []string {
	values := seasons[metric]
	lines := make([]string, 0, len(seasonAxis))
	for _, key := range seasonAxis {
		v := values[key]
		if v == "" || v == "0" {
			v = wannasurf.Sentinel
		}
		lines = append(lines, axisLabel(key)+" - "+v)
	}
	return lines
}

// jan_feb -> Jan/Feb
func axisLabel(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "/")
}

func seasonCells(seasons wannasurf.Seasons) []string {
	cells := make([]string, 0, len(Metrics))
	for _, m := range Metrics {
		cells = append(cells, strings.Join(RenderSeason(seasons, m.Key), "\n"))
	}
	return cells
}
