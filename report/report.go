package report

import (
	"strconv"

	"github.com/dszqbsm/wannasurf/parse/wannasurf"
)

type Kind int

const (
	KindCountry Kind = iota // 国家汇总表
	KindZones               // 国家的直接子区域
	KindNested              // 某个区域的子区域
	KindSpots               // 叶子节点的浪点表
	KindFlat                // 平铺的浪点表
)

func (k Kind) String() string {
	switch k {
	case KindCountry:
		return "country"
	case KindZones:
		return "zones"
	case KindNested:
		return "nested"
	case KindSpots:
		return "spots"
	case KindFlat:
		return "flat"
	}
	return "unknown"
}

// 一张报表，Header可以有多行
type Table struct {
	Name   string
	Kind   Kind
	Group  string // 所属大洲
	Owner  string // 表格对应的节点名称
	Header [][]string
	Rows   [][]string
}

// 每个大洲一个工作簿
type Workbook struct {
	Name   string
	Sheets []*Table
}

type Result struct {
	Workbooks []*Workbook
	Flat      []*Table // 每个叶子节点一张平铺表
}

const (
	countrySheet = "Country"
	zonesSheet   = "Zones"
)

var (
	countryHeader = [][]string{
		{"country", "continent", "about", "at a glance", "seasons", "", "", "", ""},
		seasonHeaderRow(4),
	}
	zonesHeader = [][]string{
		{"country", "zone", "Surf Spots", "Sub zones", "about", "at a glance", "seasons", "", "", "", ""},
		seasonHeaderRow(6),
	}
	nestedHeader = [][]string{
		{"Zone", "sub zone", "Surf Spots", "Sub zones", "about", "at a glance", "seasons", "", "", "", ""},
		seasonHeaderRow(6),
	}
)

func seasonHeaderRow(offset int) []string {
	row := make([]string, offset, offset+len(Metrics))
	for _, m := range Metrics {
		row = append(row, m.Display)
	}
	return row
}

func spotsHeader() [][]string {
	row := []string{"zone"}
	row = append(row, wannasurf.FlatHeader()...)
	return [][]string{row}
}

/*
输入抓取得到的森林，输出全部报表

每个大洲生成一个工作簿：国家表、子区域表、每个含子区域的区域各一张表，以及每个叶子节点的浪点表；
同时为每个叶子节点生成一张平铺表。相同的输入总是得到相同的名称与顺序
*/
func Aggregate(forest []*wannasurf.Group) *Result {
	res := &Result{}
	books := NewNamer(FileNameLimit)
	flat := NewNamer(FileNameLimit)

	for _, g := range forest {
		wb := &Workbook{Name: books.Unique(g.Name)}
		sheets := NewNamer(SheetNameLimit, countrySheet, zonesSheet)

		country := &Table{Name: countrySheet, Kind: KindCountry, Group: g.Name, Owner: g.Name, Header: countryHeader}
		zones := &Table{Name: zonesSheet, Kind: KindZones, Group: g.Name, Owner: g.Name, Header: zonesHeader}
		var nested, leaves []*wannasurf.Node

		for _, c := range g.Countries {
			row := []string{c.Name, g.Name, orEmpty(c.About), orEmpty(c.AtAGlance)}
			country.Rows = append(country.Rows, append(row, seasonCells(c.Seasons)...))

			for _, z := range c.Children {
				zones.Rows = append(zones.Rows, childRow(c.Name, z))
			}
			walk(c, func(n *wannasurf.Node) {
				if n.IsLeafContainer() {
					leaves = append(leaves, n)
				} else if n != c {
					nested = append(nested, n)
				}
			})
		}
		wb.Sheets = append(wb.Sheets, country, zones)

		for _, n := range nested {
			t := &Table{Name: sheets.Unique(n.Name), Kind: KindNested, Group: g.Name, Owner: n.Name, Header: nestedHeader}
			for _, z := range n.Children {
				t.Rows = append(t.Rows, childRow(n.Name, z))
			}
			wb.Sheets = append(wb.Sheets, t)
		}
		for _, n := range leaves {
			t := &Table{Name: sheets.Unique(n.Name), Kind: KindSpots, Group: g.Name, Owner: n.Name, Header: spotsHeader()}
			for _, s := range n.Spots {
				t.Rows = append(t.Rows, append([]string{n.Name}, s.Row()...))
			}
			wb.Sheets = append(wb.Sheets, t)

			ft := &Table{Name: flat.Unique(n.Name), Kind: KindFlat, Group: g.Name, Owner: n.Name,
				Header: [][]string{wannasurf.FlatHeader()}}
			for _, s := range n.Spots {
				ft.Rows = append(ft.Rows, s.Row())
			}
			res.Flat = append(res.Flat, ft)
		}
		res.Workbooks = append(res.Workbooks, wb)
	}
	return res
}

func childRow(parent string, z *wannasurf.Node) []string {
	row := []string{
		parent,
		z.Name,
		strconv.Itoa(len(z.Spots)),
		strconv.Itoa(len(z.Children)),
		orEmpty(z.About),
		wannasurf.Sentinel,
	}
	return append(row, seasonCells(z.Seasons)...)
}

// 先序遍历
func walk(n *wannasurf.Node, fn func(*wannasurf.Node)) {
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

func orEmpty(s string) string {
	if s == "" {
		return wannasurf.Sentinel
	}
	return s
}
