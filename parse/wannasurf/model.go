package wannasurf

// 缺失字段的占位值
const Sentinel = "empty"

type Role int

const (
	RoleCountry Role = iota
	RoleZone
)

func (r Role) String() string {
	if r == RoleCountry {
		return "country"
	}
	return "zone"
}

// 页面上发现的一个链接
type Link struct {
	Name string
	URL  string
}

// 首页上的一个大洲及其国家链接
type GroupLinks struct {
	Name      string
	Countries []Link
}

// 解析完成的大洲
type Group struct {
	Name      string
	Countries []*Node
}

// Seasons 为 指标 -> 列键 -> 值
type Seasons map[string]map[string]string

// Node 表示国家或区域，两者结构相同，由Role区分；构造完成后不再修改
type Node struct {
	Name      string
	URL       string
	Role      Role
	About     string // 为空表示页面没有有效简介
	AtAGlance string // 仅国家有
	Seasons   Seasons
	MapURL    string
	Children  []*Node
	Spots     []*Spot
}

// 没有子区域的节点直接拥有浪点
func (n *Node) IsLeafContainer() bool {
	return len(n.Children) == 0
}

// 递归统计子树中的浪点数量
func (n *Node) CountSpots() int {
	total := len(n.Spots)
	for _, c := range n.Children {
		total += c.CountSpots()
	}
	return total
}

// 浪点记录，字段值在构造时已经完成占位填充
type Spot struct {
	Name   string
	URL    string
	values [FieldCount]string
}

/*
输入浪点名称、地址和已提取的字段，输出浪点记录

所有提取步骤结束后才调用，未提取到或为空的字段统一写为Sentinel
*/
func NewSpot(name string, url string, values map[Field]string) *Spot {
	s := &Spot{Name: name, URL: url}
	for _, f := range Fields() {
		v := values[f]
		if v == "" {
			v = Sentinel
		}
		s.values[f] = v
	}
	return s
}

func (s *Spot) Value(f Field) string {
	return s.values[f]
}

// 平铺表中的一行：名称加22个字段
func (s *Spot) Row() []string {
	row := make([]string, 0, FieldCount+1)
	row = append(row, s.Name)
	row = append(row, s.values[:]...)
	return row
}
