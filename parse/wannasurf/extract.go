package wannasurf

import (
	"github.com/PuerkitoBio/goquery"
)

/*
输入候选元素集合和标签集合，输出字段到取值的映射

每个候选元素若含有标签span，则读取标签文本并在标签集合中查找对应字段，未知标签直接忽略；
取值时在元素副本上移除全部span再读取剩余文本，原文档不会被修改。
同一字段出现多次时以后出现的为准，未出现的字段不会出现在结果中
*/
func ExtractFields(candidates *goquery.Selection, set LabelSet) map[Field]string {
	result := make(map[Field]string)
	candidates.Each(func(_ int, s *goquery.Selection) {
		f, value, ok := extractOne(s, set)
		if ok {
			result[f] = value
		}
	})
	return result
}

func extractOne(s *goquery.Selection, set LabelSet) (Field, string, bool) {
	label := s.FindMatcher(labelSpanSel).First()
	if label.Length() == 0 {
		return 0, "", false
	}
	f, ok := set.Lookup(label.Text())
	if !ok {
		return 0, "", false
	}
	c := s.Clone()
	c.Find("span").Remove()
	return f, cleanText(c.Text()), true
}
