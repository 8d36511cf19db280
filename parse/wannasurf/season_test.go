package wannasurf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSeasonsPaired(t *testing.T) {
	doc := mustDoc(t, `<table id="wanna-season-table">
<thead>
<tr><th></th><th colspan="2">Seasons</th></tr>
<tr><th>Jan/Feb</th><th>Mar/Apr</th></tr>
</thead>
<tbody>
<tr><td>best season</td><td><img src="/img/3-star.png"></td><td><img src="http://cdn.test/img/wanna-empty-1x1.gif"></td></tr>
</tbody>
</table>`)

	got := DecodeSeasons(doc.Find("table"), ModePaired)
	assert.Equal(t, Seasons{
		"best_season": {"jan_feb": "3-star.png", "mar_apr": "0"},
	}, got)
}

func TestDecodeSeasonsCells(t *testing.T) {
	doc := mustDoc(t, `<table>
<thead>
<tr><th></th><th colspan="3">Seasons</th></tr>
<tr><th>Jan / Feb</th><th>Mar/Apr</th><th>May/Jun</th></tr>
</thead>
<tbody>
<tr><th>Water temp.</th><td> 14&nbsp;°C </td><td>16 °C</td></tr>
<tr><td>Surf Equipment</td><td>4/3 wetsuit</td><td></td><td>Shorty</td></tr>
<tr></tr>
</tbody>
</table>`)

	got := DecodeSeasons(doc.Find("table"), ModePaired)
	assert.Equal(t, Seasons{
		"water_temp":     {"jan_feb": "14 °C", "mar_apr": "16 °C", "may_jun": ""},
		"surf_equipment": {"jan_feb": "4/3 wetsuit", "mar_apr": "", "may_jun": "Shorty"},
	}, got)
}

func TestDecodeSeasonsSingle(t *testing.T) {
	doc := mustDoc(t, `<table>
<thead>
<tr><th></th><th colspan="3">Months</th></tr>
<tr><th></th><th>Jan</th><th>Feb</th><th>Mar</th></tr>
</thead>
<tbody>
<tr><td>Typical Swell Size</td><td><img src="/img/swell-2.png"></td><td><img src="/img/wanna-empty.gif"></td><td>flat</td></tr>
</tbody>
</table>`)

	got := DecodeSeasons(doc.Find("table"), ModeSingle)
	assert.Equal(t, Seasons{
		"typical_swell_size": {"jan": "swell-2.png", "feb": "0", "mar": "flat"},
	}, got)
}

func TestDecodeSeasonsNoHeader(t *testing.T) {
	tests := []struct {
		name string
		page string
		mode SeasonMode
	}{
		{"paired single header row", `<table><thead><tr><th>Jan/Feb</th></tr></thead><tbody><tr><td>x</td><td>y</td></tr></tbody></table>`, ModePaired},
		{"single without months", `<table><thead><tr><th>January</th><th>2</th></tr></thead><tbody><tr><td>x</td><td>y</td></tr></tbody></table>`, ModeSingle},
		{"no table", `<div></div>`, ModePaired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.page)
			got := DecodeSeasons(doc.Find("table"), tt.mode)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}
