package wannasurf

import (
	"fmt"
	"strings"
)

const testBase = "http://surf.test"

func linkTable(heading string, links []Link) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h3 class="wanna-item">%s</h3><table><tr><th>Name</th><th>Waves</th></tr>`, heading)
	for _, l := range links {
		fmt.Fprintf(&b, `<tr><td><a href="%s">%s</a></td><td>3</td></tr>`, l.URL, l.Name)
	}
	b.WriteString(`</table>`)
	return b.String()
}

type nodeFixture struct {
	title  string
	about  string
	infos  string
	zones  []Link
	spots  []Link
	season bool
}

func (n nodeFixture) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><head><title>%s - Surfing - wannasurf</title></head><body>`, n.title)
	fmt.Fprintf(&b, `<div id="wanna-country-tab-about"><p style="display:inline">%s</p></div>`, n.about)
	if n.infos != "" {
		fmt.Fprintf(&b, `<div id="wanna-country-tab-infos"><ul><li>%s</li><li>Capital: <b>Paris</b></li></ul></div>`, n.infos)
	}
	if n.season {
		b.WriteString(`<div id="wanna-country-tab-additional-info"><table id="wanna-season-table">
<thead><tr><th></th><th colspan="6">Seasons</th></tr>
<tr><th>Jan/Feb</th><th>Mar/Apr</th><th>May/Jun</th><th>Jul/Aug</th><th>Sep/Oct</th><th>Nov/Dec</th></tr></thead>
<tbody><tr><td>Best surfing season</td><td><img src="/img/wanna-empty-1x1.gif"></td><td><img src="/img/2-star.png"></td><td></td><td></td><td><img src="/img/5-star.png"></td><td></td></tr>
<tr><td>Water temp.</td><td>12</td><td>14</td><td>18</td><td>22</td><td>19</td><td>15</td></tr></tbody>
</table></div>`)
	}
	b.WriteString(`<div id="wanna-item-tab-additional-map"><img src="/maps/area.png"></div>`)
	if len(n.zones) > 0 {
		b.WriteString(linkTable("Surf Zones in "+n.title, n.zones))
	}
	if len(n.spots) > 0 {
		b.WriteString(linkTable("Surf Spots in "+n.title, n.spots))
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func spotPage(name string) string {
	return fmt.Sprintf(`<html><head><title>%s - Surfing in France - wannasurf</title></head><body>
<h3 class="wanna-item"><a href="#">Surf&nbsp;Spot</a> Access</h3>
<table><tr><td>
<p><span class="wanna-item-label">Distance :</span> 2 km</p>
<p><span class="wanna-item-label">Walk :</span> 5 mn</p>
<p><span class="wanna-item-label">Easy to find? :</span> Yes</p>
<p><span class="wanna-item-label">Public access? :</span> Yes</p>
<p><span class="wanna-item-label">Special access :</span> None</p>
</td></tr></table>
<h3 class="wanna-item">Surf Spot Characteristics</h3>
<div id="wanna-item-specific-2columns-left">
<h5>Wave</h5>
<p><span class="wanna-item-label">Wave quality :</span> World Class</p>
<p><span class="wanna-item-label">Experience :</span> Experienced surfers</p>
<p><span class="wanna-item-label">Frequency :</span> Very consistent</p>
<p><span class="wanna-item-label">Type :</span> Beach-break</p>
<p><span class="wanna-item-label">Direction :</span> Left and right</p>
<p><span class="wanna-item-label">Bottom :</span> Sand</p>
<p><span class="wanna-item-label">Power :</span> Hollow</p>
<p><span class="wanna-item-label">Normal length :</span> Short</p>
<p><span class="wanna-item-label">Good day length :</span> 50 to 150m</p>
</div>
<div id="wanna-item-specific-2columns-right">
<h5>Swell</h5>
<p><span class="wanna-item-label">Good swell direction :</span> West</p>
<p><span class="wanna-item-label">Good wind direction :</span> East</p>
<p><span class="wanna-item-label">Swell size :</span> 1.5m to 4m+</p>
<h5>Tide</h5>
<p><span class="wanna-item-label">Best tide position :</span> Mid tide</p>
<p><span class="wanna-item-label">Best tide movement :</span> Rising</p>
</div>
<h3 class="wanna-item">Additional Information</h3>
<div><p>intro</p><p style="display:inline">Crowded   in summer.</p></div>
<p><span class="wanna-item-label-gps">Latitude</span> 43.6742 <span class="wanna-item-label-gps">Longitude</span>&nbsp;-1.4421&nbsp;</p>
</body></html>`, name)
}
