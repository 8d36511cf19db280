package wannasurf

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseNodeCountryWithZone(t *testing.T) {
	country := testBase + "/surf-spot/Europe/France/"
	zone := testBase + "/surf-spot/Europe/France/Aquitaine/"
	spot := testBase + "/surf-spot/Europe/France/Aquitaine/la-graviere/"

	f := newFakeFetcher(map[string]string{
		country: nodeFixture{
			title:  "France",
			about:  "Lots of   waves.",
			infos:  "Population: 65M",
			zones:  []Link{{Name: "Aquitaine", URL: "/surf-spot/Europe/France/Aquitaine/"}},
			spots:  []Link{{Name: "La Graviere", URL: "/surf-spot/Europe/France/Aquitaine/la-graviere/"}},
			season: true,
		}.String(),
		zone: nodeFixture{
			title: "Aquitaine",
			about: "Wanna add some info about this zone?",
			infos: "ignored for zones",
			spots: []Link{{Name: "La Graviere", URL: spot}},
		}.String(),
		spot: spotPage("La Graviere"),
	})
	p := NewParser(f)

	node, err := p.ParseNode(context.Background(), country, RoleCountry)
	require.NoError(t, err)

	assert.Equal(t, "France", node.Name)
	assert.Equal(t, RoleCountry, node.Role)
	assert.Equal(t, "Lots of waves.", node.About)
	assert.Equal(t, "Population: 65M Capital: Paris", node.AtAGlance)
	assert.Equal(t, testBase+"/maps/area.png", node.MapURL)
	assert.Equal(t, map[string]string{
		"jan_feb": "0", "mar_apr": "2-star.png", "may_jun": "", "jul_aug": "",
		"sep_oct": "5-star.png", "nov_dec": "",
	}, node.Seasons["best_surfing_season"])
	assert.Equal(t, "22", node.Seasons["water_temp"]["jul_aug"])

	assert.False(t, node.IsLeafContainer())
	assert.Empty(t, node.Spots)
	require.Len(t, node.Children, 1)

	z := node.Children[0]
	assert.Equal(t, "Aquitaine", z.Name)
	assert.Equal(t, RoleZone, z.Role)
	assert.Empty(t, z.About)
	assert.Empty(t, z.AtAGlance)
	assert.Empty(t, z.Seasons)
	assert.True(t, z.IsLeafContainer())
	require.Len(t, z.Spots, 1)
	assert.Equal(t, "La Graviere", z.Spots[0].Name)
	assert.Equal(t, "World Class", z.Spots[0].Value(WaveQuality))

	assert.Equal(t, 1, f.Calls(spot))
	assert.Equal(t, 1, node.CountSpots())
}

func TestParseNodeAtAGlanceAutomatic(t *testing.T) {
	url := testBase + "/country/"
	p := NewParser(newFakeFetcher(map[string]string{
		url: nodeFixture{title: "Peru", about: "", infos: "Automatic build from spots"}.String(),
	}))

	node, err := p.ParseNode(context.Background(), url, RoleCountry)
	require.NoError(t, err)
	assert.Empty(t, node.AtAGlance)
	assert.Empty(t, node.About)
	assert.True(t, node.IsLeafContainer())
	assert.Empty(t, node.Spots)
}

func zoneLinks(n int) ([]Link, map[string]string) {
	links := make([]Link, 0, n)
	pages := make(map[string]string, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Zone %d", i)
		url := fmt.Sprintf("%s/zone/%d/", testBase, i)
		spotURL := fmt.Sprintf("%s/zone/%d/spot/", testBase, i)
		links = append(links, Link{Name: name, URL: url})
		pages[url] = nodeFixture{title: name, spots: []Link{{Name: "spot", URL: spotURL}}}.String()
		pages[spotURL] = spotPage(fmt.Sprintf("Spot %d", i))
	}
	return links, pages
}

func TestParseNodeChildFailureIsolation(t *testing.T) {
	tests := []struct {
		name     string
		breakURL func(f *fakeFetcher, url string)
	}{
		{"fetch error", func(f *fakeFetcher, url string) { f.fail[url] = true }},
		{"panic", func(f *fakeFetcher, url string) { f.panics[url] = true }},
	}
	for _, tt := range tests {
		for _, workCount := range []int{1, 3} {
			t.Run(fmt.Sprintf("%s/workers=%d", tt.name, workCount), func(t *testing.T) {
				links, pages := zoneLinks(3)
				country := testBase + "/country/"
				pages[country] = nodeFixture{title: "France", zones: links}.String()
				f := newFakeFetcher(pages)
				tt.breakURL(f, links[1].URL)

				core, logs := observer.New(zapcore.WarnLevel)
				p := NewParser(f, WithLogger(zap.New(core)), WithWorkCount(workCount))

				node, err := p.ParseNode(context.Background(), country, RoleCountry)
				require.NoError(t, err)
				require.Len(t, node.Children, 2)
				assert.Equal(t, "Zone 1", node.Children[0].Name)
				assert.Equal(t, "Zone 3", node.Children[1].Name)
				assert.Len(t, node.Children[1].Spots, 1)

				skipped := logs.FilterMessage("zone skipped").All()
				require.Len(t, skipped, 1)
				assert.Equal(t, "Zone 2", skipped[0].ContextMap()["zone"])
			})
		}
	}
}

func TestParseNodeConcurrentOrder(t *testing.T) {
	links, pages := zoneLinks(8)
	country := testBase + "/country/"
	pages[country] = nodeFixture{title: "Indonesia", zones: links}.String()

	p := NewParser(newFakeFetcher(pages), WithWorkCount(4))
	node, err := p.ParseNode(context.Background(), country, RoleCountry)
	require.NoError(t, err)
	require.Len(t, node.Children, 8)
	for i, c := range node.Children {
		assert.Equal(t, fmt.Sprintf("Zone %d", i+1), c.Name)
		require.Len(t, c.Spots, 1)
		assert.Equal(t, fmt.Sprintf("Spot %d", i+1), c.Spots[0].Name)
	}
}

func TestParseNodeRetryAndCaps(t *testing.T) {
	url := testBase + "/zone/"
	var spots []Link
	pages := map[string]string{}
	for i := 1; i <= 3; i++ {
		u := fmt.Sprintf("%s/spot/%d/", testBase, i)
		spots = append(spots, Link{Name: fmt.Sprintf("s%d", i), URL: u})
		pages[u] = spotPage(fmt.Sprintf("Spot %d", i))
	}
	pages[url] = nodeFixture{title: "Bali", spots: spots}.String()

	f := newFakeFetcher(pages)
	f.failOnce[spots[0].URL] = true
	p := NewParser(f, WithMaxSpots(2))

	node, err := p.ParseNode(context.Background(), url, RoleZone)
	require.NoError(t, err)
	require.Len(t, node.Spots, 2)
	assert.Equal(t, "Spot 1", node.Spots[0].Name)
	assert.Equal(t, "Spot 2", node.Spots[1].Name)
	assert.Equal(t, 2, f.Calls(spots[0].URL))
	assert.Equal(t, 0, f.Calls(spots[2].URL))
}

func TestParseNodeNoRetry(t *testing.T) {
	url := testBase + "/zone/"
	spot := testBase + "/spot/1/"
	f := newFakeFetcher(map[string]string{
		url:  nodeFixture{title: "Bali", spots: []Link{{Name: "s1", URL: spot}}}.String(),
		spot: spotPage("Spot 1"),
	})
	f.failOnce[spot] = true
	p := NewParser(f, WithRetry(false))

	node, err := p.ParseNode(context.Background(), url, RoleZone)
	require.NoError(t, err)
	assert.Empty(t, node.Spots)
	assert.Equal(t, 1, f.Calls(spot))
}

func TestParseNodeCycle(t *testing.T) {
	country := testBase + "/country/"
	zone := testBase + "/zone/"
	f := newFakeFetcher(map[string]string{
		country: nodeFixture{title: "Chile", zones: []Link{{Name: "North", URL: zone}}}.String(),
		zone:    nodeFixture{title: "North", zones: []Link{{Name: "Back", URL: country}}}.String(),
	})
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewParser(f, WithLogger(zap.New(core)))

	node, err := p.ParseNode(context.Background(), country, RoleCountry)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Empty(t, node.Children[0].Children)
	assert.Equal(t, 1, f.Calls(country))

	skipped := logs.FilterMessage("zone skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "Back", skipped[0].ContextMap()["zone"])
	assert.Contains(t, fmt.Sprint(skipped[0].ContextMap()["error"]), ErrAlreadyVisited.Error())
}

func TestParseNodeCancelled(t *testing.T) {
	links, pages := zoneLinks(3)
	country := testBase + "/country/"
	pages[country] = nodeFixture{title: "France", zones: links}.String()
	p := NewParser(newFakeFetcher(pages))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.ParseNode(ctx, country, RoleCountry)
	assert.ErrorIs(t, err, context.Canceled)
}
