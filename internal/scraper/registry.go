package scraper

import (
	"sort"
	"strings"
)

var registry = map[string]Site{}

func Register(s Site) {
	registry[strings.ToLower(s.Region())] = s
}

func Get(region string) (Site, bool) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(region))]
	return s, ok
}

// Regions returns every registered site ordered by region code.
func Regions() []Site {
	sites := make([]Site, 0, len(registry))
	for _, s := range registry {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool {
		return sites[i].Region() < sites[j].Region()
	})
	return sites
}
