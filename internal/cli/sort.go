package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/stationsdata/internal/station"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortDeclared  SortOrder = "declared"
	SortByName    SortOrder = "name"
	SortByCommune SortOrder = "commune"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(s))
	switch order {
	case SortDeclared, SortByName, SortByCommune:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'declared', 'name' or 'commune')", s)
	}
}

// sortViews sorts station views in place. Declared order is left as is.
func sortViews(views []*StationView, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(views, func(i, j int) bool {
			return compareByName(views[i], views[j])
		})
	case SortByCommune:
		sort.SliceStable(views, func(i, j int) bool {
			ci, cj := firstCommune(views[i]), firstCommune(views[j])
			if ci != cj {
				// Stations without a comuna go last
				if ci == "" || cj == "" {
					return cj == ""
				}
				return ci < cj
			}
			return compareByName(views[i], views[j])
		})
	}
}

// compareByName orders by name, then line
func compareByName(a, b *StationView) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Line < b.Line
}

// firstCommune returns the key form of the first comuna, so that
// "Ñuñoa" and "nunoa" sort together
func firstCommune(v *StationView) string {
	if len(v.Communes) == 0 {
		return ""
	}
	return station.NormalizeKey(v.Communes[0])
}
