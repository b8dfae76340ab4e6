// Package competitor discovers nearby same-category listings: prioritized
// search-phrase generation from the subject's addresses and name, candidate
// harvesting from text search, and radius filtering against the subject's
// coordinates.
package competitor

import (
	"strings"

	"github.com/placepulse/place-audit/internal/textparse"
)

// recommendedSuffix is the "recommended spot" search qualifier locals
// actually type; it widens recall on area queries.
const recommendedSuffix = "맛집"

// BuildQueries generates the search phrases in priority order, deduplicated
// by exact string. The secondary (lot-number) address is the most precise
// source, so its sub-district leads; the area hint from the display name
// comes last.
func BuildQueries(category, address, name, secondaryAddress string) []string {
	mainCat := textparse.MainCategory(category)

	var queries []string
	if secondaryAddress != "" {
		district, subDistrict := textparse.Districts(secondaryAddress)
		if subDistrict != "" {
			queries = append(queries,
				subDistrict+" "+mainCat,
				subDistrict+" "+mainCat+" "+recommendedSuffix,
			)
		}
		if district != "" {
			queries = append(queries, district+" "+mainCat)
		}
	}

	if district, _ := textparse.Districts(address); district != "" && !anyHasPrefix(queries, district) {
		queries = append(queries, district+" "+mainCat)
	}

	if area := textparse.AreaHint(name); area != "" {
		queries = append(queries,
			area+" "+mainCat,
			area+" "+mainCat+" "+recommendedSuffix,
		)
	}

	return dedup(queries)
}

func anyHasPrefix(queries []string, prefix string) bool {
	for _, q := range queries {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}

func dedup(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := queries[:0]
	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}
