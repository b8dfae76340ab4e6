package listing

import (
	"strings"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/pkg/naver"
)

// partnerEntry is the delivery-partner side of the menu merge.
type partnerEntry struct {
	price    *int
	desc     string
	hasPhoto bool
	group    string
	isRep    bool
}

// MergeMenus performs the keyed outer join of the base menu board and the
// optional delivery-partner menu groups, keyed by item name.
//
// Field precedence:
//
//	price, has-photo      base when present, else partner
//	description           whichever source has one (base first)
//	group, representative partner-derived, OR'd with the base recommend flag
//
// Items only present on the partner side are appended after the base items.
// Names are unique in the result.
func MergeMenus(base []naver.BaseMenu, partner *naver.Partner) []model.MenuItem {
	partnerNames, partnerByName := collectPartner(partner)

	seen := make(map[string]bool)
	menus := make([]model.MenuItem, 0, len(base))

	for _, m := range base {
		if m.Name == "" {
			continue
		}
		seen[m.Name] = true

		pe := partnerByName[m.Name]
		item := model.MenuItem{
			Name:             m.Name,
			Price:            parsePrice(m.Price),
			HasPhoto:         len(m.Images) > 0,
			IsRepresentative: m.Recommend,
		}
		if m.Description != "" {
			item.Description = strptr(m.Description)
		}
		if pe != nil {
			if item.Price == nil {
				item.Price = pe.price
			}
			if item.Description == nil && pe.desc != "" {
				item.Description = strptr(pe.desc)
			}
			if pe.hasPhoto {
				item.HasPhoto = true
			}
			if pe.group != "" {
				item.Group = strptr(pe.group)
			}
			if pe.isRep {
				item.IsRepresentative = true
			}
		}
		menus = append(menus, item)
	}

	for _, name := range partnerNames {
		if seen[name] {
			continue
		}
		seen[name] = true
		pe := partnerByName[name]
		item := model.MenuItem{
			Name:             name,
			Price:            pe.price,
			HasPhoto:         pe.hasPhoto,
			IsRepresentative: pe.isRep,
		}
		if pe.desc != "" {
			item.Description = strptr(pe.desc)
		}
		if pe.group != "" {
			item.Group = strptr(pe.group)
		}
		menus = append(menus, item)
	}

	return menus
}

// collectPartner flattens the partner menu groups into an insertion-ordered
// name index. Later duplicates of a name overwrite earlier ones, matching
// the source structure's last-write-wins behavior.
func collectPartner(partner *naver.Partner) ([]string, map[string]*partnerEntry) {
	byName := make(map[string]*partnerEntry)
	var names []string
	if partner == nil {
		return names, byName
	}
	for _, group := range partner.MenuGroups {
		groupIsRep := group.IsRepresentative || strings.Contains(group.Name, "대표")
		for _, m := range group.Menus {
			if m.Name == "" {
				continue
			}
			if _, dup := byName[m.Name]; !dup {
				names = append(names, m.Name)
			}
			byName[m.Name] = &partnerEntry{
				price:    parsePrice(m.Price),
				desc:     m.Desc,
				hasPhoto: len(m.Images) > 0,
				group:    group.Name,
				isRep:    m.IsRepresentative || groupIsRep,
			}
		}
	}
	return names, byName
}

// parsePrice reads the leading digit run of a price string ("9000",
// "9,000원" → 9000, 9). Nil when the string has no leading digits.
func parsePrice(s string) *int {
	s = strings.TrimSpace(s)
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return nil
	}
	return &n
}

func strptr(s string) *string { return &s }
