package postal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Region is the canonical three-level hierarchy root produced by this client.
type Region struct {
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	Provinces []Province `json:"provinces"`
}

// Province groups communes within a region.
type Province struct {
	Name     string    `json:"name"`
	Code     string    `json:"code,omitempty"`
	Communes []Commune `json:"communes"`
}

// Commune is the leaf node; Code carries the postal code when known.
type Commune struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// normalizeRegions collapses the upstream's inconsistent field naming into the
// canonical shape. The upstream mixes id/code/codigo and name/nombre keys
// across rows, so every candidate is tried in a fixed priority order, once,
// here at the boundary.
func normalizeRegions(rows []json.RawMessage) []Region {
	regions := make([]Region, 0, len(rows))
	for _, raw := range rows {
		var row map[string]any
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}

		name := pickString(row, "name", "nombre", "regionName", "region")
		if name == "" {
			continue
		}

		region := Region{
			Name: name,
			Code: pickString(row, "code", "codigo", "id", "regionCode"),
		}

		for _, provRow := range pickRows(row, "provinces", "provincias") {
			provName := pickString(provRow, "name", "nombre", "provinceName", "province")
			if provName == "" {
				continue
			}
			province := Province{
				Name: provName,
				Code: pickString(provRow, "code", "codigo", "id"),
			}
			for _, comRow := range pickRows(provRow, "communes", "comunas") {
				comName := pickString(comRow, "name", "nombre", "communeName", "commune", "comuna")
				if comName == "" {
					continue
				}
				province.Communes = append(province.Communes, Commune{
					Name: comName,
					Code: pickString(comRow, "postalCode", "code", "codigo", "id"),
				})
			}
			region.Provinces = append(region.Provinces, province)
		}

		// Some rows attach communes directly to the region; fold them into a
		// synthetic province named after the region so the tree stays 3-level.
		if len(region.Provinces) == 0 {
			if communes := pickRows(row, "communes", "comunas"); len(communes) > 0 {
				province := Province{Name: name}
				for _, comRow := range communes {
					comName := pickString(comRow, "name", "nombre", "communeName", "commune", "comuna")
					if comName == "" {
						continue
					}
					province.Communes = append(province.Communes, Commune{
						Name: comName,
						Code: pickString(comRow, "postalCode", "code", "codigo", "id"),
					})
				}
				region.Provinces = append(region.Provinces, province)
			}
		}

		regions = append(regions, region)
	}
	return regions
}

func pickString(row map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func pickRows(row map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		value, ok := row[key]
		if !ok {
			continue
		}
		list, ok := value.([]any)
		if !ok {
			continue
		}
		rows := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		if len(rows) > 0 {
			return rows
		}
	}
	return nil
}
