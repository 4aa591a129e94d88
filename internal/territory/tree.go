package territory

import (
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/postal"
)

// Node is the canonical territorial tree node. Name is both the display value
// and the matching key; Code carries the postal or carrier machine code when
// one exists.
type Node struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// FromPostal converts the postal hierarchy into the canonical 3-level tree.
func FromPostal(regions []postal.Region) []Node {
	nodes := make([]Node, 0, len(regions))
	for _, region := range regions {
		regionNode := Node{Name: region.Name, Code: region.Code}
		for _, province := range region.Provinces {
			provinceNode := Node{Name: province.Name, Code: province.Code}
			for _, commune := range province.Communes {
				provinceNode.Children = append(provinceNode.Children, Node{
					Name: commune.Name,
					Code: commune.Code,
				})
			}
			regionNode.Children = append(regionNode.Children, provinceNode)
		}
		nodes = append(nodes, regionNode)
	}
	return nodes
}

// FromCarrier converts carrier regions plus their coverage areas into the
// 2-level tree consumed by the coverage resolver. Coverage areas double as
// communes; their county code is the machine code quoting needs.
func FromCarrier(regions []chilexpress.Region, areasByRegion map[string][]chilexpress.CoverageArea) []Node {
	nodes := make([]Node, 0, len(regions))
	for _, region := range regions {
		regionNode := Node{Name: region.RegionName, Code: region.RegionID}
		for _, area := range areasByRegion[region.RegionID] {
			regionNode.Children = append(regionNode.Children, Node{
				Name: area.CountyName,
				Code: area.CountyCode,
			})
		}
		nodes = append(nodes, regionNode)
	}
	return nodes
}

func findByName(nodes []Node, name string) *Node {
	for i := range nodes {
		if nodes[i].Name == name {
			return &nodes[i]
		}
	}
	return nil
}
