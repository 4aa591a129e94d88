package territory

// Selection is the resolver's current pick at each level. CommuneCode is
// captured alongside the name because quoting needs the code while display
// needs the name.
type Selection struct {
	Region      string `json:"region"`
	Province    string `json:"province"`
	Commune     string `json:"commune"`
	CommuneCode string `json:"commune_code,omitempty"`
}

// Resolver keeps the three-level region/province/commune selection state
// consistent: whenever a parent changes, every dependent selection and option
// list is cleared.
type Resolver struct {
	regions   []Node
	provinces []Node
	communes  []Node
	selection Selection
}

// NewResolver builds a resolver over the immutable root regions list.
func NewResolver(regions []Node) *Resolver {
	return &Resolver{regions: regions}
}

// Regions returns the immutable root option list.
func (r *Resolver) Regions() []Node {
	return r.regions
}

// Provinces returns the option list for the selected region.
func (r *Resolver) Provinces() []Node {
	return r.provinces
}

// Communes returns the option list for the selected province.
func (r *Resolver) Communes() []Node {
	return r.communes
}

// Selection returns the current picks.
func (r *Resolver) Selection() Selection {
	return r.selection
}

// SelectRegion picks a region by name ("" clears). Province and commune
// selections and their option lists are cleared unconditionally, even when
// the same region is re-selected.
func (r *Resolver) SelectRegion(name string) {
	r.selection = Selection{Region: name}
	r.provinces = nil
	r.communes = nil
	if name == "" {
		return
	}
	if region := findByName(r.regions, name); region != nil {
		r.provinces = region.Children
	}
}

// SelectProvince picks a province by name ("" clears); the commune selection
// and its option list are cleared.
func (r *Resolver) SelectProvince(name string) {
	r.selection.Province = name
	r.selection.Commune = ""
	r.selection.CommuneCode = ""
	r.communes = nil
	if name == "" {
		return
	}
	if province := findByName(r.provinces, name); province != nil {
		r.communes = province.Children
	}
}

// SelectCommune picks a commune by name ("" clears), capturing its machine
// code when the name matches a known option.
func (r *Resolver) SelectCommune(name string) {
	r.selection.Commune = name
	r.selection.CommuneCode = ""
	if name == "" {
		return
	}
	if commune := findByName(r.communes, name); commune != nil {
		r.selection.CommuneCode = commune.Code
	}
}

// Prefill reconstructs the cascade from stored names, for edit forms. Lookup
// is by exact name; when a level does not match the canonical tree the raw
// name is preserved and the dependent option lists stay empty.
func (r *Resolver) Prefill(region, province, commune string) {
	r.SelectRegion(region)
	if province != "" {
		r.SelectProvince(province)
	}
	if commune != "" {
		r.SelectCommune(commune)
	}
}

// CoverageSelection mirrors Selection for the carrier's 2-level hierarchy.
type CoverageSelection struct {
	Region     string `json:"region"`
	Area       string `json:"area"`
	CountyCode string `json:"county_code,omitempty"`
}

// CoverageResolver is the two-level variant for the carrier hierarchy, where
// a coverage area acts as the commune. Same clear-on-change discipline.
type CoverageResolver struct {
	regions   []Node
	areas     []Node
	selection CoverageSelection
}

// NewCoverageResolver builds a resolver over the carrier tree.
func NewCoverageResolver(regions []Node) *CoverageResolver {
	return &CoverageResolver{regions: regions}
}

// Regions returns the carrier region option list.
func (r *CoverageResolver) Regions() []Node {
	return r.regions
}

// Areas returns the option list for the selected region.
func (r *CoverageResolver) Areas() []Node {
	return r.areas
}

// Selection returns the current picks.
func (r *CoverageResolver) Selection() CoverageSelection {
	return r.selection
}

// SelectRegion picks a carrier region by name ("" clears), clearing the area
// selection and option list.
func (r *CoverageResolver) SelectRegion(name string) {
	r.selection = CoverageSelection{Region: name}
	r.areas = nil
	if name == "" {
		return
	}
	if region := findByName(r.regions, name); region != nil {
		r.areas = region.Children
	}
}

// SelectArea picks a coverage area by name ("" clears), capturing the county
// code quoting requires.
func (r *CoverageResolver) SelectArea(name string) {
	r.selection.Area = name
	r.selection.CountyCode = ""
	if name == "" {
		return
	}
	if area := findByName(r.areas, name); area != nil {
		r.selection.CountyCode = area.Code
	}
}
