package territory

import "testing"

func metropolitanTree() []Node {
	return []Node{
		{
			Name: "Metropolitana",
			Code: "13",
			Children: []Node{
				{
					Name: "Santiago",
					Children: []Node{
						{Name: "Providencia", Code: "13114"},
						{Name: "Ñuñoa", Code: "13120"},
					},
				},
				{
					Name: "Cordillera",
					Children: []Node{
						{Name: "Puente Alto", Code: "13201"},
					},
				},
			},
		},
		{
			Name: "Valparaíso",
			Code: "5",
			Children: []Node{
				{
					Name: "Marga Marga",
					Children: []Node{
						{Name: "Quilpué", Code: "5801"},
					},
				},
			},
		},
	}
}

func TestSelectRegionSetsProvincesAndClearsChildren(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())

	r.SelectRegion("Metropolitana")
	r.SelectProvince("Santiago")
	r.SelectCommune("Providencia")

	if sel := r.Selection(); sel.Commune != "Providencia" || sel.CommuneCode != "13114" {
		t.Fatalf("expected Providencia/13114 selection, got %+v", sel)
	}

	// Changing the region clears every dependent level.
	r.SelectRegion("Valparaíso")

	sel := r.Selection()
	if sel.Province != "" || sel.Commune != "" || sel.CommuneCode != "" {
		t.Fatalf("region change must clear child selections, got %+v", sel)
	}
	if len(r.Provinces()) != 1 || r.Provinces()[0].Name != "Marga Marga" {
		t.Fatalf("unexpected provinces after region change: %+v", r.Provinces())
	}
	if r.Communes() != nil {
		t.Fatalf("commune options should be cleared, got %+v", r.Communes())
	}
}

func TestSelectRegionNilClearsEverything(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())
	r.SelectRegion("Metropolitana")
	r.SelectProvince("Santiago")

	r.SelectRegion("")

	if sel := r.Selection(); sel != (Selection{}) {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
	if r.Provinces() != nil || r.Communes() != nil {
		t.Fatal("expected empty option lists after clearing the region")
	}
}

func TestSelectProvinceClearsCommune(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())
	r.SelectRegion("Metropolitana")
	r.SelectProvince("Santiago")
	r.SelectCommune("Ñuñoa")

	r.SelectProvince("Cordillera")

	sel := r.Selection()
	if sel.Commune != "" || sel.CommuneCode != "" {
		t.Fatalf("province change must clear the commune, got %+v", sel)
	}
	if len(r.Communes()) != 1 || r.Communes()[0].Name != "Puente Alto" {
		t.Fatalf("unexpected communes: %+v", r.Communes())
	}
}

func TestSelectCommuneWithoutMatchKeepsNameOnly(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())
	r.SelectRegion("Metropolitana")
	r.SelectProvince("Santiago")
	r.SelectCommune("La Reina")

	sel := r.Selection()
	if sel.Commune != "La Reina" {
		t.Fatalf("unmatched commune name should be preserved, got %+v", sel)
	}
	if sel.CommuneCode != "" {
		t.Fatalf("unmatched commune must not carry a code, got %q", sel.CommuneCode)
	}
}

func TestPrefillReconstructsCascade(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())
	r.Prefill("Metropolitana", "Santiago", "Providencia")

	sel := r.Selection()
	if sel.Region != "Metropolitana" || sel.Province != "Santiago" || sel.Commune != "Providencia" {
		t.Fatalf("unexpected prefill selection: %+v", sel)
	}
	if sel.CommuneCode != "13114" {
		t.Fatalf("prefill should recover the commune code, got %q", sel.CommuneCode)
	}
	if len(r.Provinces()) != 2 || len(r.Communes()) != 2 {
		t.Fatal("prefill should rebuild the intermediate option lists")
	}
}

func TestPrefillUnknownRegionDegradesGracefully(t *testing.T) {
	t.Parallel()

	r := NewResolver(metropolitanTree())
	r.Prefill("Atlantis", "Santiago", "Providencia")

	sel := r.Selection()
	if sel.Region != "Atlantis" || sel.Province != "Santiago" || sel.Commune != "Providencia" {
		t.Fatalf("raw stored names should be preserved, got %+v", sel)
	}
	if r.Provinces() != nil || r.Communes() != nil {
		t.Fatal("dependent option lists must stay empty for an unknown region")
	}
	if sel.CommuneCode != "" {
		t.Fatal("no code can be recovered without a tree match")
	}
}

func TestCoverageResolverTwoLevelCascade(t *testing.T) {
	t.Parallel()

	tree := []Node{
		{
			Name: "Metropolitana",
			Code: "R13",
			Children: []Node{
				{Name: "PROVIDENCIA", Code: "PROV"},
				{Name: "SANTIAGO CENTRO", Code: "STGO"},
			},
		},
	}

	r := NewCoverageResolver(tree)
	r.SelectRegion("Metropolitana")
	if len(r.Areas()) != 2 {
		t.Fatalf("unexpected areas: %+v", r.Areas())
	}

	r.SelectArea("PROVIDENCIA")
	if sel := r.Selection(); sel.CountyCode != "PROV" {
		t.Fatalf("expected county code PROV, got %+v", sel)
	}

	r.SelectRegion("")
	if sel := r.Selection(); sel.Area != "" || sel.CountyCode != "" {
		t.Fatalf("region clear must drop the area selection, got %+v", sel)
	}
	if r.Areas() != nil {
		t.Fatal("area options should be cleared")
	}
}
