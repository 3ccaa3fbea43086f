package models

import "testing"

func TestEraOrdering(t *testing.T) {
	eras := AllEras()
	if len(eras) != 10 {
		t.Fatalf("Expected 10 eras, got %d", len(eras))
	}
	for i := 1; i < len(eras); i++ {
		if !eras[i-1].Before(eras[i]) {
			t.Errorf("Expected %s before %s", eras[i-1], eras[i])
		}
		if eras[i].Before(eras[i-1]) {
			t.Errorf("Expected %s not before %s", eras[i], eras[i-1])
		}
	}
	if Stone.Index() != 0 || Transcendence.Index() != 9 {
		t.Errorf("Unexpected indices: stone=%d transcendence=%d", Stone.Index(), Transcendence.Index())
	}
}

func TestEraReached(t *testing.T) {
	tests := []struct {
		era     Era
		current Era
		want    bool
	}{
		{Stone, Stone, true},
		{Stone, BronzeAge, true},
		{BronzeAge, Stone, false},
		{Medieval, Industrial, true},
		{Future, Industrial, false},
	}
	for _, tt := range tests {
		if got := tt.era.Reached(tt.current); got != tt.want {
			t.Errorf("%s.Reached(%s) = %v, want %v", tt.era, tt.current, got, tt.want)
		}
	}
}

func TestUnknownEra(t *testing.T) {
	e := Era("bogus")
	if e.Valid() {
		t.Error("Expected unknown era to be invalid")
	}
	if e.Index() != -1 {
		t.Errorf("Expected index -1, got %d", e.Index())
	}
}

func TestResourceTypeValid(t *testing.T) {
	for _, rt := range AllResourceTypes() {
		if !rt.Valid() {
			t.Errorf("Expected %s to be valid", rt)
		}
	}
	if ResourceType("mana").Valid() {
		t.Error("Expected mana to be invalid")
	}
}

func TestCostsEachVisitsOnlyPresentKeysInOrder(t *testing.T) {
	costs := Costs{Food: 15, Sticks: 60}

	var visited []ResourceType
	costs.Each(func(rt ResourceType, amount int) {
		visited = append(visited, rt)
	})

	if len(visited) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(visited))
	}
	if visited[0] != Sticks || visited[1] != Food {
		t.Errorf("Expected [sticks food], got %v", visited)
	}
}

func TestBuildingCloneIsDeep(t *testing.T) {
	b := &Building{
		ID:             "campfire",
		BaseCost:       Costs{Sticks: 15},
		BaseProduction: Rates{Food: 1.5},
		Level:          1,
	}
	clone := b.Clone()
	clone.BaseCost[Sticks] = 999
	clone.BaseProduction[Food] = 0
	clone.Count = 5

	if b.BaseCost[Sticks] != 15 {
		t.Errorf("Expected original cost 15, got %d", b.BaseCost[Sticks])
	}
	if b.BaseProduction[Food] != 1.5 {
		t.Errorf("Expected original production 1.5, got %f", b.BaseProduction[Food])
	}
	if b.Count != 0 {
		t.Errorf("Expected original count 0, got %d", b.Count)
	}
}

func TestCatalogLookup(t *testing.T) {
	c := &Catalog{
		Resources:    []ResourceInfo{{Type: Sticks, Name: "Sticks", Icon: "🌿"}},
		Buildings:    []*Building{{ID: "campfire"}},
		Technologies: []*Technology{{ID: "tools"}},
	}

	if c.Building("campfire") == nil {
		t.Error("Expected campfire")
	}
	if c.Building("castle") != nil {
		t.Error("Expected no castle")
	}
	if c.Technology("tools") == nil {
		t.Error("Expected tools")
	}
	if got := c.Resource(Sticks).Name; got != "Sticks" {
		t.Errorf("Expected Sticks, got %s", got)
	}
	if got := c.Resource(Coal).Name; got != "coal" {
		t.Errorf("Expected fallback name coal, got %s", got)
	}
}
