package models

// Catalog holds the static definition data for a game. It is fixed at load
// time; sessions clone the entries they mutate.
type Catalog struct {
	Resources    []ResourceInfo
	Buildings    []*Building
	Technologies []*Technology
}

// Building returns the catalog entry with the given id
func (c *Catalog) Building(id string) *Building {
	for _, b := range c.Buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Technology returns the catalog entry with the given id
func (c *Catalog) Technology(id string) *Technology {
	for _, t := range c.Technologies {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Resource returns display data for a resource type. Unknown types fall back
// to the raw identifier.
func (c *Catalog) Resource(rt ResourceType) ResourceInfo {
	for _, r := range c.Resources {
		if r.Type == rt {
			return r
		}
	}
	return ResourceInfo{Type: rt, Name: string(rt)}
}
