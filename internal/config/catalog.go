package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"coliving/internal/domain"
)

// Catalog is the property/room reference data, loaded once at startup and
// passed explicitly to every component that needs room metadata. Rooms are
// not stored in the database and never derived from bookings.
type Catalog struct {
	properties []domain.Property
	rooms      []domain.Room
	byID       map[string]domain.Room
}

// LoadCatalog reads a JSON file of properties with nested rooms.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file struct {
		Properties []domain.Property `json:"properties"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(file.Properties)
}

// NewCatalog builds a catalog from already-loaded properties. Room entries
// are stamped with their owning property's id and name.
func NewCatalog(properties []domain.Property) (*Catalog, error) {
	c := &Catalog{
		properties: properties,
		byID:       make(map[string]domain.Room),
	}
	for _, p := range properties {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: property %q has no id", p.Name)
		}
		for _, r := range p.Rooms {
			if r.ID == "" {
				return nil, fmt.Errorf("catalog: room %q in property %s has no id", r.Name, p.ID)
			}
			if _, dup := c.byID[r.ID]; dup {
				return nil, fmt.Errorf("catalog: duplicate room id %s", r.ID)
			}
			r.PropertyID = p.ID
			r.PropertyName = p.Name
			c.byID[r.ID] = r
			c.rooms = append(c.rooms, r)
		}
	}
	sort.Slice(c.rooms, func(i, j int) bool { return c.rooms[i].Name < c.rooms[j].Name })
	return c, nil
}

// Rooms returns every room, sorted by display name.
func (c *Catalog) Rooms() []domain.Room {
	out := make([]domain.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Properties returns the property list as loaded.
func (c *Catalog) Properties() []domain.Property {
	out := make([]domain.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// RoomByID looks a room up by id.
func (c *Catalog) RoomByID(id string) (domain.Room, bool) {
	r, ok := c.byID[id]
	return r, ok
}
