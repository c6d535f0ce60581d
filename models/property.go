package models

import "time"

// SlotStatus is the lifecycle state of a viewing slot.
type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// Property is a real-estate listing. Listings are bulk-loaded by the seeding
// tooling and read-only from the dialogue system's perspective.
type Property struct {
	PropertyID  string  `gorm:"primaryKey;column:property_id" json:"property_id"`
	Price       float64 `gorm:"column:price" json:"price"`
	Size        float64 `gorm:"column:size" json:"size"`
	Bedrooms    int     `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms   int     `gorm:"column:bathrooms" json:"bathrooms"`
	GarageSpots int     `gorm:"column:garage_spots" json:"garage_spots"`

	Street       string `gorm:"column:street" json:"street"`
	Neighborhood string `gorm:"column:neighborhood" json:"neighborhood"`
	City         string `gorm:"column:city" json:"city"`

	// Lower-cased, diacritic-folded shadows of the location columns,
	// maintained by the seeding layer so substring matching stays a plain
	// indexed LIKE regardless of the caller's accenting.
	StreetNorm       string `gorm:"column:street_norm;index" json:"-"`
	NeighborhoodNorm string `gorm:"column:neighborhood_norm;index" json:"-"`
	CityNorm         string `gorm:"column:city_norm;index" json:"-"`

	// Carried for rendering, never matched on.
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
}

func (Property) TableName() string { return "properties" }

// ViewingSlot is one bookable viewing window for a property. Identity is the
// (property_id, slot_start) pair; within a property no two slots share a start.
type ViewingSlot struct {
	PropertyID string     `gorm:"primaryKey;column:property_id" json:"property_id"`
	SlotStart  time.Time  `gorm:"primaryKey;column:slot_start" json:"slot_start"`
	SlotEnd    time.Time  `gorm:"column:slot_end" json:"slot_end"`
	Status     SlotStatus `gorm:"column:status;index" json:"status"`
}

func (ViewingSlot) TableName() string { return "viewing_slots" }
