package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tag = ?", s.Tag)
}

type BySender struct {
	Sender string
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender = ?", s.Sender)
}

type ByCarrierId struct {
	CarrierId string
}

func (s ByCarrierId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("carrier_id = ?", s.CarrierId)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type StartsAfter struct {
	At time.Time
}

func (s StartsAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at IS NOT NULL AND start_at >= ?", s.At)
}
