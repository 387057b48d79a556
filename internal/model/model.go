// Package model holds the gorm models for stored plans.
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []any{
	&Snapshot{},
	&SnapshotSection{},
	&RankedObjective{},
}

// Snapshot is one stored plan.
type Snapshot struct {
	gorm.Model
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex"`
	Side      string    `json:"side" gorm:"size:8;index:idx_snapshot_side_planned"`
	Theater   string    `json:"theater" gorm:"size:127"`
	PlannedAt time.Time `json:"plannedAt" gorm:"index:idx_snapshot_side_planned"`
	Farthest  string    `json:"farthest" gorm:"size:127"`
	Closest   string    `json:"closest" gorm:"size:127"`
	Sections  []SnapshotSection
}

func (*Snapshot) TableName() string {
	return "snapshots"
}

// SnapshotSection keeps the section order of a plan, including empty
// sections.
type SnapshotSection struct {
	gorm.Model
	SnapshotID uint              `json:"snapshotId" gorm:"index"`
	Position   int               `json:"position"`
	Name       string            `json:"name" gorm:"size:32"`
	Title      string            `json:"title" gorm:"size:127"`
	Objectives []RankedObjective `json:"objectives" gorm:"foreignKey:SectionID"`
}

func (*SnapshotSection) TableName() string {
	return "snapshot_sections"
}

// RankedObjective is one entry of a stored section.
type RankedObjective struct {
	gorm.Model
	SectionID uint           `json:"sectionId" gorm:"index"`
	Rank      int            `json:"rank"`
	Name      string         `json:"name" gorm:"size:127"`
	Kind      string         `json:"kind" gorm:"size:32"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Z         float64        `json:"z"`
	Attrs     datatypes.JSON `json:"attrs"`
}

func (*RankedObjective) TableName() string {
	return "ranked_objectives"
}
