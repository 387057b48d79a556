// Package convert provides functions to convert between GORM models and plans
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/OCAP2/planner/internal/model"
	"github.com/OCAP2/planner/internal/report"
	"github.com/OCAP2/planner/pkg/core"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanToSnapshot converts a plan into a snapshot row tree identified by id.
func PlanToSnapshot(p *report.Plan, id uuid.UUID) (model.Snapshot, error) {
	s := model.Snapshot{
		UUID:      id.String(),
		Side:      string(p.Side),
		Theater:   p.Theater,
		PlannedAt: p.CreatedAt,
		Farthest:  p.Farthest,
		Closest:   p.Closest,
		Sections:  make([]model.SnapshotSection, 0, len(p.Sections)),
	}
	for i, sec := range p.Sections {
		ms := model.SnapshotSection{
			Position:   i,
			Name:       sec.Name,
			Title:      sec.Title,
			Objectives: make([]model.RankedObjective, 0, len(sec.Entries)),
		}
		for _, e := range sec.Entries {
			attrs, err := attrsToJSON(e.Attrs)
			if err != nil {
				return model.Snapshot{}, fmt.Errorf("section %s entry %q: %w", sec.Name, e.Name, err)
			}
			ms.Objectives = append(ms.Objectives, model.RankedObjective{
				Rank:  e.Rank,
				Name:  e.Name,
				Kind:  e.Kind,
				X:     e.Position.X,
				Y:     e.Position.Y,
				Z:     e.Position.Z,
				Attrs: attrs,
			})
		}
		s.Sections = append(s.Sections, ms)
	}
	return s, nil
}

// SnapshotToPlan is the inverse of PlanToSnapshot. Numeric attributes come
// back as float64.
func SnapshotToPlan(s model.Snapshot) (*report.Plan, error) {
	p := &report.Plan{
		Side:      core.Side(s.Side),
		Theater:   s.Theater,
		CreatedAt: s.PlannedAt.UTC(),
		Farthest:  s.Farthest,
		Closest:   s.Closest,
		Sections:  make([]report.Section, 0, len(s.Sections)),
	}
	for _, ms := range s.Sections {
		sec := report.Section{Name: ms.Name, Title: ms.Title, Entries: make([]report.Entry, 0, len(ms.Objectives))}
		for _, o := range ms.Objectives {
			attrs, err := attrsFromJSON(o.Attrs)
			if err != nil {
				return nil, fmt.Errorf("objective %q: %w", o.Name, err)
			}
			sec.Entries = append(sec.Entries, report.Entry{
				Rank:     o.Rank,
				Name:     o.Name,
				Kind:     o.Kind,
				Position: core.Position3D{X: o.X, Y: o.Y, Z: o.Z},
				Attrs:    attrs,
			})
		}
		p.Sections = append(p.Sections, sec)
	}
	return p, nil
}

// attrsToJSON converts entry attributes to datatypes.JSON for DB storage.
func attrsToJSON(attrs map[string]any) (datatypes.JSON, error) {
	if len(attrs) == 0 {
		return datatypes.JSON("{}"), nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func attrsFromJSON(data datatypes.JSON) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var attrs map[string]any
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}
