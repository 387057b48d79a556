// Package report turns a finder's enumerations into a plan that can be
// printed or stored.
package report

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/OCAP2/planner/internal/objective"
	"github.com/OCAP2/planner/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Section names, in the order they appear in a plan.
const (
	SectionAirDefenses   = "air_defenses"
	SectionVehicleGroups = "vehicle_groups"
	SectionShips         = "ships"
	SectionStrike        = "strike"
	SectionOCA           = "oca"
	SectionConvoys       = "convoys"
	SectionCargoShips    = "cargo_ships"
	SectionFrontLines    = "front_lines"
	SectionVulnerable    = "vulnerable"
)

// Entry is one ranked objective.
type Entry struct {
	Rank     int             `json:"rank" yaml:"rank"`
	Name     string          `json:"name" yaml:"name"`
	Kind     string          `json:"kind" yaml:"kind"`
	Position core.Position3D `json:"position" yaml:"position"`
	Attrs    map[string]any  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Section is the head of one enumeration.
type Section struct {
	Name    string  `json:"name" yaml:"name"`
	Title   string  `json:"title" yaml:"title"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Plan is a snapshot of a side's objectives at one point in time.
type Plan struct {
	Side      core.Side `json:"side" yaml:"side"`
	Theater   string    `json:"theater" yaml:"theater"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Farthest  string    `json:"farthest" yaml:"farthest"`
	Closest   string    `json:"closest" yaml:"closest"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// Section returns the named section, or nil.
func (p *Plan) Section(name string) *Section {
	for i := range p.Sections {
		if p.Sections[i].Name == name {
			return &p.Sections[i]
		}
	}
	return nil
}

// Options controls plan building.
type Options struct {
	Theater     string
	Limit       int // entries per section, <= 0 for all
	MinAircraft int
	Now         func() time.Time
}

type sectionBuilder struct {
	name, title string
	build       func(f *objective.Finder, o Options) []Entry
}

var sectionBuilders = []sectionBuilder{
	{SectionAirDefenses, "Threatening air defenses", airDefenseEntries},
	{SectionVehicleGroups, "Threatening vehicle groups", func(f *objective.Finder, o Options) []Entry {
		return groundObjectEntries(take(f.ThreateningVehicleGroups(), o.Limit))
	}},
	{SectionShips, "Threatening ships", func(f *objective.Finder, o Options) []Entry {
		return groundObjectEntries(take(f.ThreateningShips(), o.Limit))
	}},
	{SectionStrike, "Strike targets", func(f *objective.Finder, o Options) []Entry {
		return groundObjectEntries(take(f.StrikeTargets(), o.Limit))
	}},
	{SectionOCA, "OCA targets", func(f *objective.Finder, o Options) []Entry {
		return controlPointEntries(take(f.OCATargets(o.MinAircraft), o.Limit))
	}},
	{SectionConvoys, "Convoys", func(f *objective.Finder, o Options) []Entry {
		return transferEntries(take(f.Convoys(), o.Limit), "convoy")
	}},
	{SectionCargoShips, "Cargo ships", func(f *objective.Finder, o Options) []Entry {
		return transferEntries(take(f.CargoShips(), o.Limit), "cargo_ship")
	}},
	{SectionFrontLines, "Front lines", func(f *objective.Finder, o Options) []Entry {
		return frontLineEntries(take(f.FrontLines(), o.Limit), f.Side())
	}},
	{SectionVulnerable, "Vulnerable control points", func(f *objective.Finder, o Options) []Entry {
		return controlPointEntries(take(f.VulnerableControlPoints(), o.Limit))
	}},
}

// Build enumerates every section. Sections are built concurrently; each
// enumeration stays on its own goroutine. It fails only when the side has no
// territory left, with an error wrapping objective.ErrNoFriendlyControlPoints.
func Build(ctx context.Context, f *objective.Finder, o Options) (*Plan, error) {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	farthest, err := f.FarthestFriendlyControlPoint()
	if err != nil {
		return nil, fmt.Errorf("farthest friendly control point: %w", err)
	}
	closest, err := f.ClosestFriendlyControlPoint()
	if err != nil {
		return nil, fmt.Errorf("closest friendly control point: %w", err)
	}

	p := &Plan{
		Side:      f.Side(),
		Theater:   o.Theater,
		CreatedAt: now().UTC(),
		Farthest:  farthest.Name,
		Closest:   closest.Name,
		Sections:  make([]Section, len(sectionBuilders)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, sb := range sectionBuilders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Sections[i] = Section{Name: sb.name, Title: sb.title, Entries: rank(sb.build(f, o))}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// take yields at most n items of seq, all of them if n <= 0.
func take[T any](seq iter.Seq[T], n int) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

func rank(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func airDefenseEntries(f *objective.Finder, o Options) []Entry {
	ranges := make(map[*core.GroundObject]core.Distance)
	for g, r := range f.EnemyAirDefenses() {
		ranges[g] = r
	}
	objects := take(f.ThreateningAirDefenses(), o.Limit)
	entries := groundObjectEntries(objects)
	for i, g := range objects {
		entries[i].Attrs["rangeNm"] = math.Round(ranges[g].NauticalMiles()*10) / 10
	}
	return entries
}

func groundObjectEntries(objects []*core.GroundObject) []Entry {
	entries := make([]Entry, 0, len(objects))
	for _, g := range objects {
		attrs := map[string]any{"role": g.Role.String()}
		if g.ControlPoint != nil {
			attrs["controlPoint"] = g.ControlPoint.Name
		}
		if g.Category != "" {
			attrs["category"] = g.Category
		}
		entries = append(entries, Entry{Name: g.Name, Kind: "ground_object", Position: g.Position, Attrs: attrs})
	}
	return entries
}

func controlPointEntries(cps []*core.ControlPoint) []Entry {
	entries := make([]Entry, 0, len(cps))
	for _, cp := range cps {
		entries = append(entries, Entry{
			Name:     cp.Name,
			Kind:     cp.Kind.String(),
			Position: cp.Position,
			Attrs: map[string]any{
				"owner":    string(cp.Owner),
				"aircraft": cp.TotalAircraft(),
			},
		})
	}
	return entries
}

type transfer interface {
	*core.Convoy | *core.CargoShip
	core.MissionTarget
}

func transferEntries[T transfer](transfers []T, kind string) []Entry {
	entries := make([]Entry, 0, len(transfers))
	for _, t := range transfers {
		var origin, destination *core.ControlPoint
		switch v := any(t).(type) {
		case *core.Convoy:
			origin, destination = v.Origin, v.Destination
		case *core.CargoShip:
			origin, destination = v.Origin, v.Destination
		}
		attrs := map[string]any{}
		if origin != nil {
			attrs["origin"] = origin.Name
		}
		if destination != nil {
			attrs["destination"] = destination.Name
		}
		entries = append(entries, Entry{Name: t.TargetName(), Kind: kind, Position: t.TargetPosition(), Attrs: attrs})
	}
	return entries
}

func frontLineEntries(lines []*core.FrontLine, side core.Side) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, fl := range lines {
		entries = append(entries, Entry{
			Name:     fl.TargetName(),
			Kind:     "front_line",
			Position: fl.TargetPosition(),
			Attrs: map[string]any{
				"friendly": fl.ControlPointFriendlyTo(side).Name,
				"hostile":  fl.ControlPointHostileTo(side).Name,
			},
		})
	}
	return entries
}
