package theater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCAP2/planner/internal/geo"
	"github.com/OCAP2/planner/pkg/core"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Scenario is a theater together with the transfers in flight when it was
// saved.
type Scenario struct {
	Theater    *Theater
	Convoys    []*core.Convoy
	CargoShips []*core.CargoShip
}

// PositionSpec is either a planar "x,y[,z]" string or a lat/lon pair.
type PositionSpec struct {
	Position string   `mapstructure:"position"`
	Lat      *float64 `mapstructure:"lat"`
	Lon      *float64 `mapstructure:"lon"`
}

func (p PositionSpec) resolve() (core.Position3D, error) {
	if p.Lat != nil && p.Lon != nil {
		return geo.PositionFrom4326(*p.Lon, *p.Lat)
	}
	return geo.PositionFromString(p.Position)
}

type groundObjectSpec struct {
	PositionSpec     `mapstructure:",squash"`
	Name             string  `mapstructure:"name"`
	Category         string  `mapstructure:"category"`
	Role             string  `mapstructure:"role"`
	Dead             bool    `mapstructure:"dead"`
	IsControlPoint   bool    `mapstructure:"isControlPoint"`
	ThreatRangeNm    float64 `mapstructure:"threatRangeNm"`
	DetectionRangeNm float64 `mapstructure:"detectionRangeNm"`
}

type controlPointSpec struct {
	PositionSpec      `mapstructure:",squash"`
	Name              string             `mapstructure:"name"`
	Kind              string             `mapstructure:"kind"`
	Side              string             `mapstructure:"side"`
	RunwayOperational *bool              `mapstructure:"runwayOperational"`
	Aircraft          map[string]int     `mapstructure:"aircraft"`
	GroundObjects     []groundObjectSpec `mapstructure:"groundObjects"`
}

type transferSpec struct {
	PositionSpec `mapstructure:",squash"`
	Name         string         `mapstructure:"name"`
	Origin       string         `mapstructure:"origin"`
	Destination  string         `mapstructure:"destination"`
	Units        map[string]int `mapstructure:"units"`
}

type fileSpec struct {
	Name          string             `mapstructure:"name"`
	ControlPoints []controlPointSpec `mapstructure:"controlPoints"`
	Connections   [][]string         `mapstructure:"connections"`
	Convoys       []transferSpec     `mapstructure:"convoys"`
	CargoShips    []transferSpec     `mapstructure:"cargoShips"`
}

// Load reads a theater file. The format is taken from the extension (json,
// yaml or toml). Map keys such as aircraft and unit types keep their case.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading theater file: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported theater file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing theater file: %w", err)
	}

	var spec fileSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("error decoding theater file: %w", err)
	}
	return build(spec)
}

func build(spec fileSpec) (*Scenario, error) {
	t := New(spec.Name)
	var goID uint
	for _, cps := range spec.ControlPoints {
		cp, err := buildControlPoint(cps)
		if err != nil {
			return nil, err
		}
		for _, gos := range cps.GroundObjects {
			g, err := buildGroundObject(gos)
			if err != nil {
				return nil, fmt.Errorf("control point %q: %w", cps.Name, err)
			}
			goID++
			g.ID = goID
			cp.AddGroundObject(g)
		}
		if err := t.AddControlPoint(cp); err != nil {
			return nil, err
		}
	}

	for i, pair := range spec.Connections {
		if len(pair) != 2 {
			return nil, fmt.Errorf("connection %d: expected 2 control points, got %d", i, len(pair))
		}
		if err := t.Connect(pair[0], pair[1]); err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
	}

	s := &Scenario{Theater: t}
	for i, cs := range spec.Convoys {
		origin, destination, pos, err := resolveTransfer(t, cs)
		if err != nil {
			return nil, fmt.Errorf("convoy %q: %w", cs.Name, err)
		}
		s.Convoys = append(s.Convoys, &core.Convoy{
			ID:          uint(i + 1),
			Name:        cs.Name,
			Origin:      origin,
			Destination: destination,
			Position:    pos,
			Units:       cs.Units,
		})
	}
	for i, ss := range spec.CargoShips {
		origin, destination, pos, err := resolveTransfer(t, ss)
		if err != nil {
			return nil, fmt.Errorf("cargo ship %q: %w", ss.Name, err)
		}
		s.CargoShips = append(s.CargoShips, &core.CargoShip{
			ID:          uint(i + 1),
			Name:        ss.Name,
			Origin:      origin,
			Destination: destination,
			Position:    pos,
			Units:       ss.Units,
		})
	}
	return s, nil
}

func buildControlPoint(s controlPointSpec) (*core.ControlPoint, error) {
	kind, err := core.ParseControlPointKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("control point %q: %w", s.Name, err)
	}
	side, err := core.ParseSide(s.Side)
	if err != nil {
		return nil, fmt.Errorf("control point %q: %w", s.Name, err)
	}
	pos, err := s.resolve()
	if err != nil {
		return nil, fmt.Errorf("control point %q: %w", s.Name, err)
	}
	operational := true
	if s.RunwayOperational != nil {
		operational = *s.RunwayOperational
	}
	return &core.ControlPoint{
		Name:              s.Name,
		Kind:              kind,
		Owner:             side,
		Position:          pos,
		RunwayOperational: operational,
		Aircraft:          s.Aircraft,
	}, nil
}

func buildGroundObject(s groundObjectSpec) (*core.GroundObject, error) {
	role, err := core.ParseRole(s.Role)
	if err != nil {
		return nil, fmt.Errorf("ground object %q: %w", s.Name, err)
	}
	pos, err := s.resolve()
	if err != nil {
		return nil, fmt.Errorf("ground object %q: %w", s.Name, err)
	}
	return &core.GroundObject{
		Name:           s.Name,
		Category:       s.Category,
		Role:           role,
		Dead:           s.Dead,
		Position:       pos,
		IsControlPoint: s.IsControlPoint,
		ThreatRange:    core.NauticalMiles(s.ThreatRangeNm),
		DetectionRange: core.NauticalMiles(s.DetectionRangeNm),
	}, nil
}

func resolveTransfer(t *Theater, s transferSpec) (origin, destination *core.ControlPoint, pos core.Position3D, err error) {
	origin, err = t.ControlPoint(s.Origin)
	if err != nil {
		return nil, nil, core.Position3D{}, err
	}
	destination, err = t.ControlPoint(s.Destination)
	if err != nil {
		return nil, nil, core.Position3D{}, err
	}
	if s.Position == "" && s.Lat == nil {
		return origin, destination, origin.Position, nil
	}
	pos, err = s.resolve()
	if err != nil {
		return nil, nil, core.Position3D{}, err
	}
	return origin, destination, pos, nil
}
