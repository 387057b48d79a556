// pkg/core/transfer.go
package core

// Convoy is a group of ground units moving between control points by road.
type Convoy struct {
	ID          uint
	Name        string
	Origin      *ControlPoint
	Destination *ControlPoint
	Position    Position3D
	Units       map[string]int
}

func (c *Convoy) TargetName() string         { return c.Name }
func (c *Convoy) TargetPosition() Position3D { return c.Position }

// CargoShip carries units between ports.
type CargoShip struct {
	ID          uint
	Name        string
	Origin      *ControlPoint
	Destination *ControlPoint
	Position    Position3D
	Units       map[string]int
}

func (s *CargoShip) TargetName() string         { return s.Name }
func (s *CargoShip) TargetPosition() Position3D { return s.Position }
