package game

import "github.com/mlange-42/ark/ecs"

// CreatureRole identifies which population a picked creature belongs to.
type CreatureRole uint8

const (
	RolePlayer CreatureRole = iota
	RoleBot
	RoleBoss
)

func (r CreatureRole) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleBot:
		return "bot"
	case RoleBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Selection is a creature picked from a view.
type Selection struct {
	Creature CreatureView
	Role     CreatureRole
}

// Pick returns the creature whose head or any segment is nearest to (x, y),
// within maxDist arena units.
func (v View) Pick(x, y, maxDist float32) (Selection, bool) {
	var best Selection
	bestDist := maxDist * maxDist
	found := false

	consider := func(c CreatureView, role CreatureRole) {
		d := nearestPointSq(c, x, y)
		if d <= bestDist {
			bestDist = d
			best = Selection{Creature: c, Role: role}
			found = true
		}
	}

	consider(v.Player, RolePlayer)
	for _, b := range v.Bots {
		consider(b, RoleBot)
	}
	if v.Boss != nil {
		consider(*v.Boss, RoleBoss)
	}
	return best, found
}

// Find returns the creature backed by entity e. A creature whose entity was
// removed and recycled is not found.
func (v View) Find(e ecs.Entity) (Selection, bool) {
	if v.Player.Entity == e {
		return Selection{Creature: v.Player, Role: RolePlayer}, true
	}
	for _, b := range v.Bots {
		if b.Entity == e {
			return Selection{Creature: b, Role: RoleBot}, true
		}
	}
	if v.Boss != nil && v.Boss.Entity == e {
		return Selection{Creature: *v.Boss, Role: RoleBoss}, true
	}
	return Selection{}, false
}

// nearestPointSq is the squared distance from (x, y) to the head or the
// closest segment of c.
func nearestPointSq(c CreatureView, x, y float32) float32 {
	dx, dy := c.X-x, c.Y-y
	best := dx*dx + dy*dy
	for _, s := range c.Segments {
		dx, dy = s.X-x, s.Y-y
		best = min(best, dx*dx+dy*dy)
	}
	return best
}
