package services

import m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"

// RoutingDivision returns the division a sub-division delegates approvals
// and notifications to. Every other division routes to itself.
func RoutingDivision(d m.Division) m.Division {
	switch d {
	case m.DivisionApps:
		return m.DivisionTS
	case m.DivisionFiberzone:
		return m.DivisionInfra
	case m.DivisionMonitoring, m.DivisionInfra, m.DivisionTS:
		return d
	}
	return d
}

// IsWithinScope reports whether an actor in division actor may act on an
// entity in division target: same division, or actor is target's routing parent.
func IsWithinScope(actor, target m.Division) bool {
	if target == actor {
		return true
	}
	return target.IsSubDivision() && RoutingDivision(target) == actor
}

// routed resolves a nullable division. A nil division stays nil.
func routed(d *m.Division) *m.Division {
	if d == nil {
		return nil
	}
	r := RoutingDivision(*d)
	return &r
}

func inScope(actor, target *m.Division) bool {
	if actor == nil || target == nil {
		return false
	}
	return IsWithinScope(*actor, *target)
}

func sameDivision(a, b *m.Division) bool {
	return a != nil && b != nil && *a == *b
}

// ScopeDivisions lists every division an actor of division d may act on.
func ScopeDivisions(d m.Division) []m.Division {
	out := make([]m.Division, 0, 2)
	for _, t := range m.Divisions {
		if IsWithinScope(d, t) {
			out = append(out, t)
		}
	}
	return out
}
