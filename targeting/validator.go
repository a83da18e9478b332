package targeting

import (
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/parameter"
)

// Rejection names the first rule a candidate failed
type Rejection uint8

const (
	Accepted Rejection = iota
	RejectSelf
	RejectMinDistance
	RejectEffectiveMinRange
	RejectOutsideLocus
	RejectNotHostile
	RejectFilter
	RejectThickRoof
	RejectBlindingGas
	RejectNoLineOfSight
	RejectThreatDisabled
	RejectNotAutoTargetable
	RejectNotActiveThreat
	RejectEMPOnFlesh
	RejectBurning
	RejectLitExplosive
	RejectMaxDistance
	RejectUnreachable
	RejectNoVerb
)

var rejectionNames = [...]string{
	Accepted:                "accepted",
	RejectSelf:              "self",
	RejectMinDistance:       "min_distance",
	RejectEffectiveMinRange: "effective_min_range",
	RejectOutsideLocus:      "outside_locus",
	RejectNotHostile:        "not_hostile",
	RejectFilter:            "filter",
	RejectThickRoof:         "thick_roof",
	RejectBlindingGas:       "blinding_gas",
	RejectNoLineOfSight:     "no_line_of_sight",
	RejectThreatDisabled:    "threat_disabled",
	RejectNotAutoTargetable: "not_auto_targetable",
	RejectNotActiveThreat:   "not_active_threat",
	RejectEMPOnFlesh:        "emp_on_flesh",
	RejectBurning:           "burning",
	RejectLitExplosive:      "lit_explosive",
	RejectMaxDistance:       "max_distance",
	RejectUnreachable:       "unreachable",
	RejectNoVerb:            "no_verb",
}

func (r Rejection) String() string {
	if int(r) < len(rejectionNames) {
		return rejectionNames[r]
	}
	return "unknown"
}

// Validator applies the eligibility rules of one request
type Validator struct {
	world World
	req   Request
	verb  Verb

	origin    core.Point
	minDistSq float64
	maxDistSq float64
	pawn      component.PawnComponent
	isPawn    bool
}

// NewValidator prepares the rule chain for a request and the searcher's verb
func NewValidator(w World, req Request, verb Verb) *Validator {
	v := &Validator{
		world:     w,
		req:       req,
		verb:      verb,
		origin:    req.Searcher.Position(),
		minDistSq: req.MinDist * req.MinDist,
		maxDistSq: req.MaxDist * req.MaxDist,
	}
	v.pawn, v.isPawn = req.Searcher.Pawn()
	return v
}

// Valid reports whether t passes every rule
func (v *Validator) Valid(t Target) bool {
	return v.Check(t) == Accepted
}

// Check evaluates rules in order and returns the first failure
func (v *Validator) Check(t Target) Rejection {
	s := v.req.Searcher
	flags := v.req.Flags
	pos := t.Position()

	if t.Entity() == s.Entity() {
		return RejectSelf
	}

	distSq := float64(v.origin.DistSq(pos))
	if v.req.MinDist > 0 && distSq < v.minDistSq {
		return RejectMinDistance
	}

	if !v.req.AllowCloserThanEffectiveMinRange {
		if minRange := v.verb.EffectiveMinRange(v.world, s, t); minRange > 0 && distSq < minRange*minRange {
			return RejectEffectiveMinRange
		}
	}

	if v.req.Locus != nil && v.req.MaxTravelRadiusFromLocus < parameter.MaxSearchDistance {
		reach := v.req.MaxTravelRadiusFromLocus + v.verb.Range
		if float64(v.req.Locus.DistSq(pos)) > reach*reach {
			return RejectOutsideLocus
		}
	}

	if !v.world.HostileTo(s.Entity(), t.Entity()) {
		return RejectNotHostile
	}

	if v.req.Filter != nil && !v.req.Filter(t) {
		return RejectFilter
	}

	if flags.NeedNotUnderThickRoof && v.world.ThickRoofAt(pos) {
		return RejectThickRoof
	}

	if flags.NeedsLOS() {
		if flags.LOSBlockableByGas && (v.world.BlindingGasAt(v.origin) || v.world.BlindingGasAt(pos)) {
			return RejectBlindingGas
		}
		if !v.world.LineOfSight(v.origin, pos, false) {
			if _, isPawn := t.Pawn(); isPawn {
				if flags.NeedLOSToPawns {
					return RejectNoLineOfSight
				}
			} else if flags.NeedLOSToNonPawns {
				return RejectNoLineOfSight
			}
		}
	}

	combat := t.Combat()
	if (flags.NeedThreat || flags.NeedAutoTargetable) && combat.ThreatDisabled {
		return RejectThreatDisabled
	}
	if flags.NeedAutoTargetable && !combat.AutoTargetable {
		return RejectNotAutoTargetable
	}
	if flags.NeedActiveThreat && !(combat.ActiveThreat && v.world.FactionHostile(t.Faction(), s.Faction())) {
		return RejectNotActiveThreat
	}

	if v.verb.EMPOnly {
		if pawn, ok := t.Pawn(); ok && pawn.Flesh {
			return RejectEMPOnFlesh
		}
	}

	if flags.NeedNonBurning && v.world.IsBurning(t.Entity()) {
		return RejectBurning
	}

	if v.isPawn && v.pawn.Intelligence >= component.IntelligenceHumanlike && t.WickStarted() {
		return RejectLitExplosive
	}

	if distSq > v.maxDistSq {
		return RejectMaxDistance
	}

	// Reachability only constrains walkers, turrets never move
	if v.isPawn {
		if flags.NeedReachable && !v.world.Reachable(v.origin, pos) {
			return RejectUnreachable
		}
		if flags.NeedReachableIfCantHitFromMyPos && !flags.NeedReachable &&
			!v.verb.CanHitTargetFrom(v.world, s, v.origin, t) &&
			!v.world.Reachable(v.origin, pos) {
			return RejectUnreachable
		}
	}

	return Accepted
}
