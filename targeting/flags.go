package targeting

import "strings"

// ScanFlags selects the validation rules applied to candidates
type ScanFlags struct {
	NeedLOSToPawns                  bool
	NeedLOSToNonPawns               bool
	NeedReachable                   bool
	NeedReachableIfCantHitFromMyPos bool
	NeedNonBurning                  bool
	NeedThreat                      bool
	NeedActiveThreat                bool
	NeedAutoTargetable              bool
	NeedNotUnderThickRoof           bool
	IgnoreNonCombatants             bool
	LOSBlockableByGas               bool
}

// WithLOSToAll returns f with both line of sight requirements set
func (f ScanFlags) WithLOSToAll() ScanFlags {
	f.NeedLOSToPawns = true
	f.NeedLOSToNonPawns = true
	return f
}

// NeedsLOS reports whether any line of sight requirement is set
func (f ScanFlags) NeedsLOS() bool {
	return f.NeedLOSToPawns || f.NeedLOSToNonPawns
}

// String lists set flags, used in debug logs
func (f ScanFlags) String() string {
	var parts []string
	add := func(set bool, name string) {
		if set {
			parts = append(parts, name)
		}
	}
	add(f.NeedLOSToPawns, "los_pawns")
	add(f.NeedLOSToNonPawns, "los_nonpawns")
	add(f.NeedReachable, "reachable")
	add(f.NeedReachableIfCantHitFromMyPos, "reachable_if_cant_hit")
	add(f.NeedNonBurning, "non_burning")
	add(f.NeedThreat, "threat")
	add(f.NeedActiveThreat, "active_threat")
	add(f.NeedAutoTargetable, "auto_targetable")
	add(f.NeedNotUnderThickRoof, "not_under_thick_roof")
	add(f.IgnoreNonCombatants, "ignore_noncombatants")
	add(f.LOSBlockableByGas, "los_gas")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
