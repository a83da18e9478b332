package component

// PawnKind classifies a pawn for friendly fire weighting
type PawnKind uint8

const (
	PawnHumanlike PawnKind = iota
	PawnAnimal
	PawnMechanoid
)

// String returns the kind name used in scenario files
func (k PawnKind) String() string {
	switch k {
	case PawnHumanlike:
		return "humanlike"
	case PawnAnimal:
		return "animal"
	case PawnMechanoid:
		return "mechanoid"
	default:
		return "unknown"
	}
}

// Intelligence is the ordered capability tier of a pawn's race
type Intelligence uint8

const (
	IntelligenceAnimal Intelligence = iota
	IntelligenceToolUser
	IntelligenceHumanlike
)

// PawnComponent marks a mobile creature or machine
type PawnComponent struct {
	Kind         PawnKind
	Intelligence Intelligence

	Downed       bool
	Combatant    bool // False for civilians, children, tame non-fighting animals
	Juvenile     bool
	Prisoner     bool
	Flesh        bool // Organic body, immune to EMP-only weapons
	WieldsRanged bool // Currently equipped with a ranged weapon
}
