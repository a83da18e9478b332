package parameter

// Target scoring
const (
	ScoreBase             = 60.0
	ScoreDistanceCap      = 40.0
	ScoreAimingAtSearcher = 10.0
	ScoreRecentlyAttacked = 40.0
	ScoreCoverMultiplier  = 10.0

	// Pawn penalties
	ScoreNonCombatantPenalty = 50.0
	ScoreJuvenilePenalty     = 25.0
	ScoreDownedPenalty       = 50.0

	// Angle deviation floor keeps division well-defined for aligned candidates
	ScoreMinAngleDeviation = 0.1
	// ScoreFloor is the minimum emitted score, weighted draw requires strictly positive weights
	ScoreFloor = 0.01

	// RecentAttackTicks is the window in which the last attacked target earns the recency bonus
	RecentAttackTicks = 300
)

// Friendly fire classification weights
const (
	FriendlyFireSelfWeight      = 40.0
	FriendlyFireHumanlikeWeight = 18.0 // Humanlike or mechanoid pawns
	FriendlyFireNonPawnWeight   = 10.0
	FriendlyFireAnimalWeight    = 7.0

	// Hostile entities in the sampled area add this fraction of their weight
	FriendlyFireHostileFactor = 0.6
)

// Shot geometry
const (
	// ForcedMissMinRadius is the lower bound of the scatter radius sampled for cone friendly fire
	ForcedMissMinRadius = 1.5

	// Squared shot lengths below which the forced miss radius is reduced
	ForcedMissNoneDistSq = 9
	ForcedMissHalfDistSq = 25
	ForcedMissMostDistSq = 49

	// Intercept chance ramps linearly between these squared distances from the shot origin
	InterceptNearDistSq = 25
	InterceptFarDistSq  = 144

	// EffectiveMinRangeAdjacent prevents projectile shots into adjacent cells at standing hostile pawns
	EffectiveMinRangeAdjacent = 1.421

	// MaxSearchDistance is the sentinel for unbounded distance and travel radius
	MaxSearchDistance = 9999.0

	// BiasStructureChance is the probability an overhead weapon first tries a player structure
	BiasStructureChance = 0.5
)

// Cover
const (
	// Cover within this angle of the shot line blocks at its full fill
	CoverFullAngle = 15.0
	// Each band beyond CoverFullAngle reduces the factor by CoverBandStep
	CoverBandWidth = 12.5
	CoverBandStep  = 0.2
	CoverMaxAngle  = 65.0
)
