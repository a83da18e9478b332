package core

// Entity is a unique identifier for a simulation entity, 0 means none
type Entity uint64

// FactionID identifies a faction in the host world's relation table
type FactionID uint16

// FactionNone marks unaffiliated entities (wild animals, debris)
const FactionNone FactionID = 0
