package travel

import "clipprmobile/models"

// FallbackTable holds the fixed minutes used when an estimate cannot be computed.
type FallbackTable map[models.TransportMode]int

// DefaultFallbackTable returns driving=15, walking=30, cycling=20, transit=25.
func DefaultFallbackTable() FallbackTable {
	return FallbackTable{
		models.ModeDriving: 15,
		models.ModeWalking: 30,
		models.ModeCycling: 20,
		models.ModeTransit: 25,
	}
}

// Minutes returns the fallback for mode. Modes missing from the table use
// the driving entry, then the default driving value.
func (t FallbackTable) Minutes(mode models.TransportMode) int {
	if m, ok := t[mode]; ok {
		return m
	}
	if m, ok := t[models.ModeDriving]; ok {
		return m
	}
	return DefaultFallbackTable()[models.ModeDriving]
}
