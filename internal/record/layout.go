package record

// Size is the length of every save file body.
const Size = 37856

const (
	NumCivs       = 8
	MaxCities     = 128
	UnitsPerCiv   = 128
	NumWonders    = 22
	AdvanceBytes  = 10
	MapWidth      = 80
	MapHeight     = 50
	ReplayLogSize = 4096

	LeaderNameLength    = 14
	CivNameLength       = 12
	CivAdjectiveLength  = 11
	CityRecordSize      = 28
	UnitRecordSize      = 12
	civScalarStride     = 2
	diplomacyFieldCount = NumCivs * NumCivs
)

// Field is a named byte range of the record.
type Field struct {
	Name   string
	Offset int
	Length int
}

// End returns the offset one past the last byte of the field.
func (f Field) End() int {
	return f.Offset + f.Length
}

var (
	Turn        = Field{"turn", 0x0000, 2}
	HumanPlayer = Field{"human_player", 0x0002, 2}
	HumanCivs   = Field{"human_civs", 0x0004, 2}
	RandomSeed  = Field{"random_seed", 0x0006, 2}
	Year        = Field{"year", 0x0008, 2}
	Difficulty  = Field{"difficulty", 0x000A, 2}
	ActiveCivs  = Field{"active_civs", 0x000C, 2}
	Competition = Field{"competition", 0x000E, 2}

	LeaderNames   = Field{"leader_names", 0x0010, NumCivs * LeaderNameLength}
	CivNames      = Field{"civ_names", 0x0080, NumCivs * CivNameLength}
	CivAdjectives = Field{"civ_adjectives", 0x00E0, NumCivs * CivAdjectiveLength}

	Treasury        = Field{"treasury", 0x0138, NumCivs * civScalarStride}
	Beakers         = Field{"beakers", 0x0148, NumCivs * civScalarStride}
	LuxuryRate      = Field{"luxury_rate", 0x0158, NumCivs * civScalarStride}
	TaxRate         = Field{"tax_rate", 0x0168, NumCivs * civScalarStride}
	FutureTechs     = Field{"future_techs", 0x0178, NumCivs * civScalarStride}
	Government      = Field{"government", 0x0188, NumCivs * civScalarStride}
	CityCount       = Field{"city_count", 0x0198, NumCivs * civScalarStride}
	UnitCount       = Field{"unit_count", 0x01A8, NumCivs * civScalarStride}
	LandCount       = Field{"land_count", 0x01B8, NumCivs * civScalarStride}
	SettlerCount    = Field{"settler_count", 0x01C8, NumCivs * civScalarStride}
	TotalCitizens   = Field{"total_citizens", 0x01D8, NumCivs * civScalarStride}
	MilitaryPower   = Field{"military_power", 0x01E8, NumCivs * civScalarStride}
	Ranking         = Field{"ranking", 0x01F8, NumCivs * civScalarStride}
	CurrentResearch = Field{"current_research", 0x0208, NumCivs * civScalarStride}

	Advances   = Field{"advances", 0x0218, NumCivs * AdvanceBytes}
	Diplomacy  = Field{"diplomacy", 0x0268, diplomacyFieldCount * 2}
	Score      = Field{"score", 0x02E8, NumCivs * civScalarStride}
	PeaceTurns = Field{"peace_turns", 0x02F8, NumCivs * civScalarStride}
	Wonders    = Field{"wonders", 0x0308, NumWonders * 2}

	GameOptions    = Field{"game_options", 0x0334, 2}
	GlobalWarming  = Field{"global_warming", 0x0336, 2}
	PollutedTiles  = Field{"polluted_tiles", 0x0338, 2}
	ReservedHeader = Field{"reserved_header", 0x033A, 0x0206}

	Cities       = Field{"cities", 0x0540, MaxCities * CityRecordSize}
	Units        = Field{"units", 0x1340, NumCivs * UnitsPerCiv * UnitRecordSize}
	Visibility   = Field{"visibility", 0x4340, MapWidth * MapHeight}
	ReplayLength = Field{"replay_length", 0x52E0, 2}
	Replay       = Field{"replay", 0x52E2, ReplayLogSize}

	ReservedTrailer = Field{"reserved_trailer", 0x62E2, Size - 0x62E2}
)

// Layout lists every field of the record in offset order. The fields cover the
// record exactly once.
var Layout = []Field{
	Turn,
	HumanPlayer,
	HumanCivs,
	RandomSeed,
	Year,
	Difficulty,
	ActiveCivs,
	Competition,
	LeaderNames,
	CivNames,
	CivAdjectives,
	Treasury,
	Beakers,
	LuxuryRate,
	TaxRate,
	FutureTechs,
	Government,
	CityCount,
	UnitCount,
	LandCount,
	SettlerCount,
	TotalCitizens,
	MilitaryPower,
	Ranking,
	CurrentResearch,
	Advances,
	Diplomacy,
	Score,
	PeaceTurns,
	Wonders,
	GameOptions,
	GlobalWarming,
	PollutedTiles,
	ReservedHeader,
	Cities,
	Units,
	Visibility,
	ReplayLength,
	Replay,
	ReservedTrailer,
}

// FieldByName looks up a field of Layout.
func FieldByName(name string) (Field, bool) {
	for _, f := range Layout {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
