package entity

type Opponent string

const (
	OpponentBot    Opponent = "bot"
	OpponentPlayer Opponent = "player"
)

// Settings - options chosen on the options panel. They survive between games and are read once per Start.
type Settings struct {
	PlayerMark Mark     `json:"player_mark"`
	Opponent   Opponent `json:"opponent"`
}

func DefaultSettings() Settings {
	return Settings{
		PlayerMark: PlayerX,
		Opponent:   OpponentBot,
	}
}

// Normalize - replaces unknown values with defaults.
func (that Settings) Normalize() Settings {
	if !that.PlayerMark.IsPlayable() {
		that.PlayerMark = PlayerX
	}

	if that.Opponent != OpponentBot && that.Opponent != OpponentPlayer {
		that.Opponent = OpponentBot
	}

	return that
}

func (that Settings) BotMark() Mark {
	return that.PlayerMark.Opponent()
}

func (that Settings) IsWithBot() bool {
	return that.Opponent == OpponentBot
}

func (that *Settings) ToggleMark() {
	that.PlayerMark = that.PlayerMark.Opponent()
}

func (that *Settings) ToggleOpponent() {
	if that.Opponent == OpponentBot {
		that.Opponent = OpponentPlayer
		return
	}
	that.Opponent = OpponentBot
}
