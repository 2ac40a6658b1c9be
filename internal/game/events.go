package game

// Outbound event names. One typed payload struct per event instead of
// ad hoc maps.
const (
	EventUpdateRoom          = "update_room"
	EventRoundStart          = "round_start"
	EventRoundStartSelecting = "round_start_selecting"
	EventYourTurnToDraw      = "your_turn_to_draw"
	EventStartDrawingPhase   = "start_drawing_phase"
	EventYouAreDrawing       = "you_are_drawing"
	EventRoundEnd            = "round_end"
	EventGameOver            = "game_over"
	EventChatMessage         = "chat_message"
	EventCorrectGuess        = "correct_guess"
	EventPlayerGuessed       = "player_guessed"
	EventSystemMessage       = "system_message"
	EventDrawStroke          = "draw_stroke"
	EventClearCanvas         = "clear_canvas"
	EventCanvasHistory       = "canvas_history"
)

// PlayerSnapshot is the sanitized per-player view.
type PlayerSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Team       Team   `json:"team,omitempty"`
	IsHost     bool   `json:"isHost"`
	HasGuessed bool   `json:"hasGuessed"`
}

// RoomSnapshot is the sanitized room view broadcast on every membership,
// score, phase or mask change. It never carries unmasked answers.
type RoomSnapshot struct {
	Code           string           `json:"code"`
	Mode           string           `json:"mode"`
	Phase          string           `json:"phase"`
	Round          int              `json:"round"`
	TimeLeft       int              `json:"timeLeft"`
	Players        []PlayerSnapshot `json:"players"`
	Teams          map[Team]int     `json:"teams,omitempty"`
	MaskedAnswer   string           `json:"maskedAnswer,omitempty"`
	PhaseTimeLimit int              `json:"phaseTimeLimit,omitempty"`
	PhaseTimeLeft  int              `json:"phaseTimeLeft,omitempty"`
	CurrentDrawer  string           `json:"currentDrawer,omitempty"`
	Metadata       map[string]any   `json:"metadata,omitempty"`
}

// RiddleRoundStart announces a new riddle puzzle. The canonical answers
// stay server-side; only content, hint and the mask go out.
type RiddleRoundStart struct {
	Round        int      `json:"round"`
	PuzzleType   string   `json:"puzzleType"`
	Content      []string `json:"content"`
	Hint         string   `json:"hint"`
	MaskedAnswer string   `json:"maskedAnswer"`
	TimeLeft     int      `json:"timeLeft"`
	PuzzleTime   int      `json:"puzzleTime"`
}

type SelectingStart struct {
	Drawer string `json:"drawer"`
}

type WordChoiceOffer struct {
	Choices []string `json:"choices"`
}

type DrawingPhaseStart struct {
	Drawer       string `json:"drawer"`
	TimeLeft     int    `json:"timeLeft"`
	MaskedAnswer string `json:"maskedAnswer"`
	Length       int    `json:"length"`
}

type DrawerWord struct {
	Word string `json:"word"`
}

type ScoreEntry struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

type RoundEnd struct {
	Reason string       `json:"reason"`
	Answer string       `json:"answer"`
	Scores []ScoreEntry `json:"scores"`
}

type FinalStanding struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GameOver struct {
	Players []FinalStanding `json:"players"`
	Teams   map[Team]int    `json:"teams,omitempty"`
}

type ChatMessage struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Type       string `json:"type"`
}

type CorrectGuess struct {
	Points int `json:"points"`
}

type PlayerGuessed struct {
	PlayerID string `json:"playerId"`
	Points   int    `json:"points"`
}

type SystemMessage struct {
	Text string `json:"text"`
}
