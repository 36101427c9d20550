package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatted output
type Output struct {
	format string
}

// NewOutput creates an output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	switch o.format {
	case "json":
		return o.printJSON(data)
	default:
		return o.printText(data)
	}
}

func (o *Output) printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case *PlayerResult:
		fmt.Printf("Player: %s\n", v.DisplayName)
		fmt.Printf("ID: %s\n", v.ID)
		if v.IsGuest {
			fmt.Println("Type: guest")
		} else {
			fmt.Println("Type: registered")
		}
	case *AuthResult:
		fmt.Printf("Player: %s (%s)\n", v.Player.DisplayName, v.Player.ID)
		fmt.Printf("Token expires: %s\n", v.ExpiresAt.Local().Format(time.RFC1123))
		fmt.Println("Token saved.")
	case *RoomResult:
		o.printRoom(v)
	case *SnapshotResult:
		o.printSnapshot(v)
	case []ResultRow:
		o.printResults(v)
	case *AnswerResult:
		verdict := "wrong"
		if v.Correct {
			verdict = "correct"
		}
		fmt.Printf("Answer recorded: %s, %d points\n", verdict, v.PointsEarned)
	case *ActivationResult:
		fmt.Printf("Power-up %s activated for question %d\n", v.Kind, v.QuestionIndex+1)
	case *HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case string:
		fmt.Println(v)
	default:
		return o.printJSON(data)
	}
	return nil
}

func (o *Output) printRoom(room *RoomResult) {
	fmt.Printf("Room: %s [%s]\n", room.Code, room.Status)
	fmt.Printf("Questions: %d of %d\n", room.CurrentIndex+1, room.QuestionCount)
	fmt.Printf("Config: %d-%d players, %ds per question",
		room.Config.MinPlayersToStart, room.Config.MaxPlayers, room.Config.SecondsPerQuestion)
	if room.Config.Category != "" {
		fmt.Printf(", category %s", room.Config.Category)
	}
	fmt.Println()
	fmt.Println("Members:")
	for _, m := range room.Members {
		var tags []string
		if m.PlayerID == room.HostID {
			tags = append(tags, "host")
		}
		if m.Ready {
			tags = append(tags, "ready")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " (" + strings.Join(tags, ", ") + ")"
		}
		fmt.Printf("  %s: %d points%s\n", m.DisplayName, m.Score, suffix)
	}
}

func (o *Output) printSnapshot(s *SnapshotResult) {
	fmt.Printf("Room: %s [%s]\n", s.RoomCode, s.Status)
	if s.Question != nil {
		fmt.Printf("Question %d/%d: %s\n", s.CurrentIndex+1, s.QuestionCount, s.Question.Prompt)
		for i, opt := range s.Question.Options {
			if eliminated(s.Question.Eliminated, i) {
				continue
			}
			fmt.Printf("  [%d] %s\n", i, opt)
		}
		fmt.Printf("Time remaining: %.1fs\n", float64(s.RemainingMs)/1000)
		if s.Submitted {
			fmt.Println("You have already answered this question.")
		}
	}
	if len(s.Modifiers) > 0 {
		fmt.Printf("Active power-ups: %s\n", joinAny(s.Modifiers))
	}
	fmt.Println("Roster:")
	for _, r := range s.Roster {
		fmt.Printf("  %s: %d points\n", r.DisplayName, r.Score)
	}
}

func (o *Output) printResults(rows []ResultRow) {
	fmt.Println("Final results:")
	for _, r := range rows {
		fmt.Printf("  %d. %s: %d points (%d/%d correct)\n",
			r.Placement, r.DisplayName, r.Score, r.CorrectCount, r.Answered)
	}
}

func eliminated(indexes []int, i int) bool {
	for _, e := range indexes {
		if e == i {
			return true
		}
	}
	return false
}

func joinAny(kinds []string) string {
	return strings.Join(kinds, ", ")
}

// Response types mirroring the API. Kept local so the CLI only depends
// on the wire format, not the server internals.

type PlayerResult struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

type AuthResult struct {
	Player    PlayerResult `json:"player"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type RoomConfigResult struct {
	MaxPlayers         int    `json:"max_players"`
	MinPlayersToStart  int    `json:"min_players_to_start"`
	SecondsPerQuestion int    `json:"seconds_per_question"`
	QuestionCount      int    `json:"question_count"`
	Category           string `json:"category,omitempty"`
	Difficulty         string `json:"difficulty,omitempty"`
}

type RoomMemberResult struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
	Ready       bool   `json:"ready"`
	Score       int    `json:"score"`
}

type RoomResult struct {
	Code          string             `json:"code"`
	Status        string             `json:"status"`
	HostID        string             `json:"host_id"`
	Config        RoomConfigResult   `json:"config"`
	Members       []RoomMemberResult `json:"members"`
	CurrentIndex  int                `json:"current_index"`
	QuestionCount int                `json:"question_count"`
}

type QuestionViewResult struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options,omitempty"`
	Points     int      `json:"points"`
	MediaURL   string   `json:"media_url,omitempty"`
	Eliminated []int    `json:"eliminated,omitempty"`
}

type RosterRow struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
	Ready       bool   `json:"ready"`
	Score       int    `json:"score"`
	Submitted   bool   `json:"submitted"`
}

type SnapshotResult struct {
	RoomCode      string              `json:"room_code"`
	Status        string              `json:"status"`
	Roster        []RosterRow         `json:"roster"`
	CurrentIndex  int                 `json:"current_index"`
	QuestionCount int                 `json:"question_count"`
	Question      *QuestionViewResult `json:"question,omitempty"`
	RemainingMs   int64               `json:"remaining_ms"`
	Submitted     bool                `json:"submitted"`
	Modifiers     []string            `json:"modifiers,omitempty"`
	Holdings      map[string]int      `json:"holdings,omitempty"`
}

type ResultRow struct {
	Placement    int    `json:"placement"`
	PlayerID     string `json:"player_id"`
	DisplayName  string `json:"display_name"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correct_count"`
	Answered     int    `json:"answered"`
}

type AnswerResult struct {
	QuestionID   string `json:"question_id"`
	Correct      bool   `json:"correct"`
	PointsEarned int    `json:"points_earned"`
	ElapsedMs    int64  `json:"elapsed_ms"`
}

type ActivationResult struct {
	Kind          string `json:"kind"`
	QuestionIndex int    `json:"question_index"`
}

type HealthResult struct {
	Status string `json:"status"`
}
