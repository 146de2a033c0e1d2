package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case StartGameResult:
		o.printStartGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case RevealResult:
		o.printRevealResult(v)
	case AutocompleteResult:
		o.printAutocompleteResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// StartGameResult response type (matches API)
// Seasons stay raw because their shape depends on the target's position
type StartGameResult struct {
	SessionID string          `json:"session_id"`
	GameMode  string          `json:"game_mode"`
	Position  string          `json:"position"`
	Seasons   json.RawMessage `json:"seasons"`
}

// GuessFeedback response type
type GuessFeedback struct {
	Era          string `json:"era"`
	TeamsOverlap bool   `json:"teams_overlap"`
}

// GuessResult response type
type GuessResult struct {
	Correct  bool           `json:"correct"`
	PfrID    string         `json:"pfr_id"`
	Feedback *GuessFeedback `json:"feedback,omitempty"`
}

// RevealResult response type
type RevealResult struct {
	Name     string `json:"name"`
	PfrID    string `json:"pfr_id"`
	Position string `json:"position"`
}

// AutocompleteResult response type
type AutocompleteResult struct {
	Players []string `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printStartGame(g StartGameResult) {
	fmt.Printf("Session: %s\n", g.SessionID)
	fmt.Printf("Mode: %s\n", g.GameMode)
	fmt.Printf("Position: %s\n", g.Position)

	var seasons []map[string]any
	if err := json.Unmarshal(g.Seasons, &seasons); err != nil || len(seasons) == 0 {
		return
	}

	fmt.Printf("Seasons (%d):\n", len(seasons))
	for _, s := range seasons {
		parts := []string{}
		if year, ok := s["season"].(float64); ok {
			parts = append(parts, fmt.Sprintf("%d", int(year)))
		}
		if team, ok := s["team"].(string); ok {
			parts = append(parts, team)
		}
		if yards, ok := s["yards"].(float64); ok {
			parts = append(parts, fmt.Sprintf("%d yds", int(yards)))
		}
		if tds, ok := s["touchdowns"].(float64); ok {
			parts = append(parts, fmt.Sprintf("%d TD", int(tds)))
		}
		fmt.Printf("  - %s\n", strings.Join(parts, " "))
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	if g.Correct {
		fmt.Println("Correct!")
		return
	}

	fmt.Println("Incorrect.")
	if g.Feedback != nil {
		fmt.Printf("Era: %s\n", g.Feedback.Era)
		overlapStr := "no"
		if g.Feedback.TeamsOverlap {
			overlapStr = "yes"
		}
		fmt.Printf("Shared a team: %s\n", overlapStr)
	}
}

func (o *Output) printRevealResult(r RevealResult) {
	fmt.Printf("Answer: %s (%s)\n", r.Name, r.Position)
	fmt.Printf("PFR: %s\n", r.PfrID)
}

func (o *Output) printAutocompleteResult(a AutocompleteResult) {
	if len(a.Players) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, name := range a.Players {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
