package request

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	SessionID string `json:"session_id"`
	Guess     string `json:"guess"`
}

// RevealRequest is the request body for revealing the answer
type RevealRequest struct {
	SessionID string `json:"session_id"`
}
