package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int   `json:"length"`
	Uppercase        *bool `json:"uppercase"`
	Lowercase        *bool `json:"lowercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	RequireEachClass bool  `json:"require_each_class"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string           `json:"password"`
	Length   int              `json:"length"`
	Strength StrengthRating   `json:"strength"`
	Estimate StrengthEstimate `json:"estimate"`
}

// StrengthRequest asks for a rating of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}

// StrengthResponse carries the rating for a StrengthRequest.
type StrengthResponse struct {
	Strength StrengthRating   `json:"strength"`
	Estimate StrengthEstimate `json:"estimate"`
}

// StrengthRating is the heuristic score with its band label and meter colour.
type StrengthRating struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StrengthEstimate is the advisory zxcvbn result.
type StrengthEstimate struct {
	Score     int     `json:"score"`
	Entropy   float64 `json:"entropy"`
	CrackTime string  `json:"crack_time"`
}
