package dto

import "strings"

// ChatRequest carries the single free-text field of the inbound query
// interface. When both fields are set, question wins.
type ChatRequest struct {
	Question string `json:"question" validate:"omitempty,max=4000"`
	Message  string `json:"message" validate:"omitempty,max=4000"`
}

func (r *ChatRequest) Text() string {
	if q := strings.TrimSpace(r.Question); q != "" {
		return q
	}
	return strings.TrimSpace(r.Message)
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type BackfillResponse struct {
	GHGRows   int `json:"ghg_rows"`
	CovidRows int `json:"covid_rows"`
}
