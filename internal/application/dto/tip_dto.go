package dto

// TipDTO one contextual market tip. Priority is high, medium or low; the
// list is already ordered, the presentation layer only rotates through it.
type TipDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}
