package models

// BatchItemResult is the outcome of one title within a queue run
type BatchItemResult struct {
	TitleID   string      `json:"title_id"`
	RequestID string      `json:"request_id,omitempty"`
	Status    TitleStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
}

// BatchResult summarises a queue run
type BatchResult struct {
	Selected  int               `json:"selected"`
	Completed int               `json:"completed"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
}
