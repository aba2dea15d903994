package entities

// Entry is one tracked item: a document or project with a numeric
// progress target. The JSON field names are the on-disk collection
// format and must not change.
type Entry struct {
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	AmountType string `json:"amount_type"`
	AmountDone int    `json:"amount_done"`
	TagTask    string `json:"tag_task"`
	FolderID   string `json:"folder_id"`
	FilePath   string `json:"file_path"`
}

// CompletionPercentage returns how far along the entry is, in percent.
func (e Entry) CompletionPercentage() float64 {
	if e.Amount <= 0 {
		return 0
	}
	return float64(e.AmountDone) / float64(e.Amount) * 100
}

// Remaining returns how much progress can still be recorded.
func (e Entry) Remaining() int {
	return e.Amount - e.AmountDone
}
