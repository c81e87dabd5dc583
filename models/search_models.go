package models

// SearchResponse represents ranked documents for a query
type SearchResponse struct {
	BaseResponse
	Query     string           `json:"query"`
	Documents []ScoredDocument `json:"documents"`
	Count     int              `json:"count"`
}

// KnowledgeStatus summarizes the loaded knowledge base
type KnowledgeStatus struct {
	College       string   `json:"college"`
	DocumentCount int      `json:"document_count"`
	DocumentIDs   []string `json:"document_ids"`
	Drives        int      `json:"placement_drives"`
	DrivesSource  string   `json:"placement_drives_source"`
}
