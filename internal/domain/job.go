package domain

// ConnectionPlaceholder is stored in JobPosting.Connection. The value is
// never scraped.
const ConnectionPlaceholder = "N/A"

// JobPosting is one job card extracted from a search results page.
type JobPosting struct {
	Keyword    string `json:"keyword"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	URL        string `json:"url"`
	Connection string `json:"connection"`
}

// Header returns the field names in export order.
func Header() []string {
	return []string{"Keyword", "Title", "Company", "Location", "URL", "Connection"}
}

// Record returns the posting's values in Header order.
func (p JobPosting) Record() []string {
	return []string{p.Keyword, p.Title, p.Company, p.Location, p.URL, p.Connection}
}
