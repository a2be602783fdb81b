package pexels

// SearchResponse holds photo search results
type SearchResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Photos       []Photo `json:"photos"`
	NextPage     string  `json:"next_page"`
}

// Photo is a single search hit
type Photo struct {
	ID           int64       `json:"id"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	URL          string      `json:"url"`
	Photographer string      `json:"photographer"`
	Alt          string      `json:"alt"`
	Src          PhotoSource `json:"src"`
}

// PhotoSource holds links to photo sizes
type PhotoSource struct {
	Original string `json:"original"`
	Large    string `json:"large"`
	Medium   string `json:"medium"`
	Small    string `json:"small"`
	Tiny     string `json:"tiny"`
}
