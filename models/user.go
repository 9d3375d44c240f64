package models

// User represents a GitHub user as returned by the listing and search
// endpoints.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Profile extends a user summary with the fields returned by a direct
// profile lookup. Name, Bio and Location may be empty.
type Profile struct {
	User
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
}

// SearchResult is the container returned by the user search endpoint.
// A missing or empty Items slice means "no results", not an error.
type SearchResult struct {
	TotalCount int    `json:"total_count"`
	Items      []User `json:"items"`
}
