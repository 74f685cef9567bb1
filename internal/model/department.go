package model

// Department is a derived view: the set of distinct sections observed for a
// department name across all student records. It is never stored.
type Department struct {
	Name     string   `json:"name"`
	Sections []string `json:"sections"`
}
