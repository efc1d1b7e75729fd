package models

// Company is the tenant boundary scoping event and task visibility.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
