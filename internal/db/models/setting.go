package models

// Setting represents a configuration setting stored in the database.
// Writes have upsert semantics keyed on Key.
type Setting struct {
	ID    uint64 `gorm:"primaryKey" json:"-"`
	Key   string `gorm:"unique;size:100;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
