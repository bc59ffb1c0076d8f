package models

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"_id"`
	Name string `gorm:"unique;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}
