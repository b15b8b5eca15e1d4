package models

type Franchise struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null;size:200"`
}

func (Franchise) TableName() string {
	return "franchises"
}
