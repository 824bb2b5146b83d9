package post

import "time"

type Post struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title" json:"title"`
	Body      string    `gorm:"column:body" json:"body"`
	Author    string    `gorm:"column:author" json:"author"`
	Remark    string    `gorm:"column:remark;size:200" json:"remark"`
	LastField time.Time `gorm:"column:last_field" json:"lastField"`
}

func (Post) TableName() string { return "posts" }
