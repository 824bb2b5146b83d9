package postimage

// PostImage references exactly one file in upload storage by its generated name.
type PostImage struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FileName string `gorm:"column:file_name;size:100;not null" json:"fileName"`
}

func (PostImage) TableName() string { return "post_images" }
