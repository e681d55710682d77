package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ProductModel string `gorm:"size:191;not null;uniqueIndex:idx_review_product_user"`
	User         string `gorm:"column:username;size:191;not null;uniqueIndex:idx_review_product_user"`
	Score        int    `gorm:"not null"`
	Date         datatypes.Date
	Comment      string `gorm:"type:text"`
}

type ReviewView struct {
	Model   string `json:"model"`
	User    string `json:"user"`
	Score   int    `json:"score"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

func (r *Review) View() ReviewView {
	return ReviewView{
		Model:   r.ProductModel,
		User:    r.User,
		Score:   r.Score,
		Date:    time.Time(r.Date).Format(dateLayout),
		Comment: r.Comment,
	}
}
