package models

// Category is reference data, administered out of band through the admin API.
type Category struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryType string `gorm:"index;not null" json:"categoryType"`
	CategoryName string `gorm:"not null;uniqueIndex:idx_category_sub" json:"categoryName"`
	SubCategory  string `gorm:"uniqueIndex:idx_category_sub" json:"subCategory"`
}
