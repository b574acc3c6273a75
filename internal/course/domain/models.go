package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Course is the catalog record priced by the enrollment flow. Price and
// DiscountPrice are integers in the smallest currency unit.
type Course struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Title         string            `gorm:"not null" json:"title"`
	Description   string            `gorm:"type:text" json:"description"`
	InstructorID  snowflake.ID      `gorm:"not null;index" json:"instructor_id"`
	Thumbnail     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"thumbnail,omitempty"`
	Price         int64             `gorm:"not null" json:"price"`
	DiscountPrice int64             `gorm:"not null;default:0" json:"discount_price"`
	IsFree        bool              `gorm:"not null;default:false" json:"is_free"`
	Currency      string            `gorm:"type:text;not null;default:'INR'" json:"currency"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Videos []CourseVideo `gorm:"foreignKey:CourseID" json:"videos,omitempty"`
}

func (Course) TableName() string { return "courses" }

// EffectiveCharge is the amount actually billed for the course: zero when the
// course is free, otherwise the discount price when one is set, otherwise the
// list price.
func (c Course) EffectiveCharge() int64 {
	if c.IsFree {
		return 0
	}
	if c.DiscountPrice > 0 {
		return c.DiscountPrice
	}
	return c.Price
}

type CourseVideo struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	CourseID snowflake.ID `gorm:"not null;index" json:"course_id"`
	Title    string       `gorm:"not null" json:"title"`
	PublicID string       `gorm:"type:text;not null" json:"public_id"`
	URL      string       `gorm:"type:text;not null" json:"url"`
	Position int          `gorm:"not null;default:0" json:"position"`
}

func (CourseVideo) TableName() string { return "course_videos" }
