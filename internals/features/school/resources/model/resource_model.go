package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ResourceModel holds course material metadata. The file itself lives in
// external storage; only the URL is kept here.
type ResourceModel struct {
	ResourceID       uuid.UUID      `gorm:"column:resource_id;type:uuid;default:gen_random_uuid();primaryKey" json:"resource_id"`
	ResourceCourseID uuid.UUID      `gorm:"column:resource_course_id;type:uuid;not null;index" json:"resource_course_id"`
	ResourceOwnerID  uuid.UUID      `gorm:"column:resource_owner_id;type:uuid;not null" json:"resource_owner_id"`
	ResourceTitle    string         `gorm:"column:resource_title;type:varchar(255);not null" json:"resource_title"`
	ResourceURL      string         `gorm:"column:resource_url;type:text;not null" json:"resource_url"`
	ResourceKind     string         `gorm:"column:resource_kind;type:varchar(20);not null" json:"resource_kind"` // document | video | link
	ResourceTags     pq.StringArray `gorm:"column:resource_tags;type:text[]" json:"resource_tags"`

	ResourceCreatedAt time.Time `gorm:"column:resource_created_at;autoCreateTime" json:"resource_created_at"`
	ResourceUpdatedAt time.Time `gorm:"column:resource_updated_at;autoUpdateTime" json:"resource_updated_at"`
}

func (ResourceModel) TableName() string {
	return "resources"
}
