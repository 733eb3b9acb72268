package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/resources/model"
)

// ================== REQUEST ==================

type ResourceRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	Title    string    `json:"title" validate:"required,max=255"`
	URL      string    `json:"url" validate:"required,url"`
	Kind     string    `json:"kind" validate:"required,oneof=document video link"`
	Tags     []string  `json:"tags"`
}

// ================== RESPONSE ==================

type ResourceResponse struct {
	ResourceID uuid.UUID `json:"resource_id"`
	CourseID   uuid.UUID `json:"course_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Kind       string    `json:"kind"`
	Tags       []string  `json:"tags"`
	CreatedAt  string    `json:"created_at"`
}

// ================ CONVERSION =================

func ToResourceResponse(m *model.ResourceModel) *ResourceResponse {
	return &ResourceResponse{
		ResourceID: m.ResourceID,
		CourseID:   m.ResourceCourseID,
		OwnerID:    m.ResourceOwnerID,
		Title:      m.ResourceTitle,
		URL:        m.ResourceURL,
		Kind:       m.ResourceKind,
		Tags:       m.ResourceTags,
		CreatedAt:  m.ResourceCreatedAt.Format(time.RFC3339),
	}
}

func ToResourceResponseList(models []model.ResourceModel) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToResourceResponse(&models[i]))
	}
	return out
}
