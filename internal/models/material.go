package models

import (
	"strings"
	"time"
)

// Material content types.
const (
	MaterialTypePDF   = "pdf"
	MaterialTypeDoc   = "doc"
	MaterialTypeDocx  = "docx"
	MaterialTypePPT   = "ppt"
	MaterialTypePPTX  = "pptx"
	MaterialTypeVideo = "video"
	MaterialTypeLink  = "link"
	MaterialTypeCode  = "code"
)

// Material represents course content: a document reference, a link, or an
// inline code snippet. CourseID is nil for general materials and after the
// owning course has been deleted.
type Material struct {
	ID          int64     `json:"id"`
	CourseID    *int64    `json:"courseId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	FileSize    string    `json:"fileSize,omitempty"`
	Downloads   int       `json:"downloads"`
	Tags        []string  `json:"tags,omitempty"`
	Language    string    `json:"language,omitempty"`
	Author      string    `json:"author,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// IsCode reports whether the material carries an inline code snippet.
func (m Material) IsCode() bool {
	return m.Type == MaterialTypeCode
}

// IsLink reports whether the material content is an external URL.
func (m Material) IsLink() bool {
	return m.Type == MaterialTypeLink
}

// ValidMaterialType reports whether the supplied type is recognised.
func ValidMaterialType(t string) bool {
	switch strings.ToLower(t) {
	case MaterialTypePDF, MaterialTypeDoc, MaterialTypeDocx, MaterialTypePPT,
		MaterialTypePPTX, MaterialTypeVideo, MaterialTypeLink, MaterialTypeCode:
		return true
	default:
		return false
	}
}
