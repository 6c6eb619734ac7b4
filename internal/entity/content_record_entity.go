package entity

type ContentCategory string

const (
	ContentCategoryPersonal  ContentCategory = "personal"
	ContentCategoryEducation ContentCategory = "education"
	ContentCategoryWork      ContentCategory = "work"
	ContentCategoryProject   ContentCategory = "project"
	ContentCategorySkill     ContentCategory = "skill"
)

// ContentRecord is a unit of indexed portfolio knowledge. Re-ingesting a record
// with the same Id overwrites the stored vector and metadata.
type ContentRecord struct {
	Id       string
	Category ContentCategory
	Text     string
	Metadata map[string]interface{}
}
