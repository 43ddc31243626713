package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// University is the root document of the catalog. Categories and their
// courses are owned value objects persisted as a single jsonb column, so
// every write replaces the whole tree.
type University struct {
	ID              string                        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string                        `gorm:"not null;index" json:"university_name"`
	Image           *string                       `gorm:"type:text" json:"university_image"`
	EstablishedYear int                           `gorm:"not null" json:"established_year"`
	ApprovedBy      string                        `gorm:"not null" json:"approved_by"`
	Type            string                        `gorm:"not null" json:"type"`
	NAACGrade       *string                       `gorm:"type:varchar(50)" json:"NAAC_grade"`
	RankedBy        *string                       `gorm:"type:varchar(255)" json:"ranked_by"`
	PDF             *string                       `gorm:"type:text" json:"university_pdf"`
	ShowPDF         bool                          `gorm:"default:false" json:"show_pdf"`
	Categories      datatypes.JSONSlice[Category] `gorm:"type:jsonb" json:"categories"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

// Category groups courses inside one university. It has no persistence of
// its own; identity is only meaningful among its siblings.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"category_name"`
	PDF       *string   `json:"category_pdf"`
	ShowPDF   bool      `json:"show_pdf"`
	Courses   []Course  `json:"courses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Course is the leaf of the catalog tree.
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"course_name"`
	PDF       *string   `json:"course_pdf"`
	ShowPDF   bool      `json:"show_pdf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory returns a category seeded with just a name: no pdf, show_pdf
// off, empty course list.
func NewCategory(name string) Category {
	now := time.Now().UTC()
	return Category{
		ID:        uuid.NewString(),
		Name:      name,
		Courses:   []Course{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCourse returns a course seeded with just a name.
func NewCourse(name string) Course {
	now := time.Now().UTC()
	return Course{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindCategory returns a pointer into the university's category slice, or
// nil when the id does not resolve. Mutations through the pointer stay
// within the owning document.
func (u *University) FindCategory(id string) *Category {
	for i := range u.Categories {
		if u.Categories[i].ID == id {
			return &u.Categories[i]
		}
	}
	return nil
}

// RemoveCategory drops the category with the given id from the sequence and
// reports whether it was present.
func (u *University) RemoveCategory(id string) (Category, bool) {
	for i := range u.Categories {
		if u.Categories[i].ID == id {
			removed := u.Categories[i]
			u.Categories = append(u.Categories[:i], u.Categories[i+1:]...)
			return removed, true
		}
	}
	return Category{}, false
}

// FindCourse returns a pointer into the category's course slice, or nil.
func (c *Category) FindCourse(id string) *Course {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			return &c.Courses[i]
		}
	}
	return nil
}

// RemoveCourse drops the course with the given id and reports whether it was
// present.
func (c *Category) RemoveCourse(id string) (Course, bool) {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			removed := c.Courses[i]
			c.Courses = append(c.Courses[:i], c.Courses[i+1:]...)
			return removed, true
		}
	}
	return Course{}, false
}

// HasCourseNamed reports whether a sibling course already uses the name,
// compared case-insensitively. excludeID skips the course being renamed.
func (c *Category) HasCourseNamed(name, excludeID string) bool {
	for i := range c.Courses {
		if c.Courses[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Courses[i].Name, name) {
			return true
		}
	}
	return false
}

// AssetURLs collects every non-null asset reference reachable from the
// university's subtree: its own image and pdf, category pdfs and course pdfs.
func (u *University) AssetURLs() []string {
	var urls []string
	if u.Image != nil {
		urls = append(urls, *u.Image)
	}
	if u.PDF != nil {
		urls = append(urls, *u.PDF)
	}
	for i := range u.Categories {
		urls = append(urls, u.Categories[i].AssetURLs()...)
	}
	return urls
}

// AssetURLs collects the category's pdf plus every course pdf beneath it.
func (c *Category) AssetURLs() []string {
	var urls []string
	if c.PDF != nil {
		urls = append(urls, *c.PDF)
	}
	for i := range c.Courses {
		if c.Courses[i].PDF != nil {
			urls = append(urls, *c.Courses[i].PDF)
		}
	}
	return urls
}

// NameMatches reports a case-insensitive substring match on the university
// name.
func (u *University) NameMatches(query string) bool {
	return containsFold(u.Name, query)
}

// TreeMatches reports whether any category or course name in the subtree
// matches the query case-insensitively.
func (u *University) TreeMatches(query string) bool {
	for i := range u.Categories {
		cat := &u.Categories[i]
		if containsFold(cat.Name, query) {
			return true
		}
		for j := range cat.Courses {
			if containsFold(cat.Courses[j].Name, query) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
