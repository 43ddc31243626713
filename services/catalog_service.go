package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/university-catalog/database"
	"github.com/sahilchouksey/university-catalog/model"
)

const universityCacheTTL = 5 * time.Minute

// Cache is the optional read cache consumed by the catalog. Implemented by
// utils/cache.RedisCache; a nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CatalogService is the engine behind the university catalog: document CRUD,
// nested category/course mutation, paginated listing and cross-level search.
// Asset slot changes are delegated to the AssetReconciler.
type CatalogService struct {
	store  database.Storage
	assets *AssetReconciler
	cache  Cache
}

func NewCatalogService(store database.Storage, assets *AssetReconciler, cache Cache) *CatalogService {
	return &CatalogService{
		store:  store,
		assets: assets,
		cache:  cache,
	}
}

// CourseSeed and CategorySeed carry the scalar-only bulk shape accepted at
// creation time. Seeded entities always start with a null pdf and show_pdf
// off; assets are attached through the dedicated update paths.
type CourseSeed struct {
	Name string `json:"course_name"`
}

type CategorySeed struct {
	Name    string       `json:"category_name"`
	Courses []CourseSeed `json:"courses"`
}

type CreateUniversityInput struct {
	Name            string
	EstablishedYear *int
	ApprovedBy      string
	Type            string
	NAACGrade       *string
	RankedBy        *string
	Categories      []CategorySeed
	Image           *FileUpload
	PDF             *FileUpload
}

type UpdateUniversityInput struct {
	Name            *string
	EstablishedYear *string
	ApprovedBy      *string
	Type            *string
	NAACGrade       *string
	RankedBy        *string
	ShowPDF         *bool
	Image           *FileUpload
	PDF             *FileUpload
	RemoveImage     bool
	RemovePDF       bool
}

type UpdateCategoryInput struct {
	Name      *string
	ShowPDF   *bool
	PDF       *FileUpload
	RemovePDF bool
}

type UpdateCourseInput struct {
	Name      *string
	ShowPDF   *bool
	PDF       *FileUpload
	RemovePDF bool
}

type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// UniversityPage is one page of a listing plus its pagination envelope.
type UniversityPage struct {
	Items []model.University
	Total int64
	Page  int
	Limit int
	Pages int
}

// CreateUniversity validates the payload, uploads any supplied assets before
// the record exists, normalizes category/course seeds and persists the new
// document.
func (s *CatalogService) CreateUniversity(ctx context.Context, in CreateUniversityInput) (*model.University, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, newValidationError("university_name", "must be at least 2 characters")
	}
	if in.EstablishedYear == nil {
		return nil, newValidationError("established_year", "is required")
	}
	if strings.TrimSpace(in.ApprovedBy) == "" {
		return nil, newValidationError("approved_by", "is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, newValidationError("type", "is required")
	}

	categories, err := buildCategorySeeds(in.Categories)
	if err != nil {
		return nil, err
	}

	// Upload-first ordering: no reference is persisted before its object
	// finished uploading. A later failure reclaims what already landed.
	var uploaded []string
	rollback := func() {
		s.assets.ReleaseAll(ctx, uploaded, "rollback of aborted create")
	}

	var imageURL, pdfURL *string
	if in.Image != nil {
		u, err := s.assets.Upload(ctx, in.Image, FolderUniversityImage)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, u)
		imageURL = &u
	}
	if in.PDF != nil {
		u, err := s.assets.Upload(ctx, in.PDF, FolderUniversityPDF)
		if err != nil {
			rollback()
			return nil, err
		}
		uploaded = append(uploaded, u)
		pdfURL = &u
	}

	now := time.Now().UTC()
	university := &model.University{
		ID:              uuid.NewString(),
		Name:            name,
		Image:           imageURL,
		EstablishedYear: *in.EstablishedYear,
		ApprovedBy:      strings.TrimSpace(in.ApprovedBy),
		Type:            strings.TrimSpace(in.Type),
		NAACGrade:       in.NAACGrade,
		RankedBy:        in.RankedBy,
		PDF:             pdfURL,
		ShowPDF:         false,
		Categories:      categories,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateUniversity(university); err != nil {
		rollback()
		return nil, &PersistenceError{Op: "create university", Err: err}
	}

	return university, nil
}

// GetUniversity returns the full document, reading through the cache when
// one is configured.
func (s *CatalogService) GetUniversity(ctx context.Context, id string) (*model.University, error) {
	if s.cache != nil {
		var cached model.University
		if err := s.cache.GetJSON(ctx, universityCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	university, err := s.store.GetUniversity(id)
	if err != nil {
		return nil, mapStoreError(err, "university", id, "get university")
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, universityCacheKey(id), university, universityCacheTTL)
	}
	return university, nil
}

// ListUniversities returns one stable page of universities, optionally
// filtered by a case-insensitive name substring.
func (s *CatalogService) ListUniversities(ctx context.Context, p ListParams) (*UniversityPage, error) {
	if p.Page < 1 {
		return nil, newValidationError("page", "must be a positive integer")
	}
	if p.Limit < 1 {
		return nil, newValidationError("limit", "must be a positive integer")
	}

	offset := (p.Page - 1) * p.Limit
	items, total, err := s.store.ListUniversities(offset, p.Limit, p.Search)
	if err != nil {
		return nil, &PersistenceError{Op: "list universities", Err: err}
	}

	pages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		pages++
	}

	return &UniversityPage{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: pages,
	}, nil
}

// UpdateUniversity applies a field-level partial merge: nil fields keep the
// stored value, present fields overwrite it. New asset bytes follow the
// reconciliation policy; old objects are reclaimed only after the document
// commits.
func (s *CatalogService) UpdateUniversity(ctx context.Context, id string, in UpdateUniversityInput) (*model.University, error) {
	university, err := s.store.GetUniversity(id)
	if err != nil {
		return nil, mapStoreError(err, "university", id, "get university")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, newValidationError("university_name", "must be at least 2 characters")
		}
		university.Name = name
	}
	if in.EstablishedYear != nil {
		year, err := strconv.Atoi(strings.TrimSpace(*in.EstablishedYear))
		if err != nil {
			return nil, newValidationError("established_year", "must be an integer")
		}
		university.EstablishedYear = year
	}
	if in.ApprovedBy != nil {
		university.ApprovedBy = strings.TrimSpace(*in.ApprovedBy)
	}
	if in.Type != nil {
		university.Type = strings.TrimSpace(*in.Type)
	}
	if in.NAACGrade != nil {
		university.NAACGrade = in.NAACGrade
	}
	if in.RankedBy != nil {
		university.RankedBy = in.RankedBy
	}
	if in.ShowPDF != nil {
		university.ShowPDF = *in.ShowPDF
	}

	var uploaded, replaced []string

	if in.Image != nil {
		newURL, err := s.assets.Upload(ctx, in.Image, FolderUniversityImage)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, newURL)
		if university.Image != nil {
			replaced = append(replaced, *university.Image)
		}
		university.Image = &newURL
	} else if in.RemoveImage && university.Image != nil {
		replaced = append(replaced, *university.Image)
		university.Image = nil
	}

	if in.PDF != nil {
		newURL, err := s.assets.Upload(ctx, in.PDF, FolderUniversityPDF)
		if err != nil {
			s.assets.ReleaseAll(ctx, uploaded, "rollback of aborted update")
			return nil, err
		}
		uploaded = append(uploaded, newURL)
		if university.PDF != nil {
			replaced = append(replaced, *university.PDF)
		}
		university.PDF = &newURL
	} else if in.RemovePDF && university.PDF != nil {
		replaced = append(replaced, *university.PDF)
		university.PDF = nil
	}

	university.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveUniversity(university); err != nil {
		s.assets.ReleaseAll(ctx, uploaded, "rollback of failed save")
		return nil, &PersistenceError{Op: "update university", Err: err}
	}

	s.invalidate(ctx, id)
	s.assets.ReleaseAll(ctx, replaced, "replaced on update")

	return university, nil
}

// DeleteUniversity removes the document and reclaims every asset reachable
// from its subtree. Record deletion must succeed; asset reclamation is
// best-effort.
func (s *CatalogService) DeleteUniversity(ctx context.Context, id string) error {
	university, err := s.store.GetUniversity(id)
	if err != nil {
		return mapStoreError(err, "university", id, "get university")
	}

	if err := s.store.DeleteUniversity(id); err != nil {
		return mapStoreError(err, "university", id, "delete university")
	}

	s.invalidate(ctx, id)
	s.assets.ReleaseAll(ctx, university.AssetURLs(), "university deleted")
	return nil
}

// AddCategory appends a new category seeded with just a name.
func (s *CatalogService) AddCategory(ctx context.Context, universityID, name string) (*model.University, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, newValidationError("category_name", "must be at least 2 characters")
	}

	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	university.Categories = append(university.Categories, model.NewCategory(name))
	university.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveUniversity(university); err != nil {
		return nil, &PersistenceError{Op: "add category", Err: err}
	}

	s.invalidate(ctx, universityID)
	return university, nil
}

// UpdateCategory mutates an existing category only; unknown ids are not
// created here.
func (s *CatalogService) UpdateCategory(ctx context.Context, universityID, categoryID string, in UpdateCategoryInput) (*model.University, error) {
	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	category := university.FindCategory(categoryID)
	if category == nil {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, newValidationError("category_name", "must be at least 2 characters")
		}
		category.Name = name
	}
	if in.ShowPDF != nil {
		category.ShowPDF = *in.ShowPDF
	}

	var uploaded, replaced []string
	if in.PDF != nil {
		newURL, err := s.assets.Upload(ctx, in.PDF, FolderCategoryPDF)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, newURL)
		if category.PDF != nil {
			replaced = append(replaced, *category.PDF)
		}
		category.PDF = &newURL
	} else if in.RemovePDF && category.PDF != nil {
		replaced = append(replaced, *category.PDF)
		category.PDF = nil
	}

	now := time.Now().UTC()
	category.UpdatedAt = now
	university.UpdatedAt = now

	if err := s.store.SaveUniversity(university); err != nil {
		s.assets.ReleaseAll(ctx, uploaded, "rollback of failed save")
		return nil, &PersistenceError{Op: "update category", Err: err}
	}

	s.invalidate(ctx, universityID)
	s.assets.ReleaseAll(ctx, replaced, "replaced on update")

	return university, nil
}

// DeleteCategory removes the category and reclaims its pdf along with every
// course pdf beneath it.
func (s *CatalogService) DeleteCategory(ctx context.Context, universityID, categoryID string) (*model.University, error) {
	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	removed, ok := university.RemoveCategory(categoryID)
	if !ok {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}
	university.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveUniversity(university); err != nil {
		return nil, &PersistenceError{Op: "delete category", Err: err}
	}

	s.invalidate(ctx, universityID)
	s.assets.ReleaseAll(ctx, removed.AssetURLs(), "category deleted")

	return university, nil
}

// AddCourse appends a course to a category. Names must be unique among
// siblings, compared case-insensitively; any pdf is uploaded before the
// course is appended.
func (s *CatalogService) AddCourse(ctx context.Context, universityID, categoryID, name string, pdf *FileUpload) (*model.University, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, newValidationError("course_name", "must be at least 2 characters")
	}

	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	category := university.FindCategory(categoryID)
	if category == nil {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}
	if category.HasCourseNamed(name, "") {
		return nil, newValidationError("course_name", "a course with this name already exists in the category")
	}

	course := model.NewCourse(name)
	var uploaded []string
	if pdf != nil {
		newURL, err := s.assets.Upload(ctx, pdf, FolderCoursePDF)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, newURL)
		course.PDF = &newURL
	}

	category.Courses = append(category.Courses, course)
	now := time.Now().UTC()
	category.UpdatedAt = now
	university.UpdatedAt = now

	if err := s.store.SaveUniversity(university); err != nil {
		s.assets.ReleaseAll(ctx, uploaded, "rollback of failed save")
		return nil, &PersistenceError{Op: "add course", Err: err}
	}

	s.invalidate(ctx, universityID)
	return university, nil
}

// UpdateCourse mutates an existing course one level deeper than category
// updates, with the same merge and reconciliation rules.
func (s *CatalogService) UpdateCourse(ctx context.Context, universityID, categoryID, courseID string, in UpdateCourseInput) (*model.University, error) {
	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	category := university.FindCategory(categoryID)
	if category == nil {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}
	course := category.FindCourse(courseID)
	if course == nil {
		return nil, &NotFoundError{Resource: "course", ID: courseID}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, newValidationError("course_name", "must be at least 2 characters")
		}
		if category.HasCourseNamed(name, courseID) {
			return nil, newValidationError("course_name", "a course with this name already exists in the category")
		}
		course.Name = name
	}
	if in.ShowPDF != nil {
		course.ShowPDF = *in.ShowPDF
	}

	var uploaded, replaced []string
	if in.PDF != nil {
		newURL, err := s.assets.Upload(ctx, in.PDF, FolderCoursePDF)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, newURL)
		if course.PDF != nil {
			replaced = append(replaced, *course.PDF)
		}
		course.PDF = &newURL
	} else if in.RemovePDF && course.PDF != nil {
		replaced = append(replaced, *course.PDF)
		course.PDF = nil
	}

	now := time.Now().UTC()
	course.UpdatedAt = now
	university.UpdatedAt = now

	if err := s.store.SaveUniversity(university); err != nil {
		s.assets.ReleaseAll(ctx, uploaded, "rollback of failed save")
		return nil, &PersistenceError{Op: "update course", Err: err}
	}

	s.invalidate(ctx, universityID)
	s.assets.ReleaseAll(ctx, replaced, "replaced on update")

	return university, nil
}

// DeleteCourse removes the course and reclaims only its own pdf.
func (s *CatalogService) DeleteCourse(ctx context.Context, universityID, categoryID, courseID string) (*model.University, error) {
	university, err := s.store.GetUniversity(universityID)
	if err != nil {
		return nil, mapStoreError(err, "university", universityID, "get university")
	}

	category := university.FindCategory(categoryID)
	if category == nil {
		return nil, &NotFoundError{Resource: "category", ID: categoryID}
	}
	removed, ok := category.RemoveCourse(courseID)
	if !ok {
		return nil, &NotFoundError{Resource: "course", ID: courseID}
	}

	now := time.Now().UTC()
	category.UpdatedAt = now
	university.UpdatedAt = now

	if err := s.store.SaveUniversity(university); err != nil {
		return nil, &PersistenceError{Op: "delete course", Err: err}
	}

	s.invalidate(ctx, universityID)
	if removed.PDF != nil {
		s.assets.Release(ctx, *removed.PDF, "course deleted")
	}

	return university, nil
}

// Search matches universities by name, plus universities containing any
// category or course whose name matches, case-insensitively. Results are
// deduplicated by university id with direct name matches first.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.University, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, newValidationError("query", "must be at least 2 characters")
	}

	candidates, err := s.store.SearchUniversities(query)
	if err != nil {
		return nil, &PersistenceError{Op: "search universities", Err: err}
	}

	seen := make(map[string]bool, len(candidates))
	var direct, nested []model.University
	for _, u := range candidates {
		if seen[u.ID] {
			continue
		}
		switch {
		case u.NameMatches(query):
			seen[u.ID] = true
			direct = append(direct, u)
		case u.TreeMatches(query):
			seen[u.ID] = true
			nested = append(nested, u)
		}
	}

	return append(direct, nested...), nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, universityCacheKey(id))
	}
}

func universityCacheKey(id string) string {
	return "university:" + id
}

func buildCategorySeeds(seeds []CategorySeed) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(seeds))
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		if len(name) < 2 {
			return nil, newValidationError("category_name", "must be at least 2 characters")
		}
		category := model.NewCategory(name)
		for _, courseSeed := range seed.Courses {
			courseName := strings.TrimSpace(courseSeed.Name)
			if len(courseName) < 2 {
				return nil, newValidationError("course_name", "must be at least 2 characters")
			}
			if category.HasCourseNamed(courseName, "") {
				return nil, newValidationError("course_name", "a course with this name already exists in the category")
			}
			category.Courses = append(category.Courses, model.NewCourse(courseName))
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func mapStoreError(err error, resource, id, op string) error {
	if errors.Is(err, database.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return &PersistenceError{Op: op, Err: err}
}
