package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sahilchouksey/university-catalog/database"
	"github.com/sahilchouksey/university-catalog/model"
	"github.com/sahilchouksey/university-catalog/utils"
)

// fakeAssetStore records uploads and deletes so tests can assert on the
// reconciliation ordering without a real object store.
type fakeAssetStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
	seq       int
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{objects: map[string][]byte{}}
}

func (f *fakeAssetStore) Upload(_ context.Context, data []byte, folder, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.seq++
	url := fmt.Sprintf("https://cdn.test/%s/%d_%s", folder, f.seq, filename)
	f.objects[url] = data
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, url)
	f.deletes = append(f.deletes, url)
	return nil
}

func (f *fakeAssetStore) has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[url]
	return ok
}

// failingSaveStore makes every document save fail so rollback paths can be
// exercised.
type failingSaveStore struct {
	*database.MemoryStore
}

func (s *failingSaveStore) SaveUniversity(u *model.University) error {
	return errors.New("write rejected")
}

func newTestCatalog() (*CatalogService, *database.MemoryStore, *fakeAssetStore) {
	store := database.NewMemoryStore()
	assets := newFakeAssetStore()
	reconciler := NewAssetReconciler(assets, store, utils.NewLoggerTo(io.Discard))
	return NewCatalogService(store, reconciler, nil), store, assets
}

func validCreateInput() CreateUniversityInput {
	year := 1995
	return CreateUniversityInput{
		Name:            "Engineering College",
		EstablishedYear: &year,
		ApprovedBy:      "UGC",
		Type:            "Private",
	}
}

func pdfFile(name string) *FileUpload {
	return &FileUpload{Filename: name, Content: []byte("%PDF-1.4 fake")}
}

func TestCreateUniversityValidation(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()
	year := 1995

	cases := []struct {
		name  string
		input CreateUniversityInput
	}{
		{"short name", CreateUniversityInput{Name: "X", EstablishedYear: &year, ApprovedBy: "UGC", Type: "Private"}},
		{"missing year", CreateUniversityInput{Name: "Engineering College", ApprovedBy: "UGC", Type: "Private"}},
		{"missing approved_by", CreateUniversityInput{Name: "Engineering College", EstablishedYear: &year, Type: "Private"}},
		{"missing type", CreateUniversityInput{Name: "Engineering College", EstablishedYear: &year, ApprovedBy: "UGC"}},
	}

	for _, tc := range cases {
		if _, err := svc.CreateUniversity(ctx, tc.input); !IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestCreateUniversityNormalizesSeeds(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.Categories = []CategorySeed{
		{Name: "Engineering", Courses: []CourseSeed{{Name: "Computer Science"}, {Name: "Mechanical"}}},
		{Name: "Management", Courses: []CourseSeed{{Name: "MBA"}}},
	}

	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(created.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(created.Categories))
	}

	seenCat := map[string]bool{}
	for _, cat := range created.Categories {
		if cat.ID == "" || seenCat[cat.ID] {
			t.Fatalf("category id %q not unique among siblings", cat.ID)
		}
		seenCat[cat.ID] = true

		if cat.PDF != nil || cat.ShowPDF {
			t.Errorf("seeded category %s should start with null pdf and show_pdf off", cat.Name)
		}

		seenCourse := map[string]bool{}
		for _, course := range cat.Courses {
			if course.ID == "" || seenCourse[course.ID] {
				t.Fatalf("course id %q not unique among siblings", course.ID)
			}
			seenCourse[course.ID] = true
			if course.PDF != nil || course.ShowPDF {
				t.Errorf("seeded course %s should start with null pdf and show_pdf off", course.Name)
			}
		}
	}
}

func TestCreateUniversityRejectsDuplicateSeedCourses(t *testing.T) {
	svc, _, _ := newTestCatalog()

	in := validCreateInput()
	in.Categories = []CategorySeed{
		{Name: "Engineering", Courses: []CourseSeed{{Name: "Algorithms"}, {Name: "ALGORITHMS"}}},
	}

	if _, err := svc.CreateUniversity(context.Background(), in); !IsValidation(err) {
		t.Fatalf("expected ValidationError for duplicate seed courses, got %v", err)
	}
}

func TestCreateUniversityUploadsBeforePersist(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.Image = &FileUpload{Filename: "campus.png", Content: []byte("png")}
	in.PDF = pdfFile("prospectus.pdf")

	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Image == nil || created.PDF == nil {
		t.Fatal("expected both asset slots to be set")
	}
	if !assets.has(*created.Image) || !assets.has(*created.PDF) {
		t.Fatal("persisted references must point at stored objects")
	}

	got, err := store.GetUniversity(created.ID)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if *got.PDF != *created.PDF {
		t.Fatalf("stored pdf %q != returned %q", *got.PDF, *created.PDF)
	}
}

func TestCreateUniversityUploadFailureAborts(t *testing.T) {
	svc, store, assets := newTestCatalog()
	assets.uploadErr = errors.New("spaces down")

	in := validCreateInput()
	in.PDF = pdfFile("prospectus.pdf")

	_, err := svc.CreateUniversity(context.Background(), in)
	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}

	if _, total, _ := store.ListUniversities(0, 10, ""); total != 0 {
		t.Fatalf("no document should be persisted after upload failure, found %d", total)
	}
}

func TestGetUniversityNotFound(t *testing.T) {
	svc, _, _ := newTestCatalog()

	_, err := svc.GetUniversity(context.Background(), "missing-id")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListUniversitiesPagination(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		in := validCreateInput()
		in.Name = fmt.Sprintf("University %02d", i)
		if _, err := svc.CreateUniversity(ctx, in); err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
	}

	page, err := svc.ListUniversities(ctx, ListParams{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 5 {
		t.Errorf("expected 5 items on page 2, got %d", len(page.Items))
	}
	if page.Total != 12 || page.Page != 2 || page.Limit != 5 || page.Pages != 3 {
		t.Errorf("unexpected pagination: %+v", page)
	}
	if page.Items[0].Name != "University 05" {
		t.Errorf("pagination must be stable over insertion order, got %q first", page.Items[0].Name)
	}

	if _, err := svc.ListUniversities(ctx, ListParams{Page: 1, Limit: 0}); !IsValidation(err) {
		t.Errorf("limit=0 must fail validation, got %v", err)
	}
	if _, err := svc.ListUniversities(ctx, ListParams{Page: -1, Limit: 10}); !IsValidation(err) {
		t.Errorf("negative page must fail validation, got %v", err)
	}

	filtered, err := svc.ListUniversities(ctx, ListParams{Page: 1, Limit: 10, Search: "university 0"})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if filtered.Total != 6 {
		t.Errorf("case-insensitive substring filter expected 6 matches, got %d", filtered.Total)
	}
}

func TestUpdateUniversityPartialMerge(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.Categories = []CategorySeed{{Name: "Engineering"}}
	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	approvedBy := "AICTE"
	updated, err := svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{ApprovedBy: &approvedBy})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.ApprovedBy != "AICTE" {
		t.Errorf("approved_by not updated: %q", updated.ApprovedBy)
	}
	if updated.Name != created.Name {
		t.Errorf("name must be untouched, got %q", updated.Name)
	}
	if updated.EstablishedYear != created.EstablishedYear {
		t.Errorf("established_year must be untouched, got %d", updated.EstablishedYear)
	}
	if len(updated.Categories) != 1 || updated.Categories[0].Name != "Engineering" {
		t.Errorf("categories must be untouched, got %+v", updated.Categories)
	}
}

func TestUpdateUniversityParsesEstablishedYear(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	year := "2001"
	updated, err := svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{EstablishedYear: &year})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EstablishedYear != 2001 {
		t.Errorf("expected year 2001, got %d", updated.EstablishedYear)
	}

	bad := "next year"
	if _, err := svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{EstablishedYear: &bad}); !IsValidation(err) {
		t.Errorf("non-integer year must fail validation, got %v", err)
	}
}

func TestUpdateUniversityReplacesPDF(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.PDF = pdfFile("v1.pdf")
	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldURL := *created.PDF

	updated, err := svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{PDF: pdfFile("v2.pdf")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if *updated.PDF == oldURL {
		t.Fatal("pdf reference must change on replacement")
	}

	got, _ := store.GetUniversity(created.ID)
	if *got.PDF != *updated.PDF {
		t.Errorf("stored reference %q != returned %q", *got.PDF, *updated.PDF)
	}
	if assets.has(oldURL) {
		t.Error("old object must be reclaimed after commit")
	}
	if !assets.has(*updated.PDF) {
		t.Error("new object must remain stored")
	}
}

func TestUpdateUniversityUploadFailureKeepsOldReference(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.PDF = pdfFile("v1.pdf")
	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldURL := *created.PDF

	assets.uploadErr = errors.New("spaces down")
	_, err = svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{PDF: pdfFile("v2.pdf")})
	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}

	got, _ := store.GetUniversity(created.ID)
	if got.PDF == nil || *got.PDF != oldURL {
		t.Errorf("stored reference must be untouched after failed upload, got %v", got.PDF)
	}
	if !assets.has(oldURL) {
		t.Error("old object must not be deleted after failed upload")
	}
}

func TestUpdateUniversitySaveFailureReleasesNewUpload(t *testing.T) {
	memory := database.NewMemoryStore()
	assets := newFakeAssetStore()
	reconciler := NewAssetReconciler(assets, memory, utils.NewLoggerTo(io.Discard))

	seedSvc := NewCatalogService(memory, reconciler, nil)
	in := validCreateInput()
	in.PDF = pdfFile("v1.pdf")
	created, err := seedSvc.CreateUniversity(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldURL := *created.PDF

	svc := NewCatalogService(&failingSaveStore{memory}, reconciler, nil)
	_, err = svc.UpdateUniversity(context.Background(), created.ID, UpdateUniversityInput{PDF: pdfFile("v2.pdf")})
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	if !assets.has(oldURL) {
		t.Error("old object must survive a failed save")
	}
	for url := range assets.objects {
		if url != oldURL {
			t.Errorf("fresh upload %s must be released after failed save", url)
		}
	}
}

func TestUpdateUniversityRemovePDF(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.PDF = pdfFile("v1.pdf")
	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldURL := *created.PDF

	updated, err := svc.UpdateUniversity(ctx, created.ID, UpdateUniversityInput{RemovePDF: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PDF != nil {
		t.Fatal("pdf slot must be cleared")
	}

	got, _ := store.GetUniversity(created.ID)
	if got.PDF != nil {
		t.Error("cleared slot must persist as null")
	}
	if assets.has(oldURL) {
		t.Error("cleared object must be reclaimed")
	}
}

func TestDeleteUniversityReclaimsEverySubtreeAsset(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	in := validCreateInput()
	in.Image = &FileUpload{Filename: "campus.png", Content: []byte("png")}
	in.PDF = pdfFile("uni.pdf")
	created, err := svc.CreateUniversity(ctx, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, name := range []string{"Engineering", "Management"} {
		if _, err := svc.AddCategory(ctx, created.ID, name); err != nil {
			t.Fatalf("add category failed: %v", err)
		}
	}
	current, _ := store.GetUniversity(created.ID)
	for i := range current.Categories {
		_, err := svc.UpdateCategory(ctx, created.ID, current.Categories[i].ID, UpdateCategoryInput{
			PDF: pdfFile("cat.pdf"),
		})
		if err != nil {
			t.Fatalf("category pdf upload failed: %v", err)
		}
	}

	courseHomes := []int{0, 0, 1} // two courses in the first category, one in the second
	courseNames := []string{"Computer Science", "Mechanical", "MBA"}
	for i, home := range courseHomes {
		if _, err := svc.AddCourse(ctx, created.ID, current.Categories[home].ID, courseNames[i], pdfFile("course.pdf")); err != nil {
			t.Fatalf("add course failed: %v", err)
		}
	}

	assets.mu.Lock()
	assets.deletes = nil
	assets.mu.Unlock()

	if err := svc.DeleteUniversity(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// 1 image + 1 university pdf + 2 category pdfs + 3 course pdfs
	if len(assets.deletes) != 7 {
		t.Errorf("expected exactly 7 delete calls, got %d: %v", len(assets.deletes), assets.deletes)
	}
	if len(assets.objects) != 0 {
		t.Errorf("all objects must be reclaimed, %d remain", len(assets.objects))
	}
	if _, err := store.GetUniversity(created.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("document must be gone, got %v", err)
	}
}

func TestUpdateCategoryUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	name := "Engineering"
	_, err = svc.UpdateCategory(ctx, created.ID, "no-such-category", UpdateCategoryInput{Name: &name})
	if !IsNotFound(err) {
		t.Fatalf("updates must never create categories; expected NotFoundError, got %v", err)
	}
}

func TestDeleteCategoryReclaimsItsSubtree(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddCategory(ctx, created.ID, "Engineering"); err != nil {
		t.Fatalf("add category failed: %v", err)
	}
	current, _ := store.GetUniversity(created.ID)
	catID := current.Categories[0].ID

	if _, err := svc.UpdateCategory(ctx, created.ID, catID, UpdateCategoryInput{PDF: pdfFile("cat.pdf")}); err != nil {
		t.Fatalf("category pdf upload failed: %v", err)
	}
	if _, err := svc.AddCourse(ctx, created.ID, catID, "Computer Science", pdfFile("course.pdf")); err != nil {
		t.Fatalf("add course failed: %v", err)
	}

	assets.mu.Lock()
	assets.deletes = nil
	assets.mu.Unlock()

	updated, err := svc.DeleteCategory(ctx, created.ID, catID)
	if err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if len(updated.Categories) != 0 {
		t.Error("category must be removed from the sequence")
	}
	if len(assets.deletes) != 2 {
		t.Errorf("expected category pdf + course pdf reclaimed, got %d deletes", len(assets.deletes))
	}
}

func TestAddCourseRejectsCaseInsensitiveDuplicates(t *testing.T) {
	svc, store, _ := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddCategory(ctx, created.ID, "Engineering"); err != nil {
		t.Fatalf("add category failed: %v", err)
	}
	current, _ := store.GetUniversity(created.ID)
	catID := current.Categories[0].ID

	if _, err := svc.AddCourse(ctx, created.ID, catID, "Algorithms", nil); err != nil {
		t.Fatalf("first add course failed: %v", err)
	}
	if _, err := svc.AddCourse(ctx, created.ID, catID, "algorithms", nil); !IsValidation(err) {
		t.Fatalf("duplicate course name must fail validation, got %v", err)
	}

	current, _ = store.GetUniversity(created.ID)
	if got := len(current.Categories[0].Courses); got != 1 {
		t.Errorf("course list length must be unchanged after rejected add, got %d", got)
	}
}

func TestUpdateCourseRenameConflicts(t *testing.T) {
	svc, store, _ := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddCategory(ctx, created.ID, "Engineering"); err != nil {
		t.Fatalf("add category failed: %v", err)
	}
	current, _ := store.GetUniversity(created.ID)
	catID := current.Categories[0].ID

	if _, err := svc.AddCourse(ctx, created.ID, catID, "Algorithms", nil); err != nil {
		t.Fatalf("add course failed: %v", err)
	}
	if _, err := svc.AddCourse(ctx, created.ID, catID, "Databases", nil); err != nil {
		t.Fatalf("add course failed: %v", err)
	}
	current, _ = store.GetUniversity(created.ID)
	dbCourseID := current.Categories[0].Courses[1].ID

	conflict := "ALGORITHMS"
	if _, err := svc.UpdateCourse(ctx, created.ID, catID, dbCourseID, UpdateCourseInput{Name: &conflict}); !IsValidation(err) {
		t.Errorf("rename onto a sibling name must fail validation, got %v", err)
	}

	renamed := "Distributed Databases"
	updated, err := svc.UpdateCourse(ctx, created.ID, catID, dbCourseID, UpdateCourseInput{Name: &renamed})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.Categories[0].Courses[1].Name != renamed {
		t.Errorf("rename not applied: %q", updated.Categories[0].Courses[1].Name)
	}
}

func TestDeleteCourseReclaimsOnlyItsPDF(t *testing.T) {
	svc, store, assets := newTestCatalog()
	ctx := context.Background()

	created, err := svc.CreateUniversity(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddCategory(ctx, created.ID, "Engineering"); err != nil {
		t.Fatalf("add category failed: %v", err)
	}
	current, _ := store.GetUniversity(created.ID)
	catID := current.Categories[0].ID

	if _, err := svc.UpdateCategory(ctx, created.ID, catID, UpdateCategoryInput{PDF: pdfFile("cat.pdf")}); err != nil {
		t.Fatalf("category pdf upload failed: %v", err)
	}
	if _, err := svc.AddCourse(ctx, created.ID, catID, "Algorithms", pdfFile("course.pdf")); err != nil {
		t.Fatalf("add course failed: %v", err)
	}
	current, _ = store.GetUniversity(created.ID)
	courseID := current.Categories[0].Courses[0].ID

	assets.mu.Lock()
	assets.deletes = nil
	assets.mu.Unlock()

	if _, err := svc.DeleteCourse(ctx, created.ID, catID, courseID); err != nil {
		t.Fatalf("delete course failed: %v", err)
	}
	if len(assets.deletes) != 1 {
		t.Errorf("only the course pdf must be reclaimed, got %d deletes", len(assets.deletes))
	}

	current, _ = store.GetUniversity(created.ID)
	if current.Categories[0].PDF == nil {
		t.Error("category pdf must survive a course deletion")
	}
}

func TestSearchDeduplicatesAcrossLevels(t *testing.T) {
	svc, _, _ := newTestCatalog()
	ctx := context.Background()

	direct := validCreateInput()
	direct.Name = "Engineering College"
	if _, err := svc.CreateUniversity(ctx, direct); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	nested := validCreateInput()
	nested.Name = "Woodland Institute"
	nested.Categories = []CategorySeed{{Name: "Engineering Mgmt"}}
	if _, err := svc.CreateUniversity(ctx, nested); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	both := validCreateInput()
	both.Name = "Engineering Academy"
	both.Categories = []CategorySeed{{Name: "Engineering", Courses: []CourseSeed{{Name: "Engineering Physics"}}}}
	if _, err := svc.CreateUniversity(ctx, both); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	results, err := svc.Search(ctx, "eng")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 deduplicated results, got %d", len(results))
	}

	seen := map[string]int{}
	for _, u := range results {
		seen[u.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("university %s appears %d times", id, n)
		}
	}

	// Direct name matches come first.
	if results[len(results)-1].Name != "Woodland Institute" {
		t.Errorf("nested-only match must sort after direct matches, got order %v", names(results))
	}

	if _, err := svc.Search(ctx, "e"); !IsValidation(err) {
		t.Errorf("single-character query must fail validation, got %v", err)
	}
}

func names(us []model.University) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Name
	}
	return out
}
