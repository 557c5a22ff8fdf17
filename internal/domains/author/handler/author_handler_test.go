package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/web"
)

// ═══════════════════════════════════════════════════════════════════════════
// IN-MEMORY STORE
// ═══════════════════════════════════════════════════════════════════════════

type memoryStore struct {
	mu      sync.Mutex
	authors map[uuid.UUID]model.Author
	books   []bookModel.Book
}

func newMemoryStore() *memoryStore {
	return &memoryStore{authors: make(map[uuid.UUID]model.Author)}
}

func (s *memoryStore) addAuthor(first, family string) model.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.Author{ID: uuid.New(), FirstName: first, FamilyName: family, CreatedAt: time.Now()}
	s.authors[a.ID] = a
	return a
}

func (s *memoryStore) addBook(authorID uuid.UUID, title, summary string) bookModel.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := bookModel.Book{ID: uuid.New(), Title: title, Summary: summary, AuthorID: authorID}
	s.books = append(s.books, b)
	return b
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.authors)
}

func (s *memoryStore) get(id uuid.UUID) (model.Author, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.authors[id]
	return a, ok
}

type memoryAuthorRepo struct{ s *memoryStore }

func (r memoryAuthorRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.authors[created.ID] = created
	return &created, nil
}

func (r memoryAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (r memoryAuthorRepo) List(_ context.Context) ([]model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	authors := make([]model.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].FamilyName != authors[j].FamilyName {
			return authors[i].FamilyName < authors[j].FamilyName
		}
		return authors[i].FirstName < authors[j].FirstName
	})
	return authors, nil
}

func (r memoryAuthorRepo) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.authors[a.ID]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	updated := *a
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.s.authors[a.ID] = updated
	return &updated, nil
}

func (r memoryAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	for _, b := range r.s.books {
		if b.AuthorID == id {
			return model.ErrAuthorHasBooks
		}
	}
	delete(r.s.authors, id)
	return nil
}

type memoryBookRepo struct{ s *memoryStore }

func (r memoryBookRepo) FindByAuthor(_ context.Context, authorID uuid.UUID) ([]bookModel.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	books := []bookModel.Book{}
	for _, b := range r.s.books {
		if b.AuthorID == authorID {
			books = append(books, b)
		}
	}
	return books, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// HELPERS
// ═══════════════════════════════════════════════════════════════════════════

func setupRouter(t *testing.T) (*gin.Engine, *memoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	store := newMemoryStore()
	svc := service.NewAuthorService(memoryAuthorRepo{store}, memoryBookRepo{store})

	router := gin.New()
	router.Use(middleware.ErrorPages())
	router.SetHTMLTemplate(tmpl)
	NewAuthorHandler(svc).RegisterRoutes(router)

	return router, store
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func authorForm(first, family, born, died string) url.Values {
	return url.Values{
		"first_name":    {first},
		"family_name":   {family},
		"date_of_birth": {born},
		"date_of_death": {died},
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// LIST & DETAIL
// ═══════════════════════════════════════════════════════════════════════════

func TestList_OrderedByFamilyName(t *testing.T) {
	router, store := setupRouter(t)
	store.addAuthor("Charles", "Dickens")
	store.addAuthor("Jane", "Austen")
	store.addAuthor("Charlotte", "Bronte")

	w := get(router, "/authors")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	austen := strings.Index(body, "Austen, Jane")
	bronte := strings.Index(body, "Bronte, Charlotte")
	dickens := strings.Index(body, "Dickens, Charles")
	require.True(t, austen >= 0 && bronte >= 0 && dickens >= 0, body)
	assert.Less(t, austen, bronte)
	assert.Less(t, bronte, dickens)
}

func TestList_Empty(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/authors")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "There are no authors.")
}

func TestDetail_ShowsOnlyOwnBooks(t *testing.T) {
	router, store := setupRouter(t)
	austen := store.addAuthor("Jane", "Austen")
	dickens := store.addAuthor("Charles", "Dickens")
	store.addBook(austen.ID, "Emma", "A young matchmaker")
	store.addBook(austen.ID, "Persuasion", "A second chance")
	store.addBook(dickens.ID, "Oliver Twist", "An orphan in London")

	w := get(router, austen.URL())

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Author: Austen, Jane")
	assert.Contains(t, body, "Emma")
	assert.Contains(t, body, "Persuasion")
	assert.NotContains(t, body, "Oliver Twist")
}

func TestDetail_NoBooks(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("John", "Doe")

	w := get(router, a.URL())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This author has no books.")
}

func TestDetail_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/authors/" + uuid.NewString(), "/authors/not-a-uuid"} {
		w := get(router, path)

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Author not found", path)
		assert.NotContains(t, w.Body.String(), "Author:", path)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// CREATE
// ═══════════════════════════════════════════════════════════════════════════

func TestCreateForm_Empty(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/authors/create")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Create Author")
	assert.NotContains(t, w.Body.String(), `class="errors"`)
}

func TestCreate_MissingFirstNameRerendersForm(t *testing.T) {
	router, store := setupRouter(t)
	form := authorForm("", "Doe", "", "")

	first := postForm(router, "/authors/create", form)
	second := postForm(router, "/authors/create", form)

	for _, w := range []*httptest.ResponseRecorder{first, second} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "First name must be specified.")
		assert.Contains(t, w.Body.String(), `value="Doe"`)
	}
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 0, store.count())
}

func TestCreate_ReportsEveryInvalidField(t *testing.T) {
	router, store := setupRouter(t)

	w := postForm(router, "/authors/create", authorForm("John!", "Doe", "someday", "1900-01-01"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "First name has non-alphanumeric characters.")
	assert.Contains(t, body, "Invalid date of birth")
	assert.NotContains(t, body, "Invalid date of death")
	assert.Equal(t, 0, store.count())
}

func TestCreate_RedirectsToDetail(t *testing.T) {
	router, store := setupRouter(t)

	w := postForm(router, "/authors/create", authorForm("  John ", "Doe", "1950-03-04", ""))

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/authors/"), location)
	require.Equal(t, 1, store.count())

	id, err := uuid.Parse(strings.TrimPrefix(location, "/authors/"))
	require.NoError(t, err)
	stored, ok := store.get(id)
	require.True(t, ok)
	assert.Equal(t, "John", stored.FirstName)
	assert.Equal(t, "1950-03-04", stored.DateOfBirthInput())

	detail := get(router, location)
	assert.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Doe, John")
}

// ═══════════════════════════════════════════════════════════════════════════
// UPDATE
// ═══════════════════════════════════════════════════════════════════════════

func TestUpdateForm_Prefilled(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("Jane", "Austen")

	w := get(router, a.URL()+"/update")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Jane"`)
	assert.Contains(t, w.Body.String(), `value="Austen"`)
}

func TestUpdateForm_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/authors/"+uuid.NewString()+"/update")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate_KeepsID(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("Jon", "Doe")

	w := postForm(router, a.URL()+"/update", authorForm("John", "Doe", "1950-03-04", "2020-01-01"))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, a.URL(), w.Header().Get("Location"))
	assert.Equal(t, 1, store.count())

	stored, ok := store.get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "John", stored.FirstName)
	assert.Equal(t, "2020-01-01", stored.DateOfDeathInput())
}

func TestUpdate_InvalidShowsErrors(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("Jane", "Austen")

	w := postForm(router, a.URL()+"/update", authorForm("Jane", "", "", ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Family name must be specified.")

	stored, _ := store.get(a.ID)
	assert.Equal(t, "Austen", stored.FamilyName)
}

func TestUpdate_NotFound(t *testing.T) {
	router, store := setupRouter(t)

	w := postForm(router, "/authors/"+uuid.NewString()+"/update", authorForm("John", "Doe", "", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, store.count())
}

// ═══════════════════════════════════════════════════════════════════════════
// DELETE
// ═══════════════════════════════════════════════════════════════════════════

func TestDeleteForm_MissingAuthorRedirects(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/authors/" + uuid.NewString() + "/delete", "/authors/bogus/delete"} {
		w := get(router, path)

		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/authors", w.Header().Get("Location"), path)
	}
}

func TestDeleteForm_Confirmation(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("John", "Doe")

	w := get(router, a.URL()+"/delete")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Do you really want to delete this Author?")
}

func TestDeleteForm_ListsBlockingBooks(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("Jane", "Austen")
	store.addBook(a.ID, "Emma", "A young matchmaker")

	w := get(router, a.URL()+"/delete")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Delete the following books before attempting to delete this author.")
	assert.Contains(t, body, "Emma")
	assert.NotContains(t, body, "<form")
}

func TestDelete_BlockedWhenBooksExist(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("Jane", "Austen")
	store.addBook(a.ID, "Emma", "A young matchmaker")

	w := postForm(router, a.URL()+"/delete", url.Values{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete the following books")
	_, ok := store.get(a.ID)
	assert.True(t, ok)
	assert.Len(t, store.books, 1)
}

func TestDelete_RemovesAuthorWithoutBooks(t *testing.T) {
	router, store := setupRouter(t)
	a := store.addAuthor("John", "Doe")

	w := postForm(router, a.URL()+"/delete", url.Values{})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/authors", w.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, get(router, a.URL()).Code)
}

func TestDelete_AlreadyGoneRedirects(t *testing.T) {
	router, _ := setupRouter(t)

	w := postForm(router, "/authors/"+uuid.NewString()+"/delete", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/authors", w.Header().Get("Location"))
}

// ═══════════════════════════════════════════════════════════════════════════
// END TO END
// ═══════════════════════════════════════════════════════════════════════════

func TestAuthorLifecycle(t *testing.T) {
	router, store := setupRouter(t)

	created := postForm(router, "/authors/create", authorForm("Jane", "Austen", "1775-12-16", "1817-07-18"))
	require.Equal(t, http.StatusFound, created.Code)
	location := created.Header().Get("Location")

	detail := get(router, location)
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Austen, Jane")
	assert.Contains(t, detail.Body.String(), "Dec 16, 1775 - Jul 18, 1817")

	list := get(router, "/authors")
	assert.Contains(t, list.Body.String(), "Austen, Jane")

	deleted := postForm(router, location+"/delete", url.Values{})
	require.Equal(t, http.StatusFound, deleted.Code)
	assert.Equal(t, "/authors", deleted.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, get(router, location).Code)
	assert.Equal(t, 0, store.count())
}
