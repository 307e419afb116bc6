package authors_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/apperr"
	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/authors"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/hateoas"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/query"
	authorstore "github.com/5w1tchy/course-library-api/internal/store/authors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

var comparators = map[string]query.Comparator[models.Author]{
	models.FieldID:           func(a, b models.Author) int { return strings.Compare(a.ID.String(), b.ID.String()) },
	models.FieldFirstName:    func(a, b models.Author) int { return strings.Compare(a.FirstName, b.FirstName) },
	models.FieldLastName:     func(a, b models.Author) int { return strings.Compare(a.LastName, b.LastName) },
	models.FieldDateOfBirth:  func(a, b models.Author) int { return a.DateOfBirth.Compare(b.DateOfBirth) },
	models.FieldMainCategory: func(a, b models.Author) int { return strings.Compare(a.MainCategory, b.MainCategory) },
}

type fakeStore struct {
	authors []models.Author
	filter  authorstore.Filter
	created []models.Author
	err     error
}

func (s *fakeStore) List(f authorstore.Filter) query.Source[models.Author] {
	s.filter = f
	var out []models.Author
	for _, a := range s.authors {
		if f.MainCategory == "" || a.MainCategory == f.MainCategory {
			out = append(out, a)
		}
	}
	return query.FromSlice(out, comparators)
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (models.Author, error) {
	for _, a := range s.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Author{}, sql.ErrNoRows
}

func (s *fakeStore) Create(_ context.Context, a *models.Author) error {
	if s.err != nil {
		return s.err
	}
	a.ID = uuid.New()
	for i := range a.Courses {
		a.Courses[i].ID = uuid.New()
		a.Courses[i].AuthorID = a.ID
	}
	s.created = append(s.created, *a)
	return nil
}

func seed() []models.Author {
	return []models.Author{
		{ID: uuid.New(), FirstName: "Berry", LastName: "Griffin Beak Eldritch", DateOfBirth: date(1650, time.July, 23), MainCategory: "Ships"},
		{ID: uuid.New(), FirstName: "Nancy", LastName: "Rye", DateOfBirth: date(1668, time.May, 21), MainCategory: "Rum"},
		{ID: uuid.New(), FirstName: "Eli", LastName: "Ivory Bones", DateOfBirth: date(1701, time.December, 16), MainCategory: "Singing"},
		{ID: uuid.New(), FirstName: "Arnold", LastName: "Product Swashbuckler", DateOfBirth: date(1702, time.March, 6), MainCategory: "Singing"},
	}
}

func newHandler(t *testing.T, store *fakeStore) *authors.Handler {
	t.Helper()
	reg, err := models.NewMappings()
	require.NoError(t, err)
	table, err := routes.NewTable(routes.All)
	require.NoError(t, err)
	linker := routes.Linker{Table: table, BaseURL: "https://api.test"}
	h := authors.NewHandler(store, reg, linker.For, handlers.Paging{DefaultSize: 10, MaxSize: 25}, zap.NewNop())
	h.Now = func() time.Time { return date(2024, time.January, 1) }
	return h
}

type envelope struct {
	Value []map[string]any `json:"value"`
	Links []hateoas.Link   `json:"links"`
}

func hrefs(links []hateoas.Link) map[string]string {
	out := map[string]string{}
	for _, l := range links {
		if l.Href != nil {
			out[l.Rel] = *l.Href
		}
	}
	return out
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestList_PagesAndLinks(t *testing.T) {
	h := newHandler(t, &fakeStore{authors: seed()})

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/authors?pageSize=2", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalCount":4,"pageSize":2,"currentPage":1,"totalPages":2}`, rr.Header().Get("X-Pagination"))

	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Value, 2)
	assert.Equal(t, "Arnold Product Swashbuckler", body.Value[0]["name"])
	assert.Equal(t, "Berry Griffin Beak Eldritch", body.Value[1]["name"])
	assert.Contains(t, body.Value[0], "links")

	got := hrefs(body.Links)
	assert.Equal(t, "https://api.test/api/authors?orderBy=name&pageNumber=1&pageSize=2", got["self"])
	assert.Equal(t, "https://api.test/api/authors?orderBy=name&pageNumber=2&pageSize=2", got["nextPage"])
	assert.NotContains(t, got, "previousPage")
}

func TestList_FilterSortAndFields(t *testing.T) {
	store := &fakeStore{authors: seed()}
	h := newHandler(t, store)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/authors?mainCategory=Singing&orderBy=age%20desc&fields=name,age", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Singing", store.filter.MainCategory)

	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Value, 2)
	// age desc sorts by date of birth ascending.
	assert.Equal(t, "Eli Ivory Bones", body.Value[0]["name"])
	assert.ElementsMatch(t, []string{"name", "age", "links"}, keys(body.Value[0]))
	assert.Contains(t, hrefs(body.Links)["self"], "mainCategory=Singing")
}

func TestList_RejectsBadParameters(t *testing.T) {
	h := newHandler(t, &fakeStore{authors: seed()})

	cases := map[string]string{
		"unknown sort field":  "/api/authors?orderBy=firstName",
		"unknown shape field": "/api/authors?fields=name,shoeSize",
		"zero page":           "/api/authors?pageNumber=0",
		"non numeric size":    "/api/authors?pageSize=many",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.List(rr, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestList_ClampsPageSize(t *testing.T) {
	h := newHandler(t, &fakeStore{authors: seed()})

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/authors?pageSize=500", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("X-Pagination"), `"pageSize":25`)
}

func getAuthor(h *authors.Handler, id, accept, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/authors/"+id+rawQuery, nil)
	req.SetPathValue("authorId", id)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rr := httptest.NewRecorder()
	h.Get(rr, req)
	return rr
}

func TestGet_Negotiation(t *testing.T) {
	authorsSeed := seed()
	h := newHandler(t, &fakeStore{authors: authorsSeed})
	id := authorsSeed[0].ID.String()

	cases := []struct {
		accept      string
		contentType string
		full        bool
		links       bool
	}{
		{"", authors.MediaJSON, false, false},
		{"*/*", authors.MediaJSON, false, false},
		{authors.MediaFriendly, authors.MediaFriendly, false, false},
		{authors.MediaHateoas, authors.MediaHateoas, false, true},
		{authors.MediaFriendlyHateoas, authors.MediaFriendlyHateoas, false, true},
		{authors.MediaFull, authors.MediaFull, true, false},
		{authors.MediaFullHateoas, authors.MediaFullHateoas, true, true},
		{"text/xml, " + authors.MediaFull, authors.MediaFull, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.accept, func(t *testing.T) {
			rr := getAuthor(h, id, tc.accept, "")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.contentType, rr.Header().Get("Content-Type"))

			var rec map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
			assert.Equal(t, tc.full, rec["firstName"] != nil)
			assert.Equal(t, !tc.full, rec["age"] != nil)
			assert.Equal(t, tc.links, rec["links"] != nil)
		})
	}
}

func TestGet_NotAcceptable(t *testing.T) {
	authorsSeed := seed()
	h := newHandler(t, &fakeStore{authors: authorsSeed})

	rr := getAuthor(h, authorsSeed[0].ID.String(), "text/xml", "")
	assert.Equal(t, http.StatusNotAcceptable, rr.Code)
}

func TestGet_FieldsCheckedAgainstChosenRepresentation(t *testing.T) {
	authorsSeed := seed()
	h := newHandler(t, &fakeStore{authors: authorsSeed})
	id := authorsSeed[0].ID.String()

	rr := getAuthor(h, id, authors.MediaFullHateoas, "?fields=firstName")
	require.Equal(t, http.StatusOK, rr.Code)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.ElementsMatch(t, []string{"firstName", "links"}, keys(rec))

	var links []hateoas.Link
	raw, _ := json.Marshal(rec["links"])
	require.NoError(t, json.Unmarshal(raw, &links))
	assert.Equal(t, "https://api.test/api/authors/"+id+"?fields=firstName", hrefs(links)["self"])

	rr = getAuthor(h, id, authors.MediaFriendly, "?fields=firstName")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Not all requested data shaping fields exist on the resource: firstName")
}

func TestGet_NotFound(t *testing.T) {
	h := newHandler(t, &fakeStore{authors: seed()})

	assert.Equal(t, http.StatusNotFound, getAuthor(h, uuid.NewString(), "", "").Code)
	assert.Equal(t, http.StatusNotFound, getAuthor(h, "not-a-uuid", "", "").Code)
}

func postAuthor(h *authors.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/authors", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	return rr
}

const validAuthor = `{"firstName":"Anne","lastName":"Bonny","dateOfBirth":"1700-03-08T00:00:00Z","mainCategory":"Rum",
	"courses":[{"title":"Sailing","description":"Knots and sails"},{"title":"Rum","description":"Tasting"}]}`

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(t, store)

	rr := postAuthor(h, "application/json; charset=utf-8", validAuthor)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Len(t, created.Courses, 2)
	assert.Equal(t, "https://api.test/api/authors/"+created.ID.String(), rr.Header().Get("Location"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "Anne Bonny", rec["name"])
	assert.Equal(t, created.ID.String(), rec["id"])
	assert.NotNil(t, rec["links"])
}

func TestCreate_WithDateOfDeath(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(t, store)

	body := `{"firstName":"Anne","lastName":"Bonny","dateOfBirth":"1700-03-08T00:00:00Z",
		"dateOfDeath":"1782-04-22T00:00:00Z","mainCategory":"Rum"}`
	rr := postAuthor(h, authors.MediaCreateWithDeathDate, body)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, store.created[0].DateOfDeath)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.EqualValues(t, 82, rec["age"])
}

func TestCreate_UnsupportedMediaType(t *testing.T) {
	store := &fakeStore{}
	rr := postAuthor(newHandler(t, store), "text/plain", validAuthor)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.Empty(t, store.created)
}

func TestCreate_Validation(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(t, store)

	body := `{"lastName":"Bonny","dateOfBirth":"1700-03-08T00:00:00Z","mainCategory":"Rum",
		"courses":[{"title":"","description":"x"},{"title":"Same","description":"Same"}]}`
	rr := postAuthor(h, authors.MediaCreate, body)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var p apperr.Problem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, apperr.ValidationType, p.Type)
	assert.Equal(t, "/api/authors", p.Instance)
	assert.Contains(t, p.Errors, "firstName")
	assert.Contains(t, p.Errors, "courses[0].title")
	assert.Contains(t, p.Errors, "courses[1].course")
	assert.Empty(t, store.created)
}

func TestCreate_BadBody(t *testing.T) {
	rr := postAuthor(newHandler(t, &fakeStore{}), "application/json", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreate_StoreFailure(t *testing.T) {
	rr := postAuthor(newHandler(t, &fakeStore{err: errors.New("connection reset")}), "application/json", validAuthor)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestOptions(t *testing.T) {
	rr := httptest.NewRecorder()
	newHandler(t, &fakeStore{}).Options(rr, httptest.NewRequest(http.MethodOptions, "/api/authors", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET,HEAD,POST,OPTIONS", rr.Header().Get("Allow"))
}
