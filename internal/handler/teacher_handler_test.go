package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	"github.com/noah-isme/school-mgmt-api/internal/service"
)

type teacherRepoMock struct {
	teachers []models.Teacher
	found    *models.Teacher
	exists   bool
	deleted  bool
}

func (m *teacherRepoMock) List(ctx context.Context) ([]models.Teacher, error) {
	return m.teachers, nil
}

func (m *teacherRepoMock) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if m.found == nil {
		return nil, sql.ErrNoRows
	}
	return m.found, nil
}

func (m *teacherRepoMock) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.exists, nil
}

func (m *teacherRepoMock) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = 1
	return nil
}

func (m *teacherRepoMock) Update(ctx context.Context, teacher *models.Teacher) error {
	return nil
}

func (m *teacherRepoMock) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleted, nil
}

func newTeacherRouter(repo *teacherRepoMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTeacherHandler(service.NewTeacherService(repo, nil, nil))
	r.GET("/api/teachers", h.List)
	r.GET("/api/teachers/:id", h.Get)
	r.POST("/api/teachers", h.Create)
	r.PUT("/api/teachers/:id", h.Update)
	r.DELETE("/api/teachers/:id", h.Delete)
	return r
}

func TestTeacherHandlerList(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{teachers: []models.Teacher{{ID: 1, Name: "Alice"}}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/teachers", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.Teacher `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Alice", body.Data[0].Name)
}

func TestTeacherHandlerGetBadID(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/teachers/abc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestTeacherHandlerGetNotFound(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/teachers/42", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Teacher not found")
}

func TestTeacherHandlerCreate(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{})

	payload := `{"name":"Alice","subject":"Math","qualification":"MSc","experience":"5 years","contact":"555-0100"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/teachers", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
}

func TestTeacherHandlerCreateDuplicateEmail(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{exists: true})

	payload := `{"name":"Alice","subject":"Math","qualification":"MSc","experience":"5 years","contact":"555-0100","email":"alice@school.test"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/teachers", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestTeacherHandlerCreateMalformedBody(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/teachers", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeacherHandlerDelete(t *testing.T) {
	r := newTeacherRouter(&teacherRepoMock{deleted: true})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/teachers/1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Teacher deleted successfully")
}
