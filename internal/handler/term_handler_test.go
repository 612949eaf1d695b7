package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/terms-api/internal/serializer"
	"github.com/noah-isme/terms-api/internal/service"
	appErrors "github.com/noah-isme/terms-api/pkg/errors"
)

type termServiceMock struct {
	list    *serializer.TermCollection
	term    *serializer.TermResource
	current *service.CurrentTerm
	err     error

	captured service.TermCodeRequest
}

func (m *termServiceMock) List(ctx context.Context) (*serializer.TermCollection, error) {
	return m.list, m.err
}

func (m *termServiceMock) Get(ctx context.Context, req service.TermCodeRequest) (*serializer.TermResource, error) {
	m.captured = req
	return m.term, m.err
}

func (m *termServiceMock) Current(ctx context.Context) (*service.CurrentTerm, error) {
	return m.current, m.err
}

func newTermRouter(svc termService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewTermHandler(svc).Register(r.Group("/api/v1"))
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestTermHandlerList(t *testing.T) {
	svc := &termServiceMock{list: &serializer.TermCollection{
		Data:  []serializer.TermResource{{ID: "202101", Type: "term"}},
		Links: serializer.Links{Self: "http://localhost/api/v1/terms"},
	}}

	w := doGet(newTermRouter(svc), "/api/v1/terms")

	require.Equal(t, http.StatusOK, w.Code)
	var body serializer.TermCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "202101", body.Data[0].ID)
	assert.Equal(t, "http://localhost/api/v1/terms", body.Links.Self)
}

func TestTermHandlerGetPassesPathParam(t *testing.T) {
	svc := &termServiceMock{term: &serializer.TermResource{
		ID:    "202101",
		Type:  "term",
		Links: serializer.Links{Self: "http://localhost/api/v1/terms/202101"},
	}}

	w := doGet(newTermRouter(svc), "/api/v1/terms/202101")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "202101", svc.captured.TermCode)

	var body serializer.TermDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "202101", body.Data.ID)
	assert.Equal(t, "term", body.Data.Type)
	assert.Equal(t, "http://localhost/api/v1/terms/202101", body.Links.Self)
	assert.NotContains(t, w.Body.String(), `"meta"`)
}

func TestTermHandlerGetNotFound(t *testing.T) {
	svc := &termServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "term not found")}

	w := doGet(newTermRouter(svc), "/api/v1/terms/209901")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "term not found")
}

func TestTermHandlerListCardinalityFailure(t *testing.T) {
	svc := &termServiceMock{err: appErrors.Wrap(appErrors.ErrMultipleResults, "MULTIPLE_RESULTS", http.StatusInternalServerError, "failed to list terms")}

	w := doGet(newTermRouter(svc), "/api/v1/terms")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"MULTIPLE_RESULTS"`)
}

func TestTermHandlerCurrentFailure(t *testing.T) {
	svc := &termServiceMock{err: appErrors.Wrap(appErrors.ErrEmptyResult, "EMPTY_RESULT", http.StatusInternalServerError, "failed to resolve current term")}

	w := doGet(newTermRouter(svc), "/api/v1/terms/current")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"EMPTY_RESULT"`)
}

func TestTermHandlerCurrentRoutesBeforeParam(t *testing.T) {
	svc := &termServiceMock{current: &service.CurrentTerm{TermCode: "202102"}}

	w := doGet(newTermRouter(svc), "/api/v1/terms/current")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"termCode":"202102"}}`, w.Body.String())
	assert.Empty(t, svc.captured.TermCode)
}
