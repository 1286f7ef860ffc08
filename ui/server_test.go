package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goregress/adapters/estimator"
	"goregress/app"
	"goregress/domain/core"
	"goregress/domain/field"
	"goregress/domain/frame"
	"goregress/domain/regression"
	"goregress/internal"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFieldRepo struct{ fields []field.Field }

func (r *stubFieldRepo) ListFields(ctx context.Context, projectID, datasetID core.ID) ([]field.Field, error) {
	return r.fields, nil
}

type stubFrameLoader struct{ frame *frame.Frame }

func (l *stubFrameLoader) Load(ctx context.Context, projectID, datasetID core.ID) (*frame.Frame, error) {
	return l.frame, nil
}

type stubResultRepo struct {
	byID     map[core.ID]*regression.Record
	inserted []*regression.Record
}

func (r *stubResultRepo) GetBySpec(ctx context.Context, projectID core.ID, spec []byte) (*regression.Record, error) {
	return nil, nil
}

func (r *stubResultRepo) GetByID(ctx context.Context, projectID, id core.ID) (*regression.Record, error) {
	if rec, ok := r.byID[id]; ok {
		return rec, nil
	}
	return nil, core.ErrRegressionNotFound
}

func (r *stubResultRepo) Delete(ctx context.Context, projectID, id core.ID) error { return nil }

func (r *stubResultRepo) Insert(ctx context.Context, rec *regression.Record) error {
	r.inserted = append(r.inserted, rec)
	return nil
}

func newTestServer(t *testing.T, results *stubResultRepo) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f, err := frame.New([]string{"region", "sales"}, [][]string{
		{"North", "120"}, {"North", "135"}, {"North", "128"},
		{"South", "95"}, {"South", "99"}, {"South", "90"},
		{"East", "110"}, {"East", "104"}, {"East", "117"},
	})
	require.NoError(t, err)

	fields := &stubFieldRepo{fields: []field.Field{
		{Name: "region", GeneralType: field.Categorical},
		{Name: "sales", GeneralType: field.Quantitative},
	}}
	runner := regression.NewRunner(estimator.New(), false, 0)
	log := internal.NewLogger(internal.LogLevelError)
	service := app.NewRegressionService(fields, &stubFrameLoader{frame: f}, results,
		regression.FullModelEnumerator{}, runner, log)
	return NewServer(service, log)
}

func TestCreateRegressionMissingParameters(t *testing.T) {
	srv := newTestServer(t, &stubResultRepo{})

	body := strings.NewReader(`{"dependentVariable": "sales"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/projects/p1/regressions", body)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not passed required parameters", w.Body.String())
}

func TestCreateRegressionSuccess(t *testing.T) {
	results := &stubResultRepo{}
	srv := newTestServer(t, results)

	body := strings.NewReader(`{"datasetId": "ds-1", "dependentVariable": "sales"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/projects/p1/regressions", body)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID     string                 `json:"id"`
		Result regression.FinalResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, resp.Result.NumColumns)
	require.Len(t, results.inserted, 1)
}

func TestGetRegressionNotFound(t *testing.T) {
	srv := newTestServer(t, &stubResultRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p1/regressions/missing", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReport(t *testing.T) {
	value := "North"
	result := regression.FinalResult{
		NumColumns: 1,
		RegressionsByColumn: []regression.ColumnRegression{{
			RegressedFields: []string{"region"},
			Regression: regression.RegressionBlock{
				Constants: &regression.Constants{Coefficient: 110.33},
				PropertiesByField: []regression.FieldProperties{{
					Field: "region[T.North]", BaseField: "region", ValueField: &value,
					Coefficient: 17.33, PValue: 0.003,
				}},
			},
			ColumnProperties: map[string]regression.Stat{"r_squared": 0.82},
		}},
	}
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	id := core.NewID()
	results := &stubResultRepo{byID: map[core.ID]*regression.Record{
		id: {ID: id, ProjectID: "p1", Result: resultJSON, CreatedAt: time.Now().UTC()},
	}}
	srv := newTestServer(t, results)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p1/regressions/"+id.String()+"/report", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "region[T.North]")
	assert.Contains(t, html, "r_squared")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubResultRepo{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
