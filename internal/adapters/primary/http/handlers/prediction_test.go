package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/core/services"
	"prediction-service/internal/testutil"
)

type routerFixture struct {
	records    *testutil.MockProductRecordSource
	classifier *testutil.MockClassifier
	store      *services.ArtifactStore
	router     *gin.Engine
}

var cropModel = testutil.LinearModel{
	Weights: []float64{0.01, 0.002, 0.000004, 0.00002, 0.0003, 0.017, 0.023},
	Bias:    1.23456,
}

func setupRouter(store *services.ArtifactStore) *routerFixture {
	gin.SetMode(gin.TestMode)
	f := &routerFixture{
		records:    new(testutil.MockProductRecordSource),
		classifier: new(testutil.MockClassifier),
	}
	if store == nil {
		store = &services.ArtifactStore{
			ClassifierModel:  services.Available[ports.Predictor[int]]("classifier model", "bundle", f.classifier),
			ClassifierScaler: services.Available[ports.Scaler]("classifier scaler", "bundle", testutil.IdentityScaler{}),
			RegressorModel:   services.Available[ports.Predictor[float64]]("regressor model", "model.json", cropModel),
			RegressorScaler:  services.Available[ports.Scaler]("regressor scaler", "scaler.json", testutil.IdentityScaler{}),
		}
	}
	f.store = store

	h := New(
		services.NewClassificationService(f.records, store, domain.CategoryLabels, domain.ProductLabels),
		services.NewRegressionService(store, domain.CropColumnMapping),
		services.NewHealthService(f.records, store),
	)
	f.router = gin.New()
	h.RegisterRoutes(f.router)
	return f
}

func (f *routerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const examplePayload = `{"Provinsi": 12, "Tahun": 2020, "Produksi": 500000, "Luas_Panen": 120000, "Curah_hujan": 1800, "Kelembapan": 80, "Suhu_rata_rata": 27}`

func TestPredictCropYield(t *testing.T) {
	f := setupRouter(nil)

	w := f.do("POST", "/predict", examplePayload)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body, 1)
	prediction, ok := body["prediction"].(float64)
	require.True(t, ok)
	assert.False(t, math.IsNaN(prediction) || math.IsInf(prediction, 0))
	assert.Equal(t, math.Round(prediction*100)/100, prediction)

	// At most two decimal digits on the wire.
	raw := string(w.Body.Bytes())
	num := strings.TrimSuffix(strings.TrimPrefix(raw, `{"prediction":`), "}")
	if i := strings.Index(num, "."); i >= 0 {
		assert.LessOrEqual(t, len(num)-i-1, 2, raw)
	}
	_, err := strconv.ParseFloat(num, 64)
	assert.NoError(t, err)
}

func TestPredictCropYield_KeyOrderInvariant(t *testing.T) {
	f := setupRouter(nil)
	reordered := `{"Suhu_rata_rata": 27, "Kelembapan": 80, "Curah_hujan": 1800, "Luas_Panen": 120000, "Produksi": 500000, "Tahun": 2020, "Provinsi": 12}`

	a := f.do("POST", "/predict", examplePayload)
	b := f.do("POST", "/predict", reordered)

	assert.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestPredictCropYield_MissingFields(t *testing.T) {
	f := setupRouter(nil)

	w := f.do("POST", "/predict", `{"Provinsi": 12, "Tahun": 2020, "Produksi": 500000, "Kelembapan": 80}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "prediction")
	msg := body["error"].(string)
	assert.Contains(t, msg, "Luas Panen")
	assert.Contains(t, msg, "Curah hujan")
	assert.Contains(t, msg, "Suhu rata-rata")
}

func TestPredictCropYield_NonNumericField(t *testing.T) {
	f := setupRouter(nil)
	payload := strings.Replace(examplePayload, `"Kelembapan": 80`, `"Kelembapan": "humid"`, 1)

	w := f.do("POST", "/predict", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "prediction")
	assert.Contains(t, body, "error")
}

func TestPredictCropYield_FractionalInteger(t *testing.T) {
	f := setupRouter(nil)
	payload := strings.Replace(examplePayload, `"Tahun": 2020`, `"Tahun": 2020.5`, 1)

	w := f.do("POST", "/predict", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictCropYield_IntegralFloatInteger(t *testing.T) {
	f := setupRouter(nil)
	payload := strings.Replace(examplePayload, `"Tahun": 2020`, `"Tahun": 2020.0`, 1)

	a := f.do("POST", "/predict", examplePayload)
	b := f.do("POST", "/predict", payload)

	assert.Equal(t, http.StatusOK, b.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestPredictCropYield_EmptyBody(t *testing.T) {
	f := setupRouter(nil)

	w := f.do("POST", "/predict", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")
}

func TestPredictCropYield_ScalerUnavailable(t *testing.T) {
	f := setupRouter(&services.ArtifactStore{
		RegressorModel:  services.Available[ports.Predictor[float64]]("regressor model", "model.json", cropModel),
		RegressorScaler: services.Unavailable[ports.Scaler]("regressor scaler", "minmax_scaler.json", errors.New("no such file")),
	})

	w := f.do("POST", "/predict", examplePayload)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "regressor scaler")
}

func TestPredictFromDB(t *testing.T) {
	f := setupRouter(nil)
	f.records.On("GetByID", mock.Anything, int64(42)).Return(&domain.ProductRecord{
		ID: 42, ProductName: 14, ProductPrice: 25000, Quantity: 3, Total: 75000,
		Month: 5, QuantityMonthly: 40, Day: 12, Year: 2024,
	}, nil)
	f.classifier.On("Predict", mock.Anything).Return(1, nil)

	w := f.do("GET", "/predict-from-db/42", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product": "Cappucino", "predicted_category": "Sedang"}`, w.Body.String())
}

func TestPredictFromDB_NotFound(t *testing.T) {
	f := setupRouter(nil)
	f.records.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrProductNotFound)

	w := f.do("GET", "/predict-from-db/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Produk tidak ditemukan di database"}`, w.Body.String())
	f.classifier.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictFromDB_UnknownProduct(t *testing.T) {
	f := setupRouter(nil)
	f.records.On("GetByID", mock.Anything, int64(5)).Return(&domain.ProductRecord{ID: 5, ProductName: 250}, nil)
	f.classifier.On("Predict", mock.Anything).Return(0, nil)

	w := f.do("GET", "/predict-from-db/5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product": "Unknown Product", "predicted_category": "Sedikit"}`, w.Body.String())
}

func TestPredictFromDB_InvalidID(t *testing.T) {
	f := setupRouter(nil)

	w := f.do("GET", "/predict-from-db/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.records.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPredictFromDB_StoreError(t *testing.T) {
	f := setupRouter(nil)
	f.records.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))

	w := f.do("GET", "/predict-from-db/1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
}
