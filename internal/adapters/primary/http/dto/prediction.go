package dto

import (
	"fmt"
	"math"

	"prediction-service/internal/core/domain"
	"prediction-service/internal/core/services"
)

// ============================================================================
// Regression DTOs
// ============================================================================

// CropYieldRequest is the crop payload. Fields are pointers so that absent
// fields stay distinguishable from zero values. Provinsi and Tahun are
// integers but accept integral JSON numbers such as 2020.0.
type CropYieldRequest struct {
	Provinsi     *float64 `json:"Provinsi"`
	Tahun        *float64 `json:"Tahun"`
	Produksi     *float64 `json:"Produksi"`
	LuasPanen    *float64 `json:"Luas_Panen"`
	CurahHujan   *float64 `json:"Curah_hujan"`
	Kelembapan   *float64 `json:"Kelembapan"`
	SuhuRataRata *float64 `json:"Suhu_rata_rata"`
}

type YieldPredictionResponse struct {
	Prediction float64 `json:"prediction"`
}

// ToFeatureRow builds a row under the inbound field names, skipping absent
// fields so that schema validation can report them. A non-integral Provinsi
// or Tahun is ErrInvalidInput.
func ToFeatureRow(req *CropYieldRequest) (*domain.FeatureRow, error) {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{domain.FieldProvinsi, req.Provinsi},
		{domain.FieldTahun, req.Tahun},
	} {
		if f.v != nil && *f.v != math.Trunc(*f.v) {
			return nil, fmt.Errorf("%w: %s must be an integer, got %v", domain.ErrInvalidInput, f.name, *f.v)
		}
	}

	row := domain.NewFeatureRow()
	setFloat(row, domain.FieldProvinsi, req.Provinsi)
	setFloat(row, domain.FieldTahun, req.Tahun)
	setFloat(row, domain.FieldProduksi, req.Produksi)
	setFloat(row, domain.FieldLuasPanen, req.LuasPanen)
	setFloat(row, domain.FieldCurahHujan, req.CurahHujan)
	setFloat(row, domain.FieldKelembapan, req.Kelembapan)
	setFloat(row, domain.FieldSuhuRataRata, req.SuhuRataRata)
	return row, nil
}

func setFloat(row *domain.FeatureRow, name string, v *float64) {
	if v != nil {
		row.Set(name, *v)
	}
}

func ToYieldPredictionResponse(p *domain.YieldPrediction) YieldPredictionResponse {
	return YieldPredictionResponse{Prediction: p.Prediction}
}

// ============================================================================
// Classification DTOs
// ============================================================================

type CategoryPredictionResponse struct {
	Product           string `json:"product"`
	PredictedCategory string `json:"predicted_category"`
}

func ToCategoryPredictionResponse(p *domain.CategoryPrediction) CategoryPredictionResponse {
	return CategoryPredictionResponse{
		Product:           p.Product,
		PredictedCategory: p.PredictedCategory,
	}
}

// ============================================================================
// Health DTOs
// ============================================================================

type RootResponse struct {
	Message string `json:"message"`
}

type ArtifactStatusResponse struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Database  string                   `json:"database"`
	Error     string                   `json:"error,omitempty"`
	Artifacts []ArtifactStatusResponse `json:"artifacts"`
}

func ToHealthResponse(report *services.HealthReport) HealthResponse {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Artifacts: make([]ArtifactStatusResponse, 0, len(report.Artifacts)),
	}
	if report.DatabaseErr != nil {
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		resp.Error = report.DatabaseErr.Error()
	} else if report.Degraded() {
		resp.Status = "degraded"
	}
	for _, a := range report.Artifacts {
		resp.Artifacts = append(resp.Artifacts, ArtifactStatusResponse{
			Name:      a.Name,
			Location:  a.Location,
			Available: a.Available,
			Error:     a.Error,
		})
	}
	return resp
}
