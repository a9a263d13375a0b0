package services

import (
	"math"
	"strconv"

	"prediction-service/internal/core/domain"
)

// TranslateCategory decodes the class code and the record's product code.
// The product name comes from the input record, not from the model.
func TranslateCategory(classCode int, productCode float64, categories, products domain.LabelMap[int]) domain.CategoryPrediction {
	product := products.Unknown()
	if code, ok := integralCode(productCode); ok {
		product = products.Decode(code)
	}
	return domain.CategoryPrediction{
		Product:           product,
		PredictedCategory: categories.Decode(classCode),
	}
}

// RoundScore rounds a regression score to two decimal places, half to even,
// on the exact binary value of score. Non-finite input is returned as is.
func RoundScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return score
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(score, 'f', 2, 64), 64)
	if err != nil {
		return score
	}
	return rounded
}

func integralCode(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
