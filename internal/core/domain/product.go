package domain

// Product feature columns, in the order the classifier bundle was fitted on.
const (
	ColProductName     = "Product_Name"
	ColProductPrice    = "Product_Price"
	ColQuantity        = "Quantity"
	ColTotal           = "Total"
	ColMonth           = "Month"
	ColQuantityMonthly = "Quantity_Monthly"
	ColDay             = "Day"
	ColYear            = "Year"
)

var ProductColumns = Columns{
	ColProductName,
	ColProductPrice,
	ColQuantity,
	ColTotal,
	ColMonth,
	ColQuantityMonthly,
	ColDay,
	ColYear,
}

// ProductRecord is one row of the product sales table. ProductName holds the
// label-encoded product code, not the display name.
type ProductRecord struct {
	ID              int64
	ProductName     float64
	ProductPrice    float64
	Quantity        float64
	Total           float64
	Month           float64
	QuantityMonthly float64
	Day             float64
	Year            float64
}

// Features projects the record into the classifier's feature shape.
func (p *ProductRecord) Features() *FeatureRow {
	return NewFeatureRow().
		Set(ColProductName, p.ProductName).
		Set(ColProductPrice, p.ProductPrice).
		Set(ColQuantity, p.Quantity).
		Set(ColTotal, p.Total).
		Set(ColMonth, p.Month).
		Set(ColQuantityMonthly, p.QuantityMonthly).
		Set(ColDay, p.Day).
		Set(ColYear, p.Year)
}

// CategoryPrediction is the classification result shown to API clients.
type CategoryPrediction struct {
	Product           string
	PredictedCategory string
}
