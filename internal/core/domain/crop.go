package domain

// Inbound crop payload fields.
const (
	FieldProvinsi     = "Provinsi"
	FieldTahun        = "Tahun"
	FieldProduksi     = "Produksi"
	FieldLuasPanen    = "Luas_Panen"
	FieldCurahHujan   = "Curah_hujan"
	FieldKelembapan   = "Kelembapan"
	FieldSuhuRataRata = "Suhu_rata_rata"
)

// CropColumnMapping renames inbound fields to the names the regressor and its
// scaler were trained under.
var CropColumnMapping = ColumnMapping{
	FieldLuasPanen:    "Luas Panen",
	FieldCurahHujan:   "Curah hujan",
	FieldSuhuRataRata: "Suhu rata-rata",
}

var CropColumns = Columns{
	FieldProvinsi,
	FieldTahun,
	FieldProduksi,
	"Luas Panen",
	"Curah hujan",
	FieldKelembapan,
	"Suhu rata-rata",
}

// YieldPrediction is the regression result, already rounded for display.
type YieldPrediction struct {
	Prediction float64
}
