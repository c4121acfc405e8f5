package models

// CenterView trung tâm trả về cho client (hiển thị nguyên văn như trong catalog)
type CenterView struct {
	ID       string  `json:"id,omitempty"`   // Center ID, bị ẩn khi người dùng chỉ hỏi code
	Code     string  `json:"code,omitempty"` // Code, bị ẩn khi người dùng chỉ hỏi ID
	Name     string  `json:"name"`           // Tên trung tâm
	City     string  `json:"city"`           // Thành phố (poblacion)
	Province string  `json:"province"`       // Tỉnh (provincia)
	Address  string  `json:"address"`        // Địa chỉ (direccion)
	Score    float64 `json:"score"`          // Điểm xếp hạng, có thể > 1.0
}

// CenterDocument document của một trung tâm trong index Meilisearch
type CenterDocument struct {
	Key            string `json:"key"`             // Primary key trong Meilisearch, xem search.DocumentKey
	ID             string `json:"id"`              // Center ID nguyên văn
	Code           string `json:"code"`            // Code
	Name           string `json:"name"`            // Tên hiển thị
	City           string `json:"city"`            // Thành phố
	Province       string `json:"province"`        // Tỉnh
	Address        string `json:"address"`         // Địa chỉ
	NormName       string `json:"norm_name"`       // Tên đã chuẩn hoá
	NormCity       string `json:"norm_city"`       // Thành phố đã chuẩn hoá
	NormProvince   string `json:"norm_province"`   // Tỉnh đã chuẩn hoá
	NormAddress    string `json:"norm_address"`    // Địa chỉ đã chuẩn hoá
	CatalogVersion string `json:"catalog_version"` // Phiên bản catalog đã publish
}
