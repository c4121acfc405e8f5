package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/similarity"
)

// CenterRow là một dòng catalog đã được tách field, chưa chuẩn hoá
type CenterRow struct {
	ID       string
	Code     string
	Name     string
	City     string
	Province string
	Address  string
}

// CenterRecord là một trung tâm trong catalog đã nạp. Các field hiển thị giữ nguyên,
// các field Norm* và profile được tính một lần khi build index.
type CenterRecord struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Province string `json:"province"`
	Address  string `json:"address"`

	NormName     string `json:"-"`
	NormCity     string `json:"-"`
	NormProvince string `json:"-"`
	NormAddress  string `json:"-"`

	name, city, province, address fieldProfile
	combined                      string
	identifiers                   map[string]struct{}
}

// fieldProfile giữ token và mã phonetic của một field đã chuẩn hoá
type fieldProfile struct {
	text     string
	tokens   []string
	set      map[string]struct{}
	phonetic map[string]struct{}
}

// SkippedRow ghi lại một dòng bị loại khi build index
type SkippedRow struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// LoadedCatalog là snapshot bất biến của catalog cùng location index.
// Reload tạo snapshot mới, không bao giờ sửa snapshot cũ.
type LoadedCatalog struct {
	Records   []*CenterRecord
	Cities    []LocationIndexEntry
	Provinces []LocationIndexEntry
	Skipped   []SkippedRow
	Version   string

	norm *normalizer.TextNormalizer
}

// Len trả về số record; an toàn với catalog nil
func (c *LoadedCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Empty báo catalog chưa nạp hoặc không có record nào
func (c *LoadedCatalog) Empty() bool {
	return c.Len() == 0
}

// FindByIdentifier tìm record theo id hoặc code (không phân biệt hoa thường, dấu, dấu câu)
func (c *LoadedCatalog) FindByIdentifier(ident string) *CenterRecord {
	if c == nil {
		return nil
	}
	tn := c.norm
	if tn == nil {
		tn = normalizer.Default()
	}
	key := identifierKey(tn, ident)
	if key == "" {
		return nil
	}
	for _, rec := range c.Records {
		if _, ok := rec.identifiers[key]; ok {
			return rec
		}
	}
	return nil
}

// BuildIndex chuẩn hoá các dòng và dựng location index. Kết quả chỉ phụ thuộc
// vào input: cùng danh sách dòng luôn cho cùng catalog và cùng Version.
// Dòng thiếu id/code hoặc trùng id/code với dòng trước bị bỏ qua và ghi vào Skipped.
// Hai id được coi là trùng khi có cùng dạng chuẩn hoá ("ÑU-01" và "nu01").
func (r *Resolver) BuildIndex(rows []CenterRow) *LoadedCatalog {
	cat := &LoadedCatalog{
		Records: make([]*CenterRecord, 0, len(rows)),
		norm:    r.norm,
	}

	seenID := make(map[string]struct{}, len(rows))
	seenCode := make(map[string]struct{}, len(rows))
	hash := sha256.New()

	for i, row := range rows {
		id := strings.TrimSpace(row.ID)
		code := strings.TrimSpace(row.Code)
		idKey := identifierKey(r.norm, id)
		codeKey := identifierKey(r.norm, code)

		skip := ""
		switch {
		case idKey == "" || codeKey == "":
			skip = "missing id or code"
		case contains(seenID, idKey):
			skip = "duplicate id"
		case contains(seenCode, codeKey):
			skip = "duplicate code"
		}
		if skip != "" {
			cat.Skipped = append(cat.Skipped, SkippedRow{Index: i, ID: id, Code: code, Reason: skip})
			continue
		}
		seenID[idKey] = struct{}{}
		seenCode[codeKey] = struct{}{}

		rec := r.newRecord(id, code, row)
		cat.Records = append(cat.Records, rec)

		for _, f := range []string{rec.ID, rec.Code, rec.Name, rec.City, rec.Province, rec.Address} {
			hash.Write([]byte(f))
			hash.Write([]byte{0x1f})
		}
		hash.Write([]byte{0x1e})
	}

	cat.Cities = buildLocationIndex(r.norm, cat.Records, func(rec *CenterRecord) string { return rec.NormCity })
	cat.Provinces = buildLocationIndex(r.norm, cat.Records, func(rec *CenterRecord) string { return rec.NormProvince })
	cat.Version = hex.EncodeToString(hash.Sum(nil))[:16]

	return cat
}

func (r *Resolver) newRecord(id, code string, row CenterRow) *CenterRecord {
	rec := &CenterRecord{
		ID:       id,
		Code:     code,
		Name:     row.Name,
		City:     row.City,
		Province: row.Province,
		Address:  row.Address,
	}
	rec.NormName = r.norm.Normalize(row.Name)
	rec.NormCity = r.norm.Normalize(row.City)
	rec.NormProvince = r.norm.Normalize(row.Province)
	rec.NormAddress = r.norm.Normalize(row.Address)

	rec.name = r.profile(rec.NormName)
	rec.city = r.profile(rec.NormCity)
	rec.province = r.profile(rec.NormProvince)
	rec.address = r.profile(rec.NormAddress)
	rec.combined = strings.Join([]string{rec.NormName, rec.NormCity, rec.NormProvince, rec.NormAddress}, " ")

	// id/code đi qua cùng pipeline Normalize với query để "CÓD7" khớp "cod7"
	rec.identifiers = make(map[string]struct{}, 4)
	for _, ident := range []string{id, code} {
		normalized := r.norm.Normalize(ident)
		if normalized != "" {
			rec.identifiers[normalized] = struct{}{}
		}
		if cleaned := normalizer.CleanToken(normalized); cleaned != "" {
			rec.identifiers[cleaned] = struct{}{}
		}
	}
	return rec
}

// identifierKey là dạng so khớp của một id/code: chuẩn hoá rồi bỏ mọi ký tự không phải chữ/số
func identifierKey(tn *normalizer.TextNormalizer, ident string) string {
	return normalizer.CleanToken(tn.Normalize(ident))
}

func (r *Resolver) profile(text string) fieldProfile {
	tokens, set := r.norm.FieldTokens(text)
	p := fieldProfile{
		text:     text,
		tokens:   tokens,
		set:      set,
		phonetic: make(map[string]struct{}, len(tokens)),
	}
	for _, tok := range tokens {
		if code, ok := similarity.Phonetic(tok); ok {
			p.phonetic[code] = struct{}{}
		}
	}
	return p
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
