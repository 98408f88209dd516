package models

// EntryListResponse 记录列表响应结构体
type EntryListResponse struct {
	Entries []EntryRecord `json:"entries"`
}

// SaveEntryResponse 保存记录响应结构体
type SaveEntryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ImportResponse 导入响应结构体
type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// SessionResponse 会话响应结构体
type SessionResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// CatalogsResponse 目录数据响应结构体
type CatalogsResponse struct {
	Moods       []MoodItem    `json:"moods"`
	Emotions    []CatalogItem `json:"emotions"`
	Distortions []CatalogItem `json:"distortions"`
}
