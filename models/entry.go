package models

import (
	"time"
)

// 心情枚举值，与备份文件格式保持一致
const (
	MoodHappy   = "happy"
	MoodSad     = "sad"
	MoodAnxious = "anxious"
	MoodAngry   = "angry"
	MoodNeutral = "neutral"
)

// ValidMoods 合法心情集合
var ValidMoods = map[string]bool{
	MoodHappy:   true,
	MoodSad:     true,
	MoodAnxious: true,
	MoodAngry:   true,
	MoodNeutral: true,
}

// EntryRecord 日记记录模型
// Date 是用户选择的日期，CreatedAt 只用于排序，两者含义不同
type EntryRecord struct {
	ID                  string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Date                string    `gorm:"type:varchar(10)" json:"date"`
	Mood                string    `gorm:"type:varchar(20)" json:"mood"`
	Intensity           int       `json:"intensity"`
	Situation           string    `gorm:"type:text" json:"situation"`
	AutomaticThoughts   string    `gorm:"type:text" json:"automaticThoughts"`
	SelectedEmotions    []string  `gorm:"type:text;serializer:json" json:"selectedEmotions"`
	SelectedDistortions []string  `gorm:"type:text;serializer:json" json:"selectedDistortions"`
	Behavior            string    `gorm:"type:text" json:"behavior"`
	AlternativeThought  string    `gorm:"type:text" json:"alternativeThought"`
	CreatedAt           time.Time `gorm:"index" json:"createdAt"`
	UserID              string    `gorm:"type:varchar(50);index" json:"-"`
}

// EntryDraft 待保存的记录草稿，ID 和 CreatedAt 由存储端分配
type EntryDraft struct {
	Date                string   `json:"date"`
	Mood                string   `json:"mood"`
	Intensity           int      `json:"intensity"`
	Situation           string   `json:"situation"`
	AutomaticThoughts   string   `json:"automaticThoughts"`
	SelectedEmotions    []string `json:"selectedEmotions"`
	SelectedDistortions []string `json:"selectedDistortions"`
	Behavior            string   `json:"behavior"`
	AlternativeThought  string   `json:"alternativeThought"`
}

// ValidateDraft 校验记录草稿，返回所有违规字段
func ValidateDraft(d EntryDraft) ValidationErrors {
	var errs ValidationErrors

	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "日期必须为 YYYY-MM-DD 格式"})
	}
	if !ValidMoods[d.Mood] {
		errs = append(errs, FieldError{Field: "mood", Message: "心情必须为 happy/sad/anxious/angry/neutral 之一"})
	}
	if d.Intensity < 1 || d.Intensity > 10 {
		errs = append(errs, FieldError{Field: "intensity", Message: "强度必须在 1 到 10 之间"})
	}
	if d.Situation == "" {
		errs = append(errs, FieldError{Field: "situation", Message: "情境描述不能为空"})
	}
	if d.AutomaticThoughts == "" {
		errs = append(errs, FieldError{Field: "automaticThoughts", Message: "自动思维不能为空"})
	}
	if d.Behavior == "" {
		errs = append(errs, FieldError{Field: "behavior", Message: "行为描述不能为空"})
	}
	return errs
}

// ApplyDraft 用草稿覆盖可变字段，保留 ID、CreatedAt 和 UserID
func (r *EntryRecord) ApplyDraft(d EntryDraft) {
	r.Date = d.Date
	r.Mood = d.Mood
	r.Intensity = d.Intensity
	r.Situation = d.Situation
	r.AutomaticThoughts = d.AutomaticThoughts
	r.SelectedEmotions = d.SelectedEmotions
	r.SelectedDistortions = d.SelectedDistortions
	r.Behavior = d.Behavior
	r.AlternativeThought = d.AlternativeThought
}

// Draft 从已有记录提取草稿
func (r EntryRecord) Draft() EntryDraft {
	return EntryDraft{
		Date:                r.Date,
		Mood:                r.Mood,
		Intensity:           r.Intensity,
		Situation:           r.Situation,
		AutomaticThoughts:   r.AutomaticThoughts,
		SelectedEmotions:    r.SelectedEmotions,
		SelectedDistortions: r.SelectedDistortions,
		Behavior:            r.Behavior,
		AlternativeThought:  r.AlternativeThought,
	}
}
