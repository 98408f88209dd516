package services

import (
	"math"

	"MenteSanaGo/models"
)

// TrendPoint 强度趋势点，按记录创建顺序从旧到新排列
type TrendPoint struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
}

// Stats 统计结果，全部为展示时派生的数据，不落库
type Stats struct {
	Total            int            `json:"total"`
	MoodCounts       map[string]int `json:"moodCounts"`
	AverageIntensity float64        `json:"averageIntensity"`
	WellbeingScore   float64        `json:"wellbeingScore"` // 10 - 平均强度
	EmotionCounts    map[string]int `json:"emotionCounts"`
	DistortionCounts map[string]int `json:"distortionCounts"`
	IntensityTrend   []TrendPoint   `json:"intensityTrend"`
}

// ComputeStats 从记录列表计算统计数据
// 输入按 CreatedAt 降序（仓库的观察状态），趋势序列反转为从旧到新
func ComputeStats(records []models.EntryRecord) Stats {
	stats := Stats{
		Total:            len(records),
		MoodCounts:       make(map[string]int),
		EmotionCounts:    make(map[string]int),
		DistortionCounts: make(map[string]int),
		IntensityTrend:   make([]TrendPoint, 0, len(records)),
	}
	if len(records) == 0 {
		return stats
	}

	sum := 0
	for _, record := range records {
		stats.MoodCounts[record.Mood]++
		sum += record.Intensity
		for _, emotionID := range record.SelectedEmotions {
			stats.EmotionCounts[emotionID]++
		}
		for _, distortionID := range record.SelectedDistortions {
			stats.DistortionCounts[distortionID]++
		}
	}

	for i := len(records) - 1; i >= 0; i-- {
		stats.IntensityTrend = append(stats.IntensityTrend, TrendPoint{
			Date:      records[i].Date,
			Intensity: records[i].Intensity,
		})
	}

	avg := float64(sum) / float64(len(records))
	stats.AverageIntensity = round1(avg)
	stats.WellbeingScore = round1(10 - avg)
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
