package model

import "time"

// Session 一次学习会话：从选中困惑文本到（可选）完成修复路径
// swagger:model Session
type Session struct {
	UUIDBase
	UserID            uint      `gorm:"index;not null" json:"userId"`
	Timestamp         time.Time `gorm:"index" json:"timestamp"`
	PDFName           string    `gorm:"size:255" json:"pdfName"`
	SelectedText      string    `gorm:"size:255" json:"selectedText"`
	FullSelectedText  string    `gorm:"type:text" json:"fullSelectedText"`
	ConfusionType     *string   `gorm:"size:100" json:"confusionType"`
	MasteryScore      *float64  `json:"masteryScore"`
	TimeSpent         int       `gorm:"default:0" json:"timeSpent"` // 分钟，累加
	TotalSteps        int       `gorm:"default:0" json:"totalSteps"`
	CompletedSteps    int       `gorm:"default:0" json:"completedSteps"`
	AnalysisComplete  bool      `gorm:"default:false;index" json:"analysisComplete"`
	DiagnosticSummary string    `gorm:"type:text" json:"diagnosticSummary"`
	OverallAccuracy   float64   `gorm:"default:0" json:"overallAccuracy"`
	OverallConfidence float64   `gorm:"default:0" json:"overallConfidence"`
}

func (Session) TableName() string {
	return "study_sessions"
}

// SelectedTextPreview 截取前 100 个字符作为列表展示文本
func SelectedTextPreview(full string) string {
	runes := []rune(full)
	if len(runes) <= 100 {
		return full
	}
	return string(runes[:100])
}
