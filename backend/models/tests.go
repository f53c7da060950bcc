package models

import "time"

type Test struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"not null"`
	CreatedAt time.Time
	Questions []Question
	Results   []TestResult
}

type Question struct {
	ID      uint   `gorm:"primarykey"`
	TestID  uint   `gorm:"index;not null"`
	Text    string `gorm:"not null"`
	Answers []Answer
}

type Answer struct {
	ID         uint   `gorm:"primarykey"`
	QuestionID uint   `gorm:"index;not null"`
	Text       string `gorm:"not null"`
	IsCorrect  bool   `gorm:"default:false"`
}

type TestResult struct {
	ID        uint `gorm:"primarykey"`
	TestID    uint `gorm:"index;not null"`
	UserID    uint `gorm:"index;not null"`
	Score     int
	Total     int // число вопросов теста на момент сдачи
	CreatedAt time.Time
	Answers   []ResultAnswer `gorm:"foreignKey:ResultID"`
}

type ResultAnswer struct {
	ID         uint `gorm:"primarykey"`
	ResultID   uint `gorm:"index;not null"`
	QuestionID uint
	AnswerID   uint
	IsCorrect  bool
}
