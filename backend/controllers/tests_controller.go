package controllers

import (
	"errors"
	"historium/backend/config"
	"historium/backend/middleware"
	"historium/backend/models"
	"historium/backend/utils"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Параметры эвристики сложности. Рейтинг считается только когда у теста
// больше difficultyMinResults сдач; формула смешивает число вопросов и
// историческую долю неудач.
const (
	difficultyMinResults = 5
	difficultyScale      = 5.0
)

type TestsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTestsController(db *gorm.DB, cfg *config.Config) *TestsController {
	return &TestsController{DB: db, Cfg: cfg}
}

type createAnswerInput struct {
	Text      string `json:"text" validate:"required,min=1"`
	IsCorrect bool   `json:"isCorrect"`
}

type createQuestionInput struct {
	Text    string              `json:"text" validate:"required,min=1"`
	Answers []createAnswerInput `json:"answers" validate:"len=4,dive"`
}

type createTestInput struct {
	Title     string                `json:"title" validate:"required,min=1"`
	Questions []createQuestionInput `json:"questions" validate:"min=1,dive"`
}

// averageFailRate — 1 минус средняя доля правильных ответов по всем сдачам
func averageFailRate(results []models.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum float64
	for _, result := range results {
		sum += float64(result.Score) / float64(result.Total)
	}

	return 1 - sum/float64(len(results))
}

// computeDifficulty возвращает целое от 1 до 5 либо пустую строку,
// пока сдач недостаточно
func computeDifficulty(questionsCount int, results []models.TestResult) interface{} {
	if len(results) <= difficultyMinResults {
		return ""
	}

	rating := math.Round(float64(questionsCount)/difficultyScale + averageFailRate(results)*difficultyScale)
	return int(math.Min(5, math.Max(1, rating)))
}

func (tc *TestsController) CreateTest(c *fiber.Ctx) error {
	var input createTestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := validator.New().Struct(input); err != nil {
		return utils.ValidationFailed(c, utils.FieldErrorsFrom(err))
	}

	for _, question := range input.Questions {
		correct := 0
		for _, answer := range question.Answers {
			if answer.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return utils.ValidationFailed(c, []utils.FieldError{
				{Field: "questions", Message: "Each question must have exactly 1 correct answer"},
			})
		}
	}

	test := models.Test{Title: input.Title}
	for _, question := range input.Questions {
		q := models.Question{Text: question.Text}
		for _, answer := range question.Answers {
			q.Answers = append(q.Answers, models.Answer{
				Text:      answer.Text,
				IsCorrect: answer.IsCorrect,
			})
		}
		test.Questions = append(test.Questions, q)
	}

	// Тест с вопросами и ответами создаётся одним вложенным вызовом
	if err := tc.DB.Create(&test).Error; err != nil {
		return utils.InternalServerError(c, "Could not create test")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Test created successfully",
		"test":    testJSON(test),
	})
}

func testJSON(test models.Test) fiber.Map {
	questions := []fiber.Map{}
	for _, question := range test.Questions {
		answers := []fiber.Map{}
		for _, answer := range question.Answers {
			answers = append(answers, fiber.Map{
				"id":        answer.ID,
				"text":      answer.Text,
				"isCorrect": answer.IsCorrect,
			})
		}
		questions = append(questions, fiber.Map{
			"id":      question.ID,
			"text":    question.Text,
			"answers": answers,
		})
	}

	return fiber.Map{
		"id":        test.ID,
		"title":     test.Title,
		"createdAt": test.CreatedAt,
		"questions": questions,
	}
}

func (tc *TestsController) GetTests(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var tests []models.Test
	if err := tc.DB.Preload("Questions").Preload("Results").Find(&tests).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := []fiber.Map{}
	for _, test := range tests {
		var lastResult *models.TestResult
		for i := range test.Results {
			r := &test.Results[i]
			if r.UserID != caller.ID {
				continue
			}
			if lastResult == nil || r.CreatedAt.After(lastResult.CreatedAt) {
				lastResult = r
			}
		}

		var lastResultJSON interface{}
		if lastResult != nil {
			lastResultJSON = fiber.Map{
				"id":        lastResult.ID,
				"score":     lastResult.Score,
				"total":     lastResult.Total,
				"createdAt": lastResult.CreatedAt,
			}
		}

		result = append(result, fiber.Map{
			"id":             test.ID,
			"title":          test.Title,
			"createdAt":      test.CreatedAt,
			"questionsCount": len(test.Questions),
			"lastResult":     lastResultJSON,
			"difficulty":     computeDifficulty(len(test.Questions), test.Results),
		})
	}

	return c.JSON(fiber.Map{
		"tests": result,
	})
}

func (tc *TestsController) GetTest(c *fiber.Ctx) error {
	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var test models.Test
	if err := tc.DB.Preload("Questions.Answers").First(&test, testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	// Правильность ответов наружу не отдаётся
	questions := []fiber.Map{}
	for _, question := range test.Questions {
		answers := []fiber.Map{}
		for _, answer := range question.Answers {
			answers = append(answers, fiber.Map{
				"id":   answer.ID,
				"text": answer.Text,
			})
		}
		questions = append(questions, fiber.Map{
			"id":      question.ID,
			"text":    question.Text,
			"answers": answers,
		})
	}

	return c.JSON(fiber.Map{
		"id":        test.ID,
		"title":     test.Title,
		"createdAt": test.CreatedAt,
		"questions": questions,
	})
}

func (tc *TestsController) SubmitTest(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var input struct {
		Answers []struct {
			QuestionID uint `json:"questionId"`
			AnswerID   uint `json:"answerId"`
		} `json:"answers"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var test models.Test
	if err := tc.DB.Preload("Questions.Answers").First(&test, testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	// Ответ, не совпавший с вопросом или вариантом этого теста,
	// просто считается неправильным
	score := 0
	total := len(test.Questions)

	resultAnswers := []models.ResultAnswer{}
	for _, submitted := range input.Answers {
		isCorrect := false
		for _, question := range test.Questions {
			if question.ID != submitted.QuestionID {
				continue
			}
			for _, answer := range question.Answers {
				if answer.ID == submitted.AnswerID {
					isCorrect = answer.IsCorrect
					break
				}
			}
			break
		}

		if isCorrect {
			score++
		}
		resultAnswers = append(resultAnswers, models.ResultAnswer{
			QuestionID: submitted.QuestionID,
			AnswerID:   submitted.AnswerID,
			IsCorrect:  isCorrect,
		})
	}

	result := models.TestResult{
		UserID:  caller.ID,
		TestID:  uint(testID),
		Score:   score,
		Total:   total,
		Answers: resultAnswers,
	}

	// Результат с разбором по вопросам пишется одним вложенным вызовом
	if err := tc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save result")
	}

	return c.JSON(fiber.Map{
		"score":    score,
		"total":    total,
		"resultId": result.ID,
	})
}

func (tc *TestsController) GetTestResults(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	testID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var results []models.TestResult
	err = tc.DB.Where("test_id = ? AND user_id = ?", testID, caller.ID).
		Preload("Answers").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	list := []fiber.Map{}
	for _, result := range results {
		answers := []fiber.Map{}
		for _, answer := range result.Answers {
			answers = append(answers, fiber.Map{
				"questionId": answer.QuestionID,
				"answerId":   answer.AnswerID,
				"isCorrect":  answer.IsCorrect,
			})
		}
		list = append(list, fiber.Map{
			"id":        result.ID,
			"score":     result.Score,
			"total":     result.Total,
			"createdAt": result.CreatedAt,
			"answers":   answers,
		})
	}

	return c.JSON(fiber.Map{
		"results": list,
	})
}
