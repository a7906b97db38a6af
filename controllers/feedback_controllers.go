package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// GetAllFeedbacks -> lista com médias gerais.
func (fc *FeedbackController) GetAllFeedbacks(c *gin.Context) {
	var feedbacks []models.Feedback
	if err := fc.DB.Preload("User").Order("created_at desc").Find(&feedbacks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var ratingSum, serviceSum, foodSum float64
	var serviceCount, foodCount int
	for _, f := range feedbacks {
		ratingSum += float64(f.Rating)
		if f.ServiceRating != nil {
			serviceSum += float64(*f.ServiceRating)
			serviceCount++
		}
		if f.FoodRating != nil {
			foodSum += float64(*f.FoodRating)
			foodCount++
		}
	}

	stats := gin.H{
		"total":                  len(feedbacks),
		"average_rating":         round1(avg(ratingSum, len(feedbacks))),
		"average_service_rating": round1(avg(serviceSum, serviceCount)),
		"average_food_rating":    round1(avg(foodSum, foodCount)),
	}

	utils.RespondJSON(c, http.StatusOK, "Feedbacks", gin.H{
		"feedbacks":  feedbacks,
		"statistics": stats,
	})
}

// CreateFeedback -> aberto ao público, usuário opcional.
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var body struct {
		Rating        int    `json:"rating" binding:"required"`
		ServiceRating *int   `json:"service_rating"`
		FoodRating    *int   `json:"food_rating"`
		Comment       string `json:"comment"`
		UserID        *uint  `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("avaliação deve ser entre 1 e 5"))
		return
	}

	feedback := models.Feedback{
		Rating:        body.Rating,
		ServiceRating: body.ServiceRating,
		FoodRating:    body.FoodRating,
		Comment:       body.Comment,
		UserID:        body.UserID,
	}

	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Feedback created", feedback)
}

// GetStatistics -> distribuição de notas no período.
func (fc *FeedbackController) GetStatistics(c *gin.Context) {
	startDate := time.Now()
	switch c.Query("period") {
	case "week":
		startDate = startDate.AddDate(0, 0, -7)
	case "month":
		startDate = startDate.AddDate(0, -1, 0)
	case "year":
		startDate = startDate.AddDate(-1, 0, 0)
	default:
		startDate = startDate.AddDate(0, -1, 0)
	}

	var feedbacks []models.Feedback
	if err := fc.DB.Where("created_at >= ?", startDate).Find(&feedbacks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	distribution := make([]gin.H, 0, 5)
	counts := make(map[int]int)
	var positive, negative int
	for _, f := range feedbacks {
		counts[f.Rating]++
		if f.Rating >= 4 {
			positive++
		}
		if f.Rating <= 2 {
			negative++
		}
	}
	for rating := 1; rating <= 5; rating++ {
		distribution = append(distribution, gin.H{"rating": rating, "count": counts[rating]})
	}

	total := len(feedbacks)
	utils.RespondJSON(c, http.StatusOK, "Feedback statistics", gin.H{
		"total_feedbacks":     total,
		"positive_percentage": percentage(positive, total),
		"negative_percentage": percentage(negative, total),
		"rating_distribution": distribution,
	})
}

func avg(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func percentage(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
