package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	UserID  int64   `json:"-"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	SalonID       int64     `json:"salonId"`
	StaffID       int64     `json:"staffId"`
	ServiceID     int64     `json:"serviceId"`
	ClientID      int64     `json:"clientId"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewListResponse отзывы салона со средней оценкой
type ReviewListResponse struct {
	SalonID       int64            `json:"salonId"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
	Reviews       []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(rv *domain.Review) *ReviewResponse {
	if rv == nil {
		return nil
	}

	return &ReviewResponse{
		ID:            rv.ID,
		AppointmentID: rv.AppointmentID,
		SalonID:       rv.SalonID,
		StaffID:       rv.StaffID,
		ServiceID:     rv.ServiceID,
		ClientID:      rv.ClientID,
		Rating:        rv.Rating,
		Comment:       rv.Comment,
		CreatedAt:     rv.CreatedAt,
	}
}

// FromDomainReviewList конвертирует отзывы салона в DTO и считает среднюю оценку
func FromDomainReviewList(salonID int64, reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{
		SalonID: salonID,
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}

	sum := 0
	for _, rv := range reviews {
		if item := FromDomainReview(rv); item != nil {
			resp.Reviews = append(resp.Reviews, *item)
			sum += rv.Rating
		}
	}

	resp.ReviewCount = len(resp.Reviews)
	if resp.ReviewCount > 0 {
		resp.AverageRating = float64(sum) / float64(resp.ReviewCount)
	}

	return resp
}
