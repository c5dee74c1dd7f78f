package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
)

// Service сервис отзывов
type Service struct {
	reviewRepo      ReviewRepository
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		logger:          logger,
	}
}

// Create оставляет отзыв о завершённой записи
// Только клиент записи, один отзыв на запись
func (s *Service) Create(ctx context.Context, appointmentID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: creating review for appointment id=%d by user=%d, rating=%d", appointmentID, req.UserID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	var comment *string
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if utf8.RuneCountInString(trimmed) > domain.MaxReviewCommentLength {
			return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
		}
		if trimmed != "" {
			comment = &trimmed
		}
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Create: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Create: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Create - get appointment: %v", ErrInternal, err)
	}

	if appointment.ClientID != req.UserID {
		s.logger.Warn("Create: user=%d is not the client of appointment id=%d", req.UserID, appointmentID)
		return nil, ErrAccessDenied
	}

	if appointment.Status != domain.StatusCompleted {
		s.logger.Warn("Create: appointment id=%d has status=%s", appointmentID, appointment.Status)
		return nil, ErrNotCompleted
	}

	created, err := s.reviewRepo.Create(ctx, &domain.Review{
		AppointmentID: appointment.ID,
		SalonID:       appointment.SalonID,
		StaffID:       appointment.StaffID,
		ServiceID:     appointment.ServiceID,
		ClientID:      appointment.ClientID,
		Rating:        req.Rating,
		Comment:       comment,
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewAlreadyExists) {
			s.logger.Warn("Create: appointment id=%d already reviewed", appointmentID)
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%d for appointment id=%d", created.ID, appointmentID)
	return models.FromDomainReview(created), nil
}

// List получает отзывы салона со средней оценкой
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, salonID int64) (*models.ReviewListResponse, error) {
	s.logger.Info("List: fetching reviews for salon=%d", salonID)

	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("List: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("List: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - get salon: %v", ErrInternal, err)
	}

	list, err := s.reviewRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainReviewList(salonID, list)
	s.logger.Info("List: successfully fetched %d reviews for salon=%d, average=%.2f", resp.ReviewCount, salonID, resp.AverageRating)
	return resp, nil
}
