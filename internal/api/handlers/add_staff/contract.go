package add_staff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

type StaffService interface {
	Add(ctx context.Context, req *models.AddStaffRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
