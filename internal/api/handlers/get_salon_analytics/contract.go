package get_salon_analytics

import (
	"context"

	getSalonAnalytics "github.com/m04kA/SMC-SalonService/internal/usecase/get_salon_analytics"
)

type GetSalonAnalyticsUseCase interface {
	Execute(ctx context.Context, req *getSalonAnalytics.Request) (*getSalonAnalytics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
