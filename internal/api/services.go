package api

import (
	"github.com/painmapapp/painmap-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Pins    *service.PinService
	Marks   *service.MarkService
	Memos   *service.MemoService
	Custom  *service.CustomBakeryService
	Filters *service.FilterService
	Stats   *service.StatsService
	Links   *service.LinkService
}
