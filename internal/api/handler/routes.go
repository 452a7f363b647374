package handler

import (
	"net/http"

	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/projects"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/videos"
	"github.com/vfg2006/ad-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Projects(service projects.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/projects",
			Method:      http.MethodGet,
			Handler:     ListProjects(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects",
			Method:      http.MethodPost,
			Handler:     CreateProject(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/projects/:id",
			Method:      http.MethodGet,
			Handler:     GetProject(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/facebook-account",
			Method:      http.MethodPut,
			Handler:     UpdateFacebookAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Campaigns(
	provisioner provisioning.Provisioner,
	campaignRepo repository.CampaignRepository,
	insightService insighting.Insighter,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/projects/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(provisioner, campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/adsets",
			Method:      http.MethodPost,
			Handler:     CreateAdSet(provisioner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/adsets/:adset_id/creatives",
			Method:      http.MethodPost,
			Handler:     CreateAdCreatives(provisioner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/adsets/:adset_id/ads",
			Method:      http.MethodPost,
			Handler:     CreateAds(provisioner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/test-ad-creation",
			Method:      http.MethodPost,
			Handler:     TestAdCreation(provisioner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/insights",
			Method:      http.MethodGet,
			Handler:     GetCampaignInsights(insightService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Videos(service videos.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/projects/:id/videos",
			Method:      http.MethodGet,
			Handler:     ListVideos(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/projects/:id/videos",
			Method:      http.MethodPost,
			Handler:     UploadVideos(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
