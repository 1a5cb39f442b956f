package app

import (
	"github.com/cybaemtech/site-core/internal/middleware"
	"github.com/cybaemtech/site-core/internal/modules/application"
	"github.com/cybaemtech/site-core/internal/modules/auth"
	"github.com/cybaemtech/site-core/internal/modules/blog"
	"github.com/cybaemtech/site-core/internal/modules/crm/activity"
	"github.com/cybaemtech/site-core/internal/modules/crm/lead"
	"github.com/cybaemtech/site-core/internal/modules/crm/setting"
	"github.com/cybaemtech/site-core/internal/modules/crm/spreadsheet"
	"github.com/cybaemtech/site-core/internal/modules/crontask"
	"github.com/cybaemtech/site-core/internal/modules/health"
	"github.com/cybaemtech/site-core/internal/modules/notify"
	"github.com/cybaemtech/site-core/internal/modules/publisher"
	"github.com/cybaemtech/site-core/internal/modules/seo"
	"github.com/cybaemtech/site-core/internal/modules/sitemap"
	"github.com/cybaemtech/site-core/internal/modules/user"
	"github.com/cybaemtech/site-core/internal/pkg/mail"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	cfg := a.cfg

	authMW := middleware.Auth(db)
	superAdminMW := middleware.RequireSuperAdmin(db)

	// CRM panel routes run open in development so the local frontend can be
	// worked on without a login round-trip.
	guardMW := authMW
	if cfg.IsDev() {
		guardMW = func(c *gin.Context) { c.Next() }
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	sender := mail.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := notify.NewService(sender, cfg.AdminEmail, a.logger)

	pubSvc := publisher.NewService(db, cfg.StaticDir(), cfg.WebDir(), cfg.FrontendURL, a.logger)
	a.publisher = pubSvc

	sitemap.NewHandler(db, cfg.FrontendURL).RegisterRoutes(r)

	api := r.Group("/api")

	health.NewHandler(db).RegisterRoutes(api)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db), notifier).RegisterRoutes(api, authMW, superAdminMW)

	blog.NewHandler(blog.NewService(db), pubSvc, notifier, a.logger).RegisterRoutes(api, authMW)
	seo.NewHandler(seo.NewService(db)).RegisterRoutes(api, authMW)
	publisher.NewHandler(pubSvc).RegisterRoutes(api, authMW)

	leadSvc := lead.NewService(db)
	a.spreadsheets = spreadsheet.NewService(db, leadSvc, a.logger)

	lead.NewHandler(leadSvc, notifier).RegisterRoutes(api, guardMW)
	activity.NewHandler(activity.NewService(db)).RegisterRoutes(api, guardMW)
	setting.NewHandler(setting.NewService(db)).RegisterRoutes(api, guardMW)
	spreadsheet.NewHandler(a.spreadsheets).RegisterRoutes(api, guardMW)

	application.NewHandler(application.NewService(db, cfg.UploadDir()), notifier).RegisterRoutes(api, authMW)

	crontask.NewHandler(a.sched).RegisterRoutes(api, authMW)
}
