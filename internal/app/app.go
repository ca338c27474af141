package app

import (
	"net/http"

	"club-app-go/internal/config"
	"club-app-go/internal/db"
	billingdomain "club-app-go/internal/domain/billing"
	checkoutdomain "club-app-go/internal/domain/checkout"
	documentsdomain "club-app-go/internal/domain/documents"
	membersdomain "club-app-go/internal/domain/members"
	notificationsdomain "club-app-go/internal/domain/notifications"
	passesdomain "club-app-go/internal/domain/passes"
	billingrepo "club-app-go/internal/repository/billing"
	checkoutrepo "club-app-go/internal/repository/checkout"
	documentsrepo "club-app-go/internal/repository/documents"
	membersrepo "club-app-go/internal/repository/members"
	notificationsrepo "club-app-go/internal/repository/notifications"
	passesrepo "club-app-go/internal/repository/passes"
	"club-app-go/internal/transport/httpserver"
	"club-app-go/internal/transport/httpserver/handler"
	"club-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	membersRepo := membersrepo.NewPostgres(dbConn)
	documentsRepo := documentsrepo.NewPostgres(dbConn)
	passesRepo := passesrepo.NewPostgres(dbConn)
	billingRepo := billingrepo.NewPostgres(dbConn)
	notificationsRepo := notificationsrepo.NewPostgres(dbConn)
	checkoutRepo := checkoutrepo.NewPostgres(dbConn)

	notificationsSvc := notificationsdomain.NewService(notificationsRepo)
	hooks := notificationsdomain.NewHooks(notificationsSvc)

	membersSvc := membersdomain.NewService(membersRepo, hooks)
	documentsSvc := documentsdomain.NewService(documentsRepo, hooks)
	passesSvc := passesdomain.NewService(passesRepo)
	billingSvc := billingdomain.NewService(billingRepo, hooks)
	checkoutSvc := checkoutdomain.NewService(checkoutRepo, membersRepo, hooks)

	resolver := notificationsdomain.NewResolver(membersRepo, billingRepo, documentsRepo)

	handlers := handler.New(cfg, membersSvc, documentsSvc, passesSvc, billingSvc, notificationsSvc, checkoutSvc, resolver, log)
	router := httpserver.NewRouter(cfg, handlers, membersSvc, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
