package initialize

import (
	"fmt"
	"net/http"

	"repohub/app/controllers"
	"repohub/app/db"
	"repohub/app/history"
	"repohub/app/middleware"
	"repohub/app/models"
	"repohub/app/repo"
	"repohub/app/services"
	"repohub/app/session"
	"repohub/app/storage"
	"repohub/app/views"
	"repohub/config"
	"repohub/global"
	"repohub/router"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Router  http.Handler
	Storage *storage.Store
	History *history.Log
}

// Build wires the whole application: config, database, migrations,
// storage, then the repository/service/controller layers and the
// router.
func Build(configPath string, debug bool) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Repository{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store, err := storage.New(cfg.Storage.Root)
	if err != nil {
		return nil, err
	}
	changes := history.New(cfg.History.Path)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.ExpMin)

	renderer, err := views.New(global.Logger)
	if err != nil {
		return nil, err
	}

	userRepo := repo.NewUserRepository(gdb)
	repoRepo := repo.NewRepositoryRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	repoSvc := services.NewRepositoryService(repoRepo, store, changes)

	pageCtrl := controllers.NewPageController(sessions, renderer)
	authCtrl := controllers.NewAuthController(userSvc, sessions, renderer)
	repoCtrl := controllers.NewRepoController(repoSvc, sessions, renderer)
	fileCtrl := controllers.NewFileController(store, changes, sessions, renderer)

	h := router.New(pageCtrl, authCtrl, repoCtrl, fileCtrl)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Storage: store, History: changes}, nil
}
