package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Kellerman81/go_media_sorter/api"
	"github.com/Kellerman81/go_media_sorter/apiexternal"
	"github.com/Kellerman81/go_media_sorter/config"
	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/Kellerman81/go_media_sorter/scanner"
	"github.com/Kellerman81/go_media_sorter/scheduler"
	"github.com/Kellerman81/go_media_sorter/structure"
	"github.com/Kellerman81/go_media_sorter/watcher"

	"github.com/DeanThompson/ginpprof"
	"github.com/gin-gonic/gin"
	ginlog "github.com/toorop/gin-logrus"
)

func main() {
	cfg, errcfg := config.LoadCfg(config.Configfile)
	if errcfg != nil {
		log.Fatalf("config not readable: %v", errcfg)
	}

	logger.InitLogger(logger.LoggerConfig{
		LogLevel:     cfg.General.LogLevel,
		LogFileSize:  cfg.General.LogFileSize,
		LogFileCount: cfg.General.LogFileCount,
		LogCompress:  cfg.General.LogCompress,
	})
	logger.Log.Infoln("Starting go_media_sorter")
	logger.Log.Infoln("Watch folder: ", cfg.Paths.WatchPath)
	logger.Log.Infoln("------------------------------")
	logger.Log.Infoln("")

	apiexternal.NewTmdbClient(cfg.General.TheMovieDBApiKey, cfg.General.Tmdblimiterseconds, cfg.General.Tmdblimitercalls)
	if cfg.General.PushoverApiKey != "" {
		apiexternal.NewPushOverClient(cfg.General.PushoverApiKey)
	}

	scanner.CreateFolderWithSubfolders(cfg.Paths.TvPath, 0)
	scanner.CreateFolderWithSubfolders(cfg.Paths.MoviesPath, 0)

	movelog := structure.NewMoveLog(cfg.General.MoveLogFile, cfg.General.LogFileSize, cfg.General.LogFileCount)
	organizer := structure.NewOrganizer(cfg, structure.TmdbLookup{}, movelog)

	logger.Log.Infoln("Starting Scheduler")
	scheduler.InitScheduler(cfg.Scheduler, organizer)

	if cfg.General.EnableFileWatcher {
		logger.Log.Infoln("Starting File Watcher")
		w, errw := watcher.Start(cfg.Paths.WatchPath, func() {
			scheduler.QueueScan.Dispatch("scan_watch_folder_event", organizer.ScanWatchFolder)
		})
		if errw != nil {
			logger.Log.Errorln("File watcher failed: ", errw)
		} else {
			defer w.Close()
		}
	}

	logger.Log.Infoln("Starting API")
	router := gin.New()
	if !strings.EqualFold(cfg.General.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Log.Infoln("Starting API Logger")
	router.Use(ginlog.Logger(logger.Log), gin.Recovery())

	logger.Log.Infoln("Starting API Endpoints")
	routerapi := router.Group("/api")
	api.AddSorterRoutes(routerapi, organizer, movelog)

	if strings.EqualFold(cfg.General.LogLevel, "Debug") {
		ginpprof.Wrap(router)
	}

	logger.Log.Infoln("Starting API Webserver on port", cfg.General.WebPort)
	server := &http.Server{
		Addr:    ":" + cfg.General.WebPort,
		Handler: router,
	}

	go func() {
		// service connections
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("receive interrupt signal")

	scheduler.QueueScan.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}
