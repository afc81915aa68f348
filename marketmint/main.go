package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketmint/marketmint/config"
	"marketmint/marketmint/controllers"
	"marketmint/marketmint/routes"
	"marketmint/marketmint/services/llm"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/services/scraper"
	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/storage"
	"marketmint/marketmint/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	productDAO := dao.NewProductDAO(db.DB)
	contentDAO := dao.NewContentDAO(db.DB)
	chatDAO := dao.NewChatMessageDAO(db.DB)
	campaignDAO := dao.NewCampaignDAO(db.DB)
	analysisDAO := dao.NewAnalysisDAO(db.DB)
	imageDAO := dao.NewImageProjectDAO(db.DB)

	composer, err := prompt.NewComposer(prompt.OutputFormat(cfg.OutputFormat), cfg.PromptsFile)
	if err != nil {
		logging.ErrorLogger.Error("prompt composer init error", zap.Error(err))
		os.Exit(1)
	}
	searchClient := search.NewClient(cfg)
	textClient := llm.NewClient(cfg.TextAPIURL, cfg.TextAPIToken, cfg.TextGenTimeout)
	imageClient := llm.NewImageClient(cfg.ImageAPIURL, cfg.ImageAPIToken, cfg.ImageGenTimeout)

	// Competitor page scraping is optional context; run without it when the
	// browser runtime is unavailable.
	var pageScraper controllers.PageScraper
	if s, err := scraper.NewScraper(); err != nil {
		logging.AppLogger.Warn("scraper unavailable, competitor pages will be skipped", zap.Error(err))
	} else {
		pageScraper = s
		defer s.Close()
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logging.ErrorLogger.Error("minio connection error", zap.Error(err))
		os.Exit(1)
	}

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	productCtrl := controllers.NewProductController(productDAO)
	contentCtrl := controllers.NewContentController(productDAO, contentDAO, composer, searchClient, textClient, pageScraper, cfg.ScrapeTimeout)
	chatCtrl := controllers.NewChatController(productDAO, chatDAO, composer, searchClient, textClient, prompt.OutputFormat(cfg.OutputFormat))
	socialCtrl := controllers.NewSocialController(productDAO, campaignDAO, composer, textClient)
	marketCtrl := controllers.NewMarketController(productDAO, analysisDAO, composer, textClient)
	imageCtrl := controllers.NewImageController(productDAO, imageDAO, imageClient, minioClient)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/products", routes.ProductRoutes(productCtrl, cfg))
	r.Mount("/content", routes.ContentRoutes(contentCtrl, chatCtrl, cfg))
	r.Mount("/social", routes.SocialRoutes(socialCtrl, cfg))
	r.Mount("/market", routes.MarketRoutes(marketCtrl, cfg))
	r.Mount("/images", routes.ImageRoutes(imageCtrl, cfg))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
