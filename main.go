package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"splitscan/pkg/config"
	"splitscan/pkg/handlers"
	"splitscan/pkg/logger"
	"splitscan/pkg/models"
	"splitscan/pkg/services/ocr"
	"splitscan/pkg/services/pdftext"
	"splitscan/pkg/services/receipt"
)

func main() {
	// A missing .env just means the real environment is already set.
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Bill{}, &models.BillItem{}); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}

	engine := buildEngine(cfg, log)
	processor := receipt.NewProcessor(engine, receipt.ProcessorOptions{
		Filter: receipt.NewFilter(cfg.DenylistExtra...),
		Layout: pdftext.Options{
			RowTolerance: cfg.RowTolerance,
			LineGap:      cfg.LineGap,
			ColumnGap:    cfg.ColumnGap,
		},
		Rasterizer: pdftext.NewRasterizer(cfg.PdftoppmPath, cfg.RasterDPI),
		Logger:     log,
	})

	receiptHandler := handlers.NewReceiptHandler(processor, log)
	billHandler := handlers.NewBillHandler(db, log)

	r := gin.Default()
	api := r.Group("/api")
	{
		api.POST("/receipts/scan", receiptHandler.Scan)
		api.POST("/receipts/parse-text", receiptHandler.ParseText)
		api.POST("/receipts/improve", receiptHandler.Improve)

		api.POST("/bills", billHandler.Create)
		api.GET("/bills", billHandler.List)
		api.GET("/bills/:id", billHandler.Get)
		api.PUT("/bills/:id", billHandler.Update)
		api.DELETE("/bills/:id", billHandler.Delete)

		api.POST("/bills/:id/items", billHandler.AddItem)
		api.PUT("/bills/:id/items/:itemID", billHandler.UpdateItem)
		api.DELETE("/bills/:id/items/:itemID", billHandler.DeleteItem)
		api.GET("/bills/:id/summary", billHandler.Summary)
	}

	log.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("ocrProvider", cfg.OCRProvider))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func buildEngine(cfg *config.Config, log *zap.Logger) ocr.Engine {
	if cfg.OCRProvider == "azure" {
		if cfg.AzureEndpoint == "" || cfg.AzureKey == "" {
			log.Fatal("OCR_PROVIDER=azure requires AZURE_VISION_ENDPOINT and AZURE_VISION_KEY")
		}
		return ocr.NewAzureEngine(cfg.AzureEndpoint, cfg.AzureKey)
	}
	return ocr.NewTesseractEngine(cfg.TesseractLang)
}
