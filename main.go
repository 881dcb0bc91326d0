package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	salesUseCase "sales/src/sales/application/usecase"
	"sales/src/sales/domain/port"
	salesCache "sales/src/sales/infrastructure/cache"
	salesClient "sales/src/sales/infrastructure/client"
	salesController "sales/src/sales/infrastructure/controller"
	salesObserver "sales/src/sales/infrastructure/observer"
	salesPersistence "sales/src/sales/infrastructure/persistence"
	"sales/src/sales/infrastructure/printer"
	sharedConfig "sales/src/shared/infrastructure/config"
	"sales/src/shared/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const version = "1.0.0"

func main() {
	log.Println("🚀 POS Register Service - Iniciando...")

	cfg, err := sharedConfig.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	router := gin.New()

	serverMetrics := metrics.NewServerMetrics(prometheus.DefaultRegisterer, "register")
	sharedConfig.SetupSharedMiddleware(router, cfg.Shared, serverMetrics)

	if cfg.PrometheusEnabled {
		log.Println("Registering /metrics endpoint for Register service")
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for Register service")
	}

	// Conectar a la base de datos (opcional: sin DB se usa el libro en memoria)
	log.Printf("Intentando conectar a %s en %s:%s", cfg.DB.Name, cfg.DB.Host, cfg.DB.Port)
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		db = nil
	} else {
		defer db.Close()
		if err = db.Ping(); err != nil {
			log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
			log.Println("⚠️  Continuando con libro contable en memoria")
			db = nil
		} else {
			log.Println("✅ Conexión a la base de datos establecida con éxito")
		}
	}

	health := func(ctx *gin.Context) {
		status := gin.H{"status": "ok", "version": version, "database": db != nil}
		ctx.JSON(http.StatusOK, status)
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	setupRegisterModule(v1, cfg, db)

	log.Printf("✅ Servidor POS Register iniciado en http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

// setupRegisterModule configura el módulo de cajas y reportes
func setupRegisterModule(router *gin.RouterGroup, cfg *sharedConfig.Config, db *sql.DB) {
	log.Println("Configurando módulo Register...")

	catalog := buildCatalog(cfg, db)
	inventory := salesClient.NewStockClient()
	renderer := printer.NewTextReceiptRenderer(cfg.StoreName, time.Local)

	discountRules, err := cfg.DiscountRules()
	if err != nil {
		log.Fatalf("❌ Invalid discount configuration: %v", err)
	}

	// Libro contable: Postgres si hay DB, si no en memoria (solo desarrollo)
	var accounting port.AccountingGateway
	var saleLogs port.SaleLogRepository
	if db != nil {
		repo := salesPersistence.NewAccountingPostgresRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("❌ %v", err)
		}
		accounting, saleLogs = repo, repo
	} else {
		ledger := salesPersistence.NewMemoryLedger()
		accounting, saleLogs = ledger, ledger
	}

	revenueMetrics := salesObserver.NewRevenueMetrics(prometheus.DefaultRegisterer)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		log.Printf("✅ Redis revenue observer enabled (%s)", cfg.Redis.Addr)
	}

	var kafkaWriter *kafka.Writer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaWriter = salesObserver.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Printf("✅ Kafka revenue observer enabled (topic %s)", cfg.Kafka.Topic)
	}

	// Cada caja tiene su propio caso de uso; los observers se inyectan al crearla
	factory := func(stationID string) *salesUseCase.RegisterUseCase {
		observers := []port.RevenueObserver{
			salesObserver.NewLogObserver(stationID, nil),
			salesObserver.NewPrometheusObserver(stationID, revenueMetrics),
		}
		if redisClient != nil {
			observers = append(observers, salesObserver.NewRedisObserver(redisClient, cfg.Redis.KeyPrefix, stationID, cfg.Redis.TTL))
		}
		if kafkaWriter != nil {
			observers = append(observers, salesObserver.NewKafkaObserver(kafkaWriter, stationID))
		}
		return salesUseCase.NewRegisterUseCase(
			stationID,
			cfg.Currency,
			catalog,
			inventory,
			accounting,
			renderer,
			discountRules,
			observers...,
		)
	}

	registerCtrl := salesController.NewRegisterController(salesUseCase.NewStationPool(factory))
	reportCtrl := salesController.NewReportController(
		salesUseCase.NewDailyReportUseCase(saleLogs),
		salesUseCase.NewListSalesUseCase(saleLogs),
	)

	registerCtrl.RegisterRoutes(router)
	reportCtrl.RegisterRoutes(router)

	log.Println("Módulo Register configurado exitosamente")
}

// buildCatalog elige la fuente del catálogo de items
func buildCatalog(cfg *sharedConfig.Config, db *sql.DB) port.ItemCatalog {
	switch cfg.Catalog.Source {
	case "memory":
		items, _ := cfg.CatalogItems()
		catalog := salesCache.NewMemoryCatalog()
		catalog.Load(items)
		log.Printf("✅ In-memory catalog loaded with %d items", catalog.Len())
		return catalog
	case "db":
		catalog := salesCache.NewMemoryCatalog()
		if db == nil {
			log.Println("⚠️  Catalog source is db but there is no DB connection, catalog is empty")
			return catalog
		}
		if err := catalog.LoadFromDB(db); err != nil {
			log.Printf("⚠️  Warning: Could not load catalog: %v", err)
		}
		return catalog
	default:
		var catalog port.ItemCatalog = salesClient.NewPIMClient()
		if cfg.Catalog.CacheTTL > 0 {
			catalog = salesCache.NewCachedCatalog(catalog, cfg.Catalog.CacheTTL)
		}
		return catalog
	}
}
