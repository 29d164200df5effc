package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure/images"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure/kafka"
	diskRepo "github.com/DRSN-tech/catalog-service/internal/repository/disk"
	inlineRepo "github.com/DRSN-tech/catalog-service/internal/repository/inline"
	s3Repo "github.com/DRSN-tech/catalog-service/internal/repository/minio"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	redisRepo "github.com/DRSN-tech/catalog-service/internal/repository/redis"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/clients"
	"github.com/DRSN-tech/catalog-service/pkg/closer"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/DRSN-tech/catalog-service/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App агрегирует ресурсы процесса. Политика запуска: недоступность
// любого сконфигурированного бэкенда при старте фатальна; после старта
// ошибки распространяются на уровне отдельных запросов.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	httpSrv     *v1Http.Server
	imagesInfra *images.ImagesInfra
	closer      *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	c := closer.NewCloser(0)

	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())

	store, err := buildImageStore(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize image store")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	imagesInfra := images.NewImagesInfra(store, log)

	var cacheRepo usecase.CacheRepository
	if cfg.Redis != nil {
		redisClient := clients.NewRedisClient(cfg.Redis)

		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(redisCtx)
		redisCancel()
		if err != nil {
			log.Errorf(err, "failed to connect to redis")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		c.Add(func(_ context.Context) error {
			return redisClient.Client.Close()
		})
		cacheRepo = redisRepo.NewCacheRepo(redisClient, cfg.Redis, log)
	}

	var producer usecase.EventProducer
	if cfg.Kafka != nil {
		kafkaProducer := kafka.NewProducer(log, cfg.Kafka)
		c.Add(func(_ context.Context) error {
			return kafkaProducer.Close()
		})
		producer = kafkaProducer
	}

	productUC := usecase.NewProductUC(productRepo, imagesInfra, cacheRepo, producer, log, cfg.QueryTimeout)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, cfg.Storage)

	return &App{
		cfg:         cfg,
		logger:      log,
		httpSrv:     v1Http.NewServer(r, cfg.Http),
		imagesInfra: imagesInfra,
		closer:      c,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения
// или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s (storage mode: %s)", a.cfg.Http.Port, a.cfg.Storage.Mode)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	// Дождаться фоновых удалений осиротевших изображений
	cleanupCtx, cleanupCancel := context.WithTimeout(shutdownCtx, 5*time.Second)
	if err := a.imagesInfra.WaitForCleanup(cleanupCtx); err != nil {
		a.logger.Warnf("Image cleanup did not finish before shutdown: %v", err)
	}
	cleanupCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource shutdown error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// buildImageStore выбирает реализацию хранилища изображений по режиму из
// конфигурации. В режиме s3 бакет создаётся при старте, если его нет.
func buildImageStore(cfg *config.Config, log logger.Logger) (usecase.ImageStore, error) {
	switch cfg.Storage.Mode {
	case config.StorageModeInline:
		return inlineRepo.NewImageStore(), nil

	case config.StorageModeDisk:
		return diskRepo.NewImageStore(cfg.Storage), nil

	case config.StorageModeS3:
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer minioCancel()
		if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return s3Repo.NewImageStore(minioClient, cfg.Minio), nil

	default:
		return nil, e.Wrap(whereami.WhereAmI(), errors.New("unknown storage mode "+cfg.Storage.Mode))
	}
}
