package http

import (
	"net/http"

	_ "github.com/DRSN-tech/catalog-service/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, storage *cfg.StorageCfg) {
	r.router.Get("/swagger/*", httpSwagger.Handler())

	prHandler := NewProductHandler(prUC, r.logger)
	registerProductRoutes(r.router, prHandler)

	// Статика и диагностика файлов нужны только при внешнем хранении
	if storage.Mode == cfg.StorageModeDisk {
		registerStaticRoutes(r.router, storage)
	}
	if storage.Mode != cfg.StorageModeInline {
		r.router.Get("/check-image/{filename}", prHandler.checkImage)
	}
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/{id}", prHandler.getProductByID)
	})
}

// registerStaticRoutes монтирует каталог загрузок под публичным префиксом.
// Content-Type определяется файловым сервером по расширению.
func registerStaticRoutes(router chi.Router, storage *cfg.StorageCfg) {
	fileServer := http.StripPrefix(storage.PublicPrefix, http.FileServer(http.Dir(storage.UploadDir)))
	router.Get(storage.PublicPrefix+"/*", fileServer.ServeHTTP)
}
