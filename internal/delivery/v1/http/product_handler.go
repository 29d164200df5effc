package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает все товары каталога
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// getProductByID
//
//	@Summary		Товар по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Идентификатор товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidProductID.Error(), chi.URLParam(r, "id"))
		WriteError(w, e.ErrInvalidProductID)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("get product %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает товар в каталоге, опционально с изображением
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Название товара"
//	@Param			price		formData	number	true	"Цена"
//	@Param			description	formData	string	false	"Описание"
//	@Param			image		formData	file	false	"Изображение товара"
//	@Success		201	{object}	ProductResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 50 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrExpectedMultipart.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	prMeta, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d bad create request: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	image, err := parseImageFile(r)
	if err != nil {
		p.logger.Warnf("%d bad image upload: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(
		r.Context(),
		usecase.NewCreateProductReq(prMeta.Name, prMeta.Description, prMeta.PriceCents, image),
	)
	if err != nil {
		p.logger.Warnf("create product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// checkImage
//
//	@Summary		Диагностика файла изображения
//	@Tags			products
//	@Produce		json
//	@Param			filename	path		string	true	"Имя файла"
//	@Success		200			{object}	map[string]bool
//	@Router			/check-image/{filename} [get]
func (p *ProductHandler) checkImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	exists, err := p.productUsecase.CheckImage(r.Context(), filename)
	if err != nil {
		p.logger.Warnf("check image %s failed: %s", filename, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]bool{"exists": exists})
}
