package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ErrorResponse — единый формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProductResponse — представление продукта в ответах API.
// Price — число в денежных единицах (19.99), не в центах.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Image       *string `json:"image"`
}

// ProductMetadata — распарсенные текстовые поля формы создания продукта.
type ProductMetadata struct {
	Name        string
	Description *string
	PriceCents  int64
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// ToHTTPResponse отображает ошибку в статус-код и клиентское сообщение.
// Внутренние ошибки редуцируются до общего текста: детали остаются в логах.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrProductNameRequired),
		errors.Is(err, e.ErrInvalidProductID),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrInvalidFileType),
		errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, unwrapSentinel(err).Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapSentinel достаёт последнюю ошибку из цепочки обёрток,
// чтобы клиенту не утекали пути файлов из контекста e.Wrap.
func unwrapSentinel(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents конвертирует строку вида "599.99" или "600" в центы (int64).
// Отклоняет нечисловые значения, отрицательные, более двух знаков после
// запятой и значения выше разумного предела.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseProductForm извлекает и валидирует текстовые поля формы.
// name и price обязательны, description опционально.
func parseProductForm(r *http.Request) (*ProductMetadata, error) {
	name := r.FormValue("name")
	priceStr := r.FormValue("price")

	if name == "" || priceStr == "" {
		return nil, e.ErrMissingFields
	}

	priceCents, err := parsePriceToCents(priceStr)
	if err != nil {
		return nil, err
	}

	var description *string
	if v := r.FormValue("description"); v != "" {
		description = &v
	}

	return &ProductMetadata{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
	}, nil
}

// parseImageFile читает опциональный файл из поля image.
// Возвращает (nil, nil), если файл не был загружен.
func parseImageFile(r *http.Request) (*domain.Image, error) {
	const maxFileSize = 15 << 20

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	mimeType := fh.Header.Get("Content-Type")
	return domain.NewImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	return data, nil
}

func toProductResponse(info *usecase.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:          info.ID,
		Name:        info.Name,
		Description: info.Description,
		Price:       float64(info.PriceCents) / 100,
		Image:       info.Image,
	}
}

func toProductResponses(infos []usecase.ProductInfo) []ProductResponse {
	result := make([]ProductResponse, 0, len(infos))
	for i := range infos {
		result = append(result, toProductResponse(&infos[i]))
	}

	return result
}
