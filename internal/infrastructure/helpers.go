package infrastructure

import "github.com/DRSN-tech/catalog-service/pkg/e"

// ExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Допустимы jpeg, png и gif; остальные типы отклоняются с e.ErrInvalidFileType.
func ExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/gif":
		return "gif", nil
	default:
		return "", e.ErrInvalidFileType
	}
}
