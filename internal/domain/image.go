package domain

// Image описывает файл, загруженный через multipart/form-data.
type Image struct {
	Data     []byte
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

func NewImage(data []byte, mimeType string, size int64, name string) *Image {
	return &Image{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

// ImageRef — ссылка на сохранённое изображение.
// В режимах disk и s3 заполняется Key (имя файла или ключ объекта),
// в режиме inline — Data (байты, хранящиеся в строке продукта).
// Одновременно активно только одно представление.
type ImageRef struct {
	Key  string
	Data []byte
}

// IsInline сообщает, хранится ли изображение внутри строки продукта.
func (r *ImageRef) IsInline() bool {
	return r != nil && len(r.Data) > 0
}
