package validation

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageUpload is an uploaded file. ContentType and Extension are set by ValidateImage from the file content.
type ImageUpload struct {
	FileName    string
	Data        []byte
	ContentType string
	Extension   string
}

func (u *ImageUpload) Size() int64 {
	return int64(len(u.Data))
}

// ValidateImage detects the real file type; the client supplied name and header are ignored.
func ValidateImage(upload *ImageUpload, maxSize int64) Errors {
	errs := Errors{}

	if upload.Size() == 0 {
		errs.Add("image", "Отправленный файл пуст.")
		return errs
	}

	if maxSize > 0 && upload.Size() > maxSize {
		errs.Add("image", fmt.Sprintf("Размер файла не должен превышать %s.", humanize.IBytes(uint64(maxSize))))
		return errs
	}

	detected := mimetype.Detect(upload.Data)
	if !mimetype.EqualsAny(detected.String(), allowedImageTypes...) {
		errs.Add("image", "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением.")
		return errs
	}

	upload.ContentType = detected.String()
	upload.Extension = detected.Extension()

	return errs
}
