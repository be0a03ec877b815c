package productcontroller

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// Uploads says where product images are written and how they are served.
type Uploads struct {
	Dir     string // Local folder, mounted at /uploads
	BaseURL string // SERVER_URL
}

// save stores every "image" file of the multipart form and returns the image
// rows to attach, positioned after the existing offset.
func (u Uploads) save(c *gin.Context, offset int) ([]models.ProductImage, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	saveDir := filepath.Join(u.Dir, "products")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	images := make([]models.ProductImage, 0, len(files))
	for i, file := range files {
		filename := uploadName(file)
		if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
			return nil, fmt.Errorf("save image %q: %w", file.Filename, err)
		}
		images = append(images, models.ProductImage{
			URL:      strings.TrimRight(u.BaseURL, "/") + "/uploads/products/" + filename,
			Position: offset + i,
		})
	}
	return images, nil
}

func uploadName(file *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%s%s", uuid.NewString()[:8], base, ext)
}
