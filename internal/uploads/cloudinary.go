package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// The core never stores image bytes, only the URL Cloudinary hands back.

func getCloudinaryInstance() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

func upload(file multipart.File, folder, publicID string) (string, error) {
	cld, err := getCloudinaryInstance()
	if err != nil {
		return "", fmt.Errorf("cloudinary config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %v", err)
	}
	return resp.SecureURL, nil
}

// UploadAvatar stores a profile picture keyed by the uploading identity
// and the upload time, and returns its public URL.
func UploadAvatar(file multipart.File, identity string) (string, error) {
	return upload(file, "avatars", fmt.Sprintf("%s-%d", identity, time.Now().Unix()))
}

// UploadCover stores a project or hackathon cover image.
func UploadCover(file multipart.File, identity string) (string, error) {
	return upload(file, "covers", fmt.Sprintf("%s-%d", identity, time.Now().Unix()))
}
