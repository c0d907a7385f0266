package services

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	pkgerrors "github.com/pkg/errors"
)

// PhotoUploader stores product photos and returns their public URLs in input order.
type PhotoUploader interface {
	Upload(ctx context.Context, photos []string) ([]string, error)
}

// FakeUploader does not store anything; it maps each photo name under a fixed bucket URL.
type FakeUploader struct {
	BaseURL string
}

func (u FakeUploader) Upload(_ context.Context, photos []string) ([]string, error) {
	base := strings.TrimRight(u.BaseURL, "/")
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		name := path.Base(strings.TrimSpace(p))
		out = append(out, base+"/"+url.PathEscape(name))
	}
	return out, nil
}

// CloudinaryUploader pushes each photo (remote URL, data URI or local path) to Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "cloudinary init")
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, photos []string) ([]string, error) {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		res, err := u.cld.Upload.Upload(ctx, p, uploader.UploadParams{Folder: u.folder})
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "upload %s", p)
		}
		if res.Error.Message != "" {
			return nil, pkgerrors.Errorf("upload %s: %s", p, res.Error.Message)
		}
		out = append(out, res.SecureURL)
	}
	return out, nil
}
