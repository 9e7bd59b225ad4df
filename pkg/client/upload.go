package client

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"staybook/pkg/api"
)

// Uploader stores hotel and category images outside the API.
type Uploader interface {
	Upload(ctx context.Context, f File) (api.Image, error)
	Destroy(ctx context.Context, publicID string) error
}

type File struct {
	Name string
	Data []byte
}

// CloudinaryUploader uses unsigned uploads with an upload preset and signed
// destroy calls.
type CloudinaryUploader struct {
	base      string
	preset    string
	apiKey    string
	apiSecret string
	hc        *http.Client
	now       func() time.Time
}

const CloudinaryBaseURL = "https://api.cloudinary.com/v1_1/"

// NewCloudinaryUploader targets base+cloud, e.g. CloudinaryBaseURL+"demo".
// apiKey and apiSecret are only needed for Destroy.
func NewCloudinaryUploader(base, preset, apiKey, apiSecret string) *CloudinaryUploader {
	return &CloudinaryUploader{
		base:      strings.TrimRight(base, "/"),
		preset:    preset,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		hc:        &http.Client{Timeout: 60 * time.Second},
		now:       time.Now,
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Result    string `json:"result"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) Upload(ctx context.Context, f File) (api.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return api.Image{}, err
	}
	fw, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return api.Image{}, err
	}
	if _, err := fw.Write(f.Data); err != nil {
		return api.Image{}, err
	}
	if err := mw.Close(); err != nil {
		return api.Image{}, err
	}

	var out cloudinaryResponse
	if err := u.post(ctx, "/image/upload", mw.FormDataContentType(), &buf, &out); err != nil {
		return api.Image{}, fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return api.Image{}, fmt.Errorf("upload %s: incomplete response", f.Name)
	}
	return api.Image{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Destroy deletes an uploaded image. The request is signed with
// sha1("public_id=<id>&timestamp=<ts>" + secret).
func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(u.now().Unix(), 10)
	form := url.Values{
		"public_id": {publicID},
		"api_key":   {u.apiKey},
		"timestamp": {ts},
		"signature": {DestroySignature(publicID, ts, u.apiSecret)},
	}
	var out cloudinaryResponse
	if err := u.post(ctx, "/image/destroy", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &out); err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("destroy %s: result %q", publicID, out.Result)
	}
	return nil
}

func DestroySignature(publicID, timestamp, secret string) string {
	sum := sha1.Sum([]byte("public_id=" + publicID + "&timestamp=" + timestamp + secret))
	return hex.EncodeToString(sum[:])
}

func (u *CloudinaryUploader) post(ctx context.Context, path, contentType string, body io.Reader, out *cloudinaryResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := u.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if out.Error != nil && out.Error.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// UploadImages uploads files with at most limit in flight and returns the
// images in input order. Any failure fails the whole batch; images already
// uploaded are destroyed best-effort.
func UploadImages(ctx context.Context, u Uploader, files []File, limit int) ([]api.Image, error) {
	if limit <= 0 {
		limit = 4
	}
	out := make([]api.Image, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		g.Go(func() error {
			img, err := u.Upload(gctx, f)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, img := range out {
			if img.PublicID != "" {
				_ = u.Destroy(context.WithoutCancel(ctx), img.PublicID)
			}
		}
		return nil, err
	}
	return out, nil
}

// AddHotelImages uploads files and attaches them to the hotel. If the API
// rejects them the uploads are destroyed again.
func (c *Client) AddHotelImages(ctx context.Context, u Uploader, hotelID string, files []File, limit int) ([]api.Image, error) {
	if len(files) == 0 {
		return nil, invalid("Select a image first!")
	}
	imgs, err := UploadImages(ctx, u, files, limit)
	if err != nil {
		return nil, err
	}
	if err := c.AddImages(ctx, hotelID, imgs); err != nil {
		for _, img := range imgs {
			_ = u.Destroy(context.WithoutCancel(ctx), img.PublicID)
		}
		return nil, err
	}
	return imgs, nil
}

// RemoveHotelImage deletes the stored image, then detaches it from the hotel.
func (c *Client) RemoveHotelImage(ctx context.Context, u Uploader, hotelID, publicID string) error {
	if publicID == "" {
		return invalid(api.MsgPublicIDMissing)
	}
	if err := u.Destroy(ctx, publicID); err != nil {
		return err
	}
	return c.RemoveImage(ctx, hotelID, publicID)
}

// DeleteHotelWithImages deletes the hotel and then its stored images.
func (c *Client) DeleteHotelWithImages(ctx context.Context, u Uploader, h api.Hotel) error {
	if err := c.DeleteHotel(ctx, h.ID); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, img := range h.Images {
		g.Go(func() error { return u.Destroy(gctx, img.PublicID) })
	}
	return g.Wait()
}
