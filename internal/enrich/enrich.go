// Package enrich looks up best-effort metadata for a URL: its page title and favicon.
//
// Nothing here returns an error to the caller. A failed title lookup yields
// model.TitleNotFound and a failed favicon lookup yields nil.
package enrich

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	_ "github.com/biessek/golang-ico"
	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/model"
)

// FaviconSize is the edge length favicons are resized to.
const FaviconSize = 16

const (
	defaultTitleTimeout   = 5 * time.Second
	defaultFaviconTimeout = 3 * time.Second

	maxTitleBody   = 2 << 20
	maxFaviconBody = 1 << 20
)

var errNoHost = errors.New("url has no scheme or host")

// Service performs title and favicon lookups over HTTP.
type Service struct {
	client         *http.Client
	titleTimeout   time.Duration
	faviconTimeout time.Duration
	userAgent      string
	logger         *log.Logger
}

// ServiceParams holds parameters for creating a Service.
type ServiceParams struct {
	TitleTimeout   time.Duration // defaults to 5s
	FaviconTimeout time.Duration // defaults to 3s
	UserAgent      string
	Logger         *log.Logger  // optional
	Client         *http.Client // optional, uses a fresh client if nil
}

// NewService creates a Service with the given parameters.
func NewService(params ServiceParams) *Service {
	s := &Service{
		client:         params.Client,
		titleTimeout:   params.TitleTimeout,
		faviconTimeout: params.FaviconTimeout,
		userAgent:      params.UserAgent,
		logger:         params.Logger,
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	if s.titleTimeout <= 0 {
		s.titleTimeout = defaultTitleTimeout
	}
	if s.faviconTimeout <= 0 {
		s.faviconTimeout = defaultFaviconTimeout
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// FetchTitle returns the trimmed text of the page's first <title> element,
// or model.TitleNotFound on any failure.
func (s *Service) FetchTitle(ctx context.Context, rawURL string) string {
	logger := logging.WithOp(s.logger, "fetch_title").With("url", rawURL)

	title, err := s.fetchTitle(ctx, rawURL)
	if err != nil {
		logger.Debug("title lookup failed", "err", err)
		return model.TitleNotFound
	}

	logger.Debug("title fetched", "title", title)
	return title
}

func (s *Service) fetchTitle(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.titleTimeout)
	defer cancel()

	resp, err := s.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxTitleBody))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", errors.New("no title element")
	}
	return title, nil
}

// FetchFavicon downloads scheme://host/favicon.ico for rawURL and returns it
// resized to FaviconSize×FaviconSize, or nil on any failure.
func (s *Service) FetchFavicon(ctx context.Context, rawURL string) image.Image {
	logger := logging.WithOp(s.logger, "fetch_favicon").With("url", rawURL)

	img, err := s.fetchFavicon(ctx, rawURL)
	if err != nil {
		logger.Debug("favicon lookup failed", "err", err)
		return nil
	}
	return img
}

func (s *Service) fetchFavicon(ctx context.Context, rawURL string) (image.Image, error) {
	iconURL, err := FaviconURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.faviconTimeout)
	defer cancel()

	resp, err := s.get(ctx, iconURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFaviconBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	s.logger.Debug("favicon decoded", "url", iconURL, "format", format, "bounds", src.Bounds().String())

	return Resize(src, FaviconSize), nil
}

func (s *Service) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	return s.client.Do(req)
}

// FaviconURL derives scheme://host/favicon.ico from a page URL.
func FaviconURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errNoHost
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico", nil
}

// Resize scales src to a size×size square using Catmull-Rom resampling.
func Resize(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// AverageColor returns the alpha-weighted mean color of img as "#RRGGBB",
// or "" when img is nil or fully transparent.
func AverageColor(img image.Image) string {
	if img == nil {
		return ""
	}

	var r, g, b, a uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
		}
	}
	if a == 0 {
		return ""
	}

	// RGBA() is alpha-premultiplied, so dividing by total alpha un-premultiplies.
	return fmt.Sprintf("#%02X%02X%02X", r*255/a, g*255/a, b*255/a)
}
