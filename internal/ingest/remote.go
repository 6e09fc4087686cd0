package ingest

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/httputil"
)

// maxRemoteBytes caps a single remote document
const maxRemoteBytes = 8 << 20

// Source loads datasets and bureau reports from local paths or http(s) URLs
type Source struct {
	client *httputil.Client // nil = local files only
}

// NewSource creates a Source; client may be nil when remote sources are not needed
func NewSource(client *httputil.Client) *Source {
	return &Source{client: client}
}

// IsRemote reports whether src is an http(s) URL
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Dataset loads a statement dataset and checks its shape
func (s *Source) Dataset(ctx context.Context, src string) (contracts.Dataset, error) {
	if !IsRemote(src) {
		return LoadDataset(src)
	}

	var ds contracts.Dataset
	if err := s.fetch(ctx, src, &ds); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if err := ds.CheckShape(); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", src, err)
	}
	return ds, nil
}

// Bureau loads an AECB report
func (s *Source) Bureau(ctx context.Context, src string) (*contracts.AECBReport, error) {
	if !IsRemote(src) {
		return LoadBureau(src)
	}

	var report contracts.AECBReport
	if err := s.fetch(ctx, src, &report); err != nil {
		return nil, fmt.Errorf("load bureau report: %w", err)
	}
	return &report, nil
}

func (s *Source) fetch(ctx context.Context, src string, v interface{}) error {
	if s.client == nil {
		return fmt.Errorf("%w: remote source %s without HTTP client", contracts.ErrUnsupportedSource, src)
	}

	body, contentType, err := s.client.GetBody(ctx, src, maxRemoteBytes)
	if err != nil {
		return err
	}

	format, err := remoteFormat(src, contentType)
	if err != nil {
		return err
	}
	return Decode(bytes.NewReader(body), format, v)
}

// remoteFormat prefers the URL extension, then the Content-Type
func remoteFormat(src, contentType string) (Format, error) {
	if u, err := url.Parse(src); err == nil && path.Ext(u.Path) != "" {
		if format, err := FormatFromPath(u.Path); err == nil {
			return format, nil
		}
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch {
		case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
			return FormatJSON, nil
		case strings.Contains(mediaType, "yaml"):
			return FormatYAML, nil
		}
	}
	return "", fmt.Errorf("%w: %s (content type %q)", contracts.ErrUnsupportedSource, src, contentType)
}
