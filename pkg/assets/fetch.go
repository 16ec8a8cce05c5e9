package assets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lunargate/preload/pkg/deps"
)

// Downloader fetches a single package manifest from a remote source.
type Downloader interface {
	Download(ctx context.Context, id string) (*Manifest, error)
}

// HTTPDownloader downloads package manifests from an HTTP endpoint serving
// <baseURL>/<id>.yaml.
type HTTPDownloader struct {
	client  *http.Client
	baseURL string
}

// NewHTTPDownloader creates a downloader for the given base URL.
func NewHTTPDownloader(baseURL string) *HTTPDownloader {
	return &HTTPDownloader{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// Download implements Downloader.
func (d *HTTPDownloader) Download(ctx context.Context, id string) (*Manifest, error) {
	if err := ValidatePackageID(id); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s.yaml", d.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for package %s: %w", id, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download package %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s at %s", ErrPackageNotFound, id, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download package %s: unexpected status %s", id, resp.Status)
	}

	var m Manifest
	if err := yaml.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: package %s: %v", ErrInvalidManifest, id, err)
	}
	if m.ID != id {
		return nil, fmt.Errorf("%w: downloaded manifest declares id %q, requested %q", ErrInvalidManifest, m.ID, id)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Fetcher downloads the asset packages named by a failed resolution and
// installs them into a catalog. It is the caller-side recovery flow: the
// resolver itself never retries, so after a successful fetch the caller
// builds a fresh dependency set and resolves again.
type Fetcher struct {
	downloader Downloader
	installer  Installer

	// MaxRetries bounds download attempts per package.
	MaxRetries uint64

	// InitialInterval seeds the exponential backoff between attempts.
	InitialInterval time.Duration
}

// NewFetcher creates a fetcher with default retry settings.
func NewFetcher(d Downloader, i Installer) *Fetcher {
	return &Fetcher{
		downloader:      d,
		installer:       i,
		MaxRetries:      5,
		InitialInterval: backoff.DefaultInitialInterval,
	}
}

// FetchMissing downloads and installs every missing asset package named in
// the error. Missing dependencies of other kinds cannot be fetched and fail
// the whole call, since a follow-up resolve would just fail again.
func (f *Fetcher) FetchMissing(ctx context.Context, missErr *deps.MissingDependencyError) error {
	for _, m := range missErr.Missing {
		if m.Kind != KindName {
			return fmt.Errorf("cannot fetch missing dependency %s: not an asset package", m)
		}
		id, ok := m.Config.(string)
		if !ok {
			return fmt.Errorf("%w: config %v (%T)", ErrInvalidPackageID, m.Config, m.Config)
		}
		if err := f.fetchOne(ctx, id); err != nil {
			return fmt.Errorf("failed to fetch package %s: %w", id, err)
		}
	}
	return nil
}

func (f *Fetcher) fetchOne(ctx context.Context, id string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, f.MaxRetries), ctx)

	return backoff.Retry(func() error {
		m, err := f.downloader.Download(ctx, id)
		if err != nil {
			logrus.Warnf("download of package %s failed: %v, retrying...", id, err)
			return err
		}
		if err := f.installer.Install(ctx, m); err != nil {
			// Install failures are local and will not improve on retry.
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
}
