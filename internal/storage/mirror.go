package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hutchinsdata/site/internal/mediaurl"
	"github.com/hutchinsdata/site/pkg/logger"
)

// Bucket is the subset of MediaStore used for mirroring.
type Bucket interface {
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// MirrorReport summarises one mirror run.
type MirrorReport struct {
	Copied  []string
	Skipped []string
	Failed  map[string]error
}

// Mirror copies every asset in ids from src into dst. Assets already present
// are skipped; a failing asset does not stop the run.
func Mirror(ctx context.Context, dst Bucket, src mediaurl.Origin, hc *http.Client, ids []string) MirrorReport {
	if hc == nil {
		hc = http.DefaultClient
	}
	rep := MirrorReport{Failed: map[string]error{}}
	for _, id := range ids {
		ref, err := mediaurl.ParseRef(id)
		if err != nil {
			rep.Failed[id] = err
			continue
		}
		key := ref.Filename()
		ok, err := dst.Exists(ctx, key)
		if err != nil {
			rep.Failed[id] = err
			continue
		}
		if ok {
			rep.Skipped = append(rep.Skipped, key)
			continue
		}
		if err := copyAsset(ctx, dst, hc, src.ObjectURL(ref), key); err != nil {
			logger.Warnf("mirror %s: %v", key, err)
			rep.Failed[id] = err
			continue
		}
		logger.Infof("mirrored %s", key)
		rep.Copied = append(rep.Copied, key)
	}
	return rep
}

func copyAsset(ctx context.Context, dst Bucket, hc *http.Client, from, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, from, nil)
	if err != nil {
		return err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", from, resp.StatusCode)
	}
	return dst.Upload(ctx, key, resp.Body, resp.ContentLength, resp.Header.Get("Content-Type"))
}
