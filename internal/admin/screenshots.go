package admin

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxScreenshotProbes bounds concurrent HEAD requests against the file server.
const maxScreenshotProbes = 4

// ScreenshotURL joins the file server base with a stored screenshot path,
// inserting the separating slash when the path lacks one.
func ScreenshotURL(base, path string) string {
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// ScreenshotStatus is the outcome of probing one screenshot.
type ScreenshotStatus struct {
	Path string
	URL  string // the image URL, or the placeholder when unreachable
	OK   bool
	Err  error
}

// CheckScreenshots probes each screenshot on the file server and substitutes
// placeholder for the ones that cannot be loaded. Results keep the order of
// paths.
func (c *Client) CheckScreenshots(ctx context.Context, base, placeholder string, paths []string) []ScreenshotStatus {
	results := make([]ScreenshotStatus, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxScreenshotProbes)
	for i, p := range paths {
		g.Go(func() error {
			u := ScreenshotURL(base, p)
			res := ScreenshotStatus{Path: p, URL: u, OK: true}
			if err := c.probe(gctx, u); err != nil {
				res.URL = placeholder
				res.OK = false
				res.Err = err
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Client) probe(ctx context.Context, u string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Op: "fetching " + u}
	}
	return nil
}
