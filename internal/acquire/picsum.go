package acquire

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const picsumBase = "https://picsum.photos"

// PicsumOptions selects a random image from the picsum.photos service.
// ID and Seed are mutually exclusive; ID wins when both are set.
type PicsumOptions struct {
	Width     int
	Height    int
	Grayscale bool
	Blur      int // 1..10, 0 disables
	ID        string
	Seed      string
}

// URL builds the request URL for the options.
func (o PicsumOptions) URL() string {
	path := picsumBase
	switch {
	case o.ID != "":
		path += "/id/" + url.PathEscape(o.ID)
	case o.Seed != "":
		path += "/seed/" + url.PathEscape(o.Seed)
	}
	path += "/" + strconv.Itoa(o.Width) + "/" + strconv.Itoa(o.Height)

	query := url.Values{}
	if o.Grayscale {
		query.Set("grayscale", "")
	}
	if o.Blur > 0 {
		query.Set("blur", strconv.Itoa(o.Blur))
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// Validate checks the option ranges before a request is made.
func (o PicsumOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("picsum: dimensions must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Blur < 0 || o.Blur > 10 {
		return fmt.Errorf("picsum: blur must be in 0..10, got %d", o.Blur)
	}
	return nil
}

// FetchRandom downloads a random image and decodes it.
func FetchRandom(ctx context.Context, opts PicsumOptions) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("picsum: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("picsum: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("picsum: unexpected status %s", resp.Status)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("picsum: %w", err)
	}
	return DecodeBytes(buf)
}
