//go:build ocr

// Package ocr provides the OCR fallback for table cells whose region
// carries no embedded text layer.
//
// This package wraps the Tesseract OCR engine via gosseract. It
// requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for cell-region recognition.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no
// longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	// Cell crops are usually a single line; a block mode keeps
	// Tesseract from over-segmenting narrow regions.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to set segmentation mode: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// Recognize performs OCR on a cropped cell region. Small crops are
// upscaled before recognition (see Prepare). The signature matches
// text.RecognizeFunc so a client method can be wired directly as the
// fill stage's OCR collaborator.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", fmt.Errorf("ocr: nil image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Prepare(img)); err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}

	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
