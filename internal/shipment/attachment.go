package shipment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrAttachmentUnreadable aborts a build when the uploaded file cannot be encoded.
var ErrAttachmentUnreadable = errors.New("shipment: attachment could not be read")

const defaultImageFormat = "PDF"

// ImageFormat derives the carrier image-format token from a file name.
func ImageFormat(name string) string {
	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "":
		return defaultImageFormat
	case "JPG":
		return "JPEG"
	default:
		return ext
	}
}

func encodeAttachment(a *Attachment) (string, error) {
	if a.Open == nil {
		return "", fmt.Errorf("%w: %s: no content", ErrAttachmentUnreadable, a.Name)
	}
	rc, err := a.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrAttachmentUnreadable, a.Name, err)
	}
	defer func() { _ = rc.Close() }()

	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, rc); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrAttachmentUnreadable, a.Name, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrAttachmentUnreadable, a.Name, err)
	}
	return sb.String(), nil
}
