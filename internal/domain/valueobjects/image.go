package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

// MimeType returns the IANA media type for the format.
func (f ImageFormat) MimeType() string {
	return "image/" + string(f)
}

type ImageData struct {
	data     []byte
	format   ImageFormat
	mimeType string
}

// NewImageData sniffs the real format from the bytes. The declared mimeType is
// only kept when it agrees with what was detected.
func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	detected := format.MimeType()
	if !strings.EqualFold(mimeType, detected) {
		mimeType = detected
	}

	return &ImageData{
		data:     data,
		format:   format,
		mimeType: mimeType,
	}, nil
}

// ParseDataURI decodes "data:image/png;base64,...." strings. A bare base64
// payload without the data: prefix is accepted as well.
func ParseDataURI(uri string) (*ImageData, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("image data URI cannot be empty")
	}

	mimeType := ""
	payload := uri
	if strings.HasPrefix(uri, "data:") {
		header, body, found := strings.Cut(uri, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URI: missing ',' separator")
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("malformed data URI: only base64 payloads are supported")
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 一部のクライアントはURLセーフ/パディング無しで送ってくる
		data, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 image: %w", err)
		}
	}

	return NewImageData(data, mimeType)
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Size() int {
	return len(i.data)
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func (i *ImageData) ToDataURI() string {
	return "data:" + i.mimeType + ";base64," + i.ToBase64()
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
