package services

import (
	"encoding/base64"
	"errors"
	"strings"
)

var errBadImage = errors.New("malformed image payload")

// DecodeBase64Image accepts either a raw base64 string or a data URI
// ("data:image/png;base64,....") and returns the decoded bytes plus a file
// extension derived from the declared media type.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	ext := ".png"
	if strings.HasPrefix(payload, "data:") {
		semi := strings.Index(payload, ";base64,")
		if semi < 0 {
			return nil, "", errBadImage
		}
		mediaType := payload[len("data:"):semi]
		switch mediaType {
		case "image/png":
			ext = ".png"
		case "image/jpeg", "image/jpg":
			ext = ".jpg"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			return nil, "", errBadImage
		}
		payload = payload[semi+len(";base64,"):]
	}

	if payload == "" {
		return nil, "", errBadImage
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errBadImage
	}
	return data, ext, nil
}

func mimeForExt(ext string) string {
	switch ext {
	case ".jpg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
