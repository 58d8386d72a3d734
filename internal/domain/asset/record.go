// internal/domain/asset/record.go
package asset

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidRecord    = errors.New("asset: invalid record")
	ErrInvalidImageData = errors.New("asset: invalid image data")
)

// Record is a bundle of named image variants for one cart item.
// Values are data URIs (or equivalent encoded strings). Any subset of
// fields may be populated; an all-empty record is treated as absent.
//
// The same record shape is stored in every tier (durable / session /
// memory), so tier adapters share this type and only differ in how
// they serialize it.
type Record struct {
	HighQualityPrintImage string `json:"highQualityPrintImage,omitempty" firestore:"highQualityPrintImage,omitempty"`
	AdminCroppedImage     string `json:"adminCroppedImage,omitempty" firestore:"adminCroppedImage,omitempty"`
	PrintImage            string `json:"printImage,omitempty" firestore:"printImage,omitempty"`
	OriginalImage         string `json:"originalImage,omitempty" firestore:"originalImage,omitempty"`
	DisplayImage          string `json:"displayImage,omitempty" firestore:"displayImage,omitempty"`
}

// VariantPriority is the fixed quality order used when picking the
// single best variant. Earlier entries always win over later ones,
// regardless of which other fields happen to be populated.
var VariantPriority = []string{
	"highQualityPrintImage",
	"adminCroppedImage",
	"printImage",
	"originalImage",
	"displayImage",
}

// Variant returns the value of the named variant ("" for unknown names).
func (r Record) Variant(name string) string {
	switch name {
	case "highQualityPrintImage":
		return r.HighQualityPrintImage
	case "adminCroppedImage":
		return r.AdminCroppedImage
	case "printImage":
		return r.PrintImage
	case "originalImage":
		return r.OriginalImage
	case "displayImage":
		return r.DisplayImage
	default:
		return ""
	}
}

// SelectBest walks VariantPriority and returns the first populated
// variant. An empty result means "no usable image" and is a legal,
// expected outcome (not an error).
func SelectBest(r Record) string {
	for _, name := range VariantPriority {
		if v := strings.TrimSpace(r.Variant(name)); v != "" {
			return v
		}
	}
	return ""
}

// Best is SelectBest as a method (handy at call sites holding a record).
func (r Record) Best() string {
	return SelectBest(r)
}

// IsEmpty reports whether no variant is populated.
func (r Record) IsEmpty() bool {
	return SelectBest(r) == ""
}

// CompressedCopy returns the lower-fidelity shape stored in the
// size-capped session tier: print + display variants only. The
// high-fidelity variants are dropped so the payload fits the cap.
func (r Record) CompressedCopy() Record {
	return Record{
		PrintImage:   strings.TrimSpace(r.PrintImage),
		DisplayImage: strings.TrimSpace(r.DisplayImage),
	}
}

// Normalize trims all variant values in place-free fashion.
func (r Record) Normalize() Record {
	return Record{
		HighQualityPrintImage: strings.TrimSpace(r.HighQualityPrintImage),
		AdminCroppedImage:     strings.TrimSpace(r.AdminCroppedImage),
		PrintImage:            strings.TrimSpace(r.PrintImage),
		OriginalImage:         strings.TrimSpace(r.OriginalImage),
		DisplayImage:          strings.TrimSpace(r.DisplayImage),
	}
}

// DecodeImageData turns a stored variant value into raw bytes plus a
// content type suitable for upload.
//
// Accepted shapes:
//   - data URI with base64 payload: "data:image/png;base64,...."
//   - bare base64 payload (content type defaults to image/png)
//   - anything else is passed through as raw bytes
func DecodeImageData(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", ErrInvalidImageData
	}

	if strings.HasPrefix(s, "data:") {
		rest := s[len("data:"):]
		semi := strings.Index(rest, ",")
		if semi < 0 {
			return nil, "", ErrInvalidImageData
		}
		meta := rest[:semi]
		payload := rest[semi+1:]

		contentType := meta
		isBase64 := false
		if strings.HasSuffix(meta, ";base64") {
			contentType = strings.TrimSuffix(meta, ";base64")
			isBase64 = true
		}
		contentType = strings.TrimSpace(contentType)
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		if isBase64 {
			b, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return nil, "", ErrInvalidImageData
			}
			return b, contentType, nil
		}
		return []byte(payload), contentType, nil
	}

	// Bare base64 (legacy records stored the payload without a header).
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, "image/png", nil
	}

	return []byte(s), "application/octet-stream", nil
}
