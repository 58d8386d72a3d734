// internal/domain/asset/record_test.go
package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBest_PriorityOrder(t *testing.T) {
	full := Record{
		HighQualityPrintImage: "hq",
		AdminCroppedImage:     "cropped",
		PrintImage:            "print",
		OriginalImage:         "orig",
		DisplayImage:          "disp",
	}
	assert.Equal(t, "hq", SelectBest(full))

	// adminCroppedImage wins over originalImage even when both are set
	assert.Equal(t, "cropped", SelectBest(Record{
		AdminCroppedImage: "cropped",
		OriginalImage:     "orig",
	}))

	assert.Equal(t, "print", SelectBest(Record{
		PrintImage:    "print",
		OriginalImage: "orig",
		DisplayImage:  "disp",
	}))

	assert.Equal(t, "disp", SelectBest(Record{DisplayImage: "disp"}))
}

func TestSelectBest_EmptyAndWhitespace(t *testing.T) {
	assert.Equal(t, "", SelectBest(Record{}))

	// whitespace-only variants are skipped, not selected
	assert.Equal(t, "orig", SelectBest(Record{
		HighQualityPrintImage: "   ",
		OriginalImage:         "orig",
	}))

	assert.True(t, Record{}.IsEmpty())
	assert.False(t, Record{DisplayImage: "x"}.IsEmpty())
}

func TestRecord_CompressedCopy(t *testing.T) {
	rec := Record{
		HighQualityPrintImage: "hq",
		AdminCroppedImage:     "cropped",
		PrintImage:            " print ",
		OriginalImage:         "orig",
		DisplayImage:          "disp",
	}

	c := rec.CompressedCopy()
	assert.Equal(t, "print", c.PrintImage)
	assert.Equal(t, "disp", c.DisplayImage)
	assert.Empty(t, c.HighQualityPrintImage)
	assert.Empty(t, c.AdminCroppedImage)
	assert.Empty(t, c.OriginalImage)
}

func TestDecodeImageData_DataURI(t *testing.T) {
	// "hello" base64-encoded
	b, ct, err := DecodeImageData("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)
	assert.Equal(t, "image/jpeg", ct)
}

func TestDecodeImageData_BareBase64(t *testing.T) {
	b, ct, err := DecodeImageData("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)
	assert.Equal(t, "image/png", ct)
}

func TestDecodeImageData_RawPassthrough(t *testing.T) {
	b, ct, err := DecodeImageData("not-base64!!")
	require.NoError(t, err)
	assert.Equal(t, []byte("not-base64!!"), b)
	assert.Equal(t, "application/octet-stream", ct)
}

func TestDecodeImageData_Invalid(t *testing.T) {
	_, _, err := DecodeImageData("")
	assert.ErrorIs(t, err, ErrInvalidImageData)

	// data URI without a comma separator
	_, _, err = DecodeImageData("data:image/png;base64")
	assert.ErrorIs(t, err, ErrInvalidImageData)

	// data URI with corrupt base64 payload
	_, _, err = DecodeImageData("data:image/png;base64,@@@@")
	assert.ErrorIs(t, err, ErrInvalidImageData)
}
