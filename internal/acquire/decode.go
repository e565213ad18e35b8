package acquire

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DecodeBytes decodes an in-memory image buffer through OpenCV, which
// accepts more container formats than the registered stdlib decoders.
func DecodeBytes(buf []byte) (*image.RGBA, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("failed to decode buffer: empty input")
	}

	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode buffer: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode buffer: unrecognized format")
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert decoded image: %w", err)
	}
	return ToRGBA(img), nil
}
