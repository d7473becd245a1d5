package client

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoQRCode is returned when an image holds no decodable QR code.
var ErrNoQRCode = errors.New("no QR code found")

// QRClient decodes QR codes printed on bills (payment links, account references).
type QRClient struct{}

func NewQRClient() *QRClient {
	return &QRClient{}
}

// DecodeImage returns the text payload of the first QR code in img.
func (qc *QRClient) DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}
	return result.GetText(), nil
}

// DecodeBytes decodes an encoded PNG/JPEG and looks for a QR code in it.
func (qc *QRClient) DecodeBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return qc.DecodeImage(img)
}
