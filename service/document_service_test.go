package service

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/bill-dispute-analyzer/client"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) ExtractTextFromBytes(_ []byte) (*client.OCRResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &client.OCRResult{Text: f.text, Confidence: 88}, nil
}

func (f *fakeOCR) ExtractTextFromImage(_ image.Image) (*client.OCRResult, error) {
	return f.ExtractTextFromBytes(nil)
}

type fakeQR struct {
	payload string
	err     error
}

func (f *fakeQR) DecodeBytes(_ []byte) (string, error) {
	return f.payload, f.err
}

type fakePDF struct {
	text    string
	textErr error
	images  []image.Image
	imgErr  error
}

func (f *fakePDF) ExtractText(_ []byte, _ string) (string, error) {
	return f.text, f.textErr
}

func (f *fakePDF) ExtractImages(_ []byte, _ string) ([]image.Image, error) {
	return f.images, f.imgErr
}

func TestDocumentService_PlainText(t *testing.T) {
	svc := NewDocumentService(nil, nil, &fakePDF{})

	text, err := svc.ExtractText(context.Background(), "bill.TXT", []byte("Admin Fee $35.00\r\nBase Rent $1,500.00\r\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "Admin Fee $35.00\nBase Rent $1,500.00", text)
}

func TestDocumentService_Windows1252Text(t *testing.T) {
	svc := NewDocumentService(nil, nil, &fakePDF{})

	// 0xE9 is é in Windows-1252 and invalid on its own in UTF-8
	text, err := svc.ExtractText(context.Background(), "bill.csv", []byte("Caf\xe9 Roma,12.00"), "")
	require.NoError(t, err)
	assert.Equal(t, "Café Roma,12.00", text)
}

func TestDocumentService_Unsupported(t *testing.T) {
	svc := NewDocumentService(nil, nil, &fakePDF{})

	_, err := svc.ExtractText(context.Background(), "bill.docx", []byte("x"), "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedFile)
}

func TestDocumentService_EmptyText(t *testing.T) {
	svc := NewDocumentService(nil, nil, &fakePDF{})

	_, err := svc.ExtractText(context.Background(), "bill.txt", []byte("  \n "), "")
	assert.ErrorIs(t, err, dto.ErrNoTextExtracted)
}

func TestDocumentService_PDFTextLayer(t *testing.T) {
	ocr := &fakeOCR{text: "should not be used"}
	pdf := &fakePDF{text: "99285 Emergency Room Visit Level 5 $2,450.00"}
	svc := NewDocumentService(ocr, nil, pdf)

	text, err := svc.ExtractText(context.Background(), "bill.pdf", []byte("%PDF"), "")
	require.NoError(t, err)
	assert.Equal(t, pdf.text, text)
	assert.Zero(t, ocr.calls)
}

func TestDocumentService_ScannedPDFFallsBackToOCR(t *testing.T) {
	ocr := &fakeOCR{text: "Collision $410.00 $612.00"}
	pdf := &fakePDF{
		text:   "  \n",
		images: []image.Image{image.NewGray(image.Rect(0, 0, 4, 4)), image.NewGray(image.Rect(0, 0, 4, 4))},
	}
	svc := NewDocumentService(ocr, nil, pdf)

	text, err := svc.ExtractText(context.Background(), "scan.pdf", []byte("%PDF"), "secret")
	require.NoError(t, err)
	assert.Equal(t, "Collision $410.00 $612.00\nCollision $410.00 $612.00", text)
	assert.Equal(t, 2, ocr.calls)
}

func TestDocumentService_UnreadablePDF(t *testing.T) {
	pdf := &fakePDF{textErr: errors.New("malformed"), imgErr: errors.New("no images")}
	svc := NewDocumentService(&fakeOCR{}, nil, pdf)

	_, err := svc.ExtractText(context.Background(), "bad.pdf", []byte("junk"), "")
	assert.ErrorContains(t, err, "malformed")
}

func TestDocumentService_ImageWithQR(t *testing.T) {
	ocr := &fakeOCR{text: "Riverside Electric\nBack-bill $1,334.00"}
	qr := &fakeQR{payload: "https://pay.example.com/acct/55-0192"}
	svc := NewDocumentService(ocr, qr, &fakePDF{})

	text, err := svc.ExtractText(context.Background(), "photo.jpg", []byte{0xff, 0xd8}, "")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Electric\nBack-bill $1,334.00\nhttps://pay.example.com/acct/55-0192", text)
}

func TestDocumentService_ImageWithoutQR(t *testing.T) {
	svc := NewDocumentService(&fakeOCR{text: "Late Fee $150.00"}, &fakeQR{err: client.ErrNoQRCode}, &fakePDF{})

	text, err := svc.ExtractText(context.Background(), "photo.png", []byte{0x89}, "")
	require.NoError(t, err)
	assert.Equal(t, "Late Fee $150.00", text)
}

func TestDocumentService_OCRFailure(t *testing.T) {
	svc := NewDocumentService(&fakeOCR{err: errors.New("tesseract missing")}, nil, &fakePDF{})

	_, err := svc.ExtractText(context.Background(), "photo.png", []byte{0x89}, "")
	assert.ErrorContains(t, err, "tesseract missing")
}

func TestDocumentService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDocumentService(nil, nil, &fakePDF{}).ExtractText(ctx, "bill.txt", []byte("x"), "")
	assert.ErrorIs(t, err, context.Canceled)
}
