package service

import "context"

// RenderSink accepts a structured HTML document and persists it as a file,
// returning the file path. The rendering engine behind it is an external
// collaborator; a failed render must leave no partial file behind.
type RenderSink interface {
	Render(ctx context.Context, html string, fileName string) (string, error)
}

// QRCodeService produces the PNG QR code embedded in a report sheet so a
// printed sheet can be scanned back into the app.
type QRCodeService interface {
	GenerateReportQR(detailURL string) ([]byte, error)
}
