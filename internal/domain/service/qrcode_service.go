package service

import (
	"github.com/google/uuid"
)

// QRCodeService generates and parses master-profile share QR codes.
type QRCodeService interface {
	// GenerateProfileQR renders a PNG QR code embedding the master profile reference.
	GenerateProfileQR(masterID uuid.UUID) ([]byte, error)

	// ParseProfileQR extracts the master ID from scanned QR payload data.
	ParseProfileQR(qrData string) (uuid.UUID, error)
}
