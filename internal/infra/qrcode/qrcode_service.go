// Package qrcode renders and parses master-profile share QR codes.
package qrcode

import (
	"encoding/json"
	"fmt"

	"handshakeme/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code payload structure
type QRCodeData struct {
	MasterID string `json:"master_id"`
	Type     string `json:"type"`
}

const profileQRType = "master_profile"

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateProfileQR renders a PNG QR code embedding the master profile reference.
func (s *qrcodeService) GenerateProfileQR(masterID uuid.UUID) ([]byte, error) {
	data := QRCodeData{
		MasterID: masterID.String(),
		Type:     profileQRType,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseProfileQR extracts the master ID from scanned QR payload data.
func (s *qrcodeService) ParseProfileQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != profileQRType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	masterID, err := uuid.Parse(data.MasterID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse master ID: %w", err)
	}

	return masterID, nil
}
