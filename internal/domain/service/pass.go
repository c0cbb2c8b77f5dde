package service

import (
	"fmt"

	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/qrcode"
)

// PassService renders the QR entry passes participants show at the door.
type PassService struct {
	baseURL string
	config  qrcode.Config
}

func NewPassService(baseURL, logoPath string) *PassService {
	config := qrcode.DefaultConfig()
	config.LogoPath = logoPath
	return &PassService{
		baseURL: baseURL,
		config:  config,
	}
}

// Generate renders a PNG pass encoding the check-in URL for the user's spot
// at the ticket's event.
func (s *PassService) Generate(userID string, ticket *entity.Ticket) ([]byte, error) {
	config := s.config
	config.Content = fmt.Sprintf("%s/passes/%s/%s", s.baseURL, ticket.EventID, userID)
	return config.Generate()
}
