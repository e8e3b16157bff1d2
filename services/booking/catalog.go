package booking

import (
	"bridalstudio/models"
)

// GetAvailableServices returns the studio's fixed service catalog.
func (s *DefaultBookingService) GetAvailableServices() ([]models.Service, error) {
	services := []models.Service{
		{ID: "1", Name: "Bridal Makeup", Icon: "brush"},
		{ID: "2", Name: "Mehndi Design", Icon: "flower"},
		{ID: "3", Name: "Hair Styling", Icon: "cut"},
		{ID: "4", Name: "Saree Draping", Icon: "shirt"},
		{ID: "5", Name: "Family Package", Icon: "people"},
	}
	return services, nil
}
