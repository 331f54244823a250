package services

import (
	"fmt"
	"log"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
)

// tableInventory maps table size to how many such tables exist.
var tableInventory = map[int]int{
	2: 4,
	4: 6,
	6: 3,
	8: 2,
}

var serviceSlots = []string{"18:00", "19:00", "20:00", "21:00", "22:00", "23:00"}

// NoAvailabilityError carries alternative slots for the same table size.
type NoAvailabilityError struct {
	SuggestedTimes []string
}

func (e *NoAvailabilityError) Error() string {
	return "no table available for the requested time"
}

type Availability struct {
	Available       bool     `json:"available"`
	AvailableTables int      `json:"available_tables"`
	SuggestedTimes  []string `json:"suggested_times,omitempty"`
}

type CreateReservationInput struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Email  string `json:"email"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	People int    `json:"people" binding:"required"`
	Notes  string `json:"notes"`
}

type ReservationService interface {
	CheckAvailability(date, timeSlot string, people int) (*Availability, error)
	CreateReservation(restaurantID uint, input CreateReservationInput) (*models.Reservation, error)
	ListByDate(date string) ([]models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	whatsappService WhatsAppService
}

func NewReservationService(reservationRepo repository.ReservationRepository, whatsappService WhatsAppService) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		whatsappService: whatsappService,
	}
}

func tableSizeFor(people int) int {
	switch {
	case people <= 2:
		return 2
	case people <= 4:
		return 4
	case people <= 6:
		return 6
	default:
		return 8
	}
}

func (s *reservationService) CheckAvailability(date, timeSlot string, people int) (*Availability, error) {
	reservations, err := s.reservationRepo.GetByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	tableSize := tableSizeFor(people)
	free := freeTables(reservations, timeSlot, tableSize)

	availability := &Availability{
		Available:       free > 0,
		AvailableTables: free,
	}
	if free == 0 {
		availability.SuggestedTimes = suggestTimes(reservations, timeSlot, tableSize)
	}
	return availability, nil
}

func (s *reservationService) CreateReservation(restaurantID uint, input CreateReservationInput) (*models.Reservation, error) {
	availability, err := s.CheckAvailability(input.Date, input.Time, input.People)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, &NoAvailabilityError{SuggestedTimes: availability.SuggestedTimes}
	}

	reservation := &models.Reservation{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Date:         input.Date,
		Time:         input.Time,
		People:       input.People,
		TableSize:    tableSizeFor(input.People),
		Notes:        input.Notes,
		Status:       string(models.ReservationConfirmed),
		RestaurantID: restaurantID,
	}
	if err := s.reservationRepo.Create(reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	// Confirmation message failure is not fatal to the reservation.
	if err := s.whatsappService.SendReservationConfirmation(reservation); err != nil {
		log.Printf("Failed to send reservation confirmation to %s: %v", reservation.Phone, err)
	}

	return reservation, nil
}

func (s *reservationService) ListByDate(date string) ([]models.Reservation, error) {
	return s.reservationRepo.GetByDate(date)
}

func freeTables(reservations []models.Reservation, timeSlot string, tableSize int) int {
	occupied := 0
	for _, reservation := range reservations {
		if reservation.Time == timeSlot && reservation.TableSize == tableSize {
			occupied++
		}
	}
	free := tableInventory[tableSize] - occupied
	if free < 0 {
		free = 0
	}
	return free
}

func suggestTimes(reservations []models.Reservation, requested string, tableSize int) []string {
	var suggestions []string
	for _, slot := range serviceSlots {
		if slot == requested {
			continue
		}
		if freeTables(reservations, slot, tableSize) > 0 {
			suggestions = append(suggestions, slot)
		}
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}
