package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"

	"gorm.io/gorm"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailService sends reservation confirmation emails through the Resend
// API. Sends are best effort: a failure is logged and recorded on the
// reservation, never surfaced to the customer request.
type EmailService struct {
	db     *gorm.DB
	client *http.Client

	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(db *gorm.DB) *EmailService {
	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "reservations@churchstexaschicken.com"
	}
	fromName := os.Getenv("FROM_NAME")
	if fromName == "" {
		fromName = "Church's Turkey Reservations"
	}

	return &EmailService{
		db:        db,
		client:    &http.Client{Timeout: 15 * time.Second},
		apiKey:    os.Getenv("RESEND_API_KEY"),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendReservationConfirmation emails the confirmation for a committed
// reservation and marks the reservation's notification flag on success.
func (es *EmailService) SendReservationConfirmation(reservation models.Reservation, location models.Location) error {
	log.Printf("EMAIL: sending confirmation %s to %s", reservation.ConfirmationID, reservation.Email)

	if es.apiKey == "" {
		log.Printf("EMAIL: RESEND_API_KEY not set, skipping send for %s", reservation.ConfirmationID)
		return fmt.Errorf("email service not configured")
	}

	payload := resendPayload{
		From:    fmt.Sprintf("%s <%s>", es.fromName, es.fromEmail),
		To:      []string{reservation.Email},
		Subject: fmt.Sprintf("Reservation Confirmed: %s", reservation.ConfirmationID),
		HTML:    confirmationHTML(reservation, location),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+es.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := es.client.Do(req)
	if err != nil {
		log.Printf("EMAIL: send failed for %s: %v", reservation.ConfirmationID, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("EMAIL: resend returned status %d for %s", resp.StatusCode, reservation.ConfirmationID)
		return fmt.Errorf("resend status %d", resp.StatusCode)
	}

	now := time.Now()
	if err := es.db.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": now,
		}).Error; err != nil {
		log.Printf("EMAIL: failed to record sent flag for %s: %v", reservation.ConfirmationID, err)
		return err
	}

	log.Printf("EMAIL: confirmation %s sent", reservation.ConfirmationID)
	return nil
}

func confirmationHTML(reservation models.Reservation, location models.Location) string {
	pickupDay := reservation.PickupDate
	if parsed, err := time.Parse("2006-01-02", reservation.PickupDate); err == nil {
		pickupDay = parsed.Format("Monday, January 2, 2006")
	}

	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #9A3324;">Reservation Confirmed!</h1>
  <p>Thank you for reserving with Church's Texas Chicken.</p>
  <p><strong>Confirmation ID:</strong> %s</p>
  <p><strong>Order:</strong> %dx Whole Smoked Turkey</p>
  <p><strong>Total Due at Pickup:</strong> $%.2f (plus tax)</p>
  <p><strong>Pickup Location:</strong><br/>%s<br/>%s</p>
  <p><strong>Pickup Date &amp; Time:</strong> %s @ %s</p>
  <p style="color: #92400E;">Please bring this confirmation email and a valid ID.
  Payment is due upon pickup. Your turkey is frozen and will need to be thawed
  and heated before serving.</p>
</div>`,
		reservation.ConfirmationID,
		reservation.Quantity,
		reservation.TotalPrice,
		location.Name,
		location.FullAddress(),
		pickupDay,
		reservation.PickupTime,
	)
}
