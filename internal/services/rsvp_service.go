package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anafaris/wedding-api/internal/csvio"
	"github.com/anafaris/wedding-api/internal/models"
)

type RSVPService struct {
	rsvpRepo models.RSVPRepo
}

func NewRSVPService(rsvpRepo models.RSVPRepo) *RSVPService {
	return &RSVPService{
		rsvpRepo: rsvpRepo,
	}
}

// SubmitRSVP always creates a new record. Repeated submissions from the same
// guest are accepted as separate rows; there is no dedupe by name.
func (rs *RSVPService) SubmitRSVP(ctx context.Context, name string, pax int, wishes string) (*models.RSVP, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if pax <= 0 {
		return nil, &models.ValidationError{Field: "pax", Reason: "must be a positive number of attendees"}
	}

	rsvp := &models.RSVP{
		ID:        uuid.New().String(),
		Name:      name,
		Pax:       pax,
		Wishes:    strings.TrimSpace(wishes),
		Timestamp: time.Now().UTC(),
	}

	if err := models.Validate.Struct(rsvp); err != nil {
		return nil, &models.ValidationError{Field: "rsvp", Reason: err.Error()}
	}

	if err := rs.rsvpRepo.InsertRSVP(ctx, rsvp); err != nil {
		return nil, err
	}
	return rsvp, nil
}

func (rs *RSVPService) ListRSVPs(ctx context.Context) ([]models.RSVP, error) {
	return rs.rsvpRepo.ListRSVPs(ctx)
}

// ExportCSV renders the guest list as Name, Pax, Wishes, Timestamp rows.
func (rs *RSVPService) ExportCSV(ctx context.Context) ([]byte, error) {
	rsvps, err := rs.rsvpRepo.ListRSVPs(ctx)
	if err != nil {
		return nil, err
	}
	out, err := csvio.SerializeRSVPs(rsvps)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize rsvps: %v", err)
	}
	return out, nil
}
