package service

import (
	"context"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// CheckEligibility resolves the user's enrollment and ticket and verifies the
// ticket is paid, in person and includes lodging.
//
// A missing enrollment or ticket is NotFound; a ticket that fails any of the
// three conditions is IneligibleBooking. Nothing is written.
func CheckEligibility(ctx context.Context, q repository.Queries, userID int) (model.EnrollmentTicket, error) {
	enrollment, err := q.FindEnrollmentByUser(ctx, userID)
	if err != nil {
		return model.EnrollmentTicket{}, storeError("find enrollment", err)
	}

	ticket, err := q.FindTicketByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return model.EnrollmentTicket{}, storeError("find ticket", err)
	}

	if ticket.Status != model.TicketPaid || ticket.TicketType.IsRemote || !ticket.TicketType.IncludesHotel {
		return model.EnrollmentTicket{}, apperr.ErrIneligible
	}

	return model.EnrollmentTicket{Enrollment: enrollment, Ticket: ticket}, nil
}
