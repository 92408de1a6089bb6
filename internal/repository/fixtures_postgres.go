package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
)

func (s *PostgresStore) CreateUser(ctx context.Context, email string) (int, error) {
	now := timestamp()
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
		email, now, now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// CreateEnrollment inserts the enrollment and, when e.Address.CEP is set, its
// address in one transaction.
func (s *PostgresStore) CreateEnrollment(ctx context.Context, e model.Enrollment) (_ model.Enrollment, err error) {
	stampCreated(&e.CreatedAt, &e.UpdatedAt)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO enrollments (name, cpf, birthday, phone, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		e.Name, e.CPF, e.Birthday.UTC(), e.Phone, e.UserID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}

	if e.Address.CEP != "" {
		e.Address.EnrollmentID = e.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO addresses (cep, street, city, state, number, neighborhood, address_detail, enrollment_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id`,
			e.Address.CEP, e.Address.Street, e.Address.City, e.Address.State, e.Address.Number,
			e.Address.Neighborhood, nullIfEmpty(e.Address.AddressDetail), e.ID, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.Address.ID)
		if err != nil {
			return model.Enrollment{}, fmt.Errorf("insert address: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return model.Enrollment{}, fmt.Errorf("commit transaction: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) CreateTicketType(ctx context.Context, tt model.TicketType) (model.TicketType, error) {
	stampCreated(&tt.CreatedAt, &tt.UpdatedAt)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO ticket_types (name, price, is_remote, includes_hotel, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		tt.Name, tt.Price, tt.IsRemote, tt.IncludesHotel, tt.CreatedAt, tt.UpdatedAt,
	).Scan(&tt.ID)
	if err != nil {
		return model.TicketType{}, fmt.Errorf("insert ticket type: %w", err)
	}
	return tt, nil
}

func (s *PostgresStore) CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	stampCreated(&t.CreatedAt, &t.UpdatedAt)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tickets (ticket_type_id, enrollment_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.TicketTypeID, t.EnrollmentID, string(t.Status), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) CreateHotel(ctx context.Context, h model.Hotel) (model.Hotel, error) {
	stampCreated(&h.CreatedAt, &h.UpdatedAt)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO hotels (name, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		h.Name, h.Image, h.CreatedAt, h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		return model.Hotel{}, fmt.Errorf("insert hotel: %w", err)
	}
	return h, nil
}

func (s *PostgresStore) CreateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	if r.Capacity < 1 {
		return model.Room{}, fmt.Errorf("room capacity must be at least 1, got %d", r.Capacity)
	}
	stampCreated(&r.CreatedAt, &r.UpdatedAt)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO rooms (name, capacity, hotel_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		r.Name, r.Capacity, r.HotelID, r.CreatedAt, r.UpdatedAt,
	).Scan(&r.ID)
	if err != nil {
		return model.Room{}, fmt.Errorf("insert room: %w", err)
	}
	return r, nil
}

// stampCreated fills zero timestamps with the current time.
func stampCreated(createdAt, updatedAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = timestamp()
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
	*createdAt = createdAt.UTC()
	*updatedAt = updatedAt.UTC()
}
