package repository

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
)

func (s *SQLiteStore) CreateUser(ctx context.Context, email string) (int, error) {
	now := toMillis(timestamp())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, created_at, updated_at) VALUES (?, ?, ?)`,
		email, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user id: %w", err)
	}
	return int(id), nil
}

// CreateEnrollment inserts the enrollment and, when e.Address.CEP is set, its
// address in one transaction.
func (s *SQLiteStore) CreateEnrollment(ctx context.Context, e model.Enrollment) (_ model.Enrollment, err error) {
	stampCreated(&e.CreatedAt, &e.UpdatedAt)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO enrollments (name, cpf, birthday, phone, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.CPF, toMillis(e.Birthday), e.Phone, e.UserID, toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("insert enrollment id: %w", err)
	}
	e.ID = int(id)

	if e.Address.CEP != "" {
		e.Address.EnrollmentID = e.ID
		res, err = tx.ExecContext(ctx,
			`INSERT INTO addresses (cep, street, city, state, number, neighborhood, address_detail, enrollment_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Address.CEP, e.Address.Street, e.Address.City, e.Address.State, e.Address.Number,
			e.Address.Neighborhood, nullIfEmpty(e.Address.AddressDetail), e.ID,
			toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
		)
		if err != nil {
			return model.Enrollment{}, fmt.Errorf("insert address: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return model.Enrollment{}, fmt.Errorf("insert address id: %w", err)
		}
		e.Address.ID = int(id)
	}

	if err = tx.Commit(); err != nil {
		return model.Enrollment{}, fmt.Errorf("commit transaction: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) CreateTicketType(ctx context.Context, tt model.TicketType) (model.TicketType, error) {
	stampCreated(&tt.CreatedAt, &tt.UpdatedAt)
	id, err := s.insert(ctx, "ticket type",
		`INSERT INTO ticket_types (name, price, is_remote, includes_hotel, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tt.Name, tt.Price, tt.IsRemote, tt.IncludesHotel, toMillis(tt.CreatedAt), toMillis(tt.UpdatedAt),
	)
	if err != nil {
		return model.TicketType{}, err
	}
	tt.ID = id
	return tt, nil
}

func (s *SQLiteStore) CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	stampCreated(&t.CreatedAt, &t.UpdatedAt)
	id, err := s.insert(ctx, "ticket",
		`INSERT INTO tickets (ticket_type_id, enrollment_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.TicketTypeID, t.EnrollmentID, string(t.Status), toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
	)
	if err != nil {
		return model.Ticket{}, err
	}
	t.ID = id
	return t, nil
}

func (s *SQLiteStore) CreateHotel(ctx context.Context, h model.Hotel) (model.Hotel, error) {
	stampCreated(&h.CreatedAt, &h.UpdatedAt)
	id, err := s.insert(ctx, "hotel",
		`INSERT INTO hotels (name, image, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		h.Name, h.Image, toMillis(h.CreatedAt), toMillis(h.UpdatedAt),
	)
	if err != nil {
		return model.Hotel{}, err
	}
	h.ID = id
	return h, nil
}

func (s *SQLiteStore) CreateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	if r.Capacity < 1 {
		return model.Room{}, fmt.Errorf("room capacity must be at least 1, got %d", r.Capacity)
	}
	stampCreated(&r.CreatedAt, &r.UpdatedAt)
	id, err := s.insert(ctx, "room",
		`INSERT INTO rooms (name, capacity, hotel_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		r.Name, r.Capacity, r.HotelID, toMillis(r.CreatedAt), toMillis(r.UpdatedAt),
	)
	if err != nil {
		return model.Room{}, err
	}
	r.ID = id
	return r, nil
}

func (s *SQLiteStore) insert(ctx context.Context, what, query string, args ...any) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", what, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s id: %w", what, err)
	}
	return int(id), nil
}
