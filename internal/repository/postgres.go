package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
)

// pgExecutor is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the PostgreSQL record store.
type PostgresStore struct {
	pool *pgxpool.Pool
	pgQueries
}

// NewPostgresStore constructs a PostgresStore on an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, pgQueries: pgQueries{db: pool}}
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// RunInTx runs fn in a READ COMMITTED transaction.
//
// Capacity is protected by pessimistic locking: FindRoomWithOccupancy takes
// SELECT … FOR UPDATE on the room row, so a second transaction targeting the
// same room blocks until the first commits or rolls back. Once it obtains the
// lock, its booking count is read with a fresh snapshot and already includes
// the first transaction's booking. Naive read-then-write without the lock lets
// two requests for the last slot both see a free slot and both insert.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(q Queries) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(&pgQueries{db: tx, inTx: true}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type pgQueries struct {
	db   pgExecutor
	inTx bool
}

func (q *pgQueries) FindEnrollmentByUser(ctx context.Context, userID int) (model.Enrollment, error) {
	var (
		e    model.Enrollment
		addr nullableAddress
	)
	dest := append([]any{&e.ID, &e.Name, &e.CPF, &e.Birthday, &e.Phone, &e.UserID, &e.CreatedAt, &e.UpdatedAt}, addr.dest()...)
	err := q.db.QueryRow(ctx,
		`SELECT e.id, e.name, e.cpf, e.birthday, e.phone, e.user_id, e.created_at, e.updated_at,
		        a.id, a.cep, a.street, a.city, a.state, a.number, a.neighborhood, a.address_detail
		 FROM enrollments e
		 LEFT JOIN addresses a ON a.enrollment_id = e.id
		 WHERE e.user_id = $1`,
		userID,
	).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Enrollment{}, ErrNotFound
		}
		return model.Enrollment{}, fmt.Errorf("find enrollment: %w", err)
	}
	e.Address = addr.toModel(e.ID)
	return e, nil
}

func (q *pgQueries) FindTicketByEnrollment(ctx context.Context, enrollmentID int) (model.Ticket, error) {
	var (
		t      model.Ticket
		status string
	)
	err := q.db.QueryRow(ctx,
		`SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
		        tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
		 FROM tickets t
		 JOIN ticket_types tt ON tt.id = t.ticket_type_id
		 WHERE t.enrollment_id = $1`,
		enrollmentID,
	).Scan(
		&t.ID, &t.TicketTypeID, &t.EnrollmentID, &status, &t.CreatedAt, &t.UpdatedAt,
		&t.TicketType.ID, &t.TicketType.Name, &t.TicketType.Price, &t.TicketType.IsRemote,
		&t.TicketType.IncludesHotel, &t.TicketType.CreatedAt, &t.TicketType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Ticket{}, ErrNotFound
		}
		return model.Ticket{}, fmt.Errorf("find ticket: %w", err)
	}
	t.Status = model.TicketStatus(status)
	return t, nil
}

func (q *pgQueries) FindRoomWithOccupancy(ctx context.Context, roomID int) (model.RoomOccupancy, error) {
	lockClause := ""
	if q.inTx {
		lockClause = " FOR UPDATE"
	}

	occ := model.RoomOccupancy{RoomID: roomID}
	err := q.db.QueryRow(ctx,
		`SELECT capacity FROM rooms WHERE id = $1`+lockClause,
		roomID,
	).Scan(&occ.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RoomOccupancy{}, ErrNotFound
		}
		return model.RoomOccupancy{}, fmt.Errorf("lock room row: %w", err)
	}

	err = q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = $1`,
		roomID,
	).Scan(&occ.Occupants)
	if err != nil {
		return model.RoomOccupancy{}, fmt.Errorf("count room bookings: %w", err)
	}
	return occ, nil
}

func (q *pgQueries) FindBookingByUser(ctx context.Context, userID int) (model.BookingWithRoom, error) {
	var b model.BookingWithRoom
	err := q.db.QueryRow(ctx,
		`SELECT b.id, r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
		 FROM bookings b
		 JOIN rooms r ON r.id = b.room_id
		 WHERE b.user_id = $1`,
		userID,
	).Scan(&b.ID, &b.Room.ID, &b.Room.Name, &b.Room.Capacity, &b.Room.HotelID, &b.Room.CreatedAt, &b.Room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BookingWithRoom{}, ErrNotFound
		}
		return model.BookingWithRoom{}, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

func (q *pgQueries) FindBookingByUserAndID(ctx context.Context, userID, bookingID int) (model.Booking, error) {
	lockClause := ""
	if q.inTx {
		lockClause = " FOR UPDATE"
	}

	var b model.Booking
	err := q.db.QueryRow(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at
		 FROM bookings
		 WHERE id = $1 AND user_id = $2`+lockClause,
		bookingID, userID,
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("find booking by id: %w", err)
	}
	return b, nil
}

func (q *pgQueries) InsertBooking(ctx context.Context, userID, roomID int) (model.Booking, error) {
	now := timestamp()
	b := model.Booking{UserID: userID, RoomID: roomID, CreatedAt: now, UpdatedAt: now}
	err := q.db.QueryRow(ctx,
		`INSERT INTO bookings (user_id, room_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		b.UserID, b.RoomID, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err, "bookings_user_id_key") {
			return model.Booking{}, ErrDuplicateBooking
		}
		return model.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

func (q *pgQueries) UpdateBookingRoom(ctx context.Context, bookingID, roomID int) (model.Booking, error) {
	var b model.Booking
	err := q.db.QueryRow(ctx,
		`UPDATE bookings SET room_id = $2, updated_at = $3
		 WHERE id = $1
		 RETURNING id, user_id, room_id, created_at, updated_at`,
		bookingID, roomID, timestamp(),
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("update booking room: %w", err)
	}
	return b, nil
}

func (q *pgQueries) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, name, image, created_at, updated_at
		 FROM hotels
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []model.Hotel
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (q *pgQueries) FindHotelWithRooms(ctx context.Context, hotelID int) (model.HotelWithRooms, error) {
	var h model.HotelWithRooms
	err := q.db.QueryRow(ctx,
		`SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = $1`,
		hotelID,
	).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.HotelWithRooms{}, ErrNotFound
		}
		return model.HotelWithRooms{}, fmt.Errorf("get hotel: %w", err)
	}

	rows, err := q.db.Query(ctx,
		`SELECT r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at, COUNT(b.id)
		 FROM rooms r
		 LEFT JOIN bookings b ON b.room_id = r.id
		 WHERE r.hotel_id = $1
		 GROUP BY r.id
		 ORDER BY r.id ASC`,
		hotelID,
	)
	if err != nil {
		return model.HotelWithRooms{}, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	h.Rooms = []model.RoomAvailability{}
	for rows.Next() {
		var r model.RoomAvailability
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity, &r.HotelID, &r.CreatedAt, &r.UpdatedAt, &r.BookedCount); err != nil {
			return model.HotelWithRooms{}, fmt.Errorf("scan room: %w", err)
		}
		h.Rooms = append(h.Rooms, r)
	}
	if err := rows.Err(); err != nil {
		return model.HotelWithRooms{}, fmt.Errorf("list rooms: %w", err)
	}
	return h, nil
}

func (q *pgQueries) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, name, price, is_remote, includes_hotel, created_at, updated_at
		 FROM ticket_types
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	defer rows.Close()

	var types []model.TicketType
	for rows.Next() {
		var tt model.TicketType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket type: %w", err)
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}

var (
	_ Store    = (*PostgresStore)(nil)
	_ Fixtures = (*PostgresStore)(nil)
)
