package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
)

// sqlExecutor is satisfied by both *sql.DB and *sql.Tx.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore is the SQLite record store. Timestamps are stored as Unix
// milliseconds.
//
// The handle is opened with a single connection (see database.OpenSQLite), so
// a transaction started by RunInTx owns the database until it ends and
// capacity checks can never interleave.
type SQLiteStore struct {
	db *sql.DB
	sqliteQueries
}

// NewSQLiteStore constructs a SQLiteStore on an open, migrated handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, sqliteQueries: sqliteQueries{db: db}}
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

// RunInTx runs fn in one transaction.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(q Queries) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&sqliteQueries{db: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type sqliteQueries struct {
	db sqlExecutor
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func (q *sqliteQueries) FindEnrollmentByUser(ctx context.Context, userID int) (model.Enrollment, error) {
	var (
		e                          model.Enrollment
		addr                       nullableAddress
		birthday, created, updated int64
	)
	dest := append([]any{&e.ID, &e.Name, &e.CPF, &birthday, &e.Phone, &e.UserID, &created, &updated}, addr.dest()...)
	err := q.db.QueryRowContext(ctx,
		`SELECT e.id, e.name, e.cpf, e.birthday, e.phone, e.user_id, e.created_at, e.updated_at,
		        a.id, a.cep, a.street, a.city, a.state, a.number, a.neighborhood, a.address_detail
		 FROM enrollments e
		 LEFT JOIN addresses a ON a.enrollment_id = e.id
		 WHERE e.user_id = ?`,
		userID,
	).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Enrollment{}, ErrNotFound
		}
		return model.Enrollment{}, fmt.Errorf("find enrollment: %w", err)
	}
	e.Birthday = fromMillis(birthday)
	e.CreatedAt = fromMillis(created)
	e.UpdatedAt = fromMillis(updated)
	e.Address = addr.toModel(e.ID)
	return e, nil
}

func (q *sqliteQueries) FindTicketByEnrollment(ctx context.Context, enrollmentID int) (model.Ticket, error) {
	var (
		t                                      model.Ticket
		status                                 string
		created, updated, ttCreated, ttUpdated int64
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
		        tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
		 FROM tickets t
		 JOIN ticket_types tt ON tt.id = t.ticket_type_id
		 WHERE t.enrollment_id = ?`,
		enrollmentID,
	).Scan(
		&t.ID, &t.TicketTypeID, &t.EnrollmentID, &status, &created, &updated,
		&t.TicketType.ID, &t.TicketType.Name, &t.TicketType.Price, &t.TicketType.IsRemote,
		&t.TicketType.IncludesHotel, &ttCreated, &ttUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ticket{}, ErrNotFound
		}
		return model.Ticket{}, fmt.Errorf("find ticket: %w", err)
	}
	t.Status = model.TicketStatus(status)
	t.CreatedAt, t.UpdatedAt = fromMillis(created), fromMillis(updated)
	t.TicketType.CreatedAt, t.TicketType.UpdatedAt = fromMillis(ttCreated), fromMillis(ttUpdated)
	return t, nil
}

func (q *sqliteQueries) FindRoomWithOccupancy(ctx context.Context, roomID int) (model.RoomOccupancy, error) {
	occ := model.RoomOccupancy{RoomID: roomID}
	err := q.db.QueryRowContext(ctx,
		`SELECT r.capacity, (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
		 FROM rooms r
		 WHERE r.id = ?`,
		roomID,
	).Scan(&occ.Capacity, &occ.Occupants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RoomOccupancy{}, ErrNotFound
		}
		return model.RoomOccupancy{}, fmt.Errorf("find room: %w", err)
	}
	return occ, nil
}

func (q *sqliteQueries) FindBookingByUser(ctx context.Context, userID int) (model.BookingWithRoom, error) {
	var (
		b                model.BookingWithRoom
		created, updated int64
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT b.id, r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
		 FROM bookings b
		 JOIN rooms r ON r.id = b.room_id
		 WHERE b.user_id = ?`,
		userID,
	).Scan(&b.ID, &b.Room.ID, &b.Room.Name, &b.Room.Capacity, &b.Room.HotelID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookingWithRoom{}, ErrNotFound
		}
		return model.BookingWithRoom{}, fmt.Errorf("find booking: %w", err)
	}
	b.Room.CreatedAt, b.Room.UpdatedAt = fromMillis(created), fromMillis(updated)
	return b, nil
}

func (q *sqliteQueries) FindBookingByUserAndID(ctx context.Context, userID, bookingID int) (model.Booking, error) {
	b, err := scanSQLiteBooking(q.db.QueryRowContext(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at
		 FROM bookings
		 WHERE id = ? AND user_id = ?`,
		bookingID, userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("find booking by id: %w", err)
	}
	return b, nil
}

func (q *sqliteQueries) InsertBooking(ctx context.Context, userID, roomID int) (model.Booking, error) {
	now := timestamp()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, room_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		userID, roomID, toMillis(now), toMillis(now),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err, "bookings.user_id") {
			return model.Booking{}, ErrDuplicateBooking
		}
		return model.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, fmt.Errorf("insert booking id: %w", err)
	}
	return model.Booking{ID: int(id), UserID: userID, RoomID: roomID, CreatedAt: now, UpdatedAt: now}, nil
}

func (q *sqliteQueries) UpdateBookingRoom(ctx context.Context, bookingID, roomID int) (model.Booking, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE bookings SET room_id = ?, updated_at = ? WHERE id = ?`,
		roomID, toMillis(timestamp()), bookingID,
	)
	if err != nil {
		return model.Booking{}, fmt.Errorf("update booking room: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Booking{}, fmt.Errorf("update booking room: %w", err)
	}
	if n == 0 {
		return model.Booking{}, ErrNotFound
	}

	b, err := scanSQLiteBooking(q.db.QueryRowContext(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`,
		bookingID,
	))
	if err != nil {
		return model.Booking{}, fmt.Errorf("reload booking: %w", err)
	}
	return b, nil
}

func scanSQLiteBooking(row *sql.Row) (model.Booking, error) {
	var (
		b                model.Booking
		created, updated int64
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &created, &updated); err != nil {
		return model.Booking{}, err
	}
	b.CreatedAt, b.UpdatedAt = fromMillis(created), fromMillis(updated)
	return b, nil
}

func (q *sqliteQueries) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []model.Hotel
	for rows.Next() {
		var (
			h                model.Hotel
			created, updated int64
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		h.CreatedAt, h.UpdatedAt = fromMillis(created), fromMillis(updated)
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (q *sqliteQueries) FindHotelWithRooms(ctx context.Context, hotelID int) (model.HotelWithRooms, error) {
	var (
		h                model.HotelWithRooms
		created, updated int64
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`,
		hotelID,
	).Scan(&h.ID, &h.Name, &h.Image, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.HotelWithRooms{}, ErrNotFound
		}
		return model.HotelWithRooms{}, fmt.Errorf("get hotel: %w", err)
	}
	h.CreatedAt, h.UpdatedAt = fromMillis(created), fromMillis(updated)

	rows, err := q.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at,
		        (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
		 FROM rooms r
		 WHERE r.hotel_id = ?
		 ORDER BY r.id ASC`,
		hotelID,
	)
	if err != nil {
		return model.HotelWithRooms{}, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	h.Rooms = []model.RoomAvailability{}
	for rows.Next() {
		var (
			r                  model.RoomAvailability
			rCreated, rUpdated int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity, &r.HotelID, &rCreated, &rUpdated, &r.BookedCount); err != nil {
			return model.HotelWithRooms{}, fmt.Errorf("scan room: %w", err)
		}
		r.CreatedAt, r.UpdatedAt = fromMillis(rCreated), fromMillis(rUpdated)
		h.Rooms = append(h.Rooms, r)
	}
	if err := rows.Err(); err != nil {
		return model.HotelWithRooms{}, fmt.Errorf("list rooms: %w", err)
	}
	return h, nil
}

func (q *sqliteQueries) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	rows, err := q.db.QueryContext(ctx,
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
		var (
			tt               model.TicketType
			created, updated int64
		)
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan ticket type: %w", err)
		}
		tt.CreatedAt, tt.UpdatedAt = fromMillis(created), fromMillis(updated)
		types = append(types, tt)
	}
	return types, rows.Err()
}

func isSQLiteUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return strings.Contains(sqliteErr.Error(), column)
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") && strings.Contains(message, column)
}

var (
	_ Store    = (*SQLiteStore)(nil)
	_ Fixtures = (*SQLiteStore)(nil)
)
