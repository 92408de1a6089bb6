package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
)

type userIDKey struct{}

// accessClaims accepts the user id either as the subject or as a numeric
// userId claim.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId,omitempty"`
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns an Authenticator for the shared secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Middleware rejects requests without a valid token and stores the resolved
// user id in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.Verify(bearerToken(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Verify checks the token signature and expiry and returns the user id it
// carries.
func (a *Authenticator) Verify(raw string) (int, error) {
	if raw == "" {
		return 0, apperr.ErrUnauthorized.WithOp("verify token")
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, &apperr.Error{Op: "verify token", Kind: apperr.KindUnauthorized, Msg: apperr.ErrUnauthorized.Msg, Err: err}
	}

	userID := claims.UserID
	if userID == 0 && claims.Subject != "" {
		if userID, err = strconv.Atoi(claims.Subject); err != nil {
			userID = 0
		}
	}
	if userID <= 0 {
		return 0, &apperr.Error{
			Op:   "verify token",
			Kind: apperr.KindUnauthorized,
			Msg:  apperr.ErrUnauthorized.Msg,
			Err:  errors.New("token carries no user id"),
		}
	}
	return userID, nil
}

// Sign issues a token for userID. The seed command uses it to print a token
// for the demo user.
func (a *Authenticator) Sign(userID int, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = strconv.Itoa(userID)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{RegisteredClaims: claims, UserID: userID})
	return token.SignedString(a.secret)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the id stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey{}).(int)
	return id, ok && id > 0
}
