package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

// Enrichment steps, used in EnrichmentError and metrics labels.
const (
	OpUpdate = "update"
	OpRead   = "read"
	OpMerge  = "merge"
)

// ProfileStore is the part of the identity store used for enrichment.
type ProfileStore interface {
	UpdateProfile(ctx context.Context, id int64, p models.Profile) error
	FindUser(ctx context.Context, id int64, fields []string) (map[string]any, error)
}

// EnrichmentError reports a failed post-registration step. It never reaches
// the client; the original registration response is sent instead.
type EnrichmentError struct {
	Op     string
	UserID int64
	Err    error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich user %d: %s: %v", e.UserID, e.Op, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// Augment wraps a registration handler so that, after a successful sign-up,
// the profile fields from the request are written to the new user and the
// response's user object is replaced with a fresh read of that user.
//
// The wrapped handler always runs first and sees the request unchanged.
// Its response is only rewritten when it was 200 with a user.id and both
// store calls succeeded; otherwise it is sent byte-for-byte.
func Augment(users ProfileStore, log *zap.Logger, m *metrics.Metrics) func(gin.HandlerFunc) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(next gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			profile := readProfile(c)

			orig := c.Writer
			cw := newCaptureWriter(orig)
			c.Writer = cw
			next(c)
			c.Writer = orig

			body := cw.body.Bytes()
			if cw.status != http.StatusOK {
				m.Registration("rejected")
				cw.release(body)
				return
			}
			m.Registration("created")

			userID, ok := createdUserID(body)
			if !ok {
				cw.release(body)
				return
			}

			enriched, err := enrich(c.Request.Context(), users, userID, profile, body)
			if err != nil {
				var ee *EnrichmentError
				op := OpMerge
				if errors.As(err, &ee) {
					op = ee.Op
				}
				m.EnrichmentFailure(op)
				log.Error("error updating user with profile fields",
					zap.Int64("user_id", userID),
					zap.String("op", op),
					zap.Error(err),
				)
				cw.release(body)
				return
			}

			m.Registration("enriched")
			cw.release(enriched)
		}
	}
}

// enrich runs update then read and returns the rewritten body.
func enrich(ctx context.Context, users ProfileStore, id int64, p models.Profile, body []byte) ([]byte, error) {
	if err := users.UpdateProfile(ctx, id, p); err != nil {
		return nil, &EnrichmentError{Op: OpUpdate, UserID: id, Err: err}
	}

	user, err := users.FindUser(ctx, id, models.ProfileFields)
	if err != nil {
		return nil, &EnrichmentError{Op: OpRead, UserID: id, Err: err}
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, &EnrichmentError{Op: OpMerge, UserID: id, Err: err}
	}
	out, err := sjson.SetRawBytes(body, "user", raw)
	if err != nil {
		return nil, &EnrichmentError{Op: OpMerge, UserID: id, Err: err}
	}
	return out, nil
}

// readProfile extracts the six profile fields and puts the body back for
// the wrapped handler. Absent fields are empty strings.
func readProfile(c *gin.Context) models.Profile {
	if c.Request.Body == nil {
		return models.Profile{}
	}

	raw, _ := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if !gjson.ValidBytes(raw) {
		return models.Profile{}
	}

	fields := gjson.GetManyBytes(raw, "firstName", "lastName", "phone", "address", "city", "country")
	return models.Profile{
		FirstName: fields[0].String(),
		LastName:  fields[1].String(),
		Phone:     fields[2].String(),
		Address:   fields[3].String(),
		City:      fields[4].String(),
		Country:   fields[5].String(),
	}
}

// createdUserID returns user.id from a registration response body.
func createdUserID(body []byte) (int64, bool) {
	if !gjson.ValidBytes(body) {
		return 0, false
	}
	id := gjson.GetBytes(body, "user.id")
	switch id.Type {
	case gjson.Number:
		return id.Int(), true
	case gjson.String:
		n, err := strconv.ParseInt(id.Str, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
