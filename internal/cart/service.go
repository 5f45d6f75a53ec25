package cart

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// TTL is how long an untouched cart is kept.
const TTL = 30 * 24 * time.Hour

const keyPrefix = "cart:"

// ErrInvalidID is returned for cart ids that were not issued by NewID.
var ErrInvalidID = errors.New("invalid cart id")

// Store is the persistence the cart service needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service loads and saves carts by id.
type Service struct {
	store Store
}

// NewService creates a new cart Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NewID returns a random, URL-safe cart id.
func NewID() (string, error) {
	b := make([]byte, 18)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidID reports whether id has the shape of an id issued by NewID.
func ValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(id)
	return err == nil
}

// Load returns the cart stored under id. Unknown ids yield an empty cart.
func (s *Service) Load(ctx context.Context, id string) (*Cart, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}
	raw, err := s.store.Get(ctx, keyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	c := &Cart{Items: []Item{}}
	if raw == nil {
		return c, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

// Save stores the cart under id and renews its TTL. An empty cart is deleted.
func (s *Service) Save(ctx context.Context, id string, c *Cart) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	if len(c.Items) == 0 {
		return s.Delete(ctx, id)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, keyPrefix+id, raw, TTL); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the cart stored under id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	if err := s.store.Delete(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
