// Package savedset holds the bookmark state machine and the signed snapshot
// the client carries between requests.
package savedset

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/arnavshah/campfinder-api/pkg/models"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken  = errors.New("invalid saved set token")
	ErrChildMismatch = errors.New("saved set belongs to another child")
)

var signingMethod = jwt.SigningMethodHS256

// Contains reports whether id is saved
func Contains(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

// Toggle adds id when absent and removes it when present. The input slice is
// left untouched; saved reports the new state of id.
func Toggle(ids []string, id string) (out []string, saved bool) {
	if i := slices.Index(ids, id); i >= 0 {
		out = make([]string, 0, len(ids)-1)
		out = append(out, ids[:i]...)
		return append(out, ids[i+1:]...), false
	}
	out = make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), true
}

// Set moves id into the wanted state, toggling only when it differs
func Set(ids []string, id string, want bool) []string {
	if Contains(ids, id) == want {
		return slices.Clone(ids)
	}
	out, _ := Toggle(ids, id)
	return out
}

// Claims is the JWT payload of a saved set snapshot
type Claims struct {
	ChildID  string   `json:"child_id,omitempty"`
	Camps    []string `json:"camps"`
	Sessions []string `json:"sessions"`
	jwt.RegisteredClaims
}

// Codec signs and verifies saved set snapshots
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec using an HMAC secret. A zero ttl means snapshots
// never expire.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode signs the saved set
func (c *Codec) Encode(set models.SavedSet) (string, error) {
	claims := &Claims{
		ChildID:  set.ChildID,
		Camps:    nonNil(set.CampIDs),
		Sessions: nonNil(set.SessionIDs),
	}
	now := c.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign saved set: %w", err)
	}
	return signed, nil
}

// Decode verifies a snapshot. An empty token is an empty set.
func (c *Codec) Decode(tokenString string) (models.SavedSet, error) {
	if tokenString == "" {
		return models.SavedSet{CampIDs: []string{}, SessionIDs: []string{}}, nil
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return models.SavedSet{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.SavedSet{}, ErrInvalidToken
	}

	return models.SavedSet{
		ChildID:    claims.ChildID,
		CampIDs:    nonNil(claims.Camps),
		SessionIDs: nonNil(claims.Sessions),
	}, nil
}

// DecodeFor decodes a snapshot and checks it was issued for childID. Either
// side being blank skips the check.
func (c *Codec) DecodeFor(tokenString, childID string) (models.SavedSet, error) {
	set, err := c.Decode(tokenString)
	if err != nil {
		return set, err
	}
	if childID != "" && set.ChildID != "" && set.ChildID != childID {
		return models.SavedSet{}, ErrChildMismatch
	}
	if set.ChildID == "" {
		set.ChildID = childID
	}
	return set, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
