package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

var ErrUnknownKeyId = errors.New("unknown key id")

const DefaultKeysetTTL = 1 * time.Hour

// Keyset caches the RSA public keys published at a JWKS endpoint.
//
// Keys are refetched after the TTL elapses. A lookup for a kid missing
// from the cache forces one extra fetch before failing, so freshly
// rotated keys are picked up without waiting for expiry.
type Keyset struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

type KeysetOption func(*Keyset)

func WithTTL(ttl time.Duration) KeysetOption {
	return func(k *Keyset) {
		k.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) KeysetOption {
	return func(k *Keyset) {
		k.client = client
	}
}

func NewKeyset(url string, options ...KeysetOption) *Keyset {
	k := &Keyset{
		url:    url,
		ttl:    DefaultKeysetTTL,
		client: http.DefaultClient,
	}
	for _, option := range options {
		option(k)
	}
	return k
}

// Key returns the public key for kid, fetching or refreshing the
// keyset as needed.
func (k *Keyset) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.keys == nil || k.ttl <= time.Since(k.fetchedAt) {
		if err := k.refresh(ctx); err != nil {
			return nil, err
		}
	}
	if key, ok := k.keys[kid]; ok {
		return key, nil
	}

	// the kid may belong to a key rotated in after the last fetch
	if err := k.refresh(ctx); err != nil {
		return nil, err
	}
	if key, ok := k.keys[kid]; ok {
		return key, nil
	}
	return nil, xe.Wrap(fmt.Errorf("%w: %s", ErrUnknownKeyId, kid))
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k *Keyset) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return xe.Wrap(err)
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return xe.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return xe.Wrap(fmt.Errorf("jwks endpoint answered %s", resp.Status))
	}

	payload := struct {
		Keys []jwk `json:"keys"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return xe.Wrap(err)
	}

	keys := map[string]*rsa.PublicKey{}
	for _, key := range payload.Keys {
		if key.Kty != "RSA" || key.Kid == "" {
			continue
		}
		pub, err := parseRSAKey(key)
		if err != nil {
			return err
		}
		keys[key.Kid] = pub
	}

	k.keys = keys
	k.fetchedAt = time.Now()
	return nil
}

func parseRSAKey(key jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, xe.WrapWithNote("jwk modulus", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, xe.WrapWithNote("jwk exponent", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
