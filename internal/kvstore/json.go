package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON decodes the value under key into dst. It reports false (and leaves
// dst alone) when the key is absent or holds JSON null.
func LoadJSON[T any](ctx context.Context, s Store, key string, dst *T) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON decodes the value under key (zero T when absent), lets fn modify
// it and stores the result, all inside one Store.Update. It returns the value
// that was written.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(v *T) error) (T, error) {
	var result T
	err := s.Update(ctx, key, func(current []byte) ([]byte, error) {
		var v T
		if current != nil && string(current) != "null" {
			if err := json.Unmarshal(current, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		result = v
		return raw, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
