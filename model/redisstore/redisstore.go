/*
Package redisstore provides a model.Store backed by a redis DB, so
model caches can outlive a single search process or be shared between
workers exploring the same dataset.
*/
package redisstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/canopyml/canopy/model"
	"gopkg.in/redis.v5"
)

/*
ModelEncodeDecoder is an interface for objects that allow encoding
models into slices of bytes and decoding them back to models.
*/
type ModelEncodeDecoder interface {

	//Encode receives a model.Model
	//and returns a slice of bytes with the model
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(model.Model) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a model.Model decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (model.Model, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	mencdec ModelEncodeDecoder
}

//New builds a model.Store backed by a redis DB
func New(rc *redis.Client, prefix string, mencdec ModelEncodeDecoder) model.Store {
	return &redisStore{rc, prefix, mencdec}
}

func (rs *redisStore) Lookup(ctx context.Context, m model.Model) (model.Model, error) {
	stored, err := rs.modelsFor(m.Hash())
	if err != nil {
		return nil, err
	}
	for _, candidate := range stored {
		if m.Equal(candidate) {
			return candidate, nil
		}
	}
	return nil, nil
}

func (rs *redisStore) Add(ctx context.Context, m model.Model) error {
	hash := m.Hash()
	key := rs.keyFor(hash)
	stored, err := rs.modelsFor(hash)
	if err != nil {
		return err
	}
	for _, candidate := range stored {
		if m.Equal(candidate) {
			return nil
		}
	}
	data, err := rs.mencdec.Encode(m)
	if err != nil {
		return fmt.Errorf("storing model %q: encoding model: %v", key, err)
	}
	encoded, err := rs.rc.Get(key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("storing model %q: retrieving stored entries: %v", key, err)
	}
	var entries []string
	if encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
			return fmt.Errorf("storing model %q: decoding stored entries: %v", key, err)
		}
	}
	entries = append(entries, base64.StdEncoding.EncodeToString(data))
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("storing model %q: encoding entries: %v", key, err)
	}
	_, err = rs.rc.Set(key, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("storing model %q in redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	err := rs.rc.Close()
	if err != nil {
		return fmt.Errorf("closing redis store: %v", err)
	}
	return nil
}

func (rs *redisStore) modelsFor(hash uint64) ([]model.Model, error) {
	key := rs.keyFor(hash)
	encoded, err := rs.rc.Get(key).Result()
	if err == redis.Nil || encoded == "" {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving models %q: %v", key, err)
	}
	var entries []string
	if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
		return nil, fmt.Errorf("retrieving models %q: decoding entries: %v", key, err)
	}
	models := make([]model.Model, 0, len(entries))
	for _, entry := range entries {
		data, err := base64.StdEncoding.DecodeString(entry)
		if err != nil {
			return nil, fmt.Errorf("retrieving models %q: decoding entry: %v", key, err)
		}
		m, err := rs.mencdec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("retrieving models %q: decoding %q: %v", key, entry, err)
		}
		models = append(models, m)
	}
	return models, nil
}

func (rs *redisStore) keyFor(hash uint64) string {
	return fmt.Sprintf("%s:%016x", rs.prefix, hash)
}
