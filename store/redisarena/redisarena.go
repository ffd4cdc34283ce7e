// Package redisarena persists a tree.Tree's flat node arena to a Redis
// hash keyed by node index, one field per node — a natural fit for the
// arena model, since node indices are already stable integer keys (spec.md
// §5: "node indices within a tree are stable"). Grounded on
// pbanos-botanic/tree/redisstore's NodeStore (Create/Get/Store/Delete
// against a *redis.Client, encode/decode via a caller-supplied
// NodeEncodeDecoder) using gopkg.in/redis.v5, adapted from one node keyed
// by a random string ID to one node keyed by its arena index.
package redisarena

import (
	"encoding/json"
	"fmt"

	"gopkg.in/redis.v5"

	"github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/tree"
)

// Store persists a single tree's node arena under a Redis hash named
// prefix. One Store instance handles one tree (and one concrete TS/TL
// instantiation); this module uses it at the
// tabular.ClassifSample (int, counter.Counter) instantiation.
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store writing to the Redis hash named prefix.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc: rc, prefix: prefix}
}

// SaveClassif writes every node of a classification tree's arena as one
// hash field per index, JSON-encoded.
func (s *Store) SaveClassif(nodes []tree.Node[int, counter.Counter]) error {
	fields := make(map[string]interface{}, len(nodes))
	for i, n := range nodes {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encoding node %d: %w", i, err)
		}
		fields[fmt.Sprintf("%d", i)] = data
	}
	if _, err := s.rc.HMSet(s.prefix, toStringFields(fields)).Result(); err != nil {
		return fmt.Errorf("storing arena %q in redis: %w", s.prefix, err)
	}
	return nil
}

// LoadClassif reads back every node field of the hash named prefix and
// reassembles the arena in index order; nNodes must match the count used
// when SaveClassif wrote it (the hash carries no explicit length field).
func (s *Store) LoadClassif(nNodes int) ([]tree.Node[int, counter.Counter], error) {
	nodes := make([]tree.Node[int, counter.Counter], nNodes)
	for i := 0; i < nNodes; i++ {
		data, err := s.rc.HGet(s.prefix, fmt.Sprintf("%d", i)).Result()
		if err != nil {
			return nil, fmt.Errorf("retrieving node %d from %q: %w", i, s.prefix, err)
		}
		if err := json.Unmarshal([]byte(data), &nodes[i]); err != nil {
			return nil, fmt.Errorf("decoding node %d: %w", i, err)
		}
	}
	return nodes, nil
}

// Delete removes the entire arena hash.
func (s *Store) Delete() error {
	_, err := s.rc.Del(s.prefix).Result()
	if err != nil {
		return fmt.Errorf("deleting arena %q from redis: %w", s.prefix, err)
	}
	return nil
}

func toStringFields(m map[string]interface{}) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v.([]byte))
	}
	return out
}
