// Package history records each render in the local database so that past
// requests can be listed and reproduced.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Entry is one recorded render.
type Entry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Bench       string    `json:"bench"`
	SDRNodeType string    `json:"sdr_nodetype"`
	CNNodeType  string    `json:"cn_nodetype"`
	RANHash     string    `json:"ran_hash"`
	CNHash      string    `json:"cn_hash"`
	Format      string    `json:"format"`
	Output      string    `json:"output,omitempty"`
	Digest      string    `json:"digest,omitempty"`
	Outcome     string    `json:"outcome"`
	Detail      string    `json:"detail,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
}

// Digest returns the hex SHA-256 of a rendered document.
func Digest(document []byte) string {
	sum := sha256.Sum256(document)
	return hex.EncodeToString(sum[:])
}
