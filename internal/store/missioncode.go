package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// codePrefix is the first segment of every mission code.
const codePrefix = "FA"

// GenerateMissionCode derives the next mission code for the given
// creation date, in the form FA-<YYYYMMDD>-<NNN>. The sequence is one
// past the highest existing code sharing the date prefix, left-padded
// to three digits (a day with more than 999 missions keeps counting
// with four digits).
//
// If the lookup fails the generator falls back to a random three-digit
// suffix instead of failing the create. Neither path is serialized
// across requests, so two concurrent generations can produce the same
// code; the unique index on mission_code is the backstop, and callers
// retry on a uniqueness conflict.
func GenerateMissionCode(ctx context.Context, db *sql.DB, day time.Time) string {
	prefix := fmt.Sprintf("%s-%s-", codePrefix, day.Format("20060102"))

	var last string
	err := db.QueryRowContext(ctx,
		`SELECT mission_code FROM missions WHERE mission_code LIKE ? ORDER BY mission_code DESC LIMIT 1`,
		prefix+"%",
	).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
		return fmt.Sprintf("%s%03d", prefix, 1)
	case err != nil:
		return prefix + randomCodeSuffix()
	}

	seq := 0
	if i := strings.LastIndexByte(last, '-'); i >= 0 {
		seq, _ = strconv.Atoi(last[i+1:])
	}
	return fmt.Sprintf("%s%03d", prefix, seq+1)
}

// randomCodeSuffix returns a random zero-padded three-digit string.
func randomCodeSuffix() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "000"
	}
	return fmt.Sprintf("%03d", n.Int64())
}
