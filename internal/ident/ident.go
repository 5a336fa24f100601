// Package ident derives sequential, human readable identifiers such as B0001, I0042 or T0107.
package ident

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	BranchPrefix   = "B"
	ItemPrefix     = "I"
	TransferPrefix = "T"
)

// Next returns the identifier following last, e.g. Next("B", "B0005") == "B0006".
// An empty last, or one that is not prefix followed by a non-negative integer, restarts at 1.
func Next(prefix, last string) string {
	n := 1
	if num, ok := suffix(prefix, last); ok {
		n = num + 1
	}
	return fmt.Sprintf("%s%04d", prefix, n)
}

// Resolve keeps an explicit identifier and only generates one when none was supplied.
func Resolve(explicit, prefix, last string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return Next(prefix, last)
}

func HasPrefix(id, prefix string) bool {
	return id != "" && strings.HasPrefix(id, prefix)
}

// IsBranchID is the format check applied before branch lookups.
func IsBranchID(id string) bool {
	return HasPrefix(id, BranchPrefix)
}

func suffix(prefix, id string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	rest := id[len(prefix):]
	if rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LastID reads the greatest value of column in model's table. Run it on the
// transaction that will insert the new row.
func LastID(ctx context.Context, tx *gorm.DB, model any, column string) (string, error) {
	var last string
	err := tx.WithContext(ctx).
		Model(model).
		Select(column).
		Order(column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return last, nil
}
