package redisstore

import (
	"fmt"
	"strings"
)

// Redis key layout:
//
//	cf:<family>:<rowkey>   hash holding the row's columns
//	cf:<family>:~index     sorted set (score 0) of row keys, for lex ranges
//
// Super-column-family hashes encode each field as <super><US><column>,
// where <US> is the ASCII unit separator. The separator is rejected in
// user-supplied names so a field always splits unambiguously.
const (
	keyPrefix      = "cf"
	keyDelimiter   = ":"
	fieldDelimiter = "\x1f"
	indexSuffix    = "~index"
	nameMaxLength  = 512
)

type InvalidNameError string

func (e InvalidNameError) Error() string { return "redisstore: invalid name: " + string(e) }

// validateName validates a family, row key, column or super column name.
func validateName(kind, name string) error {
	if name == "" {
		return InvalidNameError(kind + " must not be empty")
	}
	if len(name) > nameMaxLength {
		return InvalidNameError(fmt.Sprintf("%s '%s' exceeds %d characters", kind, name, nameMaxLength))
	}
	if strings.Contains(name, fieldDelimiter) {
		return InvalidNameError(fmt.Sprintf("%s '%s' contains a reserved separator", kind, name))
	}
	return nil
}

func validateFamily(family string) error {
	if err := validateName("family", family); err != nil {
		return err
	}
	if strings.Contains(family, keyDelimiter) {
		return InvalidNameError(fmt.Sprintf("family '%s' must not contain '%s'", family, keyDelimiter))
	}
	return nil
}

// rowKey builds the hash key for one row of the family.
func rowKey(family, key string) string {
	return keyPrefix + keyDelimiter + family + keyDelimiter + key
}

// indexKey builds the key of the family's row-key index.
func indexKey(family string) string {
	return keyPrefix + keyDelimiter + family + keyDelimiter + indexSuffix
}

// field builds a hash field name. superColumn is empty for standard families.
func field(superColumn, column string) string {
	if superColumn == "" {
		return column
	}
	return superColumn + fieldDelimiter + column
}

// splitField splits a hash field of a super-column-family row.
func splitField(f string) (superColumn, column string, ok bool) {
	superColumn, column, ok = strings.Cut(f, fieldDelimiter)
	return superColumn, column, ok
}
