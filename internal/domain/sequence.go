package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// Sequential ID prefixes, one per entity kind. IDs are unique per warehouse
// and entity kind, formed as <PREFIX><n> with n starting at 1.
const (
	ContainerIDPrefix = "CONTAINER-"
	InboundIDPrefix   = "INBOUND-"
	OutboundIDPrefix  = "OUTBOUND-"
)

// NextSequentialID returns the identifier that follows lastID in a
// warehouse-scoped sequence. An empty lastID starts the sequence at
// <prefix>1.
//
// The returned candidate is only a proposal: callers must commit it with a
// conditional create-if-absent write and re-read the latest ID on conflict.
// Generation itself takes no locks.
func NextSequentialID(lastID, prefix string) (string, error) {
	if prefix == "" {
		return "", apperrors.ErrValidation("sequential ID prefix must not be blank")
	}

	if lastID == "" {
		return prefix + "1", nil
	}

	suffix, ok := strings.CutPrefix(lastID, prefix)
	if !ok {
		return "", apperrors.ErrCorruptState(
			fmt.Sprintf("stored identifier %q does not match prefix %q", lastID, prefix))
	}

	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 1 {
		return "", apperrors.ErrCorruptState(
			fmt.Sprintf("stored identifier %q has a non-numeric suffix", lastID))
	}

	return fmt.Sprintf("%s%d", prefix, n+1), nil
}
