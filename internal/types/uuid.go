package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex fce_01HZX4Y3R6J7K8M9N0P1Q2R3S4
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	UUID_PREFIX_SUBSCRIPTION         = "subs"
	UUID_PREFIX_INVOICE_SUBSCRIPTION = "insub"
	UUID_PREFIX_INVOICE              = "inv"
	UUID_PREFIX_PLAN                 = "plan"
	UUID_PREFIX_CUSTOMER             = "cust"
	UUID_PREFIX_COMMITMENT           = "cmt"
	UUID_PREFIX_FIXED_CHARGE         = "fc"
	UUID_PREFIX_FIXED_CHARGE_EVENT   = "fce"
	UUID_PREFIX_REQUEST              = "req"
)
