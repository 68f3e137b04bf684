package provider

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/sierrasoftworks/humane-errors-go"
)

// ErrInvalidInclude is the cause of ParseInclude errors.
var ErrInvalidInclude = errors.New("invalid include field")

// ParseInclude converts comma separated, case insensitive field names into
// DescribeClusters include fields. Duplicates and blanks are dropped.
func ParseInclude(values ...string) ([]types.ClusterField, humane.Error) {
	known := types.ClusterField("").Values()

	fields := make([]types.ClusterField, 0, len(known))
	for _, value := range values {
		for _, raw := range strings.Split(value, ",") {
			name := strings.ToUpper(strings.TrimSpace(raw))
			if name == "" {
				continue
			}

			field := types.ClusterField(name)
			if !slices.Contains(known, field) {
				return nil, humane.Wrap(ErrInvalidInclude, fmt.Sprintf("unknown include field %q", raw),
					fmt.Sprintf("use one or more of %s", joinFields(known)),
				)
			}

			if !slices.Contains(fields, field) {
				fields = append(fields, field)
			}
		}
	}

	return fields, nil
}

func joinFields(fields []types.ClusterField) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
