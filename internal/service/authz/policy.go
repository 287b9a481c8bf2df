package authz

import (
	"embed"
	"fmt"
	"strings"

	"tally/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed policy/*.yaml
var policyFiles embed.FS

// EntityKind names what an extracted argument id identifies. Section and item
// ids need parent resolution before an access check is possible.
type EntityKind string

const (
	EntityChecklist EntityKind = "checklist"
	EntitySection   EntityKind = "section"
	EntityItem      EntityKind = "item"
)

// OperationPolicy describes the access requirement of one uniform CRUD
// operation: which entity the argument id points at, the permission the
// caller must hold on the resolved checklist, and where in the arguments the
// id lives.
type OperationPolicy struct {
	Entity     EntityKind        `yaml:"entity"`
	Permission models.Permission `yaml:"permission"`
	IDPath     string            `yaml:"idPath"`

	idPath []string
}

// PolicyTable maps operation names to their policies. Operations absent from
// the table are either special-cased in the router or unknown (default-deny).
type PolicyTable struct {
	operations map[string]OperationPolicy
}

type policyFile struct {
	Operations map[string]OperationPolicy `yaml:"operations"`
}

// LoadPolicyTable parses the embedded operation policy file into typed
// descriptors. Called once at construction; a malformed table is a programmer
// error and fails startup.
func LoadPolicyTable() (*PolicyTable, error) {
	data, err := policyFiles.ReadFile("policy/operations.yaml")
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal policy file: %w", err)
	}

	table := &PolicyTable{operations: make(map[string]OperationPolicy, len(file.Operations))}
	for name, policy := range file.Operations {
		if err := validatePolicy(name, policy); err != nil {
			return nil, err
		}
		policy.idPath = strings.Split(policy.IDPath, ".")
		table.operations[name] = policy
	}

	return table, nil
}

func validatePolicy(name string, policy OperationPolicy) error {
	switch policy.Entity {
	case EntityChecklist, EntitySection, EntityItem:
	default:
		return fmt.Errorf("policy %s: unknown entity kind %q", name, policy.Entity)
	}
	switch policy.Permission {
	case models.PermissionRead, models.PermissionCreate, models.PermissionUpdate,
		models.PermissionDelete, models.PermissionSubscribe, models.PermissionShare:
	default:
		return fmt.Errorf("policy %s: unknown permission %q", name, policy.Permission)
	}
	if policy.IDPath == "" {
		return fmt.Errorf("policy %s: missing idPath", name)
	}
	return nil
}

// Lookup returns the policy for an operation name, if the table has one.
func (t *PolicyTable) Lookup(operation string) (OperationPolicy, bool) {
	policy, ok := t.operations[operation]
	return policy, ok
}

// Len returns the number of table-driven operations.
func (t *PolicyTable) Len() int {
	return len(t.operations)
}
