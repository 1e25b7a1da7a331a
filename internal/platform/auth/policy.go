package auth

import (
	_ "embed"

	perr "villagevisits/internal/platform/errors"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/goccy/go-yaml"
)

//go:embed policy.yaml
var defaultPolicy []byte

const aclModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Policy answers (role, resource, action) questions with a casbin ACL
type Policy struct {
	e *casbin.Enforcer
}

// NewPolicy loads the embedded role table
func NewPolicy() (*Policy, error) { return LoadPolicy(defaultPolicy) }

// LoadPolicy builds a Policy from a YAML role table of the form
// role: {resource: [action, ...]}
func LoadPolicy(doc []byte) (*Policy, error) {
	var table map[string]map[string][]string
	if err := yaml.Unmarshal(doc, &table); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse policy")
	}

	m, err := model.NewModelFromString(aclModel)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "policy model")
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "policy enforcer")
	}

	var rules [][]string
	for role, resources := range table {
		for resource, actions := range resources {
			for _, action := range actions {
				rules = append(rules, []string{role, resource, action})
			}
		}
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "load policy")
		}
	}
	return &Policy{e: e}, nil
}

// Allow implements httpkit.Authorizer
func (p *Policy) Allow(role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return p.e.Enforce(role, resource, action)
}
