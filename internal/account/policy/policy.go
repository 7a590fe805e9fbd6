// Package policy decides which role may perform which account action.
//
// The rule table is loaded into an in-memory casbin enforcer once, at package
// initialization, and never changes afterwards; Authorize only reads it.
package policy

import (
	"fmt"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gopos/internal/account/entity"
)

const (
	subAnonymous     = "anonymous"
	subAuthenticated = "authenticated"
	wildcard         = "*"
)

const rbacModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.act == "*" || r.act == p.act)
`

type rule struct {
	sub     string
	actions []entity.Action
}

var rules = []rule{
	{sub: subAnonymous, actions: []entity.Action{
		entity.ActionLogin,
		entity.ActionPasswordForgot,
		entity.ActionPasswordRecover,
	}},
	{sub: subAuthenticated, actions: []entity.Action{
		entity.ActionPasswordResetOwn,
		entity.ActionProfileView,
	}},
	{sub: string(entity.RoleAdmin), actions: []entity.Action{wildcard}},
	{sub: string(entity.RoleSupplier), actions: []entity.Action{
		entity.ActionSupplierManage,
	}},
	{sub: string(entity.RoleCustomer), actions: []entity.Action{
		entity.ActionCustomerView,
	}},
	{sub: string(entity.RoleBiller), actions: []entity.Action{
		entity.ActionBillerManage,
		entity.ActionCustomerView,
		entity.ActionWarehouseView,
	}},
}

var roles = []entity.Role{entity.RoleAdmin, entity.RoleSupplier, entity.RoleCustomer, entity.RoleBiller}

var enforcer = mustEnforcer()

func mustEnforcer() *casbin.Enforcer {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		panic(fmt.Sprintf("policy: model: %v", err))
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		panic(fmt.Sprintf("policy: enforcer: %v", err))
	}

	policies := lo.FlatMap(rules, func(r rule, _ int) [][]string {
		return lo.Map(r.actions, func(a entity.Action, _ int) []string {
			return []string{r.sub, string(a)}
		})
	})
	if _, err := e.AddPolicies(policies); err != nil {
		panic(fmt.Sprintf("policy: add policies: %v", err))
	}

	groups := lo.Map(roles, func(r entity.Role, _ int) []string {
		return []string{string(r), subAuthenticated}
	})
	groups = append(groups, []string{subAuthenticated, subAnonymous})
	if _, err := e.AddGroupingPolicies(groups); err != nil {
		panic(fmt.Sprintf("policy: add groups: %v", err))
	}

	return e
}

// Authorize reports whether role may perform action. Roles outside the known
// set are treated as anonymous.
func Authorize(action entity.Action, role entity.Role) bool {
	sub := subAnonymous
	if lo.Contains(roles, role) {
		sub = string(role)
	}

	ok, err := enforcer.Enforce(sub, string(action))
	return err == nil && ok
}
