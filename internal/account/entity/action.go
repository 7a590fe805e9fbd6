package entity

// Action names an operation guarded by the role policy.
type Action string

const (
	ActionLogin            Action = "auth.login"
	ActionPasswordForgot   Action = "password.forgot"
	ActionPasswordRecover  Action = "password.recover"
	ActionPasswordResetOwn Action = "password.reset_own"
	ActionProfileView      Action = "profile.view"

	ActionUserList   Action = "user.list"
	ActionUserView   Action = "user.view"
	ActionUserCreate Action = "user.create"
	ActionUserUpdate Action = "user.update"
	ActionUserDelete Action = "user.delete"

	ActionSupplierManage  Action = "supplier.manage"
	ActionCustomerManage  Action = "customer.manage"
	ActionCustomerView    Action = "customer.view"
	ActionBillerManage    Action = "biller.manage"
	ActionWarehouseManage Action = "warehouse.manage"
	ActionWarehouseView   Action = "warehouse.view"
)

// Actions lists every known action.
func Actions() []Action {
	return []Action{
		ActionLogin, ActionPasswordForgot, ActionPasswordRecover, ActionPasswordResetOwn, ActionProfileView,
		ActionUserList, ActionUserView, ActionUserCreate, ActionUserUpdate, ActionUserDelete,
		ActionSupplierManage, ActionCustomerManage, ActionCustomerView, ActionBillerManage,
		ActionWarehouseManage, ActionWarehouseView,
	}
}
