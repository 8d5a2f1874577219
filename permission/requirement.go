package permission

// Logic 多个权限的组合方式
type Logic int

const (
	// LogicOr 满足任一权限即可
	LogicOr Logic = iota
	// LogicAnd 必须同时满足全部权限
	LogicAnd
)

// DefaultDenyMessage 未配置拒绝提示时的默认文案
const DefaultDenyMessage = "权限不足"

// Requirement 受保护接口的权限声明
// Permissions 为空表示仅要求登录；AllowAdmin 为 true 时超管直接放行
type Requirement struct {
	Permissions []Kind
	Logic       Logic
	AllowAdmin  bool
	Message     string
}

// RequireAny 任一权限满足即放行（默认允许超管、默认拒绝文案）
func RequireAny(kinds ...Kind) Requirement {
	return Requirement{
		Permissions: kinds,
		Logic:       LogicOr,
		AllowAdmin:  true,
		Message:     DefaultDenyMessage,
	}
}

// RequireAll 全部权限满足才放行（默认允许超管、默认拒绝文案）
func RequireAll(kinds ...Kind) Requirement {
	return Requirement{
		Permissions: kinds,
		Logic:       LogicAnd,
		AllowAdmin:  true,
		Message:     DefaultDenyMessage,
	}
}

// WithMessage 返回替换了拒绝提示的副本
func (r Requirement) WithMessage(message string) Requirement {
	r.Message = message
	return r
}
