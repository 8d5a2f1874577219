package permission

// Principal 当前请求的主体：已认证的用户及其实时权限集合
// Granted 的键为权限字符串键，缺失的键与显式 false 等价
type Principal struct {
	UserID   uint
	Username string
	IsAdmin  bool
	Granted  map[string]bool
}

// Has 判断主体是否被授予某个权限
func (p Principal) Has(k Kind) bool {
	return p.Granted[k.Key()]
}

// Evaluate 根据权限声明判定是否放行，结果只有允许/拒绝两种。
// 判定顺序：空权限集直接放行 → 超管放行（AllowAdmin 时）→ 按 Logic 做集合运算。
func Evaluate(req Requirement, p Principal) bool {
	if len(req.Permissions) == 0 {
		return true
	}
	if req.AllowAdmin && p.IsAdmin {
		return true
	}
	if req.Logic == LogicAnd {
		for _, k := range req.Permissions {
			if !p.Granted[k.Key()] {
				return false
			}
		}
		return true
	}
	// LogicOr：要求集合与授予集合交集非空
	for _, k := range req.Permissions {
		if p.Granted[k.Key()] {
			return true
		}
	}
	return false
}
