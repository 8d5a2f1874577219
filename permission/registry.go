package permission

// Registry 接口权限注册表：路由 (method + path pattern) 到权限声明的映射。
// 在启动阶段随路由注册一次性填充，请求阶段只读，无需加锁。
// path 使用 gin 注册时的完整模式，如 /admin/users/:id。
type Registry struct {
	rules map[string]Requirement
}

// NewRegistry 创建空的权限注册表
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Requirement)}
}

// Register 为一个路由登记权限声明，重复注册以最后一次为准
func (r *Registry) Register(method, path string, req Requirement) {
	r.rules[method+" "+path] = req
}

// Lookup 查找路由对应的权限声明，未登记的路由返回 false（视为仅要求登录）
func (r *Registry) Lookup(method, path string) (Requirement, bool) {
	req, ok := r.rules[method+" "+path]
	return req, ok
}

// Len 返回已登记的路由数量
func (r *Registry) Len() int {
	return len(r.rules)
}
