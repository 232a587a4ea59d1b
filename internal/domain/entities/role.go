package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// IsValid verifica se o role é um dos valores conhecidos
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleUser
}

// Permission representa uma permissão específica
type Permission string

const (
	// Store permissions
	PermissionStoreCreate        Permission = "stores.create"
	PermissionStoreManageOwn     Permission = "stores.manage_own"
	PermissionStoreManageAny     Permission = "stores.manage_any"
	PermissionStoreReassignOwner Permission = "stores.reassign_owner"

	// Rating permissions
	PermissionRatingCreate    Permission = "ratings.create"
	PermissionRatingCreateAny Permission = "ratings.create_any"
	PermissionRatingManageOwn Permission = "ratings.manage_own"
	PermissionRatingManageAny Permission = "ratings.manage_any"

	// User permissions
	PermissionUserRead   Permission = "users.read"
	PermissionUserDelete Permission = "users.delete"
)

// RolePermissions mapeia roles para suas permissões.
// Tabela única de política: toda operação de mutação consulta este mapa
// (deny by default). Owners não avaliam lojas; admins avaliam em nome de
// qualquer usuário, ainda sujeitos à regra de uma avaliação por par.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionStoreCreate,
		PermissionStoreManageAny,
		PermissionStoreReassignOwner,
		PermissionRatingCreateAny,
		PermissionRatingManageAny,
		PermissionUserRead,
		PermissionUserDelete,
	},
	RoleOwner: {
		PermissionStoreCreate,
		PermissionStoreManageOwn,
	},
	RoleUser: {
		PermissionRatingCreate,
		PermissionRatingManageOwn,
	},
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Actor é a identidade autenticada que executa uma requisição
type Actor struct {
	ID   string
	Role Role
}

// HasPermission verifica se o actor tem uma permissão
func (a Actor) HasPermission(permission Permission) bool {
	return a.Role.HasPermission(permission)
}
